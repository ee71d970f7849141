// Package cracker implements the local (offline) cracker: given a loaded
// rainbow table and a set of target digests, it runs the crack procedure
// of internal/chain across every chain and every possible depth, spread
// over a worker goroutine pool, and collects recovered plaintexts under a
// shared mutex-protected map.
package cracker

import (
	"context"
	"encoding/hex"
	"os"
	"sync"

	"github.com/kenneth/rainbowforge/internal/chain"
	"github.com/kenneth/rainbowforge/internal/hashfile"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Crack attempts to recover every hash in hashes (raw digest bytes)
// against table, spreading the per-chain crack attempts across workers
// goroutines. The returned map is keyed by lowercase hex digest.
func Crack(ctx context.Context, table rainbowtable.Table, hashes [][]byte, workers int) (map[string]string, error) {
	if workers <= 0 {
		return nil, rferrors.New(rferrors.InvalidThreadCount, "thread count must be greater than zero")
	}

	found := make(map[string]string)
	var mu sync.Mutex

	chainsCh := make(chan rainbowtable.ChainEntry)
	errs := make(chan error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range chainsCh {
				for _, target := range hashes {
					candidate, ok, err := chain.Crack(
						entry.Start, entry.End, uint32(table.Header.NumLinks), target,
						table.Header.Algorithm, int(table.Header.PasswordLen),
					)
					if err != nil {
						select {
						case errs <- rferrors.Wrap(rferrors.ChainError, "cracking chain", err):
						default:
						}
						continue
					}
					if !ok {
						continue
					}
					key := hex.EncodeToString(target)
					mu.Lock()
					found[key] = candidate
					mu.Unlock()
				}
				select {
				case <-ctx.Done():
					return
				default:
				}
			}
		}()
	}

	go func() {
		defer close(chainsCh)
		for _, entry := range table.Chains {
			select {
			case chainsCh <- entry:
			case <-ctx.Done():
				return
			}
		}
	}()

	wg.Wait()

	select {
	case err := <-errs:
		return nil, err
	default:
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(found) == 0 {
		return nil, rferrors.New(rferrors.NoPasswordsFound, "no passwords found")
	}
	return found, nil
}

// CrackFile loads tablePath and hashesPath, runs Crack, and writes
// "<hex_hash>\t<password>" lines to outPath (or stdout if outPath is
// empty) in the order hashes appear in hashesPath, skipping unresolved
// ones.
func CrackFile(ctx context.Context, tablePath, hashesPath, outPath string, workers int) error {
	tableFile, err := os.Open(tablePath)
	if err != nil {
		return rferrors.Wrap(rferrors.FileOpen, "opening rainbow-table file", err)
	}
	defer tableFile.Close()

	table, err := rainbowtable.Load(tableFile)
	if err != nil {
		return err
	}

	hashesFile, err := os.Open(hashesPath)
	if err != nil {
		return rferrors.Wrap(rferrors.FileOpen, "opening hash file", err)
	}
	defer hashesFile.Close()

	header, err := hashfile.ReadHeader(hashesFile)
	if err != nil {
		return err
	}
	digests, err := hashfile.ReadDigests(hashesFile, header.Algorithm)
	if err != nil {
		return err
	}

	found, err := Crack(ctx, table, digests, workers)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return rferrors.Wrap(rferrors.CreateFile, "creating crack output file", err)
		}
		defer f.Close()
		out = f
	}

	for _, d := range digests {
		key := hex.EncodeToString(d)
		pw, ok := found[key]
		if !ok {
			continue
		}
		if _, err := out.WriteString(key + "\t" + pw + "\n"); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing crack results", err)
		}
	}
	return nil
}
