// Package tablebuilder implements the parallel rainbow-table construction
// pipeline: a single reader goroutine emits passwords, a pool of worker
// goroutines run the chain engine to produce (start, end) pairs, and a
// single writer goroutine emits the rainbow-table header once followed by
// the chain records in the order they arrive.
package tablebuilder

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/kenneth/rainbowforge/internal/chain"
	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Build reads one password per line from inPath (the first line's length
// fixes P for the whole table), runs the chain engine for numLinks rounds
// over threads worker goroutines, and writes the framed rainbow-table
// file to outPath. algo MUST NOT be Scrypt.
func Build(ctx context.Context, inPath, outPath string, numLinks uint32, threads int, algo hashalgo.Algorithm) error {
	if !hashalgo.Chainable(algo) {
		return rferrors.New(rferrors.InvalidAlgorithm, "scrypt cannot be used inside a rainbow chain")
	}

	in, err := os.Open(inPath)
	if err != nil {
		return rferrors.Wrap(rferrors.FileOpen, "opening password file", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return rferrors.Wrap(rferrors.CreateFile, "creating rainbow-table file", err)
	}
	defer out.Close()

	return build(ctx, in, out, numLinks, threads, algo)
}

func build(ctx context.Context, in io.Reader, out io.Writer, numLinks uint32, threads int, algo hashalgo.Algorithm) error {
	if threads <= 0 {
		return rferrors.New(rferrors.InvalidThreadCount, "thread count must be greater than zero")
	}

	passwords := make(chan string)
	entries := make(chan rainbowtable.ChainEntry)
	readErr := make(chan error, 1)
	workerErr := make(chan error, threads)

	var passwordLen int
	var lenMu sync.Mutex
	lenSet := false

	go func() {
		defer close(passwords)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := scanner.Text()
			lenMu.Lock()
			if !lenSet {
				passwordLen = len(line)
				lenSet = true
			}
			lenMu.Unlock()
			select {
			case passwords <- line:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			select {
			case readErr <- rferrors.Wrap(rferrors.FileRead, "reading password file", err):
			default:
			}
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for start := range passwords {
				end, err := chain.Build(start, numLinks, algo)
				if err != nil {
					select {
					case workerErr <- rferrors.Wrap(rferrors.ChainError, "building chain", err):
					default:
					}
					continue
				}
				select {
				case entries <- rainbowtable.ChainEntry{Start: start, End: end}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(entries)
	}()

	bw := bufio.NewWriter(out)
	headerWritten := false
	for e := range entries {
		if !headerWritten {
			lenMu.Lock()
			p := passwordLen
			lenMu.Unlock()
			if err := rainbowtable.WriteHeader(bw, rainbowtable.NewHeader(algo, uint8(p), uint64(numLinks))); err != nil {
				return err
			}
			headerWritten = true
		}
		if err := rainbowtable.WriteEntry(bw, e); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "flushing rainbow-table file", err)
	}

	select {
	case err := <-readErr:
		return err
	default:
	}
	select {
	case err := <-workerErr:
		return err
	default:
	}
	return ctx.Err()
}
