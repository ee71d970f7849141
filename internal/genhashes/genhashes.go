// Package genhashes implements the parallel hash generator: a single
// reader goroutine emits passwords from an input file, a pool of worker
// goroutines hash each one, and a single writer goroutine prepends the
// hash-file header (fixed by the first password's length) before
// streaming out the digests.
package genhashes

import (
	"bufio"
	"context"
	"io"
	"os"
	"sync"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/hashfile"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

type job struct {
	password string
}

type result struct {
	digest []byte
}

// Generate reads one password per line from inPath, hashes each under
// algo using threads worker goroutines, and writes the framed hash file
// to outPath. Worker count 0 is rejected.
func Generate(ctx context.Context, inPath, outPath string, threads int, algo hashalgo.Algorithm) error {
	in, err := os.Open(inPath)
	if err != nil {
		return rferrors.Wrap(rferrors.FileOpen, "opening password file", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return rferrors.Wrap(rferrors.CreateFile, "creating hash file", err)
	}
	defer out.Close()

	return generate(ctx, in, out, threads, algo)
}

func generate(ctx context.Context, in io.Reader, out io.Writer, threads int, algo hashalgo.Algorithm) error {
	if threads <= 0 {
		return rferrors.New(rferrors.InvalidThreadCount, "thread count must be greater than zero")
	}

	jobs := make(chan job)
	results := make(chan result)
	readErr := make(chan error, 1)
	workerErr := make(chan error, threads)

	var firstLen int
	var headerWritten bool
	var headerMu sync.Mutex

	go func() {
		defer close(jobs)
		scanner := bufio.NewScanner(in)
		first := true
		for scanner.Scan() {
			line := scanner.Text()
			if first {
				headerMu.Lock()
				firstLen = len(line)
				first = false
				headerMu.Unlock()
			}
			select {
			case jobs <- job{password: line}:
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
			for j := range jobs {
				digest, err := hashalgo.Hash(j.password, algo)
				if err != nil {
					select {
					case workerErr <- err:
					default:
					}
					continue
				}
				select {
				case results <- result{digest: digest}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	bw := bufio.NewWriter(out)
	for r := range results {
		if !headerWritten {
			headerMu.Lock()
			passwordLen := firstLen
			headerMu.Unlock()
			if err := hashfile.WriteHeader(bw, hashfile.Header{
				Version:     1,
				Algorithm:   algo,
				PasswordLen: uint8(passwordLen),
			}); err != nil {
				return err
			}
			headerWritten = true
		}
		if _, err := bw.Write(r.digest); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing digest", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "flushing hash file", err)
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
