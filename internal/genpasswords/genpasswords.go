// Package genpasswords implements the parallel password generator: T
// worker goroutines each draw random printable-ASCII passwords of a fixed
// length and hand them to a single writer goroutine over a channel.
package genpasswords

import (
	"bufio"
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"sync"

	"github.com/kenneth/rainbowforge/internal/charset"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// Generate writes exactly num passwords of length chars to w, one per
// line, splitting the work across threads workers. When threads > num,
// only num workers are started (one password each); ordering across
// workers is unspecified.
func Generate(ctx context.Context, chars uint8, num, threads int, w io.Writer) error {
	if threads <= 0 {
		return rferrors.New(rferrors.InvalidThreadCount, "thread count must be greater than zero")
	}
	if num <= 0 {
		return nil
	}
	if threads > num {
		threads = num
	}

	passwords := make(chan string)
	errs := make(chan error, threads)

	counts := distribute(num, threads)
	var wg sync.WaitGroup
	for _, n := range counts {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for i := 0; i < n; i++ {
				pw, err := randomPassword(chars)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				select {
				case passwords <- pw:
				case <-ctx.Done():
					return
				}
			}
		}(n)
	}

	go func() {
		wg.Wait()
		close(passwords)
	}()

	bw := bufio.NewWriter(w)
	for pw := range passwords {
		if _, err := io.WriteString(bw, pw+"\n"); err != nil {
			return rferrors.Wrap(rferrors.WriteError, "writing generated password", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return rferrors.Wrap(rferrors.WriteError, "flushing generated passwords", err)
	}

	select {
	case err := <-errs:
		return err
	default:
	}
	return ctx.Err()
}

// distribute splits num items as evenly as possible across threads workers.
func distribute(num, threads int) []int {
	counts := make([]int, threads)
	base, rem := num/threads, num%threads
	for i := range counts {
		counts[i] = base
		if i < rem {
			counts[i]++
		}
	}
	return counts
}

// randomPassword draws chars independent, uniformly-random printable-ASCII
// characters using crypto/rand.
func randomPassword(chars uint8) (string, error) {
	out := make([]byte, chars)
	max := big.NewInt(charset.Size)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", rferrors.Wrap(rferrors.IoError, "drawing random password character", err)
		}
		out[i] = byte(n.Int64()) + charset.Offset
	}
	return string(out), nil
}
