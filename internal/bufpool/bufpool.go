// Package bufpool provides thread-safe pooling of byte buffers in two
// size classes: fixed-width digests (up to 64 bytes, SHA3-512's width) and
// passwords (variable length, pooled in one oversized class). The password
// pool backs internal/reduction's output buffer; no package outside this
// one draws from the digest pool.
package bufpool

import "sync"

const (
	digestSize   = 64
	passwordSize = 256
)

var (
	digestPool = sync.Pool{
		New: func() any { return make([]byte, digestSize) },
	}
	passwordPool = sync.Pool{
		New: func() any { return make([]byte, passwordSize) },
	}
)

// GetDigest returns a zeroed buffer of at least n bytes (n <= 64), drawn
// from the digest pool when possible.
func GetDigest(n int) []byte {
	if n > digestSize {
		return make([]byte, n)
	}
	buf := digestPool.Get().([]byte)[:n]
	clear(buf)
	return buf
}

// PutDigest returns a buffer obtained from GetDigest to the pool.
func PutDigest(buf []byte) {
	if cap(buf) < digestSize {
		return
	}
	digestPool.Put(buf[:digestSize])
}

// GetPassword returns a zeroed buffer of at least n bytes, drawn from the
// password pool when possible.
func GetPassword(n int) []byte {
	if n > passwordSize {
		return make([]byte, n)
	}
	buf := passwordPool.Get().([]byte)[:n]
	clear(buf)
	return buf
}

// PutPassword returns a buffer obtained from GetPassword to the pool.
func PutPassword(buf []byte) {
	if cap(buf) < passwordSize {
		return
	}
	passwordPool.Put(buf[:passwordSize])
}
