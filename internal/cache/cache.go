// Package cache implements the server's two in-memory caches: a rainbow
// cache of uploaded chains, sharded by algorithm and then by password
// length so unrelated algorithms and lengths never contend on the same
// lock, and a cracked-password cache with byte-budget admission and no
// eviction.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
)

// bucket is one (algorithm, password length) chain slice, independently
// lockable so a crack request against one length never blocks an upload
// of another.
type bucket struct {
	mu     sync.RWMutex
	chains []rainbowtable.ChainEntry
	links  uint32
}

// shard holds every length bucket for one algorithm.
type shard struct {
	buckets sync.Map // map[uint8]*bucket
}

// Cache is the server's rainbow cache plus cracked-password cache.
//
// Chain storage: one shard per algorithm (created lazily), each holding
// one append-only bucket per password length, protected by its own
// sync.RWMutex. This avoids nested locking — no code path ever holds two
// buckets' locks at once — and lets independent (algorithm, length)
// combinations run fully in parallel.
//
// Cracked-password storage: a separate sync.Map keyed by (algorithm, hex
// digest) with an atomic running byte total, admitted only while under
// MaxCacheSize; once inserted, a cracked entry is never evicted or
// overwritten (cache monotonicity).
type Cache struct {
	shards sync.Map // map[hashalgo.Algorithm]*shard

	cracked      sync.Map // map[string]string, key = algo.String()+":"+hexDigest
	crackedBytes int64
	maxCacheSize int64
}

// New creates a Cache that admits cracked-password entries until their
// total size reaches maxCacheSize bytes.
func New(maxCacheSize int64) *Cache {
	return &Cache{maxCacheSize: maxCacheSize}
}

func (c *Cache) shardFor(algo hashalgo.Algorithm) *shard {
	v, _ := c.shards.LoadOrStore(algo, &shard{})
	return v.(*shard)
}

func (s *shard) bucketFor(passwordLen uint8, links uint32) *bucket {
	v, _ := s.buckets.LoadOrStore(passwordLen, &bucket{links: links})
	return v.(*bucket)
}

// InsertChain appends entries to the (algo, passwordLen) bucket, creating
// it if necessary. links is the chain length recorded for that bucket
// (every entry in a bucket shares one link count).
func (c *Cache) InsertChain(algo hashalgo.Algorithm, passwordLen uint8, links uint32, entries []rainbowtable.ChainEntry) int {
	b := c.shardFor(algo).bucketFor(passwordLen, links)
	b.mu.Lock()
	b.chains = append(b.chains, entries...)
	n := len(b.chains)
	b.mu.Unlock()
	return n
}

// ChainBucket is a snapshot of one (algorithm, length) bucket's chains
// and the link count they were built with.
type ChainBucket struct {
	PasswordLen uint8
	Links       uint32
	Chains      []rainbowtable.ChainEntry
}

// GetAllChains returns a snapshot of every bucket held for algo.
func (c *Cache) GetAllChains(algo hashalgo.Algorithm) []ChainBucket {
	v, ok := c.shards.Load(algo)
	if !ok {
		return nil
	}
	s := v.(*shard)

	var out []ChainBucket
	s.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)
		b.mu.RLock()
		snapshot := make([]rainbowtable.ChainEntry, len(b.chains))
		copy(snapshot, b.chains)
		links := b.links
		b.mu.RUnlock()
		out = append(out, ChainBucket{
			PasswordLen: key.(uint8),
			Links:       links,
			Chains:      snapshot,
		})
		return true
	})
	return out
}

func crackedKey(algo hashalgo.Algorithm, hexDigest string) string {
	return algo.String() + ":" + hexDigest
}

// InsertCracked admits (hexDigest -> plaintext) into the cracked cache
// for algo if doing so would not exceed MaxCacheSize, and if the digest
// is not already present (cache monotonicity: an existing entry is never
// overwritten). Returns whether the entry is present after the call.
func (c *Cache) InsertCracked(algo hashalgo.Algorithm, hexDigest, plaintext string) bool {
	key := crackedKey(algo, hexDigest)
	if _, exists := c.cracked.Load(key); exists {
		return true
	}

	cost := int64(len(key) + len(plaintext))
	if c.maxCacheSize > 0 {
		for {
			cur := atomic.LoadInt64(&c.crackedBytes)
			if cur+cost > c.maxCacheSize {
				return false
			}
			if atomic.CompareAndSwapInt64(&c.crackedBytes, cur, cur+cost) {
				break
			}
		}
	}

	if _, loaded := c.cracked.LoadOrStore(key, plaintext); loaded {
		// Another goroutine won the race; release the byte budget we
		// reserved above.
		if c.maxCacheSize > 0 {
			atomic.AddInt64(&c.crackedBytes, -cost)
		}
	}
	return true
}

// GetCracked looks up a previously cracked plaintext for algo/hexDigest.
func (c *Cache) GetCracked(algo hashalgo.Algorithm, hexDigest string) (string, bool) {
	v, ok := c.cracked.Load(crackedKey(algo, hexDigest))
	if !ok {
		return "", false
	}
	return v.(string), true
}

// CrackedBytes reports the current counted size of the cracked-password
// cache, for metrics.
func (c *Cache) CrackedBytes() int64 {
	return atomic.LoadInt64(&c.crackedBytes)
}
