package server

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"io"
	"net"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenneth/rainbowforge/internal/chain"
	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/hashfile"
	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// handleCrack reads a crack request, consults the cracked-password cache
// first and then the rainbow cache for every chain bucket that matches
// the requested algorithm and password length, and writes the plaintext
// response.
func (s *Server) handleCrack(ctx context.Context, conn net.Conn, log *logrus.Entry) {
	var hdr [1]byte
	if _, err := io.ReadFull(conn, hdr[:]); err != nil {
		log.WithError(err).Debug("reading crack version")
		return
	}
	if hdr[0] != protocol.Version {
		writeError(conn, rferrors.New(rferrors.InvalidFormat, "unsupported protocol version"))
		return
	}

	var sizeBuf [8]byte
	if _, err := io.ReadFull(conn, sizeBuf[:]); err != nil {
		log.WithError(err).Debug("reading crack payload size")
		return
	}
	payloadSize := binary.BigEndian.Uint64(sizeBuf[:])
	start := time.Now()

	payload := &exactReader{r: io.LimitReader(conn, int64(payloadSize)), want: int64(payloadSize)}
	header, err := hashfile.ReadHeader(payload)
	if err != nil {
		writeError(conn, err)
		s.Audit.LogCrack(conn.RemoteAddr().String(), "", 0, 0, false, err, time.Since(start))
		return
	}
	digests, err := hashfile.ReadDigests(payload, header.Algorithm)
	if err != nil {
		writeError(conn, err)
		s.Audit.LogCrack(conn.RemoteAddr().String(), header.Algorithm.String(), int(header.PasswordLen), 0, false, err, time.Since(start))
		return
	}

	found := make(map[string]string)
	for _, digest := range digests {
		key := hex.EncodeToString(digest)
		if pw, ok := s.Cache.GetCracked(header.Algorithm, key); ok {
			found[key] = pw
			s.bumpCacheHit(header.Algorithm)
			continue
		}
		s.bumpCacheMiss(header.Algorithm)

		if err := s.Limiter.Acquire(ctx); err != nil {
			writeError(conn, err)
			return
		}
		pw, ok := s.crackAgainstCache(header.Algorithm, header.PasswordLen, digest)
		s.Limiter.Release()
		s.reportLimiterSaturation()

		if ok {
			found[key] = pw
			s.Cache.InsertCracked(header.Algorithm, key, pw)
		}
	}

	if s.Metrics != nil {
		outcome := "miss"
		if len(found) > 0 {
			outcome = "hit"
		}
		s.Metrics.CrackAttempts.WithLabelValues(outcome).Inc()
	}

	s.Audit.LogCrack(conn.RemoteAddr().String(), header.Algorithm.String(), int(header.PasswordLen), len(digests), len(found) > 0, nil, time.Since(start))

	if len(found) == 0 {
		writeError(conn, rferrors.New(rferrors.PasswordNotFoundInCache, "no passwords found"))
		return
	}

	io.WriteString(conn, "Successfully Cracked Password\n")
	for _, digest := range digests {
		key := hex.EncodeToString(digest)
		if pw, ok := found[key]; ok {
			io.WriteString(conn, key+": "+pw+"\n")
		}
	}
}

// crackAgainstCache walks every (algo, passwordLen) bucket in the rainbow
// cache looking for a chain that resolves target. It is the only place
// the server's cache reading and the chain engine meet.
func (s *Server) crackAgainstCache(algo hashalgo.Algorithm, passwordLen uint8, target []byte) (string, bool) {
	for _, bucket := range s.Cache.GetAllChains(algo) {
		if bucket.PasswordLen != passwordLen {
			continue
		}
		for _, entry := range bucket.Chains {
			candidate, ok, err := chain.Crack(entry.Start, entry.End, bucket.Links, target, algo, int(passwordLen))
			if err != nil {
				continue
			}
			if ok {
				return candidate, true
			}
		}
	}
	return "", false
}

func (s *Server) bumpCacheHit(algo hashalgo.Algorithm) {
	if s.Metrics != nil {
		s.Metrics.CacheHits.WithLabelValues(algo.String()).Inc()
	}
}

func (s *Server) bumpCacheMiss(algo hashalgo.Algorithm) {
	if s.Metrics != nil {
		s.Metrics.CacheMisses.WithLabelValues(algo.String()).Inc()
	}
}

func (s *Server) reportLimiterSaturation() {
	if s.Metrics != nil {
		s.Metrics.ComputePermitsInUse.Set(float64(s.Limiter.InUse()))
		s.Metrics.ComputePermitsTotal.Set(float64(s.Limiter.Capacity()))
	}
}
