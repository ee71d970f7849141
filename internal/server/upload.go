package server

import (
	"context"
	"encoding/binary"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rainbowtable"
	"github.com/kenneth/rainbowforge/internal/rferrors"
)

// handleUpload reads an upload request, validates and stores its rainbow
// table in the cache, and writes the plaintext success response.
func (s *Server) handleUpload(ctx context.Context, conn net.Conn, log *logrus.Entry) {
	var hdr [1]byte
	if _, err := io.ReadFull(conn, hdr[:]); err != nil {
		log.WithError(err).Debug("reading upload version")
		return
	}
	if hdr[0] != protocol.Version {
		writeError(conn, rferrors.New(rferrors.InvalidFormat, "unsupported protocol version"))
		return
	}

	var nameLen [1]byte
	if _, err := io.ReadFull(conn, nameLen[:]); err != nil {
		log.WithError(err).Debug("reading upload name length")
		return
	}
	name := make([]byte, nameLen[0])
	if _, err := io.ReadFull(conn, name); err != nil {
		log.WithError(err).Debug("reading upload name")
		return
	}

	var sizeBuf [8]byte
	if _, err := io.ReadFull(conn, sizeBuf[:]); err != nil {
		log.WithError(err).Debug("reading upload payload size")
		return
	}
	payloadSize := binary.BigEndian.Uint64(sizeBuf[:])
	start := time.Now()

	payload := io.LimitReader(conn, int64(payloadSize))
	table, err := rainbowtable.Load(&exactReader{r: payload, want: int64(payloadSize)})
	if err != nil {
		log.WithError(err).Warn("parsing uploaded rainbow table")
		writeError(conn, err)
		s.Audit.LogUpload(conn.RemoteAddr().String(), "", 0, 0, false, err, time.Since(start))
		return
	}

	n := s.Cache.InsertChain(table.Header.Algorithm, table.Header.PasswordLen, uint32(table.Header.NumLinks), table.Chains)
	s.Audit.LogUpload(conn.RemoteAddr().String(), table.Header.Algorithm.String(), int(table.Header.PasswordLen), len(table.Chains), true, nil, time.Since(start))
	if s.Metrics != nil {
		s.Metrics.ChainsUploaded.WithLabelValues(table.Header.Algorithm.String()).Add(float64(len(table.Chains)))
	}
	log.WithFields(logrus.Fields{
		"name":      string(name),
		"algorithm": table.Header.Algorithm.String(),
		"chains":    len(table.Chains),
		"total":     n,
	}).Info("upload accepted")

	io.WriteString(conn, "Successfully uploaded "+strconv.Itoa(len(table.Chains))+" chains for algorithm '"+table.Header.Algorithm.String()+"'\n")
}

// exactReader reads exactly want bytes from r, reporting a well-formed
// InvalidFormat error on a short stream instead of a bare io.EOF — the
// server takes payload_size as a strict declared length (spec's
// recommended stricter behavior), not merely advisory.
type exactReader struct {
	r    io.Reader
	want int64
	read int64
}

func (e *exactReader) Read(p []byte) (int, error) {
	n, err := e.r.Read(p)
	e.read += int64(n)
	if err == io.EOF && e.read < e.want {
		return n, rferrors.New(rferrors.InvalidFormat, "upload payload shorter than declared payload_size")
	}
	return n, err
}

func writeError(conn net.Conn, err error) {
	io.WriteString(conn, "Error: "+err.Error()+"\n")
}
