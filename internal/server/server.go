// Package server implements the TCP protocol dispatcher: it accepts
// connections forever, reads the upload/crack request framing described
// in the wire protocol, and dispatches to the upload and crack handlers.
// A second, independent HTTP listener carries admin endpoints
// (health/readiness/metrics) with no effect on the wire protocol.
package server

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"github.com/kenneth/rainbowforge/internal/audit"
	"github.com/kenneth/rainbowforge/internal/cache"
	"github.com/kenneth/rainbowforge/internal/limiter"
	"github.com/kenneth/rainbowforge/internal/protocol"
	"github.com/kenneth/rainbowforge/internal/rfmetrics"
	"github.com/kenneth/rainbowforge/internal/rftrace"
)

// Server holds the shared state every connection handler reads from: the
// rainbow cache, the compute limiter, metrics, an audit trail, and a
// logger.
type Server struct {
	Cache   *cache.Cache
	Limiter *limiter.Limiter
	Metrics *rfmetrics.Metrics
	Tracer  *rftrace.Provider
	Audit   audit.Logger
	Log     *logrus.Logger

	ready int32
}

// New builds a Server from its collaborators. A nil audit logger is
// replaced with a stdout logger so callers never need a nil check.
func New(c *cache.Cache, l *limiter.Limiter, m *rfmetrics.Metrics, tp *rftrace.Provider, al audit.Logger, log *logrus.Logger) *Server {
	if al == nil {
		al = audit.NewLogger(1000, nil)
	}
	return &Server{Cache: c, Limiter: l, Metrics: m, Tracer: tp, Audit: al, Log: log}
}

// Serve accepts connections on ln forever, handling each on its own
// goroutine, until ctx is done or Accept returns a permanent error.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				continue
			}
			return err
		}
		go s.handleConn(ctx, conn)
	}
}

// handleConn reads the request kind (its magic word), dispatches to the
// matching handler, and always closes the connection when done. The
// whole exchange runs inside one trace span per connection so a slow
// upload or crack request shows up in the exported trace.
func (s *Server) handleConn(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	if s.Tracer != nil {
		var span trace.Span
		ctx, span = s.Tracer.Tracer("rainbowforge/server").Start(ctx, "connection")
		defer span.End()
	}

	log := s.Log.WithField("remote_addr", conn.RemoteAddr().String())

	prefix := make([]byte, len(protocol.CrackMagic))
	if _, err := io.ReadFull(conn, prefix); err != nil {
		log.WithError(err).Debug("reading request magic word")
		return
	}

	if string(prefix) == protocol.CrackMagic {
		s.handleCrack(ctx, conn, log)
		return
	}

	sixth := make([]byte, 1)
	if _, err := io.ReadFull(conn, sixth); err != nil {
		log.WithError(err).Debug("reading upload magic word")
		return
	}
	if string(prefix)+string(sixth) != protocol.UploadMagic {
		log.Warn("unrecognized request magic word")
		return
	}
	s.handleUpload(ctx, conn, log)
}
