package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kenneth/rainbowforge/internal/hashalgo"
	"github.com/kenneth/rainbowforge/internal/middleware"
	"github.com/kenneth/rainbowforge/internal/rfhealth"
)

// SetReady marks the server ready for /readyz, called once the TCP
// listener has successfully bound.
func (s *Server) SetReady() {
	atomic.StoreInt32(&s.ready, 1)
}

// AdminMux builds the admin HTTP sidecar's router: /healthz (liveness),
// /readyz (readiness), and /metrics (Prometheus exposition). This router
// is served on its own listener and has no effect on the wire protocol.
func (s *Server) AdminMux() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(rfhealth.Alive())
	})
	r.HandleFunc("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ready := atomic.LoadInt32(&s.ready) != 0
		w.Header().Set("Content-Type", "application/json")
		if !ready {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(rfhealth.Ready(false))
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(rfhealth.Ready(true))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/debug/hardware", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(hashalgo.HardwareInfo())
	})
	return r
}

// ServeAdmin serves the admin HTTP sidecar on addr until ctx is done. The
// sidecar's handlers run under the recovery and request-logging
// middleware so a panic in a future admin route never takes the whole
// process down and every admin request is logged like a connection is.
func (s *Server) ServeAdmin(ctx context.Context, addr string) error {
	handler := middleware.RecoveryMiddleware(s.Log)(
		middleware.LoggingMiddleware(s.Log)(s.AdminMux()),
	)
	srv := &http.Server{Addr: addr, Handler: handler}
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
