// Package rfhealth provides the JSON response bodies for the admin
// sidecar's liveness and readiness endpoints.
package rfhealth

import (
	"time"
)

var (
	startTime = time.Now()
	version   = "dev"
)

// SetVersion sets the version string reported by Status.
func SetVersion(v string) {
	version = v
}

// Status is the JSON body written by /healthz and /readyz.
type Status struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	UptimeSec float64   `json:"uptime_seconds"`
}

// Alive builds the liveness response: alive as soon as the process is
// running, regardless of whether it can accept connections yet.
func Alive() Status {
	return Status{Status: "alive", Timestamp: time.Now(), Version: version, UptimeSec: time.Since(startTime).Seconds()}
}

// Ready builds the readiness response for the given ready state.
func Ready(ready bool) Status {
	s := "ready"
	if !ready {
		s = "not_ready"
	}
	return Status{Status: s, Timestamp: time.Now(), Version: version, UptimeSec: time.Since(startTime).Seconds()}
}
