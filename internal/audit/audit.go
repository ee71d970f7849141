// Package audit records security-relevant operations against the
// cracking service — table uploads and crack attempts — independently
// of the structured request logs emitted by internal/rflog. Audit
// events are meant to survive being piped somewhere durable (a file, an
// HTTP collector) even when the request logs are sampled or rotated.
package audit

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// EventType identifies the kind of operation an AuditEvent describes.
type EventType string

const (
	// EventTypeUpload represents a rainbow-table upload.
	EventTypeUpload EventType = "upload"
	// EventTypeCrack represents a crack attempt against the cache.
	EventTypeCrack EventType = "crack"
)

// AuditEvent is a single audit log entry.
type AuditEvent struct {
	Timestamp   time.Time              `json:"timestamp"`
	EventType   EventType              `json:"event_type"`
	RemoteAddr  string                 `json:"remote_addr,omitempty"`
	Algorithm   string                 `json:"algorithm,omitempty"`
	PasswordLen int                    `json:"password_len,omitempty"`
	Count       int                    `json:"count"`
	Success     bool                   `json:"success"`
	Error       string                 `json:"error,omitempty"`
	Duration    time.Duration          `json:"duration_ms"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// Logger records audit events.
type Logger interface {
	// LogUpload records a chain upload: count is the number of chains
	// stored in the cache.
	LogUpload(remoteAddr, algorithm string, passwordLen, count int, success bool, err error, duration time.Duration)

	// LogCrack records a crack attempt: count is the number of target
	// digests in the request, success is whether at least one was
	// resolved.
	LogCrack(remoteAddr, algorithm string, passwordLen, count int, success bool, err error, duration time.Duration)

	// Events returns a copy of the in-memory ring buffer, most recent
	// last, for /debug-style inspection.
	Events() []*AuditEvent

	// Close closes the logger's underlying sink.
	Close() error
}

type auditLogger struct {
	mu        sync.Mutex
	events    []*AuditEvent
	maxEvents int
	sink      EventWriter
}

// EventWriter writes a single audit event to a durable destination.
type EventWriter interface {
	WriteEvent(event *AuditEvent) error
}

// NewLogger builds a Logger that keeps the last maxEvents events in
// memory and forwards each one to sink. A nil sink is replaced with a
// StdoutSink.
func NewLogger(maxEvents int, sink EventWriter) Logger {
	if sink == nil {
		sink = &StdoutSink{}
	}
	return &auditLogger{
		events:    make([]*AuditEvent, 0, maxEvents),
		maxEvents: maxEvents,
		sink:      sink,
	}
}

func (l *auditLogger) record(event *AuditEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.sink != nil {
		l.sink.WriteEvent(event)
	}

	l.events = append(l.events, event)
	if l.maxEvents > 0 && len(l.events) > l.maxEvents {
		l.events = l.events[len(l.events)-l.maxEvents:]
	}
}

func (l *auditLogger) LogUpload(remoteAddr, algorithm string, passwordLen, count int, success bool, err error, duration time.Duration) {
	event := &AuditEvent{
		Timestamp:   time.Now(),
		EventType:   EventTypeUpload,
		RemoteAddr:  remoteAddr,
		Algorithm:   algorithm,
		PasswordLen: passwordLen,
		Count:       count,
		Success:     success,
		Duration:    duration,
	}
	if err != nil {
		event.Error = err.Error()
	}
	l.record(event)
}

func (l *auditLogger) LogCrack(remoteAddr, algorithm string, passwordLen, count int, success bool, err error, duration time.Duration) {
	event := &AuditEvent{
		Timestamp:   time.Now(),
		EventType:   EventTypeCrack,
		RemoteAddr:  remoteAddr,
		Algorithm:   algorithm,
		PasswordLen: passwordLen,
		Count:       count,
		Success:     success,
		Duration:    duration,
	}
	if err != nil {
		event.Error = err.Error()
	}
	l.record(event)
}

func (l *auditLogger) Events() []*AuditEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	events := make([]*AuditEvent, len(l.events))
	copy(events, l.events)
	return events
}

func (l *auditLogger) Close() error {
	if closer, ok := l.sink.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

// StdoutSink writes each event to stdout as a JSON line. It is the
// default sink when none is configured.
type StdoutSink struct{}

func (s *StdoutSink) WriteEvent(event *AuditEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
