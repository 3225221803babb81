package pipeline

import (
	"log"
	"sync"
	"time"
)

// Event kinds emitted during a run.
const (
	EventRunStarted      = "run.started"
	EventGenerateFailed  = "generate.failed"
	EventFallback        = "fallback"
	EventSanitizeChanged = "sanitize.changed"
	EventRunRejected     = "run.rejected"
	EventRunAccepted     = "run.accepted"
)

// Event is a structured record of something that happened during a run.
type Event struct {
	RunID     string    `json:"runId"`
	Kind      string    `json:"kind"`
	Generator string    `json:"generator,omitempty"`
	Detail    string    `json:"detail,omitempty"`
	Time      time.Time `json:"time"`
}

// Recorder receives run events. Implementations must be safe for concurrent use.
type Recorder interface {
	Record(Event)
}

type NopRecorder struct{}

func (NopRecorder) Record(Event) {}

// LogRecorder writes events to the standard logger.
type LogRecorder struct{}

func (LogRecorder) Record(e Event) {
	switch e.Kind {
	case EventGenerateFailed, EventFallback, EventRunRejected:
		log.Printf("WARN: run %s %s (generator=%s): %s", e.RunID, e.Kind, e.Generator, e.Detail)
	default:
		log.Printf("Info: run %s %s (generator=%s) %s", e.RunID, e.Kind, e.Generator, e.Detail)
	}
}

// CountingRecorder tallies events by kind and forwards them to Next, if set.
type CountingRecorder struct {
	Next Recorder

	mu     sync.Mutex
	counts map[string]int
}

func (c *CountingRecorder) Record(e Event) {
	c.mu.Lock()
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	c.counts[e.Kind]++
	c.mu.Unlock()
	if c.Next != nil {
		c.Next.Record(e)
	}
}

// Snapshot returns a copy of the current counts.
func (c *CountingRecorder) Snapshot() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
