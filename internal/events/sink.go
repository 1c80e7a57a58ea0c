package events

import (
	"context"
	"sync"

	"carhive-backend/internal/logger"
)

// Sink receives marketplace events. Emission is fire-and-forget: a sink
// that fails must cope on its own (log, drop, retry) and never propagate
// back into the lifecycle engine.
type Sink interface {
	Emit(ctx context.Context, e Event)
}

// FanOut delivers each event to every child sink in order.
type FanOut struct {
	sinks []Sink
}

func NewFanOut(sinks ...Sink) *FanOut {
	return &FanOut{sinks: sinks}
}

func (f *FanOut) Emit(ctx context.Context, e Event) {
	for _, s := range f.sinks {
		s.Emit(ctx, e)
	}
}

// Add appends another sink. Call before the marketplace starts emitting;
// FanOut is not safe for concurrent mutation.
func (f *FanOut) Add(s Sink) {
	f.sinks = append(f.sinks, s)
}

// LogSink writes one structured log line per event.
type LogSink struct{}

func NewLogSink() *LogSink {
	return &LogSink{}
}

func (s *LogSink) Emit(ctx context.Context, e Event) {
	payload, err := e.PayloadToJSON()
	if err != nil {
		logger.ErrorContext(ctx, "Failed to encode event payload", "event_type", e.EventType(), "error", err)
		return
	}
	logger.InfoContext(ctx, "Domain event", "event_type", e.EventType(), "payload", string(payload))
}

// Recorder keeps every emitted event in memory, for tests.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Emit(ctx context.Context, e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Events returns a snapshot of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Types returns the recorded event types in emission order.
func (r *Recorder) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}
