package display

import (
	"context"
	"sync"

	"github.com/aretw0/latticenb/pkg/domain"
	"github.com/aretw0/latticenb/pkg/jscall"
	"github.com/aretw0/latticenb/pkg/observability"
)

// Payload is a script to be executed by the frontend.
type Payload struct {
	Renderer domain.RendererName `json:"renderer"`
	Script   jscall.Script       `json:"script"`
	MIMEType string              `json:"mime_type"`
}

// NewPayload wraps a script as application/javascript.
func NewPayload(renderer domain.RendererName, s jscall.Script) Payload {
	return Payload{Renderer: renderer, Script: s, MIMEType: domain.MIMEJavaScript}
}

// Sink is the host mechanism that executes or renders a payload.
type Sink interface {
	Display(ctx context.Context, p Payload) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, p Payload) error

// Display calls f.
func (f SinkFunc) Display(ctx context.Context, p Payload) error {
	return f(ctx, p)
}

// Memory records every payload it receives.
type Memory struct {
	mu       sync.Mutex
	payloads []Payload
}

// NewMemory creates an empty recording sink.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Display(ctx context.Context, p Payload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = append(m.payloads, p)
	return nil
}

// Payloads returns a copy of the recorded payloads.
func (m *Memory) Payloads() []Payload {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Payload, len(m.payloads))
	copy(out, m.payloads)
	return out
}

// Last returns the most recent payload.
func (m *Memory) Last() (Payload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.payloads) == 0 {
		return Payload{}, false
	}
	return m.payloads[len(m.payloads)-1], true
}

// Reset drops all recorded payloads.
func (m *Memory) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payloads = nil
}

// Instrument wraps sink so every payload and display failure is counted.
func Instrument(sink Sink, m *observability.Metrics) Sink {
	if m == nil {
		return sink
	}
	return SinkFunc(func(ctx context.Context, p Payload) error {
		if err := sink.Display(ctx, p); err != nil {
			m.ObserveFailure(string(p.Renderer), observability.StageDisplay)
			return err
		}
		m.ObservePayload(string(p.Renderer), len(p.Script))
		return nil
	})
}

// Discard accepts and drops every payload.
var Discard Sink = SinkFunc(func(ctx context.Context, p Payload) error {
	return ctx.Err()
})

// Tee displays each payload on every sink in order, stopping at the first error.
func Tee(sinks ...Sink) Sink {
	return SinkFunc(func(ctx context.Context, p Payload) error {
		for _, s := range sinks {
			if err := s.Display(ctx, p); err != nil {
				return err
			}
		}
		return nil
	})
}
