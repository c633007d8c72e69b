package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/masq/internal/core/ports"
)

var _ sdktrace.SpanProcessor = (*Bridge)(nil)

// Bridge is the span processor behind the progress report. Every file span
// that starts or ends becomes a task on the renderer, keyed by span ID.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge returns a Bridge reporting to renderer. A nil renderer drops
// every span.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{renderer: renderer}
}

// spanKey returns the task key of a span, or false for spans that cannot be
// reported.
func (b *Bridge) spanKey(sc trace.SpanContext) (string, bool) {
	if b.renderer == nil || !sc.IsValid() {
		return "", false
	}
	return sc.SpanID().String(), true
}

// OnStart implements sdktrace.SpanProcessor.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	key, ok := b.spanKey(s.SpanContext())
	if !ok {
		return
	}

	parentKey := ""
	if p := trace.SpanContextFromContext(parent); p.IsValid() {
		parentKey = p.SpanID().String()
	}
	b.renderer.OnTaskStart(key, parentKey, s.Name(), s.StartTime())
}

// OnEnd implements sdktrace.SpanProcessor. The error status description of a
// failed file becomes the task error.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	key, ok := b.spanKey(s.SpanContext())
	if !ok {
		return
	}

	var failure error
	if status := s.Status(); status.Code == codes.Error {
		failure = errors.New(status.Description)
		if status.Description == "" {
			failure = errors.New("failed")
		}
	}
	b.renderer.OnTaskComplete(key, s.EndTime(), failure)
}

// ForceFlush implements sdktrace.SpanProcessor. Spans are reported as they
// happen, so there is nothing to flush.
func (b *Bridge) ForceFlush(context.Context) error { return nil }

// Shutdown implements sdktrace.SpanProcessor.
func (b *Bridge) Shutdown(context.Context) error { return nil }
