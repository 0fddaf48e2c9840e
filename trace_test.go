package xlayout

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

const (
	testTraceHex = "0123456789abcdef0123456789abcdef"
	testSpanHex  = "fedcba9876543210"
)

func traceContext(t *testing.T) context.Context {
	t.Helper()
	tid, err := trace.TraceIDFromHex(testTraceHex)
	if err != nil {
		t.Fatalf("trace id: %v", err)
	}
	sid, err := trace.SpanIDFromHex(testSpanHex)
	if err != nil {
		t.Fatalf("span id: %v", err)
	}
	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: trace.FlagsSampled,
	})
	return trace.ContextWithSpanContext(context.Background(), sc)
}

func TestTraceRenderer(t *testing.T) {
	t.Parallel()

	ev := (&Event{Message: "m"}).WithContext(traceContext(t))

	l := Compose(TraceRenderer{})
	if got := l.Render(ev); got != testTraceHex {
		t.Fatalf("trace id = %q", got)
	}

	span := Compose(TraceRenderer{Span: true})
	if got := span.Render(ev); got != testSpanHex {
		t.Fatalf("span id = %q", got)
	}

	// no span context on the flow: renders nothing
	if got := l.Render(&Event{}); got != "" {
		t.Fatalf("render without span context = %q", got)
	}
}

func TestTraceRendererRawValue(t *testing.T) {
	t.Parallel()

	ev := (&Event{}).WithContext(traceContext(t))
	l := Compose(TraceRenderer{})
	v, ok := l.TryRawValue(ev)
	if !ok || v != testTraceHex {
		t.Fatalf("raw = (%v, %v)", v, ok)
	}
	if _, ok := l.TryRawValue(&Event{}); ok {
		t.Fatal("raw value without span context reported ok")
	}
}
