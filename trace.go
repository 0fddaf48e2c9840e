package xlayout

import (
	"go.opentelemetry.io/otel/trace"
)

// TraceRenderer emits the OpenTelemetry trace ID (or span ID) recorded on
// the event's flow context, correlating log lines with distributed traces.
// An event without a valid span context renders nothing.
type TraceRenderer struct {
	// Span emits the span ID instead of the trace ID.
	Span bool
}

func (r TraceRenderer) Append(buf *Buffer, ev *Event) {
	sc := trace.SpanContextFromContext(ev.Context())
	if !sc.IsValid() {
		return
	}
	if r.Span {
		id := sc.SpanID()
		buf.WriteString(id.String())
		return
	}
	id := sc.TraceID()
	buf.WriteString(id.String())
}

func (r TraceRenderer) RawValue(ev *Event) (any, bool) {
	sc := trace.SpanContextFromContext(ev.Context())
	if !sc.IsValid() {
		return nil, false
	}
	if r.Span {
		return sc.SpanID().String(), true
	}
	return sc.TraceID().String(), true
}
