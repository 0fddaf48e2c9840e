package xlayout

import (
	"fmt"
	"time"
)

// Renderer produces one piece of a layout's output for an event.
// Implementations append to the shared buffer and never fail.
type Renderer interface {
	Append(buf *Buffer, ev *Event)
}

// RawValuer is an optional Renderer capability: produce the value behind a
// placeholder without forcing string conversion. ok = false means the value
// must be obtained by rendering.
type RawValuer interface {
	RawValue(ev *Event) (any, bool)
}

// LiteralRenderer emits its text verbatim. Layouts built solely from
// literals collapse into fixed layouts.
type LiteralRenderer string

func (r LiteralRenderer) Append(buf *Buffer, _ *Event) { buf.WriteString(string(r)) }

// MessageRenderer emits the event's message text.
type MessageRenderer struct{}

func (MessageRenderer) Append(buf *Buffer, ev *Event) { buf.WriteString(ev.Message) }

// LoggerRenderer emits the event's logger name.
type LoggerRenderer struct{}

func (LoggerRenderer) Append(buf *Buffer, ev *Event) { buf.WriteString(ev.Logger) }

// LevelRenderer emits the event's severity name.
type LevelRenderer struct{}

func (LevelRenderer) Append(buf *Buffer, ev *Event) { buf.WriteString(ev.Level.String()) }

func (LevelRenderer) RawValue(ev *Event) (any, bool) { return ev.Level, true }

// TimestampRenderer emits the event timestamp. Format defaults to
// time.RFC3339Nano.
type TimestampRenderer struct {
	Format string
}

func (r TimestampRenderer) Append(buf *Buffer, ev *Event) {
	f := r.Format
	if f == "" {
		f = time.RFC3339Nano
	}
	buf.AppendTime(ev.At, f)
}

func (r TimestampRenderer) RawValue(ev *Event) (any, bool) { return ev.At, true }

// PropertyRenderer emits the event property named Key, or nothing when the
// event does not carry it.
type PropertyRenderer struct {
	Key string
}

func (r PropertyRenderer) Append(buf *Buffer, ev *Event) {
	f, ok := ev.Field(r.Key)
	if !ok {
		return
	}
	appendField(buf, &f)
}

func (r PropertyRenderer) RawValue(ev *Event) (any, bool) {
	f, ok := ev.Field(r.Key)
	if !ok {
		return nil, false
	}
	return f.Value(), true
}

// ScopesRenderer emits the diagnostic context of the event's flow,
// top-to-bottom, joined by Separator (default " "). TopN > 0 limits output
// to the newest N scopes.
type ScopesRenderer struct {
	Separator string
	TopN      int
}

func (r ScopesRenderer) Append(buf *Buffer, ev *Event) {
	sc := ScopesFromContext(ev.Context())
	if sc == nil {
		return
	}
	sep := r.Separator
	if sep == "" {
		sep = " "
	}
	n := 0
	for node := sc.top(); node != nil; node = node.next {
		if r.TopN > 0 && n == r.TopN {
			return
		}
		if n > 0 {
			buf.WriteString(sep)
		}
		appendAny(buf, node.value)
		n++
	}
}

// appendField writes a field's payload without intermediate allocation for
// the common kinds.
func appendField(buf *Buffer, f *Field) {
	switch f.Kind {
	case KindString:
		buf.WriteString(f.Str)
	case KindInt64:
		buf.AppendInt(f.Int64)
	case KindUint64:
		buf.AppendUint(f.Uint64)
	case KindFloat64:
		buf.AppendFloat(f.Float64)
	case KindBool:
		buf.AppendBool(f.Bool)
	case KindDuration:
		buf.WriteString(f.Dur.String())
	case KindTime:
		buf.AppendTime(f.Time, time.RFC3339Nano)
	case KindError:
		if f.Err != nil {
			buf.WriteString(f.Err.Error())
		}
	case KindBytes:
		buf.WriteBytes(f.Bytes)
	case KindAny:
		appendAny(buf, f.Any)
	}
}

func appendAny(buf *Buffer, v any) {
	switch x := v.(type) {
	case nil:
	case string:
		buf.WriteString(x)
	case int:
		buf.AppendInt(int64(x))
	case int64:
		buf.AppendInt(x)
	case uint64:
		buf.AppendUint(x)
	case float64:
		buf.AppendFloat(x)
	case bool:
		buf.AppendBool(x)
	case time.Duration:
		buf.WriteString(x.String())
	case time.Time:
		buf.AppendTime(x, time.RFC3339Nano)
	case error:
		buf.WriteString(x.Error())
	case fmt.Stringer:
		buf.WriteString(x.String())
	default:
		buf.b = fmt.Append(buf.b, v)
	}
}
