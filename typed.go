package xlayout

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNotFixed is returned when a fixed-only operation is invoked on a typed
// layout backed by a dynamic template. That is a composition error the
// caller must fix, not a value problem to be papered over.
var ErrNotFixed = errors.New("xlayout: typed layout is not fixed")

// Converter supplies the per-type hooks a typed layout needs: a literal
// grammar, a raw-value conversion, and canonical formatting. Implement once
// per value type; the caching/fallback skeleton in Typed is shared.
type Converter[T any] interface {
	Parse(text string) (T, bool)
	Convert(raw any) (T, bool)
	Format(v T) string
}

// Typed wraps a layout and extracts values of type T from it.
//
// Construction decides the shape once: a nil inner layout is "absent" (fixed
// zero value); a fixed inner layout has its literal parsed eagerly, with a
// parse failure degrading to the zero value plus one diagnostic warning; a
// dynamic inner layout is re-evaluated per event through a three-tier
// fallback (cached fixed value, raw typed value, rendered text).
type Typed[T any] struct {
	inner  *Layout
	conv   Converter[T]
	name   string
	fixed  bool
	cached T
}

// NewTyped builds a typed layout. name identifies the layout in diagnostic
// warnings.
func NewTyped[T any](inner *Layout, conv Converter[T], name string) *Typed[T] {
	t := &Typed[T]{inner: inner, conv: conv, name: name}
	if !inner.IsFixed() {
		return t
	}
	t.fixed = true
	if inner == nil {
		return t
	}
	text := inner.Render(nullEvent)
	if text == "" {
		return t
	}
	v, ok := conv.Parse(text)
	if !ok {
		diagWarn().
			Str("layout", name).
			Str("raw", text).
			Msg("fixed layout literal does not parse; using zero value")
		return t
	}
	t.cached = v
	return t
}

// IsFixed reports whether a cached value is present, meaning Value costs
// nothing per event.
func (t *Typed[T]) IsFixed() bool { return t.fixed }

// FixedValue returns the cached value, or ErrNotFixed when the layout is
// dynamic.
func (t *Typed[T]) FixedValue() (T, error) {
	if !t.fixed {
		var zero T
		return zero, ErrNotFixed
	}
	return t.cached, nil
}

// Value extracts the typed value for the event. Fixed layouts return the
// cached value. Dynamic layouts try the raw-value path first (direct type
// match, then conversion) and only then render to text and parse. Malformed
// input degrades to the zero value with a warning; Value never fails.
func (t *Typed[T]) Value(ev *Event) T {
	if t.fixed {
		return t.cached
	}
	if raw, ok := t.inner.TryRawValue(ev); ok {
		if raw == nil {
			var zero T
			return zero
		}
		if v, ok := raw.(T); ok {
			return v
		}
		if v, ok := t.conv.Convert(raw); ok {
			return v
		}
	}
	text := t.inner.Render(ev)
	if text == "" {
		var zero T
		return zero
	}
	v, ok := t.conv.Parse(text)
	if !ok {
		diagWarn().
			Str("layout", t.name).
			Str("raw", text).
			Msg("rendered text does not parse; using zero value")
		var zero T
		return zero
	}
	return v
}

// Render returns the layout's text form: the canonical formatting of the
// cached value when fixed, the inner layout's output otherwise.
func (t *Typed[T]) Render(ev *Event) string {
	if t.fixed {
		if t.inner == nil {
			return ""
		}
		return t.conv.Format(t.cached)
	}
	return t.inner.Render(ev)
}

// Shipped converters.

type Int64Converter struct{}

func (Int64Converter) Parse(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	return v, err == nil
}

func (c Int64Converter) Convert(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case uint64:
		if v <= 1<<63-1 {
			return int64(v), true
		}
	case float64:
		if v == float64(int64(v)) {
			return int64(v), true
		}
	case string:
		return c.Parse(v)
	}
	return 0, false
}

func (Int64Converter) Format(v int64) string { return strconv.FormatInt(v, 10) }

type Float64Converter struct{}

func (Float64Converter) Parse(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v, err == nil
}

func (c Float64Converter) Convert(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case string:
		return c.Parse(v)
	}
	return 0, false
}

func (Float64Converter) Format(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

type BoolConverter struct{}

func (BoolConverter) Parse(s string) (bool, bool) {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	return v, err == nil
}

func (c BoolConverter) Convert(raw any) (bool, bool) {
	switch v := raw.(type) {
	case bool:
		return v, true
	case string:
		return c.Parse(v)
	}
	return false, false
}

func (BoolConverter) Format(v bool) string { return strconv.FormatBool(v) }

type DurationConverter struct{}

func (DurationConverter) Parse(s string) (time.Duration, bool) {
	v, err := time.ParseDuration(strings.TrimSpace(s))
	return v, err == nil
}

func (c DurationConverter) Convert(raw any) (time.Duration, bool) {
	switch v := raw.(type) {
	case time.Duration:
		return v, true
	case int64:
		return time.Duration(v), true
	case string:
		return c.Parse(v)
	}
	return 0, false
}

func (DurationConverter) Format(v time.Duration) string { return v.String() }

// Convenience constructors for the shipped converters.

func NewTypedInt64(inner *Layout, name string) *Typed[int64] {
	return NewTyped[int64](inner, Int64Converter{}, name)
}

func NewTypedFloat64(inner *Layout, name string) *Typed[float64] {
	return NewTyped[float64](inner, Float64Converter{}, name)
}

func NewTypedBool(inner *Layout, name string) *Typed[bool] {
	return NewTyped[bool](inner, BoolConverter{}, name)
}

func NewTypedDuration(inner *Layout, name string) *Typed[time.Duration] {
	return NewTyped[time.Duration](inner, DurationConverter{}, name)
}
