package xlayout

import (
	"strings"
	"unicode/utf8"
)

// Transformer rewrites the tail of a buffer in place. Transform must only
// touch buf[start:]; everything before start belongs to sibling renderers
// and must come out byte-for-byte unchanged.
type Transformer interface {
	Transform(buf *Buffer, start int)
}

// Wrapper decorates an inner renderer: render the inner output into the
// shared buffer first, then transform the newly appended suffix. An inner
// render that appends nothing skips the transform entirely.
type Wrapper struct {
	Inner       Renderer
	Transformer Transformer
}

func (w Wrapper) Append(buf *Buffer, ev *Event) {
	start := buf.Len()
	w.Inner.Append(buf, ev)
	if buf.Len() == start {
		return
	}
	w.Transformer.Transform(buf, start)
}

// Wrap chains transformers around a renderer, innermost first.
func Wrap(inner Renderer, ts ...Transformer) Renderer {
	r := inner
	for _, t := range ts {
		r = Wrapper{Inner: r, Transformer: t}
	}
	return r
}

// UppercaseTransformer maps the suffix to upper case.
type UppercaseTransformer struct{}

func (UppercaseTransformer) Transform(buf *Buffer, start int) {
	tail := buf.Tail(start)
	if asciiOnly(tail) {
		for i, c := range tail {
			if 'a' <= c && c <= 'z' {
				tail[i] = c - ('a' - 'A')
			}
		}
		return
	}
	s := strings.ToUpper(string(tail))
	buf.Reset(start)
	buf.WriteString(s)
}

// LowercaseTransformer maps the suffix to lower case.
type LowercaseTransformer struct{}

func (LowercaseTransformer) Transform(buf *Buffer, start int) {
	tail := buf.Tail(start)
	if asciiOnly(tail) {
		for i, c := range tail {
			if 'A' <= c && c <= 'Z' {
				tail[i] = c + ('a' - 'A')
			}
		}
		return
	}
	s := strings.ToLower(string(tail))
	buf.Reset(start)
	buf.WriteString(s)
}

func asciiOnly(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// TruncateTransformer cuts the suffix to at most Limit runes, never
// splitting a multi-byte sequence.
type TruncateTransformer struct {
	Limit int
}

func (t TruncateTransformer) Transform(buf *Buffer, start int) {
	if t.Limit <= 0 {
		buf.Reset(start)
		return
	}
	tail := buf.Tail(start)
	n := 0
	for i := 0; i < len(tail); {
		if n == t.Limit {
			buf.Reset(start + i)
			return
		}
		_, size := utf8.DecodeRune(tail[i:])
		i += size
		n++
	}
}
