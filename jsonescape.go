package xlayout

import (
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789abcdef"

// JSONEscapeTransformer escapes the suffix so it can be spliced into a JSON
// string. Control characters, quotes and backslashes are always escaped;
// escaping is defined for every byte value, so the transform never fails.
type JSONEscapeTransformer struct {
	// EscapeUnicode escapes all non-ASCII code points to \uXXXX
	// (surrogate pairs above the BMP). Enabled by NewJSONEscape.
	EscapeUnicode bool

	// EscapeForwardSlash escapes '/' as \/. Disabled by NewJSONEscape;
	// enable it when the output is embedded in contexts that inherit the
	// stricter rule.
	EscapeForwardSlash bool
}

// NewJSONEscape returns the default policy: escape enabled, non-ASCII
// escaped, forward slash left alone.
func NewJSONEscape() JSONEscapeTransformer {
	return JSONEscapeTransformer{EscapeUnicode: true}
}

func (t JSONEscapeTransformer) Transform(buf *Buffer, start int) {
	tail := buf.Tail(start)
	if t.clean(tail) {
		return
	}
	scratch := getBuf()
	scratch.WriteBytes(tail)
	buf.Reset(start)
	t.escape(buf, scratch.Bytes())
	putBuf(scratch)
}

// clean reports whether the tail needs no rewriting, the overwhelmingly
// common case on the hot path.
func (t JSONEscapeTransformer) clean(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c == '"' || c == '\\' {
			return false
		}
		if c == '/' && t.EscapeForwardSlash {
			return false
		}
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func (t JSONEscapeTransformer) escape(buf *Buffer, s []byte) {
	// start..i is the pending run of verbatim bytes; it is flushed only
	// when a substitution is emitted, so passthrough runes extend the run.
	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c < utf8.RuneSelf {
			if c >= 0x20 && c != '\\' && c != '"' &&
				(c != '/' || !t.EscapeForwardSlash) {
				i++
				continue
			}
			if start < i {
				buf.WriteBytes(s[start:i])
			}
			switch c {
			case '\\', '"', '/':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			case '\n':
				buf.WriteString(`\n`)
			case '\r':
				buf.WriteString(`\r`)
			case '\t':
				buf.WriteString(`\t`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			default:
				buf.WriteString(`\u00`)
				buf.WriteByte(hexDigits[c>>4])
				buf.WriteByte(hexDigits[c&0xF])
			}
			i++
			start = i
			continue
		}
		r, size := utf8.DecodeRune(s[i:])
		if r == utf8.RuneError && size == 1 {
			if start < i {
				buf.WriteBytes(s[start:i])
			}
			buf.WriteString("\ufffd")
			i++
			start = i
			continue
		}
		if !t.EscapeUnicode && r != '\u2028' && r != '\u2029' {
			i += size
			continue
		}
		if start < i {
			buf.WriteBytes(s[start:i])
		}
		if r <= 0xFFFF {
			writeHexRune(buf, uint16(r))
		} else {
			r1, r2 := utf16.EncodeRune(r)
			writeHexRune(buf, uint16(r1))
			writeHexRune(buf, uint16(r2))
		}
		i += size
		start = i
	}
	if start < len(s) {
		buf.WriteBytes(s[start:])
	}
}

func writeHexRune(buf *Buffer, v uint16) {
	buf.WriteString(`\u`)
	buf.WriteByte(hexDigits[v>>12&0xF])
	buf.WriteByte(hexDigits[v>>8&0xF])
	buf.WriteByte(hexDigits[v&0xF])
}
