package xlayout

import (
	"testing"
)

// recordingTransformer counts invocations to verify empty-output skipping.
type recordingTransformer struct{ calls int }

func (r *recordingTransformer) Transform(buf *Buffer, start int) { r.calls++ }

func escapeString(t *testing.T, esc JSONEscapeTransformer, s string) string {
	t.Helper()
	l := Compose(Wrap(LiteralRenderer(s), esc))
	return l.Render(nil)
}

func TestJSONEscape(t *testing.T) {
	t.Parallel()

	esc := NewJSONEscape()
	cases := []struct{ in, want string }{
		{"plain", "plain"},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"line\nbreak", `line\nbreak`},
		{"tab\there", `tab\there`},
		{"\r\b\f", `\r\b\f`},
		{"\x01", `\u0001`},
		{"café", `caf\u00e9`},
		{" ", `\u2028`},
		{"G-clef \U0001D11E", `G-clef \ud834\udd1e`},
		{"a/b", "a/b"},
		{"\xff", `�`},
		{"", ""},
	}
	for _, tc := range cases {
		if got := escapeString(t, esc, tc.in); got != tc.want {
			t.Fatalf("escape(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestJSONEscapeToggles(t *testing.T) {
	t.Parallel()

	keepUnicode := JSONEscapeTransformer{}
	if got := escapeString(t, keepUnicode, "café"); got != "café" {
		t.Fatalf("non-ASCII escaped despite toggle: %q", got)
	}
	if got := escapeString(t, keepUnicode, `café and "quotes"`); got != `café and \"quotes\"` {
		t.Fatalf("passthrough rune mangled surrounding text: %q", got)
	}
	if got := escapeString(t, keepUnicode, "𝄞𝄞 end"); got != "𝄞𝄞 end" {
		t.Fatalf("astral passthrough mangled: %q", got)
	}
	// line separators are always escaped: they break JSONP/eval contexts
	if got := escapeString(t, keepUnicode, "a b"); got != `a\u2029b` {
		t.Fatalf("U+2029 survived: %q", got)
	}

	slash := JSONEscapeTransformer{EscapeUnicode: true, EscapeForwardSlash: true}
	if got := escapeString(t, slash, "a/b"); got != `a\/b` {
		t.Fatalf("forward slash not escaped: %q", got)
	}
}

func TestWrapperPreservesPrefix(t *testing.T) {
	t.Parallel()

	buf := getBuf()
	defer putBuf(buf)
	buf.WriteString(`{"msg":"`)
	prefix := buf.String()

	w := Wrapper{Inner: LiteralRenderer(`say "hi"`), Transformer: NewJSONEscape()}
	w.Append(buf, nil)

	out := buf.String()
	if out[:len(prefix)] != prefix {
		t.Fatalf("prefix mutated: %q", out)
	}
	if want := prefix + `say \"hi\"`; out != want {
		t.Fatalf("buffer = %q, want %q", out, want)
	}
}

func TestWrapperSkipsEmptyInner(t *testing.T) {
	t.Parallel()

	rec := &recordingTransformer{}
	w := Wrapper{Inner: PropertyRenderer{Key: "absent"}, Transformer: rec}
	buf := getBuf()
	defer putBuf(buf)
	buf.WriteString("prefix")
	w.Append(buf, &Event{})
	if rec.calls != 0 {
		t.Fatalf("transformer ran on empty inner output (%d calls)", rec.calls)
	}
	if buf.String() != "prefix" {
		t.Fatalf("buffer = %q", buf.String())
	}
}

func TestWrapperIdempotentAcrossRenders(t *testing.T) {
	t.Parallel()

	l := Compose(Wrap(MessageRenderer{}, NewJSONEscape()))
	ev := &Event{Message: "a\"b\nc"}
	first := l.Render(ev)
	second := l.Render(ev)
	if first != second {
		t.Fatalf("renders differ: %q vs %q", first, second)
	}
	if first != `a\"b\nc` {
		t.Fatalf("render = %q", first)
	}
}

func TestCaseTransformers(t *testing.T) {
	t.Parallel()

	up := Compose(Wrap(MessageRenderer{}, UppercaseTransformer{}))
	if got := up.Render(&Event{Message: "café 42"}); got != "CAFÉ 42" {
		t.Fatalf("upper = %q", got)
	}
	down := Compose(Wrap(MessageRenderer{}, LowercaseTransformer{}))
	if got := down.Render(&Event{Message: "LOUD"}); got != "loud" {
		t.Fatalf("lower = %q", got)
	}
	// ASCII fast path mutates in place behind a shared prefix
	buf := getBuf()
	defer putBuf(buf)
	buf.WriteString("keep:")
	Wrapper{Inner: LiteralRenderer("abc"), Transformer: UppercaseTransformer{}}.Append(buf, nil)
	if buf.String() != "keep:ABC" {
		t.Fatalf("buffer = %q", buf.String())
	}
}

func TestTruncateTransformer(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in    string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 2, "he"},
		{"héllo", 2, "hé"}, // rune boundary, not byte boundary
		{"hello", 0, ""},
	}
	for _, tc := range cases {
		l := Compose(Wrap(LiteralRenderer(tc.in), TruncateTransformer{Limit: tc.limit}))
		if got := l.Render(nil); got != tc.want {
			t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
		}
	}
}

func TestWrapperChaining(t *testing.T) {
	t.Parallel()

	l := Compose(Wrap(MessageRenderer{}, UppercaseTransformer{}, TruncateTransformer{Limit: 3}))
	if got := l.Render(&Event{Message: "hello"}); got != "HEL" {
		t.Fatalf("chained = %q", got)
	}
}
