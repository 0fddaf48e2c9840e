package xlayout

// Layout is a composed template that renders a log event to text. A layout
// is either fixed (all-literal, rendered once at construction and cached
// forever) or dynamic (re-evaluated per event); the kind never changes after
// construction.
//
// A nil *Layout is the explicit "absent" signal: it renders to the empty
// string and reports a raw value of (nil, true).
type Layout struct {
	parts []Renderer
	fixed string
	isFix bool
}

// NewLiteral builds a fixed layout from a literal template with no
// placeholders.
func NewLiteral(text string) *Layout {
	return &Layout{fixed: text, isFix: true}
}

// Compose builds a layout from renderer parts. A part list consisting solely
// of literals collapses into a fixed layout; anything else stays dynamic.
func Compose(parts ...Renderer) *Layout {
	allLit := true
	for _, p := range parts {
		if _, ok := p.(LiteralRenderer); !ok {
			allLit = false
			break
		}
	}
	if allLit {
		buf := getBuf()
		for _, p := range parts {
			p.Append(buf, nullEvent)
		}
		text := buf.String()
		putBuf(buf)
		return NewLiteral(text)
	}
	ps := make([]Renderer, len(parts))
	copy(ps, parts)
	return &Layout{parts: ps}
}

// IsFixed reports whether the layout's text is a precomputed constant.
func (l *Layout) IsFixed() bool { return l == nil || l.isFix }

// Render returns the fully formatted text for the event. Fixed layouts
// return the cached text with no per-event work.
func (l *Layout) Render(ev *Event) string {
	if l == nil {
		return ""
	}
	if l.isFix {
		return l.fixed
	}
	buf := getBuf()
	l.appendParts(buf, ev)
	s := buf.String()
	putBuf(buf)
	return s
}

// AppendTo renders the layout into buf. Wrappers rely on this to chain
// transforms over a single shared buffer.
func (l *Layout) AppendTo(buf *Buffer, ev *Event) {
	if l == nil {
		return
	}
	if l.isFix {
		buf.WriteString(l.fixed)
		return
	}
	l.appendParts(buf, ev)
}

func (l *Layout) appendParts(buf *Buffer, ev *Event) {
	for _, p := range l.parts {
		p.Append(buf, ev)
	}
}

// Append makes *Layout usable anywhere a Renderer is, so layouts nest.
func (l *Layout) Append(buf *Buffer, ev *Event) { l.AppendTo(buf, ev) }

// TryRawValue attempts to produce the event's value for this layout without
// forcing string conversion. An absent (nil) layout reports (nil, true):
// intentionally empty, distinct from failure. A fixed layout reports its
// cached text. A dynamic layout delegates to its single part when that part
// can produce raw values; everything else reports (nil, false).
func (l *Layout) TryRawValue(ev *Event) (any, bool) {
	if l == nil {
		return nil, true
	}
	if l.isFix {
		return l.fixed, true
	}
	if len(l.parts) == 1 {
		if rv, ok := l.parts[0].(RawValuer); ok {
			return rv.RawValue(ev)
		}
	}
	return nil, false
}
