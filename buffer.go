package xlayout

import (
	"strconv"
	"sync"
	"time"
)

// Buffer is a growing byte buffer shared across an entire composite layout:
// renderers append, wrappers rewrite the suffix they produced in place.
type Buffer struct{ b []byte }

func (buf *Buffer) WriteString(s string) { buf.b = append(buf.b, s...) }
func (buf *Buffer) WriteByte(c byte)     { buf.b = append(buf.b, c) }
func (buf *Buffer) WriteBytes(p []byte)  { buf.b = append(buf.b, p...) }

// Len reports the current length; renderers capture it as the start offset
// before delegating to an inner layout.
func (buf *Buffer) Len() int { return len(buf.b) }

// Bytes returns the underlying bytes. Valid until the next write.
func (buf *Buffer) Bytes() []byte { return buf.b }

func (buf *Buffer) String() string { return string(buf.b) }

// Tail returns the bytes appended since start. Valid until the next write.
func (buf *Buffer) Tail(start int) []byte { return buf.b[start:] }

// Reset truncates the buffer back to start, discarding the suffix.
func (buf *Buffer) Reset(start int) { buf.b = buf.b[:start] }

func (buf *Buffer) AppendInt(v int64)   { buf.b = strconv.AppendInt(buf.b, v, 10) }
func (buf *Buffer) AppendUint(v uint64) { buf.b = strconv.AppendUint(buf.b, v, 10) }

func (buf *Buffer) AppendFloat(v float64) {
	buf.b = strconv.AppendFloat(buf.b, v, 'g', -1, 64)
}

func (buf *Buffer) AppendBool(v bool) { buf.b = strconv.AppendBool(buf.b, v) }

func (buf *Buffer) AppendTime(t time.Time, layout string) {
	buf.b = t.AppendFormat(buf.b, layout)
}

// Grow ensures capacity for n more bytes. Renderers producing large output
// can call it once up front to avoid repeated reallocation.
func (buf *Buffer) Grow(n int) {
	free := cap(buf.b) - len(buf.b)
	if n <= free {
		return
	}
	need := len(buf.b) + n
	newCap := cap(buf.b) * 2
	if newCap < need {
		newCap = need
	}
	nb := make([]byte, len(buf.b), newCap)
	copy(nb, buf.b)
	buf.b = nb
}

var bufPool = sync.Pool{New: func() any { return &Buffer{b: make([]byte, 0, 2048)} }}

func getBuf() *Buffer {
	buf := bufPool.Get().(*Buffer)
	buf.b = buf.b[:0]
	return buf
}

func putBuf(buf *Buffer) {
	// avoid retaining very large backing arrays
	if cap(buf.b) <= 64*1024 {
		bufPool.Put(buf)
	}
}
