package xlayout

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
)

// diagSink captures internal diagnostics for assertions. Tests using it must
// not run in parallel: the diagnostic logger is package-global.
type diagSink struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *diagSink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *diagSink) lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := strings.TrimSpace(s.buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func (s *diagSink) contains(sub string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return strings.Contains(s.buf.String(), sub)
}

func captureDiag(t *testing.T) *diagSink {
	t.Helper()
	sink := &diagSink{}
	SetDiagnosticLogger(zerolog.New(sink))
	t.Cleanup(func() { SetDiagnosticLogger(zerolog.Nop()) })
	return sink
}
