package xlayout

import (
	"os"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Internal diagnostics. Recoverable failures (bad literals, unknown level
// names, destination write errors) degrade to defaults and surface here as
// structured warnings; they never interrupt rendering or dispatch.

var diagLogger atomic.Pointer[zerolog.Logger]

func init() {
	l := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	diagLogger.Store(&l)
}

// SetDiagnosticLogger replaces the sink for internal warnings. Use
// zerolog.Nop() to silence the package entirely.
func SetDiagnosticLogger(l zerolog.Logger) {
	diagLogger.Store(&l)
}

func diagWarn() *zerolog.Event {
	return diagLogger.Load().Warn()
}
