package xlayout

import (
	"fmt"
	"strings"
)

// Level is a severity ordinal in a fixed, ordered enumeration.
// Ordinals are dense so they can index enable bitsets directly.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
	LevelOff // sentinel: disables logging; never part of an enabled set
)

// NumLevels is the length of every level bitset (Trace..Off inclusive).
const NumLevels = int(LevelOff) + 1

// MinEnabled and MaxEnabled bound the ordinals that can appear in an enabled set.
const (
	MinEnabled = LevelTrace
	MaxEnabled = LevelFatal
)

var levelNames = [NumLevels]string{
	"trace", "debug", "info", "warn", "error", "fatal", "off",
}

func (l Level) String() string {
	if int(l) < NumLevels {
		return levelNames[l]
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// ParseLevel parses a severity name, case-insensitively, with surrounding
// whitespace trimmed. "warning" is accepted as an alias of "warn".
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace, nil
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	case "fatal":
		return LevelFatal, nil
	case "off":
		return LevelOff, nil
	}
	return LevelOff, fmt.Errorf("xlayout: unknown level %q", s)
}
