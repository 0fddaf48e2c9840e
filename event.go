package xlayout

import (
	"context"
	"time"

	"github.com/trickstertwo/xclock"
)

// Event is a single log event as seen by layouts and rules: a severity
// ordinal, a logger name, the message text, named properties, and the
// flow context carrying diagnostic scopes and trace correlation.
type Event struct {
	At      time.Time
	Level   Level
	Logger  string
	Message string
	Fields  []Field

	ctx context.Context
}

// NewEvent builds an event stamped with the single authoritative timestamp
// from xclock.
func NewEvent(level Level, logger, msg string, fields ...Field) *Event {
	return &Event{
		At:      xclock.Now(),
		Level:   level,
		Logger:  logger,
		Message: msg,
		Fields:  fields,
	}
}

// WithContext attaches the flow context and returns the receiver for chaining.
func (e *Event) WithContext(ctx context.Context) *Event {
	e.ctx = ctx
	return e
}

// Context returns the attached flow context, never nil.
func (e *Event) Context() context.Context {
	if e.ctx == nil {
		return context.Background()
	}
	return e.ctx
}

// Field looks up a property by placeholder name. Linear scan: events carry
// few fields and a map would cost more than it saves.
func (e *Event) Field(key string) (Field, bool) {
	for i := range e.Fields {
		if e.Fields[i].K == key {
			return e.Fields[i], true
		}
	}
	return Field{}, false
}

// nullEvent is rendered by dynamic level filters, whose templates reference
// ambient state rather than a concrete event.
var nullEvent = &Event{}
