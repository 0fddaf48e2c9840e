package xlayout

import (
	"sync"
	"sync/atomic"
)

// Destination receives a rendered event. Implementations own buffering,
// retries and I/O; this package only hands them bytes. The rendered slice is
// only valid for the duration of the call; copy it to retain it.
type Destination interface {
	Write(ev *Event, rendered []byte) error
}

// DestinationFunc adapter.
type DestinationFunc func(ev *Event, rendered []byte) error

func (f DestinationFunc) Write(ev *Event, rendered []byte) error { return f(ev, rendered) }

// Target pairs a layout with the destination that receives its output.
type Target struct {
	Layout *Layout
	Dest   Destination
}

// Rule binds a logger-name pattern to a level filter and a set of targets.
// Pattern supports '*' (any run) and '?' (any single byte). A Final rule
// that matches stops evaluation of later rules.
type Rule struct {
	Name    string
	Pattern string
	Filter  LevelFilter
	Targets []Target
	Final   bool
}

// Matches reports whether the rule applies to the logger name.
func (r *Rule) Matches(logger string) bool {
	return matchPattern(r.Pattern, logger)
}

// Enabled consults the rule's filter for the ordinal. A rule without a
// filter accepts every enableable level.
func (r *Rule) Enabled(l Level) bool {
	if l > MaxEnabled {
		return false
	}
	if r.Filter == nil {
		return true
	}
	enabled := r.Filter.Levels()
	return int(l) < len(enabled) && enabled[l]
}

// matchPattern is an iterative glob matcher with single-star backtracking.
func matchPattern(pattern, name string) bool {
	pi, ni := 0, 0
	star, mark := -1, 0
	for ni < len(name) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == name[ni]):
			pi++
			ni++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			mark = ni
			pi++
		case star >= 0:
			pi = star + 1
			mark++
			ni = mark
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// Router evaluates rules in order for each event and hands rendered output
// to the matching targets' destinations.
//
// The rule list is published as an immutable snapshot: lock-free reads via
// atomic.Value, updates serialized by mu. Stored value is []*Rule and MUST
// be treated as immutable by readers.
type Router struct {
	rules atomic.Value // holds []*Rule
	mu    sync.Mutex
	st    routerStats
}

func NewRouter(rules ...*Rule) *Router {
	rt := &Router{}
	rs := make([]*Rule, len(rules))
	copy(rs, rules)
	rt.rules.Store(rs)
	return rt
}

// Rules returns the current snapshot.
func (rt *Router) Rules() []*Rule {
	rs, _ := rt.rules.Load().([]*Rule)
	return rs
}

// AddRule appends a rule, publishing a fresh snapshot.
func (rt *Router) AddRule(r *Rule) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	cur := rt.Rules()
	next := make([]*Rule, len(cur), len(cur)+1)
	copy(next, cur)
	rt.rules.Store(append(next, r))
}

// Dispatch routes one event: every matching rule whose filter enables the
// event's level renders each target's layout into a shared buffer and hands
// the bytes to the destination. Destination errors are counted and warned
// about, never surfaced to the emitting caller.
func (rt *Router) Dispatch(ev *Event) {
	rt.st.dispatched.Add(1)
	rules := rt.Rules()
	if len(rules) == 0 {
		return
	}
	buf := getBuf()
	defer putBuf(buf)
	for _, r := range rules {
		if !r.Matches(ev.Logger) || !r.Enabled(ev.Level) {
			continue
		}
		for _, tg := range r.Targets {
			if tg.Dest == nil {
				continue
			}
			buf.Reset(0)
			tg.Layout.AppendTo(buf, ev)
			if err := tg.Dest.Write(ev, buf.Bytes()); err != nil {
				rt.st.writeErrors.Add(1)
				diagWarn().
					Str("rule", r.Name).
					Err(err).
					Msg("destination write failed; event dropped for this target")
				continue
			}
			rt.st.written.Add(1)
		}
		if r.Final {
			return
		}
	}
}

// Stats returns a snapshot of internal counters.
func (rt *Router) Stats() StatsSnapshot { return rt.st.snapshot() }

// ResetStats resets internal counters.
func (rt *Router) ResetStats() { rt.st.reset() }
