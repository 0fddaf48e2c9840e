package xlayout

import (
	"strings"
	"sync/atomic"
)

// LevelFilter decides which severity ordinals a rule accepts.
//
// Levels returns a bitset of length NumLevels indexed by ordinal; the Off
// index is never true. The returned slice is a shared snapshot and MUST be
// treated as immutable by callers. Static freezes the current state into a
// filter that no longer tracks any live template.
type LevelFilter interface {
	Levels() []bool
	Static() *StaticFilter
}

// StaticFilter is an immutable enable bitset fixed at construction.
type StaticFilter struct {
	enabled []bool
}

// NewStaticFilter enables exactly the given levels. Off is ignored.
func NewStaticFilter(levels ...Level) *StaticFilter {
	enabled := make([]bool, NumLevels)
	for _, l := range levels {
		if l <= MaxEnabled {
			enabled[l] = true
		}
	}
	return &StaticFilter{enabled: enabled}
}

// NewStaticRange enables the inclusive ordinal span [min, max], clamped to
// the enableable range. min above max yields the empty set.
func NewStaticRange(min, max Level) *StaticFilter {
	if max > MaxEnabled {
		max = MaxEnabled
	}
	enabled := make([]bool, NumLevels)
	for l := min; l <= max; l++ {
		enabled[l] = true
	}
	return &StaticFilter{enabled: enabled}
}

func (f *StaticFilter) Levels() []bool { return f.enabled }

func (f *StaticFilter) Static() *StaticFilter { return f }

// Enabled reports whether the ordinal passes this filter.
func (f *StaticFilter) Enabled(l Level) bool {
	return int(l) < len(f.enabled) && f.enabled[l]
}

// DynamicSetFilter computes its enable set from a template whose rendered
// text is a comma-separated list of level names. The last rendered text and
// its computed bitset are cached as one immutable pair behind an atomic
// pointer, so steady-state evaluation is a render plus a string compare and
// a torn key/bitset pair can never be observed. Redundant recomputation
// under a race is harmless: the bitset is a pure function of the text.
type DynamicSetFilter struct {
	layout *Layout
	rule   string
	cache  atomic.Pointer[setCache]
}

type setCache struct {
	key     string
	enabled []bool
}

// NewDynamicSetFilter builds a set filter over layout. rule names the owning
// rule in diagnostic warnings.
func NewDynamicSetFilter(layout *Layout, rule string) *DynamicSetFilter {
	return &DynamicSetFilter{layout: layout, rule: rule}
}

func (f *DynamicSetFilter) Levels() []bool {
	key := f.layout.Render(nullEvent)
	if c := f.cache.Load(); c != nil && c.key == key {
		return c.enabled
	}
	enabled := parseLevelSet(key, f.rule)
	f.cache.Store(&setCache{key: key, enabled: enabled})
	return enabled
}

func (f *DynamicSetFilter) Static() *StaticFilter {
	return &StaticFilter{enabled: f.Levels()}
}

// DynamicRangeFilter computes its enable set from two templates rendering
// the minimum and maximum level names. Caching works as in DynamicSetFilter,
// keyed on both rendered texts.
type DynamicRangeFilter struct {
	min, max *Layout
	rule     string
	cache    atomic.Pointer[rangeCache]
}

type rangeCache struct {
	minKey, maxKey string
	enabled        []bool
}

// NewDynamicRangeFilter builds a range filter over the min and max layouts.
// Either layout may be nil (absent).
func NewDynamicRangeFilter(min, max *Layout, rule string) *DynamicRangeFilter {
	return &DynamicRangeFilter{min: min, max: max, rule: rule}
}

func (f *DynamicRangeFilter) Levels() []bool {
	minKey := f.min.Render(nullEvent)
	maxKey := f.max.Render(nullEvent)
	if c := f.cache.Load(); c != nil && c.minKey == minKey && c.maxKey == maxKey {
		return c.enabled
	}
	enabled := parseLevelRange(minKey, maxKey, f.rule)
	f.cache.Store(&rangeCache{minKey: minKey, maxKey: maxKey, enabled: enabled})
	return enabled
}

func (f *DynamicRangeFilter) Static() *StaticFilter {
	return &StaticFilter{enabled: f.Levels()}
}

// parseLevelSet ORs the named levels into a fresh bitset. Invalid names are
// warned about and skipped, never aborting the remaining names. Empty text
// disables everything.
func parseLevelSet(text, rule string) []bool {
	enabled := make([]bool, NumLevels)
	if strings.TrimSpace(text) == "" {
		return enabled
	}
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		l, err := ParseLevel(tok)
		if err != nil {
			diagWarn().
				Str("rule", rule).
				Str("raw", text).
				Str("token", tok).
				Msg("unknown level name in dynamic filter; token skipped")
			continue
		}
		if l <= MaxEnabled {
			enabled[l] = true
		}
	}
	return enabled
}

// parseLevelRange computes the inclusive span bitset. Both texts empty means
// no filter was configured at all: everything disabled. Otherwise a
// missing or unparseable bound falls back to the widest value on its side,
// and a min above max yields the empty set (no ordinal satisfies it).
func parseLevelRange(minText, maxText, rule string) []bool {
	enabled := make([]bool, NumLevels)
	minText = strings.TrimSpace(minText)
	maxText = strings.TrimSpace(maxText)
	if minText == "" && maxText == "" {
		return enabled
	}
	lo := MinEnabled
	if minText != "" {
		l, err := ParseLevel(minText)
		if err != nil {
			diagWarn().
				Str("rule", rule).
				Str("raw", minText).
				Msg("unparseable minimum level; defaulting to lowest")
		} else {
			lo = l
		}
	}
	hi := MaxEnabled
	if maxText != "" {
		l, err := ParseLevel(maxText)
		switch {
		case err != nil:
			diagWarn().
				Str("rule", rule).
				Str("raw", maxText).
				Msg("unparseable maximum level; defaulting to highest")
		case l > MaxEnabled:
			// Off as a maximum caps at the highest enableable level.
		default:
			hi = l
		}
	}
	for l := lo; l <= hi && l <= MaxEnabled; l++ {
		enabled[l] = true
	}
	return enabled
}
