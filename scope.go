package xlayout

import (
	"context"
	"sync/atomic"
)

// ScopeContext is the diagnostic context stack of one logical flow: a LIFO
// sequence of values application code pushes around a unit of work and
// layouts read back during rendering.
//
// The current stack is an immutable linked snapshot behind a single atomic
// pointer. Push, Pop and Clear replace the pointer wholesale and never
// mutate shared nodes, so flows forked from a common ancestor can operate
// concurrently without locks and never observe each other's changes.
type ScopeContext struct {
	cur atomic.Pointer[scopeNode]
}

// scopeNode is one immutable snapshot: the top value plus the rest of the
// stack. Nodes are shared structurally across snapshots and across forked
// flows; they are never written after creation.
type scopeNode struct {
	value any
	next  *scopeNode
	depth int
}

// NewScopeContext returns an empty per-flow stack.
func NewScopeContext() *ScopeContext { return &ScopeContext{} }

func (s *ScopeContext) top() *scopeNode {
	if s == nil {
		return nil
	}
	return s.cur.Load()
}

// Push installs value on top of the flow's stack and returns a token whose
// Release restores the snapshot that was current before this push,
// regardless of intervening pushes and pops, and does so exactly once no
// matter how many times Release is called.
func (s *ScopeContext) Push(value any) *ScopeToken {
	prev := s.cur.Load()
	depth := 1
	if prev != nil {
		depth = prev.depth + 1
	}
	s.cur.Store(&scopeNode{value: value, next: prev, depth: depth})
	return &ScopeToken{s: s, prev: prev}
}

// Pop removes and returns the top value. ok is false on an empty stack.
// Prefer the token returned by Push; Pop exists for callers that cannot
// carry the token across their own boundaries.
func (s *ScopeContext) Pop() (value any, ok bool) {
	top := s.cur.Load()
	if top == nil {
		return nil, false
	}
	s.cur.Store(top.next)
	return top.value, true
}

// Peek returns the top value without removing it.
func (s *ScopeContext) Peek() (value any, ok bool) {
	top := s.top()
	if top == nil {
		return nil, false
	}
	return top.value, true
}

// All returns the stack top-to-bottom. The result is a fresh slice; the
// snapshot itself is not touched.
func (s *ScopeContext) All() []any {
	top := s.top()
	if top == nil {
		return nil
	}
	out := make([]any, 0, top.depth)
	for n := top; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Len reports the stack depth.
func (s *ScopeContext) Len() int {
	top := s.top()
	if top == nil {
		return 0
	}
	return top.depth
}

// Clear resets the flow's stack to empty.
func (s *ScopeContext) Clear() {
	if s != nil {
		s.cur.Store(nil)
	}
}

// Fork hands a child flow its own stack seeded with the current snapshot.
// Parent and child share nodes but hold independent pointers: pushes and
// pops on one are invisible to the other.
func (s *ScopeContext) Fork() *ScopeContext {
	child := &ScopeContext{}
	child.cur.Store(s.top())
	return child
}

// ScopeToken restores a prior snapshot on Release. Safe for misuse: extra
// Release calls are no-ops.
type ScopeToken struct {
	s        *ScopeContext
	prev     *scopeNode
	released atomic.Bool
}

// Release restores the snapshot captured at Push time. Idempotent.
func (t *ScopeToken) Release() {
	if t == nil || t.released.Swap(true) {
		return
	}
	t.s.cur.Store(t.prev)
}

type scopeCtxKey struct{}

// ContextWithScopes attaches a flow's scope stack to ctx.
func ContextWithScopes(ctx context.Context, s *ScopeContext) context.Context {
	if ctx == nil || s == nil {
		return ctx
	}
	return context.WithValue(ctx, scopeCtxKey{}, s)
}

// ScopesFromContext returns the scope stack carried by ctx, or nil when the
// flow has none. Nil-safe.
func ScopesFromContext(ctx context.Context) *ScopeContext {
	if ctx == nil {
		return nil
	}
	s, _ := ctx.Value(scopeCtxKey{}).(*ScopeContext)
	return s
}

// PushContext pushes value on the flow carried by ctx, creating the stack on
// first use. The returned context carries the stack; release the token to
// restore the prior snapshot.
func PushContext(ctx context.Context, value any) (context.Context, *ScopeToken) {
	if ctx == nil {
		ctx = context.Background()
	}
	s := ScopesFromContext(ctx)
	if s == nil {
		s = NewScopeContext()
		ctx = ContextWithScopes(ctx, s)
	}
	return ctx, s.Push(value)
}

// ForkContext returns a context for a child flow (a spawned goroutine or a
// continuation) whose scope stack starts from the parent's current snapshot
// but diverges independently afterwards.
func ForkContext(ctx context.Context) context.Context {
	s := ScopesFromContext(ctx)
	if s == nil {
		return ctx
	}
	return ContextWithScopes(ctx, s.Fork())
}
