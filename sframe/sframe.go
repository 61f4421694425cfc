package sframe

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/stacks/linkedliststack"
	"github.com/npillmayer/mlang"
)

// Scope labels
const (
	GlobalScope  = "global"
	ProgramScope = "program"
	LoopScope    = "loop"
	ThenScope    = "then"
	ElseScope    = "else"
)

// ScopeFrame is a single scope: a label and a symbol table of variable
// types. Symbols are kept in order of their first binding.
type ScopeFrame struct {
	Label    string
	Parent   *ScopeFrame
	bindings *linkedhashmap.Map
}

// MakeScopeFrame creates an empty scope frame with a label.
func MakeScopeFrame(label string) *ScopeFrame {
	return &ScopeFrame{
		Label:    label,
		bindings: linkedhashmap.New(),
	}
}

// Bind binds a type to a name in this frame. A previous binding of the
// name in this frame is overwritten.
func (sf *ScopeFrame) Bind(name string, t mlang.Type) {
	tracer().Debugf("[%s] %s : %s", sf.Label, name, t)
	sf.bindings.Put(name, t)
}

// Resolve looks up a name in this frame only.
func (sf *ScopeFrame) Resolve(name string) (mlang.Type, bool) {
	if t, found := sf.bindings.Get(name); found {
		return t.(mlang.Type), true
	}
	return mlang.None, false
}

// Names returns the names bound in this frame, in order of first binding.
func (sf *ScopeFrame) Names() []string {
	keys := sf.bindings.Keys()
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.(string)
	}
	return names
}

// Size returns the number of names bound in this frame.
func (sf *ScopeFrame) Size() int {
	return sf.bindings.Size()
}

// ---------------------------------------------------------------------------

// ScopeFrameTree is treated as a stack during static analysis: scopes are
// pushed when the checker enters a construct and popped when it leaves it.
// The bottom-most frame holds global symbols and is never popped.
//
// A ScopeFrameTree is not safe for concurrent use.
type ScopeFrameTree struct {
	frames *linkedliststack.Stack
	base   *ScopeFrame
}

// NewScopeFrameTree creates a stack of scopes, containing a global scope.
func NewScopeFrameTree() *ScopeFrameTree {
	base := MakeScopeFrame(GlobalScope)
	frames := linkedliststack.New()
	frames.Push(base)
	return &ScopeFrameTree{frames: frames, base: base}
}

// Current gets the current scope of a stack (TOS).
func (scst *ScopeFrameTree) Current() *ScopeFrame {
	tos, ok := scst.frames.Peek()
	if !ok {
		panic("attempt to access scope from empty stack")
	}
	return tos.(*ScopeFrame)
}

// Globals gets the outermost scope, containing global symbols.
func (scst *ScopeFrameTree) Globals() *ScopeFrame {
	return scst.base
}

// Depth returns the number of frames on the stack, including the global one.
func (scst *ScopeFrameTree) Depth() int {
	return scst.frames.Size()
}

// PushNewFrame pushes a new, empty scope with a label onto the stack of scopes.
func (scst *ScopeFrameTree) PushNewFrame(label string) *ScopeFrame {
	sf := MakeScopeFrame(label)
	sf.Parent = scst.Current()
	scst.frames.Push(sf)
	tracer().P("scope", label).Debugf("pushing new scope")
	return sf
}

// PopFrame pops the top-most (recent) scope.
func (scst *ScopeFrameTree) PopFrame() *ScopeFrame {
	if scst.frames.Size() <= 1 {
		panic("attempt to pop global scope")
	}
	tos, _ := scst.frames.Pop()
	sf := tos.(*ScopeFrame)
	tracer().Debugf("popping scope [%s]", sf.Label)
	return sf
}

// Enter pushes a new scope and returns a function which pops it again.
// The usual pattern is
//
//     defer env.Enter(sframe.LoopScope)()
//
func (scst *ScopeFrameTree) Enter(label string) func() {
	sf := scst.PushNewFrame(label)
	return func() {
		if popped := scst.PopFrame(); popped != sf {
			panic("unbalanced scope stack")
		}
	}
}

// Bind binds a type to a name in the current scope.
func (scst *ScopeFrameTree) Bind(name string, t mlang.Type) {
	scst.Current().Bind(name, t)
}

// Lookup finds the type bound to a name, searching from the innermost scope
// outwards.
func (scst *ScopeFrameTree) Lookup(name string) (mlang.Type, bool) {
	var t mlang.Type
	found := false
	scst.Each(func(sf *ScopeFrame) bool {
		t, found = sf.Resolve(name)
		return !found
	})
	return t, found
}

// HasLabel is a predicate: does any scope on the stack carry a label?
// The whole stack is searched, not just the current scope.
func (scst *ScopeFrameTree) HasLabel(label string) bool {
	found := false
	scst.Each(func(sf *ScopeFrame) bool {
		found = sf.Label == label
		return !found
	})
	return found
}

// Each calls f for every scope, from the innermost to the outermost one,
// until f returns false.
func (scst *ScopeFrameTree) Each(f func(*ScopeFrame) bool) {
	it := scst.frames.Iterator()
	for it.Next() {
		if !f(it.Value().(*ScopeFrame)) {
			return
		}
	}
}
