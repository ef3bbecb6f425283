package uniform

import "sync"

// ScopeID is a named slot holding the current value of one uniform. Writers read the
// value at write time; a slot that was never set has no value.
type ScopeID struct {
	name  string
	value any
	set   bool
}

// Name returns the slot name.
func (id *ScopeID) Name() string {
	return id.name
}

// SetValue stores the current value. A nil value clears the slot.
func (id *ScopeID) SetValue(v any) {
	id.value = v
	id.set = v != nil
}

// Value returns the current value and whether one is set.
func (id *ScopeID) Value() (any, bool) {
	return id.value, id.set
}

// Scope is a namespace of ScopeIDs. Resolving the same name twice returns the same
// ScopeID, so formats and value producers share slots without knowing of each other.
type Scope struct {
	name string

	mu  sync.Mutex
	ids map[string]*ScopeID
}

// NewScope creates an empty scope.
//
// Parameters:
//   - name: a debug name for the scope
//
// Returns:
//   - *Scope: the scope
func NewScope(name string) *Scope {
	return &Scope{name: name, ids: make(map[string]*ScopeID)}
}

// Name returns the debug name of the scope.
func (s *Scope) Name() string {
	return s.name
}

// Resolve returns the slot for name, creating it on first use.
//
// Parameters:
//   - name: the uniform name
//
// Returns:
//   - *ScopeID: the slot
func (s *Scope) Resolve(name string) *ScopeID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.ids[name]
	if !ok {
		id = &ScopeID{name: name}
		s.ids[name] = id
	}
	return id
}

// SetValue sets the current value of the slot for name.
//
// Parameters:
//   - name: the uniform name
//   - v: the value
func (s *Scope) SetValue(name string, v any) {
	s.Resolve(name).SetValue(v)
}
