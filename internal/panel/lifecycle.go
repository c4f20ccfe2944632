package panel

import "sync"

// State is where an activation is in its lifecycle.
type State int

const (
	StateInactive State = iota
	StateActive
	StateDeactivated
)

func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	case StateDeactivated:
		return "deactivated"
	default:
		return "unknown"
	}
}

// Lifecycle guards the render continuations of one activation. A
// continuation run through RunIfActive and a call to Deactivate never
// interleave.
type Lifecycle struct {
	mu    sync.Mutex
	state State
}

// Activate moves an inactive lifecycle to active. It reports false if the
// lifecycle was already activated or deactivated.
func (l *Lifecycle) Activate() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateInactive {
		return false
	}
	l.state = StateActive
	return true
}

// Deactivate is terminal and idempotent.
func (l *Lifecycle) Deactivate() {
	l.mu.Lock()
	l.state = StateDeactivated
	l.mu.Unlock()
}

func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// RunIfActive runs fn while holding the lifecycle, only if it is active.
func (l *Lifecycle) RunIfActive(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.state != StateActive {
		return false
	}
	fn()
	return true
}
