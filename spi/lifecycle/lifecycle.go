// Package lifecycle declares the start/stop/health contracts a hosting
// process uses to drive providers.
package lifecycle

import "context"

// State is a component's lifecycle state.
type State string

// Lifecycle states. Transitions are linear: created, started, stopped.
const (
	StateCreated State = "created"
	StateStarted State = "started"
	StateStopped State = "stopped"
)

// Component is the minimal contract a hosted provider implements.
type Component interface {
	// Start brings the component up. Start on a started component is an
	// error.
	Start(ctx context.Context) error

	// Stop brings the component down and releases its resources. Stop is
	// idempotent.
	Stop(ctx context.Context) error
}

// HealthChecker reports readiness for components that can degrade.
type HealthChecker interface {
	// Healthy returns nil when the component can serve. A non-nil error
	// carries the reason it cannot.
	Healthy(ctx context.Context) error
}

// StateReporter exposes the current lifecycle state.
type StateReporter interface {
	// State returns the component's current lifecycle state.
	State() State
}
