package controller

// State represents the controller lifecycle phase.
type State int32

const (
	StateInitializing State = iota
	StateRunning
	StateStopping
	StateTerminated
)

func (state State) String() string {
	switch state {
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// Status is a snapshot used for menu and tooltip rendering.
type Status struct {
	State  State
	Active bool
}

// Running reports whether the UI event loop is active.
func (status Status) Running() bool {
	return status.State == StateRunning
}
