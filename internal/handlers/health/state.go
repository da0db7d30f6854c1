package health

import "sync/atomic"

type ServerState int32

const (
	ServerStateStarting ServerState = iota
	ServerStateReady
	ServerStateInGracePeriod
	ServerStateInCleanupPeriod
)

func (s ServerState) String() string {
	switch s {
	case ServerStateReady:
		return "ready"
	case ServerStateInGracePeriod:
		return "grace period"
	case ServerStateInCleanupPeriod:
		return "cleanup period"
	default:
		return "starting"
	}
}

// State is the server lifecycle, written by the server and read by the health check.
type State struct {
	value atomic.Int32
}

func NewState() *State {
	return &State{}
}

func (s *State) Set(state ServerState) {
	s.value.Store(int32(state))
}

func (s *State) Get() ServerState {
	return ServerState(s.value.Load())
}
