package session

import (
	"sort"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/candlelit/levels"
)

// Mode is the session's play mode.
type Mode string

const (
	ModeStandard Mode = "standard"
	ModeHardcore Mode = "hardcore"
)

// State is the process-wide session state: which room is active, where the
// player last entered it, and running totals. It is created once per session
// and mutated in place by the transition and respawn managers; a single
// writer owns it per tick.
type State struct {
	CurrentRoom    levels.RoomID
	LastEntryPoint cp.Vector
	Elapsed        time.Duration
	Deaths         int
	Mode           Mode

	secrets map[string]struct{}
}

func NewState(mode Mode) *State {
	if mode == "" {
		mode = ModeStandard
	}
	return &State{
		Mode:    mode,
		secrets: make(map[string]struct{}),
	}
}

// Tick advances the completion clock by one frame's duration.
func (s *State) Tick(dt time.Duration) {
	if s == nil {
		return
	}
	s.Elapsed += dt
}

// CollectSecret records a found secret. Collecting the same secret twice is a
// no-op.
func (s *State) CollectSecret(id string) {
	if s == nil || id == "" {
		return
	}
	if s.secrets == nil {
		s.secrets = make(map[string]struct{})
	}
	s.secrets[id] = struct{}{}
}

// HasSecret reports whether a secret has been found.
func (s *State) HasSecret(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.secrets[id]
	return ok
}

// Secrets returns the found secrets in sorted order.
func (s *State) Secrets() []string {
	if s == nil || len(s.secrets) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.secrets))
	for id := range s.secrets {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
