package component

import "fmt"

// SheetState is the playback state of a sheet, suitable for saving.
// Loop policies hold functions and are not part of it.
type SheetState struct {
	Sequence    string  `yaml:"sequence"`
	Index       int     `yaml:"index"`
	RemainingMs float64 `yaml:"remaining_ms"`
	Paused      bool    `yaml:"paused"`
	Held        bool    `yaml:"held"`
}

// Snapshot captures the current playback state.
func (s *AnimationSheet) Snapshot() SheetState {
	return SheetState{
		Sequence:    s.ActiveSequence(),
		Index:       s.current,
		RemainingMs: s.remaining,
		Paused:      s.paused,
		Held:        s.held,
	}
}

// Restore activates st.Sequence and reapplies the saved cursor and flags.
// Loop policies are not saved, so the caller passes the policy the restored
// sequence plays with. Without one, the current policy is kept only when st
// names the already active sequence.
func (s *AnimationSheet) Restore(st SheetState, policy ...LoopPolicy) error {
	p := s.policy
	if !s.IsActiveSequence(st.Sequence) {
		p = LoopPolicy{}
	}
	if len(policy) > 0 {
		p = policy[0]
	}
	if err := s.SetActiveSequence(st.Sequence, p); err != nil {
		return fmt.Errorf("restore: %w", err)
	}
	s.SetFrameIndex(st.Index)
	s.remaining = st.RemainingMs
	s.paused = st.Paused
	s.held = st.Held
	return nil
}
