package domain

// AckState is the durable per-user level-up bookkeeping. PendingLevel 0
// means no notification is pending.
type AckState struct {
	LastProcessedLevel int
	PendingLevel       int
	ClearedLevel       int
}

func (s AckState) HasPending() bool {
	return s.PendingLevel > 0
}

// Detect compares a freshly computed level against the state. A jump across
// several thresholds raises a single notification for the highest level.
// Levels at or below the last processed or cleared level never raise again.
func Detect(state AckState, currentLevel int) (AckState, bool) {
	if currentLevel <= state.LastProcessedLevel || currentLevel <= state.ClearedLevel {
		return state, false
	}
	state.LastProcessedLevel = currentLevel
	state.PendingLevel = currentLevel
	return state, true
}

// Acknowledge clears the pending notification and records it as cleared.
func (s AckState) Acknowledge() (AckState, bool) {
	if !s.HasPending() {
		return s, false
	}
	s.ClearedLevel = max(s.ClearedLevel, s.PendingLevel)
	s.PendingLevel = 0
	return s, true
}

// Sanitize drops a pending level that is not above the cleared level, which
// can be left behind when a clear was only partly written.
func (s AckState) Sanitize() AckState {
	if s.PendingLevel <= s.ClearedLevel {
		s.PendingLevel = 0
	}
	if s.LastProcessedLevel < s.PendingLevel {
		s.LastProcessedLevel = s.PendingLevel
	}
	return s
}
