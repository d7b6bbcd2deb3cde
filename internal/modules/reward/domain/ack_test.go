package domain

import "testing"

func TestDetectRaisesOnceForMultiLevelJump(t *testing.T) {
	t.Parallel()
	state, raised := Detect(AckState{}, 4)
	if !raised || state.PendingLevel != 4 || state.LastProcessedLevel != 4 {
		t.Fatalf("expected single notification for level 4, got %+v raised=%v", state, raised)
	}
	again, raised := Detect(state, 4)
	if raised || again != state {
		t.Fatalf("same level must not raise again, got %+v", again)
	}
}

func TestDetectFirstLevel(t *testing.T) {
	t.Parallel()
	state, raised := Detect(AckState{}, 1)
	if !raised || state.PendingLevel != 1 {
		t.Fatalf("first level must notify, got %+v", state)
	}
}

func TestAcknowledgeBlocksLowerLevels(t *testing.T) {
	t.Parallel()
	state, _ := Detect(AckState{}, 3)
	state, cleared := state.Acknowledge()
	if !cleared || state.HasPending() || state.ClearedLevel != 3 {
		t.Fatalf("unexpected state after acknowledge %+v", state)
	}
	if _, ok := state.Acknowledge(); ok {
		t.Fatalf("second acknowledge must be a no-op")
	}
	if _, raised := Detect(AckState{ClearedLevel: 3}, 2); raised {
		t.Fatalf("level at or below cleared must not raise")
	}
	next, raised := Detect(state, 5)
	if !raised || next.PendingLevel != 5 {
		t.Fatalf("higher level must raise, got %+v", next)
	}
}

func TestSanitize(t *testing.T) {
	t.Parallel()
	got := AckState{LastProcessedLevel: 2, PendingLevel: 2, ClearedLevel: 2}.Sanitize()
	if got.HasPending() {
		t.Fatalf("pending at cleared level must be dropped, got %+v", got)
	}
	got = AckState{PendingLevel: 3}.Sanitize()
	if got.LastProcessedLevel != 3 || got.PendingLevel != 3 {
		t.Fatalf("last processed must cover pending, got %+v", got)
	}
}
