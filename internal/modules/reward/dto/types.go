package dto

type ProgressOutput struct {
	Current    int64
	Required   int64
	Percentage float64
}

// StatusOutput is the reward state shown to the user. NextLevel is 0 once
// the top level is reached.
type StatusOutput struct {
	SignedIn               bool
	UserID                 string
	TotalSeconds           int64
	TotalDurationFormatted string
	TotalPoints            int64
	CurrentLevel           int
	CurrentTitle           string
	UnlockedLevels         []int
	NextLevel              int
	NextTitle              string
	NextProgress           ProgressOutput
	HasPendingLevelUp      bool
	PendingLevel           int
	PendingTitle           string
}

type LevelOutput struct {
	Level          int
	TotalPoints    int64
	TimeEquivalent string
	Title          string
	Unlocked       bool
	Progress       ProgressOutput
}

type AckOutput struct {
	Cleared bool
	Level   int
	Title   string
}

type StatusHandler func(status StatusOutput)
