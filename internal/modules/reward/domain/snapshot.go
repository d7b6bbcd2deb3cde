package domain

// Snapshot is the derived reward state for one full record set.
type Snapshot struct {
	TotalSeconds   int64
	TotalPoints    int64
	CurrentLevel   int
	UnlockedLevels []int
}

// Compute sums every duration. It depends only on the total, so any order or
// repetition of the same set gives the same result.
func Compute(table LevelTable, secondsPerPoint int64, durations []int64) Snapshot {
	var total int64
	for _, d := range durations {
		if d > 0 {
			total += d
		}
	}
	points := PointsFor(total, secondsPerPoint)
	return Snapshot{
		TotalSeconds:   total,
		TotalPoints:    points,
		CurrentLevel:   table.CurrentLevel(points),
		UnlockedLevels: table.UnlockedLevels(points),
	}
}
