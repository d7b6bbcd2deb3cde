package domain

import (
	"fmt"
	"math"
)

// DefaultSecondsPerPoint is thirty minutes of prayer per point.
const DefaultSecondsPerPoint int64 = 1800

type Level struct {
	Level          int
	TotalPoints    int64
	TimeEquivalent string
	Title          string
}

// DefaultLevels is the production table.
func DefaultLevels() []Level {
	return []Level{
		{Level: 1, TotalPoints: 1, TimeEquivalent: "30 min", Title: "The First Step"},
		{Level: 2, TotalPoints: 3, TimeEquivalent: "1h 30m", Title: "Warming Up"},
		{Level: 3, TotalPoints: 6, TimeEquivalent: "3h", Title: "Solid Ground"},
		{Level: 4, TotalPoints: 10, TimeEquivalent: "5h", Title: "Marathon Trainee"},
		{Level: 5, TotalPoints: 15, TimeEquivalent: "7h 30m", Title: "Advanced Focus"},
		{Level: 6, TotalPoints: 21, TimeEquivalent: "10h 30m", Title: "Focus Master"},
		{Level: 7, TotalPoints: 28, TimeEquivalent: "14h", Title: "Grand Master"},
	}
}

// LevelTable is an ordered, validated list of level thresholds.
type LevelTable struct {
	levels []Level
}

// NewLevelTable requires a non-empty list whose level numbers and point
// thresholds are both positive and strictly increasing.
func NewLevelTable(levels []Level) (LevelTable, error) {
	if len(levels) == 0 {
		return LevelTable{}, fmt.Errorf("level table is empty")
	}
	for i, l := range levels {
		if l.Level <= 0 {
			return LevelTable{}, fmt.Errorf("level %d: number must be positive", l.Level)
		}
		if l.TotalPoints <= 0 {
			return LevelTable{}, fmt.Errorf("level %d: threshold must be positive", l.Level)
		}
		if i == 0 {
			continue
		}
		prev := levels[i-1]
		if l.Level <= prev.Level {
			return LevelTable{}, fmt.Errorf("level %d: numbers must be strictly increasing", l.Level)
		}
		if l.TotalPoints <= prev.TotalPoints {
			return LevelTable{}, fmt.Errorf("level %d: thresholds must be strictly increasing", l.Level)
		}
	}
	return LevelTable{levels: append([]Level(nil), levels...)}, nil
}

func DefaultTable() LevelTable {
	table, err := NewLevelTable(DefaultLevels())
	if err != nil {
		panic(err)
	}
	return table
}

func (t LevelTable) Levels() []Level {
	return append([]Level(nil), t.levels...)
}

func (t LevelTable) Lookup(level int) (Level, bool) {
	for _, l := range t.levels {
		if l.Level == level {
			return l, true
		}
	}
	return Level{}, false
}

// Next is the first level above level, if any.
func (t LevelTable) Next(level int) (Level, bool) {
	for _, l := range t.levels {
		if l.Level > level {
			return l, true
		}
	}
	return Level{}, false
}

// PointsFor converts lifetime seconds to whole points.
func PointsFor(totalSeconds, secondsPerPoint int64) int64 {
	if totalSeconds <= 0 || secondsPerPoint <= 0 {
		return 0
	}
	return totalSeconds / secondsPerPoint
}

// CurrentLevel is the highest level whose threshold points reaches, or 0.
func (t LevelTable) CurrentLevel(points int64) int {
	current := 0
	for _, l := range t.levels {
		if points >= l.TotalPoints && l.Level > current {
			current = l.Level
		}
	}
	return current
}

// UnlockedLevels filters the table rather than assuming levels are dense.
func (t LevelTable) UnlockedLevels(points int64) []int {
	unlocked := make([]int, 0, len(t.levels))
	for _, l := range t.levels {
		if points >= l.TotalPoints {
			unlocked = append(unlocked, l.Level)
		}
	}
	return unlocked
}

type Progress struct {
	Current    int64
	Required   int64
	Percentage float64
}

// Progress toward target. An unknown target yields {0, 1, 0}.
func (t LevelTable) Progress(points int64, target int) Progress {
	l, ok := t.Lookup(target)
	if !ok {
		return Progress{Current: 0, Required: 1, Percentage: 0}
	}
	current := points
	if current < 0 {
		current = 0
	}
	current = min(current, l.TotalPoints)
	return Progress{
		Current:    current,
		Required:   l.TotalPoints,
		Percentage: math.Min(100, 100*float64(current)/float64(l.TotalPoints)),
	}
}
