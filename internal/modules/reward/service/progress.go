package service

import "prayerlog/internal/modules/reward/domain"

type ProgressService struct {
	table           domain.LevelTable
	secondsPerPoint int64
}

func NewProgressService(table domain.LevelTable, secondsPerPoint int64) *ProgressService {
	if secondsPerPoint <= 0 {
		secondsPerPoint = domain.DefaultSecondsPerPoint
	}
	return &ProgressService{table: table, secondsPerPoint: secondsPerPoint}
}

func (s *ProgressService) Table() domain.LevelTable { return s.table }

func (s *ProgressService) SecondsPerPoint() int64 { return s.secondsPerPoint }

func (s *ProgressService) Compute(durations []int64) domain.Snapshot {
	return domain.Compute(s.table, s.secondsPerPoint, durations)
}
