package game

import "time"

// Score awarded per struck note
const HitAward = 10

// RunState holds the counters for one session.
type RunState struct {
	Score        uint64
	Streak       uint64
	MaxStreak    uint64
	TotalSpawned uint64
	TotalHit     uint64
	Misses       uint64
}

// Accuracy is the fraction of spawned notes that were hit.
func (r RunState) Accuracy() float64 {
	if r.TotalSpawned == 0 {
		return 0
	}
	return float64(r.TotalHit) / float64(r.TotalSpawned)
}

func (r *RunState) RecordHit() {
	r.Score += HitAward
	r.TotalHit++
	r.Streak++
	if r.Streak > r.MaxStreak {
		r.MaxStreak = r.Streak
	}
}

func (r *RunState) RecordMiss() {
	r.Streak = 0
	r.Misses++
}

// Summary is what survives a finished run.
type Summary struct {
	RunState
	Track      string
	Difficulty Difficulty
	Played     time.Duration
	Accuracy   float64
}
