package history

import (
	"time"

	"git.lost.host/meutraa/notefall/internal/game"
)

// Store keeps the summaries of finished runs.
type Store interface {
	Init() error
	Deinit()

	// Save the state of this performance
	Save(summary game.Summary) (Record, error)

	// Load previous runs of a track, newest first
	Load(track string, difficulty game.Difficulty) ([]Record, error)

	// Best previous run of a track, nil if it was never finished
	Best(track string, difficulty game.Difficulty) (*Record, error)
}

type Record struct {
	ID       string
	Finished time.Time
	game.Summary
}

// Recent returns the summaries of at most n of the newest runs of a track.
func Recent(s Store, track string, difficulty game.Difficulty, n int) ([]game.Summary, error) {
	records, err := s.Load(track, difficulty)
	if nil != err {
		return nil, err
	}
	if len(records) > n {
		records = records[:n]
	}
	summaries := make([]game.Summary, len(records))
	for i, r := range records {
		summaries[i] = r.Summary
	}
	return summaries, nil
}
