package history

import (
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/notefall/internal/game"
)

func newTestStore(t *testing.T) *DefaultStore {
	t.Helper()
	now := time.Date(2021, 4, 17, 12, 0, 0, 0, time.UTC)
	s := &DefaultStore{Path: filepath.Join(t.TempDir(), "scores.db")}
	s.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	if err := s.Init(); nil != err {
		t.Fatal(err)
	}
	t.Cleanup(s.Deinit)
	return s
}

func summary(track string, d game.Difficulty, score, hit, spawned uint64) game.Summary {
	return game.Summary{
		RunState:   game.RunState{Score: score, TotalHit: hit, TotalSpawned: spawned, MaxStreak: hit},
		Track:      track,
		Difficulty: d,
		Played:     90 * time.Second,
	}
}

func TestSaveLoad(t *testing.T) {
	s := newTestStore(t)
	runs := []game.Summary{
		summary("song", game.Easy, 100, 10, 20),
		summary("song", game.Easy, 150, 15, 20),
		summary("song", game.Hard, 500, 50, 60),
		summary("other", game.Easy, 10, 1, 2),
	}
	ids := map[string]bool{}
	for _, r := range runs {
		saved, err := s.Save(r)
		if nil != err {
			t.Fatal(err)
		}
		if ids[saved.ID] {
			t.Fatalf("duplicate id %v", saved.ID)
		}
		ids[saved.ID] = true
	}

	records, err := s.Load("song", game.Easy)
	if nil != err {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Fatalf("loaded %v runs", len(records))
	}
	newest := records[0]
	if newest.Score != 150 || newest.TotalHit != 15 || newest.Played != 90*time.Second || newest.Accuracy != 0.75 {
		t.Errorf("unexpected newest run %+v", newest)
	}
	if !records[0].Finished.After(records[1].Finished) {
		t.Error("runs are not newest first")
	}
}

func TestBest(t *testing.T) {
	s := newTestStore(t)
	best, err := s.Best("song", game.Medium)
	if nil != err || nil != best {
		t.Fatalf("best of nothing is %v (%v)", best, err)
	}

	for _, score := range []uint64{30, 90, 60} {
		if _, err := s.Save(summary("song", game.Medium, score, score/10, 10)); nil != err {
			t.Fatal(err)
		}
	}
	best, err = s.Best("song", game.Medium)
	if nil != err {
		t.Fatal(err)
	}
	if nil == best || best.Score != 90 || best.Difficulty != game.Medium {
		t.Errorf("unexpected best %+v", best)
	}
}

func TestRecent(t *testing.T) {
	s := newTestStore(t)
	for _, score := range []uint64{10, 20, 30, 40} {
		if _, err := s.Save(summary("song", game.Easy, score, 1, 4)); nil != err {
			t.Fatal(err)
		}
	}
	if _, err := s.Save(summary("song", game.Hard, 99, 1, 4)); nil != err {
		t.Fatal(err)
	}

	recent, err := Recent(s, "song", game.Easy, 3)
	if nil != err {
		t.Fatal(err)
	}
	expected := []uint64{40, 30, 20}
	if len(recent) != len(expected) {
		t.Fatalf("got %v recent runs", len(recent))
	}
	for i, score := range expected {
		if recent[i].Score != score {
			t.Log("run     ", i)
			t.Log("score   ", recent[i].Score)
			t.Log("expected", score)
			t.Fail()
		}
	}

	none, err := Recent(s, "other", game.Easy, 3)
	if nil != err || len(none) != 0 {
		t.Errorf("recent runs of an unplayed track: %v (%v)", none, err)
	}
}
