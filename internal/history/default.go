package history

import (
	"database/sql"
	"fmt"
	"time"

	"git.lost.host/meutraa/notefall/internal/game"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type DefaultStore struct {
	Path string
	db   *sql.DB
	now  func() time.Time
}

const columns = "id, finished, track, difficulty, score, max_streak, hit, spawned, misses, played_ms"

func (s *DefaultStore) Init() error {
	db, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}

	initStatement := `
	create table if not exists runs
	  (
		  id text not null primary key,
		  finished timestamp not null,
		  track text not null,
		  difficulty text not null,
		  score integer not null,
		  max_streak integer not null,
		  hit integer not null,
		  spawned integer not null,
		  misses integer not null,
		  played_ms integer not null
	  );
	create index if not exists runs_track on runs (track, difficulty);
	`
	if _, err = db.Exec(initStatement); nil != err {
		db.Close()
		return fmt.Errorf("unable to create history table: %w", err)
	}

	s.db = db
	if nil == s.now {
		s.now = time.Now
	}
	return nil
}

func (s *DefaultStore) Deinit() {
	if nil != s.db {
		s.db.Close()
	}
}

func (s *DefaultStore) Save(summary game.Summary) (Record, error) {
	r := Record{
		ID:       uuid.New().String(),
		Finished: s.now().UTC(),
		Summary:  summary,
	}
	_, err := s.db.Exec("insert into runs("+columns+") values(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		r.ID, r.Finished, r.Track, string(r.Difficulty),
		r.Score, r.MaxStreak, r.TotalHit, r.TotalSpawned, r.Misses,
		r.Played.Milliseconds(),
	)
	if nil != err {
		return r, fmt.Errorf("unable to save run: %w", err)
	}
	return r, nil
}

func scan(rows *sql.Rows) (Record, error) {
	var r Record
	var difficulty string
	var played int64
	err := rows.Scan(&r.ID, &r.Finished, &r.Track, &difficulty,
		&r.Score, &r.MaxStreak, &r.TotalHit, &r.TotalSpawned, &r.Misses, &played)
	r.Difficulty = game.Difficulty(difficulty)
	r.Played = time.Duration(played) * time.Millisecond
	r.Accuracy = r.RunState.Accuracy()
	return r, err
}

func (s *DefaultStore) query(q string, args ...interface{}) ([]Record, error) {
	rows, err := s.db.Query(q, args...)
	if nil != err {
		return nil, fmt.Errorf("unable to load runs: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		r, err := scan(rows)
		if nil != err {
			return nil, fmt.Errorf("unable to read run: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *DefaultStore) Load(track string, difficulty game.Difficulty) ([]Record, error) {
	return s.query("select "+columns+" from runs where track = ? and difficulty = ? order by finished desc",
		track, string(difficulty))
}

func (s *DefaultStore) Best(track string, difficulty game.Difficulty) (*Record, error) {
	records, err := s.query("select "+columns+" from runs where track = ? and difficulty = ? order by score desc, finished asc limit 1",
		track, string(difficulty))
	if nil != err || len(records) == 0 {
		return nil, err
	}
	return &records[0], nil
}
