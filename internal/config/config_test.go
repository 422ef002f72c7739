package config

import (
	"testing"
	"time"

	"git.lost.host/meutraa/notefall/internal/game"
)

func TestDefaults(t *testing.T) {
	c, err := Parse([]string{"song"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Song != "song" || c.Difficulty != game.Easy || c.Sounds != "sounds" {
		t.Errorf("unexpected config %+v", c)
	}
	if len(c.Keys) != 4 || c.Keys[0] != "a" || c.Keys[3] != "f" {
		t.Errorf("unexpected keys %v", c.Keys)
	}
	if _, ok := c.Shape.(game.Circle); !ok {
		t.Errorf("unexpected shape %v", c.Shape)
	}

	e := c.Engine()
	if e.Width != 800 || e.Height != 600 || e.HitZone != 40 || e.MissMargin != 0 || len(e.Bindings) != 4 {
		t.Errorf("unexpected engine options %+v", e)
	}
	s := c.Session()
	if s.SpawnInterval != time.Second || s.EndCheckInterval != 100*time.Millisecond || s.PauseKey != "p" || s.RebindKey != "r" {
		t.Errorf("unexpected session options %+v", s)
	}
	if s.FramePeriod != time.Second/60 {
		t.Errorf("frame period %v", s.FramePeriod)
	}
}

func TestFlags(t *testing.T) {
	c, err := Parse([]string{"-d", "ultrahard", "--keys", "jkl;", "--shape", "rect", "--note-size", "30", "--miss-margin", "15", "tune"})
	if nil != err {
		t.Fatal(err)
	}
	if c.Difficulty.Speed() != 12 || c.Keys[3] != ";" || c.MissMargin != 15 {
		t.Errorf("unexpected config %+v", c)
	}
	if r, ok := c.Shape.(game.Rect); !ok || r.W != 30 {
		t.Errorf("unexpected shape %v", c.Shape)
	}
}

var invalid = [][]string{
	{},
	{"-d", "nightmare", "song"},
	{"--keys", "aa", "song"},
	{"--keys", "asdp", "song"},
	{"--keys", "rsdf", "song"},
	{"--keys", "asdfg", "song"},
	{"--shape", "star", "song"},
	{"--note-size", "0", "song"},
	{"--hit-zone", "900", "song"},
	{"--miss-margin=-1", "song"},
	{"--fps", "0", "song"},
	{"--spawn-every", "0s", "song"},
	{"--volume", "2", "song"},
}

func TestInvalid(t *testing.T) {
	for _, args := range invalid {
		if _, err := Parse(args); nil == err {
			t.Errorf("expected an error for %v", args)
		}
	}
}
