package track

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		p := filepath.Join(dir, n)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); nil != err {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); nil != err {
			t.Fatal(err)
		}
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "song.ogg", "other.mp3", "cues/hit.wav", "cues/miss.mp3", "song.txt")

	assets, err := Resolve(dir, "song")
	if nil != err {
		t.Fatal(err)
	}
	expected := Assets{
		Name:  "song",
		Track: filepath.Join(dir, "song.ogg"),
		Hit:   filepath.Join(dir, "cues", "hit.wav"),
		Miss:  filepath.Join(dir, "cues", "miss.mp3"),
	}
	if assets != expected {
		t.Log("assets  ", assets)
		t.Log("expected", expected)
		t.Fail()
	}
}

func TestResolveMissingTrack(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "hit.mp3")

	assets, err := Resolve(dir, "song")
	if nil == err {
		t.Fatal("expected an error for a missing track")
	}
	if assets.Hit == "" || assets.Track != "" {
		t.Errorf("unexpected assets %+v", assets)
	}

	if _, err := Resolve(filepath.Join(dir, "nope"), "song"); nil == err {
		t.Error("expected an error for a missing directory")
	}
}
