package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"git.lost.host/meutraa/notefall/internal/track"
	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// writeSilence writes length of silence as a 16 bit stereo wav file.
func writeSilence(t *testing.T, dir, name string, length time.Duration) string {
	t.Helper()
	file := filepath.Join(dir, name)
	f, err := os.Create(file)
	if nil != err {
		t.Fatal(err)
	}
	defer f.Close()
	format := beep.Format{SampleRate: 44100, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(format.SampleRate.N(length)), format); nil != err {
		t.Fatal(err)
	}
	return file
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	assets := track.Assets{
		Name:  "song",
		Track: writeSilence(t, dir, "song.wav", time.Second),
		Hit:   writeSilence(t, dir, "hit.wav", 50*time.Millisecond),
		Miss:  filepath.Join(dir, "miss.mp3"), // missing, stays silent
	}
	p, err := Open(assets, 0.3)
	if nil != err {
		t.Fatal(err)
	}
	defer p.Close()

	if d := p.Duration(); d != time.Second {
		t.Errorf("duration %v, expected 1s", d)
	}
	select {
	case <-p.Ready():
	default:
		t.Error("player is not ready after open")
	}
	if nil == p.hit || nil != p.miss {
		t.Errorf("unexpected cues hit=%v miss=%v", p.hit, p.miss)
	}

	// Without a speaker these do nothing
	p.Hit()
	p.Miss()
	p.Pause()

	p.finish()
	p.finish()
	select {
	case <-p.Ended():
	default:
		t.Error("ended not signalled")
	}
}

func TestOpenFailures(t *testing.T) {
	if _, err := Open(track.Assets{Name: "none"}, 1); nil == err {
		t.Error("expected error without a track")
	}
	dir := t.TempDir()
	bad := filepath.Join(dir, "song.flac")
	if err := os.WriteFile(bad, []byte("flac"), 0o644); nil != err {
		t.Fatal(err)
	}
	if _, err := Open(track.Assets{Name: "song", Track: bad}, 1); nil == err {
		t.Error("expected error for an unsupported file")
	}
	broken := filepath.Join(dir, "song.wav")
	if err := os.WriteFile(broken, []byte("not a wav"), 0o644); nil != err {
		t.Fatal(err)
	}
	if _, err := Open(track.Assets{Name: "song", Track: broken}, 1); nil == err {
		t.Error("expected error for a broken wav")
	}
}

func TestSilent(t *testing.T) {
	s := NewSilent(time.Minute)
	if nil != s.Play() || nil != s.Resume() || s.Duration() != time.Minute || nil != s.Ended() {
		t.Error("silent player misbehaves")
	}
	select {
	case <-s.Ready():
	default:
		t.Error("silent player is not ready")
	}
}
