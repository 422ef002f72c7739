package audio

import (
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"git.lost.host/meutraa/notefall/internal/track"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
)

type cue struct {
	buffer *beep.Buffer
	rate   beep.SampleRate
}

// BeepPlayer streams the track through the speaker. Cues are decoded up
// front into buffers and mixed over the track when struck.
type BeepPlayer struct {
	format    beep.Format
	track     beep.StreamSeekCloser
	ctrl      *beep.Ctrl
	volume    *effects.Volume
	hit, miss *cue
	speakerOn bool

	ready, ended chan struct{}
	endOnce      sync.Once
}

func decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, beep.Format{}, err
	}
	var streamer beep.StreamSeekCloser
	var format beep.Format
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".ogg":
		streamer, format, err = vorbis.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unsupported audio file %v", file)
	}
	if nil != err {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("unable to decode %v: %w", file, err)
	}
	return streamer, format, nil
}

func loadCue(file string) *cue {
	if file == "" {
		return nil
	}
	streamer, format, err := decode(file)
	if nil != err {
		log.Println("unable to load cue", err)
		return nil
	}
	defer streamer.Close()
	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	return &cue{buffer: buffer, rate: format.SampleRate}
}

// Open decodes the track and cues in assets. Only a missing or broken
// track is an error, cues that fail to load stay silent.
func Open(assets track.Assets, volume float64) (*BeepPlayer, error) {
	if assets.Track == "" {
		return nil, fmt.Errorf("no track found for %v", assets.Name)
	}
	streamer, format, err := decode(assets.Track)
	if nil != err {
		return nil, err
	}

	p := &BeepPlayer{
		format: format,
		track:  streamer,
		hit:    loadCue(assets.Hit),
		miss:   loadCue(assets.Miss),
		ready:  make(chan struct{}),
		ended:  make(chan struct{}),
	}
	p.ctrl = &beep.Ctrl{
		Streamer: beep.Seq(streamer, beep.Callback(p.finish)),
		Paused:   true,
	}
	p.volume = &effects.Volume{
		Streamer: p.ctrl,
		Base:     2,
		Volume:   math.Log2(volume),
		Silent:   volume <= 0,
	}
	close(p.ready)
	return p, nil
}

// finish runs on the speaker's goroutine
func (p *BeepPlayer) finish() {
	p.endOnce.Do(func() {
		close(p.ended)
	})
}

func (p *BeepPlayer) Play() error {
	if !p.speakerOn {
		sr := p.format.SampleRate
		if err := speaker.Init(sr, sr.N(time.Second/10)); nil != err {
			return fmt.Errorf("unable to open speaker: %w", err)
		}
		p.speakerOn = true
		speaker.Play(p.volume)
	}
	speaker.Lock()
	defer speaker.Unlock()
	if err := p.track.Seek(0); nil != err {
		return fmt.Errorf("unable to rewind track: %w", err)
	}
	p.ctrl.Paused = false
	return nil
}

func (p *BeepPlayer) Pause() {
	if !p.speakerOn {
		return
	}
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

func (p *BeepPlayer) Resume() error {
	if !p.speakerOn {
		return p.Play()
	}
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	return nil
}

func (p *BeepPlayer) play(c *cue) {
	if !p.speakerOn || nil == c {
		return
	}
	s := c.buffer.Streamer(0, c.buffer.Len())
	speaker.Play(beep.Resample(4, c.rate, p.format.SampleRate, s))
}

func (p *BeepPlayer) Hit()  { p.play(p.hit) }
func (p *BeepPlayer) Miss() { p.play(p.miss) }

func (p *BeepPlayer) Ready() <-chan struct{} { return p.ready }
func (p *BeepPlayer) Ended() <-chan struct{} { return p.ended }

func (p *BeepPlayer) Duration() time.Duration {
	return p.format.SampleRate.D(p.track.Len())
}

func (p *BeepPlayer) Close() {
	p.Pause()
	if err := p.track.Close(); nil != err {
		log.Println("unable to close track", err)
	}
}
