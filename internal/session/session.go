// Package session schedules the engine: a frame driver, a spawn timer, an
// end check timer and a deadline at the end of the track. Everything runs
// on the goroutine that called Run, so the engine is never shared.
package session

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"git.lost.host/meutraa/notefall/internal/audio"
	"git.lost.host/meutraa/notefall/internal/engine"
	"git.lost.host/meutraa/notefall/internal/game"
	"git.lost.host/meutraa/notefall/internal/input"
	"git.lost.host/meutraa/notefall/internal/render"
)

type Options struct {
	FramePeriod      time.Duration
	SpawnInterval    time.Duration
	EndCheckInterval time.Duration
	Length           time.Duration // Deadline when the player knows no duration
	AutoStart        bool          // Start when the track is ready, not on the first key
	PauseKey         string
	QuitKey          string
	RebindKey        string // Followed by a lane number and the new key
}

type Session struct {
	engine *engine.Engine
	audio  audio.Player
	screen render.Renderer
	clock  Clock
	opts   Options

	frame, spawn, endCheck Ticker
	deadline               Timer
	remaining              time.Duration // Left on the deadline
	expired                bool          // The deadline passed while armed
	armedAt                time.Time
	played                 time.Duration
	summary                *game.Summary

	rebinding    bool
	rebindColumn int // -1 until the lane has been chosen
}

func New(e *engine.Engine, a audio.Player, screen render.Renderer, opts Options) *Session {
	s := &Session{
		engine: e,
		audio:  a,
		screen: screen,
		clock:  wallClock{},
		opts:   opts,
	}
	e.OnHit = func(note *game.Note) {
		a.Hit()
		screen.Pop(note, e.Bindings()[note.Column].Body)
	}
	e.OnMiss = func(note *game.Note) {
		a.Miss()
	}
	e.OnEnd = s.finish
	return s
}

// Run plays until the run ends or ctx is cancelled, and returns the final
// state of the run either way.
func (s *Session) Run(ctx context.Context, events <-chan input.Event) (game.Summary, error) {
	ready, ended := s.audio.Ready(), s.audio.Ended()
	s.draw()

	for s.engine.Phase() != game.Ended {
		select {
		case <-ctx.Done():
			s.engine.End()
			return s.result(), ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.handleInput(ev)
		case <-ready:
			ready = nil
			if s.opts.AutoStart {
				s.start()
			}
		case <-ended:
			ended = nil
			s.engine.MarkTrackEnded()
		case <-tickerC(s.frame):
			s.onFrame()
		case <-tickerC(s.spawn):
			s.engine.Spawn()
		case <-tickerC(s.endCheck):
			s.engine.CheckEnd()
		case <-timerC(s.deadline):
			// Fired, so there is nothing left to stop or account for
			s.deadline = nil
			s.remaining = 0
			s.engine.End()
		}
	}
	return s.result(), nil
}

func (s *Session) result() game.Summary {
	if nil == s.summary {
		return s.engine.Summary()
	}
	return *s.summary
}

func (s *Session) handleInput(ev input.Event) {
	if !ev.Down {
		s.engine.HandleKeyUp(ev.Key)
		return
	}
	if s.rebinding {
		s.handleRebind(ev.Key)
		return
	}
	switch {
	case ev.Key == s.opts.QuitKey:
		s.engine.End()
		return
	case ev.Key == s.opts.RebindKey && s.opts.RebindKey != "":
		s.rebinding = true
		s.rebindColumn = -1
		s.draw()
		return
	case s.engine.Phase() == game.NotStarted:
		s.start()
	case ev.Key == s.opts.PauseKey:
		s.togglePause()
		return
	}
	s.engine.HandleKeyDown(ev.Key)
}

// handleRebind takes the lane number and then the new key. The quit key
// abandons the rebind instead of the run.
func (s *Session) handleRebind(key string) {
	defer s.draw()
	if key == s.opts.QuitKey {
		s.rebinding = false
		return
	}
	if s.rebindColumn < 0 {
		lane, err := strconv.Atoi(key)
		if nil != err || lane < 1 || lane > len(s.engine.Bindings()) {
			return
		}
		s.rebindColumn = lane - 1
		return
	}
	if key == s.opts.PauseKey || key == s.opts.RebindKey {
		return
	}
	if err := s.engine.Rebind(s.rebindColumn, key); nil != err {
		log.Println("unable to rebind", err)
	}
	s.rebinding = false
}

func (s *Session) prompt() string {
	switch {
	case !s.rebinding:
		return ""
	case s.rebindColumn < 0:
		return fmt.Sprintf("Rebind which lane? 1-%v", len(s.engine.Bindings()))
	default:
		return fmt.Sprintf("New key for lane %v?", s.rebindColumn+1)
	}
}

func (s *Session) start() {
	if !s.engine.Start() {
		return
	}
	if err := s.audio.Play(); nil != err {
		log.Println("unable to play track", err)
	}
	s.remaining = s.audio.Duration()
	if s.remaining <= 0 {
		s.remaining = s.opts.Length
	}
	s.arm()
}

func (s *Session) togglePause() {
	switch s.engine.TogglePause() {
	case game.Paused:
		s.audio.Pause()
		s.disarm()
		s.draw()
	case game.Running:
		if s.expired {
			s.engine.End()
			return
		}
		if err := s.audio.Resume(); nil != err {
			log.Println("unable to resume track", err)
		}
		s.arm()
	}
}

// arm starts every task, the deadline only for the time it has left.
func (s *Session) arm() {
	s.armedAt = s.clock.Now()
	s.frame = s.clock.NewTicker(s.opts.FramePeriod)
	s.spawn = s.clock.NewTicker(s.opts.SpawnInterval)
	s.endCheck = s.clock.NewTicker(s.opts.EndCheckInterval)
	if s.remaining > 0 {
		s.deadline = s.clock.NewTimer(s.remaining)
	}
}

// disarm stops every armed task and forgets it, so a second call is a no-op.
func (s *Session) disarm() {
	if nil == s.frame {
		return
	}
	elapsed := s.clock.Now().Sub(s.armedAt)
	s.played += elapsed

	s.frame.Stop()
	s.spawn.Stop()
	s.endCheck.Stop()
	s.frame, s.spawn, s.endCheck = nil, nil, nil
	if nil != s.deadline {
		// A timer that already fired may still hold its value unread
		if !s.deadline.Stop() || s.remaining <= elapsed {
			s.expired = true
			s.remaining = 0
		} else {
			s.remaining -= elapsed
		}
		s.deadline = nil
	}
}

func (s *Session) finish(summary game.Summary) {
	s.disarm()
	s.audio.Pause()
	summary.Played = s.played
	s.summary = &summary
	s.draw()
}

func (s *Session) onFrame() {
	s.engine.Advance(s.engine.Speed())
	s.draw()
}

func (s *Session) draw() {
	bindings := s.engine.Bindings()
	pressed := make([]bool, len(bindings))
	for _, b := range bindings {
		pressed[b.Column] = s.engine.Pressed(b.Key)
	}
	width, height := s.engine.Viewport()
	s.screen.Draw(render.View{
		Notes:    s.engine.Notes(),
		Bindings: bindings,
		Pressed:  pressed,
		State:    s.engine.State(),
		Phase:    s.engine.Phase(),
		Width:    width,
		Height:   height,
		HitZone:  s.engine.HitZone(),
		Prompt:   s.prompt(),
	})
}
