// Package engine holds the rhythm game's update loop: spawning, motion,
// hit and miss detection, scoring and end detection. It is not safe for
// concurrent use, the session drives it from a single goroutine.
package engine

import (
	"math/rand"
	"strings"
	"time"

	"git.lost.host/meutraa/notefall/internal/game"
)

const (
	DefaultWidth   = 800
	DefaultHeight  = 600
	DefaultHitZone = 40
)

type Options struct {
	Track      string
	Difficulty game.Difficulty
	Bindings   game.Bindings
	Shape      game.Shape

	// Logical viewport, notes fall from 0 towards Height
	Width, Height float64
	HitZone       float64 // Height of the band above the bottom edge
	MissMargin    float64 // Distance past the bottom edge before a miss

	Seed int64
}

type Engine struct {
	// Called on the engine's goroutine, after the state has been updated
	OnHit  func(note *game.Note)
	OnMiss func(note *game.Note)
	OnEnd  func(summary game.Summary)

	opts       Options
	speed      float64
	bindings   game.Bindings
	pick       func(n int) int
	notes      []*game.Note
	state      game.RunState
	phase      game.Phase
	pressed    map[string]bool
	nextID     uint64
	tick       uint64
	trackEnded bool
}

func New(opts Options) *Engine {
	if opts.Difficulty == "" {
		opts.Difficulty = game.Easy
	}
	if opts.Bindings == nil {
		opts.Bindings, _ = game.NewBindings(strings.Split(game.DefaultKeys, ""))
	}
	if opts.Shape == nil {
		opts.Shape = game.Circle{Radius: 20}
	}
	if opts.Width <= 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultHeight
	}
	if opts.HitZone <= 0 {
		opts.HitZone = DefaultHitZone
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	// Rebind mutates the engine's own copy
	bindings := make(game.Bindings, len(opts.Bindings))
	copy(bindings, opts.Bindings)

	return &Engine{
		opts:     opts,
		speed:    opts.Difficulty.Speed(),
		bindings: bindings,
		pick:     rand.New(rand.NewSource(opts.Seed)).Intn,
		pressed:  map[string]bool{},
	}
}

func (e *Engine) Start() bool {
	if e.phase != game.NotStarted {
		return false
	}
	e.phase = game.Running
	return true
}

// Spawn drops a note into a random lane. The caller owns the cadence, so
// spawning is allowed while paused; after the run has ended it does nothing.
func (e *Engine) Spawn() *game.Note {
	if e.phase == game.Ended {
		return nil
	}
	columns := len(e.bindings)
	column := e.bindings[e.pick(columns)].Column
	e.nextID++
	note := &game.Note{
		ID:        e.nextID,
		Column:    column,
		X:         game.LaneX(column, e.opts.Width, e.opts.Shape.Width(), columns),
		SpawnTick: e.tick,
		Shape:     e.opts.Shape,
	}
	e.notes = append(e.notes, note)
	e.state.TotalSpawned++
	return note
}

// Advance moves every live note down by delta and removes the ones that
// fell past the bottom edge as misses.
func (e *Engine) Advance(delta float64) {
	if e.phase != game.Running || delta <= 0 {
		return
	}
	e.tick++

	boundary := e.opts.Height + e.opts.MissMargin
	live := e.notes[:0]
	missed := []*game.Note{}
	for _, note := range e.notes {
		note.Position += delta
		if note.Position > boundary {
			missed = append(missed, note)
			continue
		}
		live = append(live, note)
	}
	// Drop references held past the new length
	for i := len(live); i < len(e.notes); i++ {
		e.notes[i] = nil
	}
	e.notes = live

	for _, note := range missed {
		e.state.RecordMiss()
		if e.OnMiss != nil {
			e.OnMiss(note)
		}
	}
}

// Speed is the per tick fall distance for the configured difficulty.
func (e *Engine) Speed() float64 {
	return e.speed
}

func (e *Engine) inHitZone(note *game.Note) bool {
	if note.Position <= e.opts.Height-e.opts.HitZone {
		return false
	}
	center := game.LaneCenter(note.Column, e.opts.Width, len(e.bindings))
	return note.Shape.Aligned(note.Center() - center)
}

// HandleKeyDown strikes the earliest spawned note of the key's lane that is
// inside the hit zone. A press with nothing to strike is not a miss.
func (e *Engine) HandleKeyDown(key string) *game.Note {
	e.pressed[key] = true
	if e.phase != game.Running {
		return nil
	}
	column, ok := e.bindings.Column(key)
	if !ok {
		return nil
	}
	for i, note := range e.notes {
		if note.Hit || note.Column != column || !e.inHitZone(note) {
			continue
		}
		note.Hit = true
		e.notes = append(e.notes[:i], e.notes[i+1:]...)
		e.state.RecordHit()
		if e.OnHit != nil {
			e.OnHit(note)
		}
		return note
	}
	return nil
}

func (e *Engine) HandleKeyUp(key string) {
	delete(e.pressed, key)
}

func (e *Engine) Pressed(key string) bool {
	return e.pressed[key]
}

// TogglePause swaps Running and Paused and returns the resulting phase.
func (e *Engine) TogglePause() game.Phase {
	switch e.phase {
	case game.Running:
		e.phase = game.Paused
	case game.Paused:
		e.phase = game.Running
	}
	return e.phase
}

// MarkTrackEnded records that the backing track finished playing.
func (e *Engine) MarkTrackEnded() {
	e.trackEnded = true
}

// CheckEnd ends the run once the track is over and the lanes are empty.
func (e *Engine) CheckEnd() bool {
	if e.trackEnded && len(e.notes) == 0 {
		return e.End()
	}
	return false
}

// End moves to Ended and reports whether this call made the transition.
func (e *Engine) End() bool {
	if e.phase == game.Ended {
		return false
	}
	e.phase = game.Ended
	for i := range e.notes {
		e.notes[i] = nil
	}
	e.notes = e.notes[:0]
	if e.OnEnd != nil {
		e.OnEnd(e.Summary())
	}
	return true
}

func (e *Engine) Summary() game.Summary {
	return game.Summary{
		RunState:   e.state,
		Track:      e.opts.Track,
		Difficulty: e.opts.Difficulty,
		Accuracy:   e.state.Accuracy(),
	}
}

// Rebind moves key to column. Live notes keep their column.
func (e *Engine) Rebind(column int, key string) error {
	return e.bindings.Rebind(column, key)
}

func (e *Engine) Notes() []*game.Note {
	return e.notes
}

func (e *Engine) State() game.RunState {
	return e.state
}

func (e *Engine) Phase() game.Phase {
	return e.phase
}

func (e *Engine) Bindings() game.Bindings {
	return e.bindings
}

func (e *Engine) Viewport() (width, height float64) {
	return e.opts.Width, e.opts.Height
}

func (e *Engine) HitZone() float64 {
	return e.opts.HitZone
}

func (e *Engine) Tick() uint64 {
	return e.tick
}
