package render

import (
	"image/color"

	"git.lost.host/meutraa/notefall/internal/game"
)

// View is everything drawn for one frame.
type View struct {
	Notes    []*game.Note
	Bindings game.Bindings
	Pressed  []bool // Indexed by column
	State    game.RunState
	Phase    game.Phase

	// Logical viewport the notes live in
	Width, Height, HitZone float64

	Prompt string // Shown over the field while set
}

type Renderer interface {
	Init() error
	Deinit() error
	Draw(v View)
	// Pop flashes a struck note where it was hit
	Pop(note *game.Note, hex string)
	// Summary shows a finished run next to the best and the most recent earlier runs
	Summary(s game.Summary, best *game.Summary, recent []game.Summary)
	Fill(row, column int, message string)
	FillColor(row, column int, color color.RGBA, message string)
}
