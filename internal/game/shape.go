package game

import (
	"fmt"
	"math"
)

// Shape is the note geometry. Only the renderer cares about the concrete
// type, the engine asks Width, Height and Aligned.
type Shape interface {
	Width() float64
	Height() float64
	// Aligned reports whether dx, the offset of the note centre from the
	// lane centre, is within horizontal hit tolerance.
	Aligned(dx float64) bool
	Name() string
}

type Circle struct {
	Radius float64
}

func (c Circle) Width() float64  { return c.Radius * 2 }
func (c Circle) Height() float64 { return c.Radius * 2 }
func (c Circle) Name() string    { return "circle" }

func (c Circle) Aligned(dx float64) bool {
	return math.Abs(dx) < c.Radius
}

type Rect struct {
	W, H float64
}

func (r Rect) Width() float64  { return r.W }
func (r Rect) Height() float64 { return r.H }
func (r Rect) Name() string    { return "rect" }

// Column equality already keeps rectangles in their lane
func (r Rect) Aligned(dx float64) bool {
	return true
}

// NewShape builds a shape by name with size as its diameter or edge.
func NewShape(name string, size float64) (Shape, error) {
	switch name {
	case "circle":
		return Circle{Radius: size / 2}, nil
	case "rect":
		return Rect{W: size, H: size / 2}, nil
	}
	return nil, fmt.Errorf("unknown note shape %q", name)
}
