package theme

import (
	"image/color"

	"git.lost.host/meutraa/notefall/internal/game"
	"github.com/lucasb-eyer/go-colorful"
)

type DefaultTheme struct {
	colors map[string]color.RGBA
}

const (
	circleSym  = "⬤"
	rectSym    = "▬"
	popSym     = "✱"
	fieldSym   = "◯"
	pressedSym = "⬤"
)

var fallback = color.RGBA{255, 255, 255, 255}

func (t *DefaultTheme) RenderNote(shape game.Shape) string {
	switch shape.(type) {
	case game.Rect:
		return rectSym
	}
	return circleSym
}

func (t *DefaultTheme) RenderPop() string {
	return popSym
}

func (t *DefaultTheme) RenderHitField(pressed bool) string {
	if pressed {
		return pressedSym
	}
	return fieldSym
}

// Color parses a #rrggbb colour, unknown values render white
func (t *DefaultTheme) Color(hex string) color.RGBA {
	if c, ok := t.colors[hex]; ok {
		return c
	}
	c := fallback
	if parsed, err := colorful.Hex(hex); nil == err {
		r, g, b := parsed.RGB255()
		c = color.RGBA{r, g, b, 255}
	}
	if nil == t.colors {
		t.colors = map[string]color.RGBA{}
	}
	t.colors[hex] = c
	return c
}
