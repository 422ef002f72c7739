package theme

import (
	"image/color"

	"git.lost.host/meutraa/notefall/internal/game"
)

type Theme interface {
	RenderNote(shape game.Shape) string
	RenderPop() string
	RenderHitField(pressed bool) string
	Color(hex string) color.RGBA
}
