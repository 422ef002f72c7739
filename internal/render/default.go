package render

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"git.lost.host/meutraa/notefall/internal/game"
	"git.lost.host/meutraa/notefall/internal/theme"
	"golang.org/x/term"
)

const (
	popFrames   = 12
	defaultRows = 24
	defaultCols = 80
)

type DefaultRenderer struct {
	Out   io.Writer
	Theme theme.Theme

	buffer      strings.Builder
	rows, cols  int
	view        View   // Last drawn, pops are placed in its viewport
	overlay     string // Message drawn over the middle row
	decorations []*decoration
	dirty       []cell
}

type cell struct {
	Row, Col int
}

type decoration struct {
	Row, Col int
	Content  string
	Color    color.RGBA
	Frames   int // remaining frames until removed
}

func (r *DefaultRenderer) Init() error {
	if nil == r.Out {
		r.Out = os.Stdout
	}
	if nil == r.Theme {
		r.Theme = &theme.DefaultTheme{}
	}
	r.Resize()

	_, err := fmt.Fprintf(r.Out, "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[2J",     // Clear the screen
	)
	return err
}

func (r *DefaultRenderer) Deinit() error {
	_, err := fmt.Fprintf(r.Out, "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	return err
}

// Resize reads the terminal size, falling back to 80x24 off a terminal.
func (r *DefaultRenderer) Resize() {
	r.rows, r.cols = defaultRows, defaultCols
	if f, ok := r.Out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if cols, rows, err := term.GetSize(int(f.Fd())); nil == err {
			r.rows, r.cols = rows, cols
		}
	}
}

// Size is the terminal size in cells.
func (r *DefaultRenderer) Size() (rows, cols int) {
	return r.rows, r.cols
}

// The playing field spans rows 3 to rows-1, row 1 holds the score.
func (r *DefaultRenderer) row(position, height float64) int {
	top, bottom := 3, r.rows-1
	if height <= 0 {
		return bottom
	}
	return top + int(math.Round(position/height*float64(bottom-top)))
}

func (r *DefaultRenderer) column(x, width float64) int {
	if width <= 0 {
		return 1
	}
	return 1 + int(math.Round(x/width*float64(r.cols-1)))
}

func (r *DefaultRenderer) Draw(v View) {
	for _, c := range r.dirty {
		r.Fill(c.Row, c.Col, " ")
	}
	r.dirty = r.dirty[:0]
	r.view = v

	columns := len(v.Bindings)

	// Render the hit field
	hitRow := r.row(v.Height-v.HitZone/2, v.Height)
	for _, b := range v.Bindings {
		col := r.column(game.LaneCenter(b.Column, v.Width, columns), v.Width)
		pressed := b.Column < len(v.Pressed) && v.Pressed[b.Column]
		c := color.RGBA{80, 80, 80, 255}
		if pressed {
			c = r.Theme.Color(b.Zone)
		}
		r.FillColor(hitRow, col, c, r.Theme.RenderHitField(pressed))
		r.Fill(hitRow+1, col, b.Key)
	}

	// Render notes
	for _, note := range v.Notes {
		if note.Column >= columns {
			continue
		}
		row := r.row(note.Position, v.Height)
		if row < 3 || row >= hitRow {
			continue
		}
		col := r.column(note.Center(), v.Width)
		r.FillColor(row, col, r.Theme.Color(v.Bindings[note.Column].Body), r.Theme.RenderNote(note.Shape))
		r.dirty = append(r.dirty, cell{row, col})
	}

	r.tickDecorations()

	r.Fill(1, 2, fmt.Sprintf("Score: %-8v", v.State.Score))
	r.Fill(1, r.cols-16, fmt.Sprintf("Streak: %-6s", strconv.FormatUint(v.State.Streak, 10)+"x"))

	message := ""
	switch {
	case v.Prompt != "":
		message = v.Prompt
	case v.Phase == game.NotStarted:
		message = "Press any key to start"
	case v.Phase == game.Paused:
		message = "Paused, press p to resume"
	}
	if message != r.overlay {
		r.centre(r.rows/2, strings.Repeat(" ", len(r.overlay)))
		r.overlay = message
	}
	if message != "" {
		r.centre(r.rows/2, message)
	}

	r.flush()
}

func (r *DefaultRenderer) centre(row int, message string) {
	col := (r.cols - len(message)) / 2
	if col < 1 {
		col = 1
	}
	r.Fill(row, col, message)
}

func (r *DefaultRenderer) Pop(note *game.Note, hex string) {
	r.decorations = append(r.decorations, &decoration{
		Row:     r.row(note.Position, r.view.Height),
		Col:     r.column(note.Center(), r.view.Width),
		Content: r.Theme.RenderPop(),
		Color:   r.Theme.Color(hex),
		Frames:  popFrames,
	})
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			r.Fill(d.Row, d.Col, " ")
			continue
		}
		r.FillColor(d.Row, d.Col, d.Color, d.Content)
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) Summary(s game.Summary, best *game.Summary, recent []game.Summary) {
	r.buffer.WriteString("\033[2J")
	lines := []string{
		"Game Over",
		"",
		fmt.Sprintf("Score: %v", s.Score),
		fmt.Sprintf("Max Streak: %v", s.MaxStreak),
		fmt.Sprintf("Notes Hit: %v / %v", s.TotalHit, s.TotalSpawned),
		fmt.Sprintf("Accuracy: %.2f%%", s.Accuracy*100),
	}
	if nil != best {
		lines = append(lines, fmt.Sprintf("Best: %v (%.2f%%)", best.Score, best.Accuracy*100))
	}
	if len(recent) > 0 {
		scores := make([]string, len(recent))
		for i, run := range recent {
			scores[i] = strconv.FormatUint(run.Score, 10)
		}
		lines = append(lines, "Recent: "+strings.Join(scores, ", "))
	}
	lines = append(lines, "", "Press any key to exit")

	top := (r.rows - len(lines)) / 2
	for i, l := range lines {
		r.centre(top+i, l)
	}
	r.flush()
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) FillColor(row, column int, c color.RGBA, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H\033[38;2;")
	r.buffer.WriteString(strconv.Itoa(int(c.R)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.G)))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(int(c.B)))
	r.buffer.WriteString("m")
	r.buffer.WriteString(message)
	r.buffer.WriteString("\033[0m")
}

func (r *DefaultRenderer) flush() {
	io.WriteString(r.Out, r.buffer.String())
	r.buffer.Reset()
}
