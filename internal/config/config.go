package config

import (
	"fmt"
	"strings"
	"time"

	"git.lost.host/meutraa/notefall/internal/engine"
	"git.lost.host/meutraa/notefall/internal/game"
	"git.lost.host/meutraa/notefall/internal/input"
	"git.lost.host/meutraa/notefall/internal/session"
	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	PauseKey  = "p"
	RebindKey = "r"
	QuitKey   = input.KeyEscape
)

type Config struct {
	Song       string
	Sounds     string
	Difficulty game.Difficulty
	Keys       []string
	Shape      game.Shape

	Width, Height float64
	HitZone       float64
	MissMargin    float64

	FPS           float64
	SpawnInterval time.Duration
	EndCheck      time.Duration
	Length        time.Duration
	AutoStart     bool
	Seed          int64

	Volume  float64
	Mute    bool
	History string
	Device  string
	KeyHold time.Duration
	Log     string
}

// Parse reads the command line, args excludes the program name.
func Parse(args []string) (*Config, error) {
	var c Config
	var difficulty, keys, shape string
	var noteSize float64

	app := kingpin.New("notefall", "Four lane rhythm game for the terminal")
	app.Version("0.3.0")
	app.Arg("song", "Track to play, looked up by name in the sound directory").Required().StringVar(&c.Song)
	app.Flag("sounds", "Directory holding tracks and hit/miss cues").Default("sounds").Short('S').StringVar(&c.Sounds)
	app.Flag("difficulty", "Note speed").Default(string(game.Easy)).Short('d').EnumVar(&difficulty,
		string(game.Easy), string(game.Medium), string(game.Hard), string(game.UltraHard))
	app.Flag("keys", "Lane keys, left to right").Default(game.DefaultKeys).Short('k').StringVar(&keys)
	app.Flag("shape", "Note shape").Default("circle").EnumVar(&shape, "circle", "rect")
	app.Flag("note-size", "Note diameter or width").Default("40").Float64Var(&noteSize)
	app.Flag("width", "Logical viewport width").Default("800").Float64Var(&c.Width)
	app.Flag("height", "Logical viewport height").Default("600").Float64Var(&c.Height)
	app.Flag("hit-zone", "Height of the hit zone above the bottom edge").Default("40").Float64Var(&c.HitZone)
	app.Flag("miss-margin", "Distance past the bottom edge before a note is missed").Default("0").Float64Var(&c.MissMargin)
	app.Flag("fps", "Frames per second").Default("60").Short('f').Float64Var(&c.FPS)
	app.Flag("spawn-every", "Time between notes").Default("1s").DurationVar(&c.SpawnInterval)
	app.Flag("end-check", "Time between end of song checks").Default("100ms").DurationVar(&c.EndCheck)
	app.Flag("length", "Song length when no track can be played").Default("60s").Short('l').DurationVar(&c.Length)
	app.Flag("auto-start", "Start as soon as the track is ready").Default("false").BoolVar(&c.AutoStart)
	app.Flag("seed", "Random seed for lane selection, 0 picks one").Default("0").Int64Var(&c.Seed)
	app.Flag("volume", "Track volume").Default("0.3").Float64Var(&c.Volume)
	app.Flag("mute", "Play without sound").Short('m').BoolVar(&c.Mute)
	app.Flag("history", "Score database, empty disables").Default("./scores.db").StringVar(&c.History)
	app.Flag("device", "Read an evdev keyboard instead of the terminal").StringVar(&c.Device)
	app.Flag("key-hold", "How long a terminal key press stays down").Default("120ms").DurationVar(&c.KeyHold)
	app.Flag("log", "Log file, empty logs to stderr").Default("notefall.log").StringVar(&c.Log)

	if _, err := app.Parse(args); nil != err {
		return nil, err
	}

	var err error
	if c.Difficulty, err = game.ParseDifficulty(difficulty); nil != err {
		return nil, err
	}
	if c.Shape, err = game.NewShape(shape, noteSize); nil != err {
		return nil, err
	}
	c.Keys = strings.Split(keys, "")
	if _, err := game.NewBindings(c.Keys); nil != err {
		return nil, fmt.Errorf("invalid keys %q: %w", keys, err)
	}
	for _, k := range c.Keys {
		switch k {
		case PauseKey, RebindKey:
			return nil, fmt.Errorf("%q is reserved and cannot be bound to a lane", k)
		}
	}

	switch {
	case noteSize <= 0:
		return nil, fmt.Errorf("note size must be positive, got %v", noteSize)
	case c.Width <= 0 || c.Height <= 0:
		return nil, fmt.Errorf("viewport must be positive, got %vx%v", c.Width, c.Height)
	case c.HitZone <= 0 || c.HitZone > c.Height:
		return nil, fmt.Errorf("hit zone must be within the viewport, got %v", c.HitZone)
	case c.MissMargin < 0:
		return nil, fmt.Errorf("miss margin cannot be negative, got %v", c.MissMargin)
	case c.FPS <= 0:
		return nil, fmt.Errorf("fps must be positive, got %v", c.FPS)
	case c.SpawnInterval <= 0 || c.EndCheck <= 0:
		return nil, fmt.Errorf("intervals must be positive")
	case c.Volume < 0 || c.Volume > 1:
		return nil, fmt.Errorf("volume must be between 0 and 1, got %v", c.Volume)
	}

	return &c, nil
}

func (c *Config) Engine() engine.Options {
	bindings, _ := game.NewBindings(c.Keys)
	return engine.Options{
		Track:      c.Song,
		Difficulty: c.Difficulty,
		Bindings:   bindings,
		Shape:      c.Shape,
		Width:      c.Width,
		Height:     c.Height,
		HitZone:    c.HitZone,
		MissMargin: c.MissMargin,
		Seed:       c.Seed,
	}
}

func (c *Config) Session() session.Options {
	return session.Options{
		FramePeriod:      time.Duration(float64(time.Second) / c.FPS),
		SpawnInterval:    c.SpawnInterval,
		EndCheckInterval: c.EndCheck,
		Length:           c.Length,
		AutoStart:        c.AutoStart,
		PauseKey:         PauseKey,
		QuitKey:          QuitKey,
		RebindKey:        RebindKey,
	}
}
