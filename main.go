package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/notefall/internal/audio"
	"git.lost.host/meutraa/notefall/internal/config"
	"git.lost.host/meutraa/notefall/internal/engine"
	"git.lost.host/meutraa/notefall/internal/game"
	"git.lost.host/meutraa/notefall/internal/history"
	"git.lost.host/meutraa/notefall/internal/input"
	"git.lost.host/meutraa/notefall/internal/render"
	"git.lost.host/meutraa/notefall/internal/session"
	"git.lost.host/meutraa/notefall/internal/track"
)

// Earlier runs listed on the game over screen
const recentRuns = 3

func main() {
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

// openAudio never fails, a song that cannot be played is played silently
func openAudio(cfg *config.Config) audio.Player {
	if cfg.Mute {
		return audio.NewSilent(cfg.Length)
	}
	assets, err := track.Resolve(cfg.Sounds, cfg.Song)
	if nil != err {
		log.Println(err)
		return audio.NewSilent(cfg.Length)
	}
	log.Printf("Opening %v (hit %v, miss %v)\n", assets.Track, assets.Hit, assets.Miss)
	p, err := audio.Open(assets, cfg.Volume)
	if nil != err {
		log.Println("unable to open track", err)
		return audio.NewSilent(cfg.Length)
	}
	return p
}

func openInput(cfg *config.Config) (input.Source, error) {
	if cfg.Device != "" {
		return input.OpenDevice(cfg.Device)
	}
	return input.OpenKeyboard(cfg.KeyHold)
}

func waitForKey(ctx context.Context, events <-chan input.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok || ev.Down {
				return
			}
		}
	}
}

func run() error {
	cfg, err := config.Parse(os.Args[1:])
	if nil != err {
		return err
	}

	if cfg.Log != "" {
		f, err := os.OpenFile(cfg.Log, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if nil != err {
			return fmt.Errorf("unable to open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	// Ensure our Default implementations are used as interfaces
	var r render.Renderer = &render.DefaultRenderer{}
	var store history.Store

	if cfg.History != "" {
		s := &history.DefaultStore{Path: cfg.History}
		if err := s.Init(); nil != err {
			log.Println("unable to open history", err)
		} else {
			store = s
			defer s.Deinit()
		}
	}

	player := openAudio(cfg)
	defer player.Close()

	source, err := openInput(cfg)
	if nil != err {
		return err
	}
	defer func() {
		if err := source.Close(); nil != err {
			log.Println("unable to close input", err)
		}
	}()

	// Clear the screen and hide the cursor
	if err := r.Init(); nil != err {
		return err
	}
	defer func() {
		// Restore the terminal state
		r.Deinit()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := engine.New(cfg.Engine())
	summary, err := session.New(e, player, r, cfg.Session()).Run(ctx, source.Events())
	if nil != err && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Printf("%v on %v: score %v, %v/%v hit\n", summary.Track, summary.Difficulty, summary.Score, summary.TotalHit, summary.TotalSpawned)

	var best *game.Summary
	var recent []game.Summary
	if nil != store {
		previous, err := store.Best(summary.Track, summary.Difficulty)
		if nil != err {
			log.Println("unable to load best run", err)
		} else if nil != previous {
			best = &previous.Summary
		}
		if recent, err = history.Recent(store, summary.Track, summary.Difficulty, recentRuns); nil != err {
			log.Println("unable to load recent runs", err)
		}
		if _, err := store.Save(summary); nil != err {
			log.Println(err)
		}
	}

	r.Summary(summary, best, recent)
	waitForKey(ctx, source.Events())
	return nil
}
