package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/cojovi/ReplitRanchDefense/internal/audio"
	"github.com/cojovi/ReplitRanchDefense/internal/config"
	"github.com/cojovi/ReplitRanchDefense/internal/game"
	"github.com/cojovi/ReplitRanchDefense/internal/logging"
	"github.com/cojovi/ReplitRanchDefense/internal/spectator"
	"github.com/cojovi/ReplitRanchDefense/internal/view"
)

func main() {
	configDir := flag.String("config", ".", "directory holding ranch.{json,toml,yaml}")
	flag.Parse()

	cfg, err := config.Load(*configDir)
	if err != nil {
		boot := logging.New(os.Stderr, "error", "console")
		boot.Fatal().Err(err).Msg("config")
	}
	log := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var notifiers game.Notifiers
	var voice view.Voice
	if cfg.Audio.Enabled {
		sound := audio.NewSoundManager(cfg.Audio.Volume, log)
		if err := sound.Initialize(); err != nil {
			log.Warn().Err(err).Msg("audio unavailable, running silent")
		}
		defer sound.Cleanup()
		notifiers = append(notifiers, sound)
		voice = sound
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var pub view.Publisher
	if cfg.Spectator.Enabled {
		hub := spectator.NewHub(cfg.Spectator.Buffer, logging.Sampled(log))
		notifiers = append(notifiers, hub)
		pub = hub
		go func() {
			if err := spectator.Run(ctx, cfg.Spectator.Addr, cfg.Spectator.Path, hub); err != nil {
				log.Error().Err(err).Msg("spectator feed stopped")
			}
		}()
	}

	sim := game.New(cfg.Tuning,
		game.WithSeed(seed),
		game.WithLogger(log),
		game.WithNotifier(notifiers),
		game.WithVerbose(cfg.Verbose),
	)
	sim.SetDifficulty(cfg.DifficultyLevel())
	log.Info().Int64("seed", seed).Stringer("difficulty", sim.Session.Difficulty()).Msg("ranch open")

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	g := view.New(sim, view.Options{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Publisher: pub,
		Voice:     voice,
		Log:       log,
		Done:      ctx.Done(),
	})
	if err := ebiten.RunGame(g); err != nil {
		log.Error().Err(err).Msg("game loop")
	}
	if sim.Session.State() != game.StateMenu {
		log.Info().Msg("\n" + sim.Report().String())
	}
}
