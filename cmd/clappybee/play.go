package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/clappy-bee/internal/audio"
	"github.com/vovakirdan/clappy-bee/internal/config"
	"github.com/vovakirdan/clappy-bee/internal/core"
	"github.com/vovakirdan/clappy-bee/internal/games/bee"
	"github.com/vovakirdan/clappy-bee/internal/platform/tui"
	"github.com/vovakirdan/clappy-bee/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMute       bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play Clappy Bee",
	Long: `Start a game in this terminal.

Controls:
  Space/Up/W - Flap (also starts the game)
  Enter      - Start / restart
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.clappybee/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Pipes start at base speed and speed up with the score
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - Constant pipe speed (default)

Examples:
  clappybee play
  clappybee play --difficulty hard
  clappybee play --mute --store gdata
  clappybee play --config ./my-bee.yaml`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
}

// loadGameConfig reads the YAML config and applies --difficulty.
func loadGameConfig() (config.BeeConfig, error) {
	preset, ok := config.ParsePreset(flagDifficulty)
	if !ok {
		return config.BeeConfig{}, fmt.Errorf("unknown --difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	cfg, err := config.LoadBee(flagConfig)
	if err != nil {
		return config.BeeConfig{}, err
	}
	config.ApplyBeePreset(&cfg, preset)
	return cfg, nil
}

func runPlay(_ *cobra.Command, _ []string) error {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Storage is optional: without it the game still runs, best kept in memory.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	var best bee.ScoreStore
	if backend, backendErr := openBestBackend(store); backendErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: best score will not be saved: %v\n", backendErr)
	} else {
		best = storage.NewBestScore(backend, logger)
	}

	listeners := []bee.Listener{
		bee.ListenerFunc(func(e bee.Event) {
			logger.Debug("Game event", "event", e)
		}),
	}
	if gameCfg.Audio.Enabled && !flagMute {
		sound := audio.NewSoundManager(gameCfg.Audio.Volume)
		if soundErr := sound.Initialize(); soundErr != nil {
			logger.Warn("Sound disabled", "err", soundErr)
		} else {
			defer sound.Cleanup()
			listeners = append(listeners, sound)
		}
	}

	game := bee.New(gameCfg, best, listeners...)
	defer game.Close()

	opts := []tui.ModelOption{tui.WithLogger(logger)}
	if store != nil {
		opts = append(opts, tui.WithRecorder(store))
	}

	logger.Info("Starting game", "width", width, "height", height, "difficulty", flagDifficulty, "store", flagStore)
	if err := tui.Run(game, rt, opts...); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
