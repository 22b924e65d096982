package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/llama-leap/internal/core"
	"github.com/vovakirdan/llama-leap/internal/games/llamaleap"
	"github.com/vovakirdan/llama-leap/internal/platform/tui"
	"github.com/vovakirdan/llama-leap/internal/registry"
)

var (
	flagConfig  string
	flagVariant string
	flagBusy    time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game (default: llamaleap).

Variants:
  overlay - The game floats over a chat transcript while the reply is
            being composed (--busy sets how long that takes)
  arcade  - Standalone game with sky and clouds

Controls:
  Space/Up/Click - Flap
  R              - Play again (after game over)
  Enter          - Read message (overlay, once the reply is ready)
  Esc/X          - Close the game
  Q/Ctrl+C       - Quit

Examples:
  llamaleap play
  llamaleap play --busy 30s
  llamaleap play --variant arcade --seed 42
  llamaleap play --config ./my-llamaleap.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagVariant, "variant", "overlay", "Visual variant: overlay, arcade")
	playCmd.Flags().DurationVar(&flagBusy, "busy", 15*time.Second, "How long the chat reply stays pending (overlay only)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := llamaleap.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'llamaleap list' to see available games", gameID)
	}

	variant, err := llamaleap.ParseVariant(flagVariant)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger("llamaleap", nil)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck // Best-effort close on exit

	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cfg.Seed = seed
	logger.Info("starting", "game", gameID, "variant", variant, "seed", seed, "fps", flagFPS)

	if variant == llamaleap.VariantOverlay {
		return tui.RunOverlay(tui.OverlayOptions{
			Runtime:    cfg,
			Logger:     logger,
			GameID:     gameID,
			Variant:    variant.String(),
			ConfigPath: flagConfig,
			BusyFor:    flagBusy,
		})
	}

	game, err := registry.Create(gameID, registry.Mount{
		Variant:    variant.String(),
		OnClose:    func() { logger.Info("game closed") },
		Seed:       seed,
		ConfigPath: flagConfig,
	})
	if err != nil {
		return err
	}

	return tui.Run(game, tui.HostOptions{Runtime: cfg, Logger: logger})
}
