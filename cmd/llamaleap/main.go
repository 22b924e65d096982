// llamaleap is a side-scrolling "flap through the gaps" game for the terminal.
//
// Usage:
//
//	llamaleap list                 - List available games
//	llamaleap play [game]          - Play a game (default: llamaleap)
//	llamaleap serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--log-level <level>  - debug, info, warn, error (default: info)
//	--log-file <path>    - Write logs to a file while the game owns the terminal
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/llama-leap/internal/games/llamaleap"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "llamaleap",
	Short: "Llama Leap - flap a llama through the pipes",
	Long: `Llama Leap is a one-button side-scroller for the terminal.

Available commands:
  list     - Show all available games
  play     - Play, standalone or over a chat transcript
  serve    - Start SSH server for remote play

Examples:
  llamaleap list
  llamaleap play --variant arcade
  llamaleap play --busy 20s
  llamaleap serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. Interactive commands pass a nil
// fallback so nothing is written over the alternate screen unless
// --log-file is set. The returned closer must be called on exit.
func newLogger(prefix string, fallback io.Writer) (*log.Logger, func() error, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	out := fallback
	closer := func() error { return nil }
	if flagLogFile != "" {
		f, openErr := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if openErr != nil {
			return nil, nil, fmt.Errorf("open log file: %w", openErr)
		}
		out = f
		closer = f.Close
	}
	if out == nil {
		out = io.Discard
	}

	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           level,
	})
	return logger, closer, nil
}
