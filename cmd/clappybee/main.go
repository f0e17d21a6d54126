// clappybee is a terminal Flappy-Bird-style game: steer a bee through the
// gaps of scrolling pipes.
//
// Usage:
//
//	clappybee play           - Play in this terminal
//	clappybee scores         - Show high scores
//	clappybee serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.clappybee/scores.db)
//	--store <backend>     - Best score backend: sqlite or gdata
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Append logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/clappy-bee/internal/storage"
)

// gdataAppName names the per-user data directory of the gdata backend.
const gdataAppName = "clappybee"

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagStore    string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "clappybee",
	Short: "Clappy Bee - flap a bee through the pipes in your terminal",
	Long: `Clappy Bee is a terminal take on the tap-to-flap genre: the bee falls,
you flap, and every pipe pair you slip through scores a point.

Available commands:
  play     - Play in this terminal
  scores   - View high scores
  serve    - Start SSH server for remote play

Examples:
  clappybee play
  clappybee play --difficulty hard
  clappybee scores --tui
  clappybee serve --ssh :2222`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.clappybee/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "sqlite", "Best score backend: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Append logs to this file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the process logger. fallback receives logs when no
// --log-file is given; interactive commands pass io.Discard so logs do not
// tear the alt screen. The returned func closes the log file.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "clappybee",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openBestBackend returns the backend selected by --store. The sqlite
// backend reuses store, which may be nil when the database failed to open.
func openBestBackend(store *storage.Store) (storage.BestBackend, error) {
	switch flagStore {
	case "sqlite":
		if store == nil {
			return nil, fmt.Errorf("scores database unavailable")
		}
		return store, nil
	case "gdata":
		return storage.OpenGData(gdataAppName)
	default:
		return nil, fmt.Errorf("unknown --store %q (want sqlite or gdata)", flagStore)
	}
}
