package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/arbitrary/pkg/config"
	"github.com/getmockd/arbitrary/pkg/logging"
)

var (
	// Persistent flags available to all subcommands
	logLevel   string
	logFormat  string
	logFile    string
	jsonOutput bool

	// settings and logger are set up before every command runs.
	settings config.Settings
	logger   = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arbitrary",
	Short: "arbitrary samples constrained random values from generator definitions",
	Long: `arbitrary builds random value generators from YAML or JSON definition
documents and samples them.

A definition names a base type (int8, int16, int32, int64, int, char, string
or uuid) and a list of steps. Shape steps pick the domain values are drawn
from; refinement steps (filter, map, unique, injectNull) run in order on every
draw.

Settings can be provided via flags, ARBITRARY_* environment variables, or the
document itself, in that order of precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true, // We handle errors in Main()
	PersistentPreRunE: setup,
}

// Main runs the command line and returns the process exit code.
func Main() int {
	return run(os.Args[1:], os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from ARBITRARY_LOG_LEVEL or info)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from ARBITRARY_LOG_FORMAT or text)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also append JSON logs to this file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output command results in JSON format")
}

// setup reads the environment and builds the logger. Flags win over
// environment values.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	if settings, err = config.LoadSettings(); err != nil {
		return err
	}

	levelName := settings.LogLevel
	if cmd.Flags().Changed("log-level") {
		levelName = logLevel
	}
	level, err := logging.ParseLevelStrict(levelName)
	if err != nil {
		return err
	}
	format := settings.LogFormat
	if cmd.Flags().Changed("log-format") {
		format = logFormat
	}

	cfg := logging.Config{
		Level:  level,
		Format: logging.ParseFormat(format),
		Output: cmd.ErrOrStderr(),
	}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cobra.OnFinalize(func() { _ = f.Close() })
		cfg.Tee = f
	}
	logger = logging.New(cfg).With("command", commandPath(cmd))
	logger.Debug("starting", "version", Version)
	return nil
}

// commandPath returns the command path without the binary name.
func commandPath(cmd *cobra.Command) string {
	path := cmd.CommandPath()
	if i := strings.IndexByte(path, ' '); i >= 0 {
		return path[i+1:]
	}
	return path
}

// loadDocument loads the document at path, or at the configured default
// when path is empty, and overlays environment settings.
func loadDocument(path string) (*config.Document, error) {
	if path == "" {
		path = settings.ConfigPath
	}
	doc, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	settings.Apply(doc)
	logger.Debug("loaded document", slog.String("path", path), slog.Int("generators", len(doc.Generators)))
	return doc, nil
}
