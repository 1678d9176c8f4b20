package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jeffrydegrande/resemble/config"
	"github.com/jeffrydegrande/resemble/logging"
	"github.com/spf13/cobra"
)

const usageText = `Usage: resemble <file_a.rs> <file_b.rs>
Ensure that both Rust source files exist before comparing.`

var (
	cfg    = config.Default()
	logger = logging.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "resemble <file_a.rs> <file_b.rs>",
	Short: "Resemble scores the structural similarity of Rust source files",
	Long: `Resemble parses Rust source files with Tree-sitter, counts the syntactic
constructs they contain, and compares the resulting count vectors with cosine
similarity. Two files built from the same kinds of statements, expressions,
types and patterns score close to 1 regardless of identifiers or literals.`,
	Args:              cobra.ArbitraryArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              compareMain,
}

// Execute adds all child commands to the root command and exits with the
// status of the command that ran.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command tree and maps its error to an exit status
func run(args []string, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice
		args = []string{}
	}
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}

	var exit *exitError
	if !errors.As(err, &exit) {
		// Flag and argument errors raised by cobra itself
		exit = usageError(err.Error())
	}
	for _, line := range exit.lines {
		fmt.Fprintln(stderr, line)
	}
	return exit.code
}

// setup loads configuration and builds the logger before any command runs
func setup(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")

	loaded, resolved, exists, err := config.Load(configPath)
	if err != nil {
		return failure(fmt.Errorf("error loading config: %w", err))
	}

	if cmd.Flags().Changed("log-level") {
		loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
	}
	if cmd.Flags().Changed("log-format") {
		loaded.Log.Format, _ = cmd.Flags().GetString("log-format")
	}

	l, err := logging.New(logging.Options{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return usageError(err.Error())
	}

	cfg = *loaded
	logger = l
	logger.Debug("configuration loaded", slog.String("path", resolved), slog.Bool("found", exists))
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to a TOML configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-format", "", "Log format: auto, console or json")
}
