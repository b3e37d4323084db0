// Command bazoscrape prints the title, price, date and description of one
// bazos.sk listing.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hyperifyio/bazoscrape/internal/app"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

func main() {
	// Logging setup
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	os.Exit(execute(os.Args[1:], os.Stdout))
}

// execute runs the root command and maps its outcome to an exit code.
func execute(args []string, stdout io.Writer) int {
	cmd := newRootCmd(stdout)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, app.ErrUsage):
		return exitUsage
	default:
		return exitFailure
	}
}

type flagValues struct {
	configPath string
	userAgent  string
	timeout    time.Duration
	width      int
	verbose    bool
}

func newRootCmd(stdout io.Writer) *cobra.Command {
	var fv flagValues

	cmd := &cobra.Command{
		Use:   "bazoscrape <URL>",
		Short: "Print the fields of a bazos.sk listing",
		Long: `bazoscrape fetches one bazos.sk advertisement and prints its title, price,
date of last change and description. The description is wrapped at 80
characters per line.`,
		Version:       app.VersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Argument count is checked in RunE so the fixed usage line is printed
		// instead of cobra's own error.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(args) != 1 {
				fmt.Fprintln(out, app.UsageMessage)
				return app.ErrUsage
			}

			cfg, err := buildConfig(cmd, fv)
			if err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return err
			}
			if cfg.Verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			a, err := app.New(cfg, app.WithOutput(out))
			if err != nil {
				log.Error().Err(err).Msg("invalid configuration")
				return fmt.Errorf("init app: %w", err)
			}
			return a.Run(cmd.Context(), args[0])
		},
	}
	cmd.SetOut(stdout)
	// Unknown flags and bad flag values are usage errors too.
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		log.Error().Err(err).Msg("invalid command line")
		fmt.Fprintln(cmd.OutOrStdout(), app.UsageMessage)
		return fmt.Errorf("%w: %v", app.ErrUsage, err)
	})

	f := cmd.Flags()
	f.StringVar(&fv.configPath, "config", "", "Path to YAML or JSON config file (default $"+app.EnvConfig+")")
	f.StringVar(&fv.userAgent, "user-agent", "", "User-Agent header sent to bazos.sk")
	f.DurationVar(&fv.timeout, "timeout", 0, "Overall request timeout (default 30s)")
	f.IntVar(&fv.width, "width", 0, "Description line width in characters (default 80)")
	f.BoolVarP(&fv.verbose, "verbose", "v", false, "Verbose logging")
	return cmd
}

// buildConfig layers explicitly set flags over the config file over the
// environment. Defaults are applied later by app.New.
func buildConfig(cmd *cobra.Command, fv flagValues) (app.Config, error) {
	var cfg app.Config
	flags := cmd.Flags()
	if flags.Changed("user-agent") {
		cfg.UserAgent = fv.userAgent
	}
	if flags.Changed("timeout") {
		cfg.Timeout = fv.timeout
	}
	if flags.Changed("width") {
		cfg.Width = fv.width
	}
	cfg.Verbose = fv.verbose

	path := fv.configPath
	if strings.TrimSpace(path) == "" {
		path = os.Getenv(app.EnvConfig)
	}
	if strings.TrimSpace(path) != "" {
		fc, err := app.LoadConfigFile(path)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		if err := app.ApplyFileConfig(&cfg, fc); err != nil {
			return cfg, err
		}
	}
	if err := app.ApplyEnvToConfig(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
