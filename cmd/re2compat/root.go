package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dlclark/re2compat"
)

var rootCmd = &cobra.Command{
	Use:           "re2compat",
	Short:         "re2compat runs Python style regular expressions on RE2",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

func init() {
	cobra.OnInitialize(initLog)
	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "TOML file with compiler options")
	rootCmd.PersistentFlags().StringP("flags", "f", "", "pattern flags as inline letters, e.g. \"imx\"")
	rootCmd.PersistentFlags().String("engine", "", "automaton engine for text patterns (stdlib, re2)")
	rootCmd.PersistentFlags().String("notify", "warn", "fallback notification (quiet, warn, raise)")
	rootCmd.PersistentFlags().Bool("no-color", false, "turn off color for log output")

	rootCmd.AddCommand(explainCmd, searchCmd)
}

var logLevel = zerolog.InfoLevel

func initLog() {
	noColor, _ := rootCmd.PersistentFlags().GetBool("no-color")
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, NoColor: noColor})
	}

	ll, err := rootCmd.PersistentFlags().GetString("log-level")
	if err != nil {
		logger.Fatal().Msg(err.Error())
	}

	switch strings.ToLower(ll) {
	case "trace":
		logLevel = zerolog.TraceLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	case "info":
		logLevel = zerolog.InfoLevel
	case "warn":
		logLevel = zerolog.WarnLevel
	case "err", "error":
		logLevel = zerolog.ErrorLevel
	case "fatal":
		logLevel = zerolog.FatalLevel
	default:
		logger.Warn().Msgf("unknown log level: %s", ll)
	}
	logger = logger.Level(logLevel)
}

// newCompiler builds a Compiler from the config file and the command line;
// flags given on the command line win.
func newCompiler(cmd *cobra.Command) (*re2compat.Compiler, re2compat.Flag, error) {
	opts := re2compat.DefaultOptions()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, 0, err
		}
		if opts, err = re2compat.LoadOptions(data); err != nil {
			return nil, 0, err
		}
		logger.Debug().Str("path", path).Msg("loaded compiler options")
	}
	if engine, _ := cmd.Flags().GetString("engine"); engine != "" {
		opts.Engine = engine
	}
	if cmd.Flags().Changed("notify") || opts.Notification == nil {
		s, _ := cmd.Flags().GetString("notify")
		level, err := re2compat.ParseNotificationLevel(s)
		if err != nil {
			return nil, 0, err
		}
		opts.Notification = re2compat.NewNotification(level)
	}
	opts.Logger = &logger

	c, err := re2compat.NewCompiler(opts)
	if err != nil {
		return nil, 0, err
	}
	letters, _ := cmd.Flags().GetString("flags")
	flags, err := re2compat.ParseFlags(letters)
	if err != nil {
		return nil, 0, fmt.Errorf("--flags: %w", err)
	}
	return c, flags, nil
}
