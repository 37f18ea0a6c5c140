package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app holds the state shared by all commands of one root command
type app struct {
	v        *viper.Viper
	cfgFile  string
	settings config.Settings
	logger   *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: slog.Default()}
	config.SetDefaults(a.v)

	rootCmd := &cobra.Command{
		Use:   "paygo",
		Short: "UK weekly pay deduction calculator",
		Long: `paygo works out income tax, National Insurance and pension deductions
from an hourly pay rate, and keeps a history of saved weeks to compare.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.initConfig,
	}

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default: $HOME/.config/paygo/config.yaml)")
	pf.String("store", "sqlite", "week store backend (memory, file, sqlite)")
	pf.String("store-path", "", "week store location (default: $HOME/.local/share/paygo)")
	pf.String("rates", "", "rate table YAML file (default: built-in 2024/25 rates)")
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")

	// Bind flags to viper
	_ = a.v.BindPFlag(config.KeyStore, pf.Lookup("store"))
	_ = a.v.BindPFlag(config.KeyStorePath, pf.Lookup("store-path"))
	_ = a.v.BindPFlag(config.KeyRatesFile, pf.Lookup("rates"))
	_ = a.v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = a.v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))

	rootCmd.AddCommand(a.calculateCmd())
	rootCmd.AddCommand(a.weeksCmd())
	rootCmd.AddCommand(a.compareCmd())
	rootCmd.AddCommand(a.taxCodeCmd())
	rootCmd.AddCommand(a.ratesCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func main() {
	// Set up signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) initConfig(cmd *cobra.Command, _ []string) error {
	if err := config.ReadConfig(a.v, a.cfgFile); err != nil {
		return err
	}

	settings, err := config.LoadSettings(a.v)
	if err != nil {
		return err
	}
	a.settings = settings

	logger, err := setupLogging(cmd, settings)
	if err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}
	a.logger = logger
	return nil
}

func setupLogging(cmd *cobra.Command, settings config.Settings) (*slog.Logger, error) {
	var level slog.Level
	switch settings.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", settings.LogLevel)
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch settings.LogFormat {
	case "console":
		handler = slog.NewTextHandler(cmd.ErrOrStderr(), opts)
	case "json":
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		return nil, fmt.Errorf("invalid log format: %s", settings.LogFormat)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "paygo %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "go %s\n", bi.GoVersion)
			}
		},
	}
}
