package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/storage"
	"github.com/rgehrsitz/paygo/internal/tui"
)

func newRootCmd() *cobra.Command {
	v := viper.New()
	config.SetDefaults(v)
	var cfgFile, logFile string

	cmd := &cobra.Command{
		Use:          "paygo-tui",
		Short:        "Interactive weekly pay calculator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.ReadConfig(v, cfgFile); err != nil {
				return err
			}
			settings, err := config.LoadSettings(v)
			if err != nil {
				return err
			}
			return run(cmd.Context(), settings, logFile)
		},
	}

	f := cmd.Flags()
	f.StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/paygo/config.yaml)")
	f.StringVar(&logFile, "log-file", "", "write logs to this file (the terminal is in use)")
	f.String("store", "sqlite", "week store backend (memory, file, sqlite)")
	f.String("store-path", "", "week store location (default: $HOME/.local/share/paygo)")
	f.String("rates", "", "rate table YAML file (default: built-in 2024/25 rates)")
	_ = v.BindPFlag(config.KeyStore, f.Lookup("store"))
	_ = v.BindPFlag(config.KeyStorePath, f.Lookup("store-path"))
	_ = v.BindPFlag(config.KeyRatesFile, f.Lookup("rates"))
	return cmd
}

func run(ctx context.Context, settings config.Settings, logFile string) error {
	engine := calculation.NewDeductionEngine()
	if settings.RatesFile != "" {
		rates, err := config.NewInputParser().LoadRates(settings.RatesFile)
		if err != nil {
			return fmt.Errorf("failed to load rates: %w", err)
		}
		engine = calculation.NewDeductionEngineWithRates(*rates)
	}

	if logFile != "" {
		f, err := tea.LogToFile(config.ExpandPath(logFile), "paygo-tui")
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		engine.SetLogger(calculation.NewSlogLogger(slog.New(slog.NewTextHandler(f, nil))))
	}

	kv, err := storage.Open(ctx, settings.Store, settings.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", settings.Store, err)
	}
	defer kv.Close()

	model := tui.NewModel(ctx, engine, storage.NewWeekStore(kv))

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := newRootCmd().ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
