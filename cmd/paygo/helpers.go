package main

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/paygo/internal/calculation"
	"github.com/rgehrsitz/paygo/internal/config"
	"github.com/rgehrsitz/paygo/internal/storage"
)

// newEngine builds a deduction engine from the configured rate table
func (a *app) newEngine() (*calculation.DeductionEngine, error) {
	engine := calculation.NewDeductionEngine()
	if a.settings.RatesFile != "" {
		rates, err := config.NewInputParser().LoadRates(a.settings.RatesFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load rates: %w", err)
		}
		engine = calculation.NewDeductionEngineWithRates(*rates)
		a.logger.Debug("loaded rate table", "file", a.settings.RatesFile, "tax_year", rates.TaxYear)
	}
	engine.SetLogger(calculation.NewSlogLogger(a.logger))
	engine.Debug = a.settings.LogLevel == "debug"
	return engine, nil
}

// openStore opens the configured week store. The caller must close the returned KV.
func (a *app) openStore(ctx context.Context) (*storage.WeekStore, storage.KV, error) {
	kv, err := storage.Open(ctx, a.settings.Store, a.settings.StorePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s store: %w", a.settings.Store, err)
	}
	a.logger.Debug("opened week store", "backend", a.settings.Store, "path", a.settings.StorePath)
	return storage.NewWeekStore(kv), kv, nil
}
