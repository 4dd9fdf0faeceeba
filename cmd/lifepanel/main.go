// Command lifepanel runs the country-year panel cleaning and
// cross-validation pipeline: it reads the two wide CSV inputs, merges and
// filters them into the cleaned dataset, persists it, publishes the CSV
// artifact and prints the per-fold holdout scores.
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"lifepanel/internal/blob"
	"lifepanel/internal/core"
	"lifepanel/internal/ingest"
	"lifepanel/pkg/domain"
)

func main() {
	lifePath := flag.String("life", "", "path to the wide life-expectancy CSV (required)")
	gdpPath := flag.String("gdp", "", "path to the wide GDP-per-capita CSV (required)")
	artifactKey := flag.String("artifact", "cleaned/lifepanel.csv", "blob key for the cleaned dataset artifact")
	cutoff := flag.Int("cutoff", 2024, "historical-year cutoff")
	historical := flag.Bool("historical", true, "drop rows with year beyond the cutoff")
	lifeMin := flag.Float64("life-min", 0, "lower plausibility bound for life expectancy")
	lifeMax := flag.Float64("life-max", 120, "upper plausibility bound for life expectancy")
	minFoldSize := flag.Int("min-fold-size", 10, "minimum countries per cross-validation fold")
	seed := flag.Int64("seed", 42, "random seed for fold assignment")
	flag.Parse()

	if *lifePath == "" || *gdpPath == "" {
		fmt.Fprintln(os.Stderr, "usage: lifepanel -life <csv> -gdp <csv> [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}
	if err := run(*lifePath, *gdpPath, *artifactKey, core.Config{
		Filter: core.FilterConfig{
			LifeExpectancyMin: *lifeMin,
			LifeExpectancyMax: *lifeMax,
			HistoricalOnly:    *historical,
			CutoffYear:        *cutoff,
		},
		MinFoldSize: *minFoldSize,
		Seed:        *seed,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "lifepanel: %v\n", err)
		os.Exit(1)
	}
}

func run(lifePath, gdpPath, artifactKey string, cfg core.Config) error {
	ctx := context.Background()

	zl, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = zl.Sync() }()
	logger := zapLogger{zl.Sugar()}

	life, err := ingest.ReadWideCSVFile(lifePath, domain.VariableLifeExpectancy)
	if err != nil {
		return err
	}
	gdp, err := ingest.ReadWideCSVFile(gdpPath, domain.VariableGDPPerCapita)
	if err != nil {
		return err
	}

	store, err := core.OpenDatasetStore()
	if err != nil {
		return fmt.Errorf("open dataset store: %w", err)
	}
	defer func() { _ = store.Close() }()

	svc := core.NewService(cfg,
		core.WithLogger(logger),
		core.WithStore(store),
		core.WithMetrics(core.NewExpvarMetricsRecorder("")),
	)
	result, err := svc.Run(ctx, core.RunInput{LifeExpectancy: life, GDPPerCapita: gdp})
	if err != nil {
		return err
	}

	payload, err := ingest.EncodeDatasetCSV(result.Records)
	if err != nil {
		return err
	}
	artifacts, err := blob.Open(ctx)
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}
	info, err := artifacts.Put(ctx, artifactKey, bytes.NewReader(payload), blob.PutOptions{
		ContentType: "text/csv",
		Metadata:    map[string]string{"rows": strconv.Itoa(len(result.Records))},
	})
	if err != nil {
		return fmt.Errorf("publish artifact: %w", err)
	}
	logger.Info("published cleaned dataset", "key", info.Key, "bytes", info.Size, "driver", string(artifacts.Driver()))

	fmt.Printf("cleaned records: %d (dropped %d null, %d implausible, %d projected)\n",
		result.Diagnostics.Kept, result.Diagnostics.DroppedNull,
		result.Diagnostics.DroppedImplausible, result.Diagnostics.DroppedProjected)
	fmt.Printf("model: life_expectancy = %.4f + %.4f * log10(gdp_per_capita)\n",
		result.Model.Intercept, result.Model.Slope)
	for _, score := range result.Scores {
		fmt.Printf("fold %d: train=%d test=%d score=%.4f\n", score.Fold, score.TrainSize, score.TestSize, score.Score)
	}
	fmt.Printf("mean holdout score over %d folds: %.4f\n", len(result.Scores), result.MeanScore)
	return nil
}

// zapLogger adapts a sugared zap logger to the core logging seam.
type zapLogger struct {
	s *zap.SugaredLogger
}

func (l zapLogger) Debug(msg string, args ...any) { l.s.Debugw(msg, args...) }
func (l zapLogger) Info(msg string, args ...any)  { l.s.Infow(msg, args...) }
func (l zapLogger) Warn(msg string, args ...any)  { l.s.Warnw(msg, args...) }
func (l zapLogger) Error(msg string, args ...any) { l.s.Errorw(msg, args...) }
