package core

import (
	"context"
	"fmt"
	"time"

	"lifepanel/pkg/domain"
)

// Config parameterizes a pipeline run.
type Config struct {
	Filter      FilterConfig
	MinFoldSize int
	Seed        int64
}

// DefaultConfig returns the standard run parameters: default filter bounds,
// ten countries per fold, seed 42.
func DefaultConfig() Config {
	return Config{Filter: DefaultFilterConfig(), MinFoldSize: 10, Seed: 42}
}

// Service runs the cleaning and cross-validation pipeline end to end. The
// stages themselves are pure; the Service adds ordering, persistence,
// logging and metrics.
type Service struct {
	cfg     Config
	store   domain.DatasetStore
	logger  Logger
	metrics MetricsRecorder
}

// Option configures a Service.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics attaches a metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) { s.metrics = m }
}

// WithStore attaches a dataset store; the cleaned dataset is persisted to
// it after filtering.
func WithStore(store domain.DatasetStore) Option {
	return func(s *Service) { s.store = store }
}

// NewService constructs a Service with the supplied configuration.
func NewService(cfg Config, opts ...Option) *Service {
	s := &Service{cfg: cfg, logger: noopLogger{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunInput carries the two wide source tables.
type RunInput struct {
	LifeExpectancy domain.WideTable
	GDPPerCapita   domain.WideTable
}

// RunResult collects every stage output of a pipeline run.
type RunResult struct {
	Records     []domain.CountryYearRecord
	Diagnostics FilterDiagnostics
	Aggregates  []domain.CountryAggregate
	Folds       domain.FoldAssignment
	Scores      []FoldScore
	MeanScore   float64
	Model       Model
}

// Run executes reshape, normalize, merge, filter, persist, aggregate, fold
// assignment, cross-validation and the full-sample fit, strictly in order.
func (s *Service) Run(ctx context.Context, input RunInput) (RunResult, error) {
	var result RunResult

	lifeLong, err := s.reshape(ctx, input.LifeExpectancy)
	if err != nil {
		return result, fmt.Errorf("reshape %s: %w", input.LifeExpectancy.Variable, err)
	}
	gdpLong, err := s.reshape(ctx, input.GDPPerCapita)
	if err != nil {
		return result, fmt.Errorf("reshape %s: %w", input.GDPPerCapita.Variable, err)
	}

	start := time.Now()
	life := Normalize(lifeLong, parserFor(domain.VariableLifeExpectancy))
	gdp := Normalize(gdpLong, parserFor(domain.VariableGDPPerCapita))
	s.observe(ctx, "normalize", start, nil)

	start = time.Now()
	merged, err := Merge(life, gdp)
	s.observe(ctx, "merge", start, err)
	if err != nil {
		return result, fmt.Errorf("merge: %w", err)
	}
	s.logger.Debug("merged observation streams", "life_rows", len(life), "gdp_rows", len(gdp), "joined", len(merged))

	start = time.Now()
	result.Records, result.Diagnostics = Filter(merged, s.cfg.Filter)
	s.observe(ctx, "filter", start, nil)
	s.logger.Info("filtered panel",
		"input", result.Diagnostics.Input,
		"dropped_null", result.Diagnostics.DroppedNull,
		"dropped_implausible", result.Diagnostics.DroppedImplausible,
		"dropped_projected", result.Diagnostics.DroppedProjected,
		"kept", result.Diagnostics.Kept)

	if s.store != nil {
		start = time.Now()
		err = s.store.ReplaceDataset(ctx, result.Records)
		s.observe(ctx, "persist", start, err)
		if err != nil {
			return result, fmt.Errorf("persist dataset: %w", err)
		}
	}

	start = time.Now()
	result.Aggregates, err = Aggregate(result.Records)
	s.observe(ctx, "aggregate", start, err)
	if err != nil {
		return result, fmt.Errorf("aggregate: %w", err)
	}

	start = time.Now()
	result.Folds, err = AssignFolds(result.Aggregates, s.cfg.MinFoldSize, s.cfg.Seed)
	s.observe(ctx, "assign_folds", start, err)
	if err != nil {
		return result, err
	}
	s.logger.Debug("assigned folds", "countries", len(result.Aggregates), "folds", result.Folds.Folds, "seed", s.cfg.Seed)

	start = time.Now()
	result.Scores, err = CrossValidate(result.Aggregates, result.Folds)
	s.observe(ctx, "cross_validate", start, err)
	if err != nil {
		return result, err
	}
	result.MeanScore = MeanScore(result.Scores)

	start = time.Now()
	result.Model, err = s.fitFull(result.Aggregates)
	s.observe(ctx, "fit", start, err)
	if err != nil {
		return result, err
	}
	s.logger.Info("pipeline complete",
		"countries", len(result.Aggregates),
		"mean_score", result.MeanScore,
		"intercept", result.Model.Intercept,
		"slope", result.Model.Slope)
	return result, nil
}

func (s *Service) reshape(ctx context.Context, table domain.WideTable) ([]domain.Observation, error) {
	start := time.Now()
	long, err := Reshape(table)
	s.observe(ctx, "reshape", start, err)
	return long, err
}

func (s *Service) fitFull(aggregates []domain.CountryAggregate) (Model, error) {
	x := make([]float64, len(aggregates))
	y := make([]float64, len(aggregates))
	for i, agg := range aggregates {
		x[i] = agg.Log10GDP
		y[i] = agg.MeanLifeExpectancy
	}
	model, err := FitOLS(x, y)
	if err != nil {
		return Model{}, fmt.Errorf("full-sample fit: %w", err)
	}
	return model, nil
}

func (s *Service) observe(ctx context.Context, stage string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	s.metrics.Observe(ctx, stage, err == nil, time.Since(start))
}
