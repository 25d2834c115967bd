package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timgluz/zuckerspiegel/feature"
	"github.com/timgluz/zuckerspiegel/measurement"
	"github.com/timgluz/zuckerspiegel/model"
	"github.com/timgluz/zuckerspiegel/source"
)

const (
	// DefaultMinRows is the minimum usable row count for a training run.
	DefaultMinRows = 1000
	// DefaultMinHorizonRows is the per-horizon floor below which that
	// horizon is skipped instead of trained.
	DefaultMinHorizonRows = 100
)

// InsufficientDataError reports a training run whose usable row count fell
// below the configured minimum.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient training data: have %d usable rows, need %d", e.Have, e.Need)
}

type TrainingConfig struct {
	Horizons       []int
	MinRows        int
	MinHorizonRows int
	Alpha          float64
	Windows        feature.Windows
}

func DefaultTrainingConfig() TrainingConfig {
	return TrainingConfig{
		Horizons:       model.DefaultHorizons,
		MinRows:        DefaultMinRows,
		MinHorizonRows: DefaultMinHorizonRows,
		Alpha:          model.DefaultAlpha,
		Windows:        feature.DefaultWindows(),
	}
}

// TrainingReport summarizes one run: which horizons got a new model, which
// were skipped and why, and how many minutes the frame covered.
type TrainingReport struct {
	Rows    int                   `json:"rows"`
	Trained map[int]model.Metrics `json:"trained"`
	Skipped map[int]string        `json:"skipped,omitempty"`
}

// ModelTrainer fetches the training window, builds the feature frame, and
// fits one ridge model per horizon, replacing each in the registry as it
// succeeds. Horizons fail independently.
type ModelTrainer struct {
	fetcher  *source.Fetcher
	registry *model.Registry
	config   TrainingConfig

	logger *slog.Logger
}

func NewModelTrainer(fetcher *source.Fetcher, registry *model.Registry, config TrainingConfig, logger *slog.Logger) *ModelTrainer {
	if config.MinRows <= 0 {
		config.MinRows = DefaultMinRows
	}
	if config.MinHorizonRows <= 0 {
		config.MinHorizonRows = DefaultMinHorizonRows
	}
	if len(config.Horizons) == 0 {
		config.Horizons = model.DefaultHorizons
	}
	if config.Alpha <= 0 {
		config.Alpha = model.DefaultAlpha
	}

	return &ModelTrainer{
		fetcher:  fetcher,
		registry: registry,
		config:   config,
		logger:   logger,
	}
}

func (t *ModelTrainer) Run(ctx context.Context, period measurement.Period) (*TrainingReport, error) {
	defer ctx.Done()
	t.logger.Info("Starting training run", "period", period.String(), "horizons", t.config.Horizons)

	dataset, err := t.fetcher.FetchAll(ctx, period)
	if err != nil {
		t.logger.Error("Failed to fetch training sources", "error", err)
		return nil, err
	}

	pipeline := feature.NewPipeline(t.config.Windows, t.config.Horizons, t.logger)
	frame, err := pipeline.Build(dataset)
	if err != nil {
		t.logger.Error("Failed to build feature frame", "error", err)
		return nil, err
	}

	columns := t.config.Windows.FeatureColumns()
	report := &TrainingReport{
		Rows:    frame.Len(),
		Trained: make(map[int]model.Metrics),
		Skipped: make(map[int]string),
	}

	// The overall minimum is checked against the widest horizon's usable
	// rows, so a run over a too-short window fails loudly instead of
	// fitting every horizon on scraps.
	maxUsable := 0
	sets := make(map[int]*feature.TrainingSet, len(t.config.Horizons))
	for _, horizon := range t.config.Horizons {
		set, err := feature.Extract(frame, columns, horizon)
		if err != nil {
			return nil, err
		}
		sets[horizon] = set
		if set.Len() > maxUsable {
			maxUsable = set.Len()
		}
	}

	if maxUsable < t.config.MinRows {
		return nil, &InsufficientDataError{Have: maxUsable, Need: t.config.MinRows}
	}

	for _, horizon := range t.config.Horizons {
		set := sets[horizon]
		if set.Len() < t.config.MinHorizonRows {
			reason := fmt.Sprintf("only %d usable rows, need %d", set.Len(), t.config.MinHorizonRows)
			t.logger.Warn("Skipping horizon", "horizon", horizon, "reason", reason)
			report.Skipped[horizon] = reason
			continue
		}

		snapshot, err := model.Train(set, t.config.Alpha)
		if err != nil {
			t.logger.Warn("Training failed for horizon", "horizon", horizon, "error", err)
			report.Skipped[horizon] = err.Error()
			continue
		}

		if err := t.registry.Replace(ctx, snapshot); err != nil {
			t.logger.Error("Failed to store trained model", "horizon", horizon, "error", err)
			report.Skipped[horizon] = err.Error()
			continue
		}

		t.logger.Info("Trained model", "horizon", horizon, "metrics", snapshot.Metrics.String())
		report.Trained[horizon] = snapshot.Metrics
	}

	if len(report.Skipped) == 0 {
		report.Skipped = nil
	}
	return report, nil
}
