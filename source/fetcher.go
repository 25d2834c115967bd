package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/timgluz/zuckerspiegel/measurement"
)

var ErrFetcherNotReady = fmt.Errorf("source fetcher is not ready")

// Fetcher reads every catalog source from the measurement repository for a
// training period. Missing sources come back empty rather than failing:
// the pipeline decides what emptiness means per source kind.
type Fetcher struct {
	repo   measurement.Repository
	logger *slog.Logger
}

func NewFetcher(repo measurement.Repository, logger *slog.Logger) *Fetcher {
	return &Fetcher{repo: repo, logger: logger}
}

func (f *Fetcher) IsReady() bool {
	if f.logger == nil {
		fmt.Println("Logger of Fetcher is not initialized")
		return false
	}

	if f.repo == nil || !f.repo.IsReady() {
		f.logger.Error("Measurement repository is not initialized or not ready")
		return false
	}

	return true
}

// FetchAll loads all nine sources for the period.
func (f *Fetcher) FetchAll(ctx context.Context, period measurement.Period) (*Dataset, error) {
	if !f.IsReady() {
		return nil, ErrFetcherNotReady
	}

	dataset := NewDataset(period)
	for _, desc := range Catalog() {
		if err := f.fetchSource(ctx, desc, period, dataset); err != nil {
			return nil, fmt.Errorf("failed to fetch source %s: %w", desc.Name, err)
		}
	}

	f.logger.Info("Fetched all sources", "period", period.String(),
		"glucose_samples", len(dataset.Glucose.Samples))
	return dataset, nil
}

func (f *Fetcher) fetchSource(ctx context.Context, desc Descriptor, period measurement.Period, dataset *Dataset) error {
	for _, column := range desc.Columns {
		name := desc.MeasurementName(column)

		ts, err := f.repo.GetTimeseries(ctx, name, period)
		if err != nil {
			return err
		}
		if ts == nil {
			ts = &measurement.Timeseries{Name: name, Start: period.Start, End: period.End}
			f.logger.Warn("Source has no stored measurement", "source", desc.Name, "column", column)
		}

		switch desc.Kind {
		case KindContinuous:
			if desc.Name == Glucose {
				dataset.Glucose = ts
			} else {
				dataset.HeartRate = ts
			}
		case KindEvent:
			dataset.Events[column] = ts
		case KindDaily:
			dataset.Daily[column] = measurement.NewDailySeriesFromTimeseries(ts)
		}

		f.logger.Debug("Fetched source column", "source", desc.Name, "column", column,
			"samples", len(ts.Samples))
	}

	return nil
}
