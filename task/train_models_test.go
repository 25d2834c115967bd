package task

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timgluz/zuckerspiegel/feature"
	"github.com/timgluz/zuckerspiegel/measurement"
	"github.com/timgluz/zuckerspiegel/model"
	"github.com/timgluz/zuckerspiegel/source"
)

type fakeMeasurementRepository struct {
	series map[string]*measurement.Timeseries
}

func newFakeMeasurementRepository() *fakeMeasurementRepository {
	return &fakeMeasurementRepository{series: make(map[string]*measurement.Timeseries)}
}

func (r *fakeMeasurementRepository) GetTimeseries(ctx context.Context, name string, period measurement.Period) (*measurement.Timeseries, error) {
	return r.series[name], nil
}

func (r *fakeMeasurementRepository) AddTimeseries(ctx context.Context, ts *measurement.Timeseries) error {
	r.series[ts.Name] = ts
	return nil
}

func (r *fakeMeasurementRepository) AddMeasurement(ctx context.Context, m *measurement.Measurement) error {
	return nil
}

func (r *fakeMeasurementRepository) GetMeasurements(ctx context.Context) ([]measurement.Measurement, error) {
	return nil, nil
}

func (r *fakeMeasurementRepository) IsReady() bool { return true }
func (r *fakeMeasurementRepository) Close() error  { return nil }

type fakeModelRepository struct {
	snapshots map[int]*model.Snapshot
}

func (r *fakeModelRepository) Get(ctx context.Context, horizon int) (*model.Snapshot, error) {
	snapshot, ok := r.snapshots[horizon]
	if !ok {
		return nil, model.ErrModelUnavailable
	}
	return snapshot, nil
}

func (r *fakeModelRepository) Put(ctx context.Context, snapshot *model.Snapshot) error {
	r.snapshots[snapshot.Horizon] = snapshot
	return nil
}

func (r *fakeModelRepository) IsReady() bool { return true }
func (r *fakeModelRepository) Close() error  { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// seedTrainingData stores two days of synthetic glucose plus supporting
// sources, enough for every default horizon to have usable rows.
func seedTrainingData(t *testing.T, repo *fakeMeasurementRepository, start time.Time, hours int) measurement.Period {
	t.Helper()

	ctx := context.Background()
	end := start.Add(time.Duration(hours) * time.Hour)
	period := measurement.Period{
		Start: measurement.Epoch(start.Unix()),
		End:   measurement.Epoch(end.Unix()),
	}

	glucose := &measurement.Timeseries{Name: source.Glucose, Start: period.Start, End: period.End}
	for ts := start; !ts.After(end); ts = ts.Add(5 * time.Minute) {
		hour := float64(ts.Hour()) + float64(ts.Minute())/60
		glucose.Samples = append(glucose.Samples, measurement.Sample{
			Timestamp: measurement.Epoch(ts.Unix()),
			Value:     6.0 + 1.5*float64(hour)/24 + 0.3*float64(ts.Minute()%15)/15,
		})
	}
	require.NoError(t, repo.AddTimeseries(ctx, glucose))

	heartRate := &measurement.Timeseries{Name: source.HeartRate, Start: period.Start, End: period.End}
	for ts := start; !ts.After(end); ts = ts.Add(10 * time.Minute) {
		heartRate.Samples = append(heartRate.Samples, measurement.Sample{
			Timestamp: measurement.Epoch(ts.Unix()),
			Value:     65 + float64(ts.Hour()%12),
		})
	}
	require.NoError(t, repo.AddTimeseries(ctx, heartRate))

	dailyValues := map[string]float64{
		"resting_hr": 58, "hrv_rmssd": 42, "hrv_deep_rmssd": 47,
		"sleep_efficiency": 88, "minutes_asleep": 430,
		"deep_sleep_mins": 65, "rem_sleep_mins": 95, "temp_skin": 0.2,
	}
	for column, value := range dailyValues {
		desc, ok := findDailyDescriptor(column)
		require.True(t, ok, "no daily source carries %s", column)

		name := desc.MeasurementName(column)
		ts := &measurement.Timeseries{Name: name, Start: period.Start, End: period.End}
		// records for the day before the window too, so shifted sleep
		// metrics still cover the first grid day
		for day := -1; day < hours/24+1; day++ {
			date := measurement.DateOf(start).AddDays(day)
			ts.Samples = append(ts.Samples, measurement.Sample{
				Timestamp: date.Epoch(),
				Value:     value,
			})
		}
		require.NoError(t, repo.AddTimeseries(ctx, ts))
	}

	return period
}

func findDailyDescriptor(column string) (source.Descriptor, bool) {
	for _, desc := range source.Catalog() {
		if desc.Kind != source.KindDaily {
			continue
		}
		for _, c := range desc.Columns {
			if c == column {
				return desc, true
			}
		}
	}
	return source.Descriptor{}, false
}

func newTrainer(repo *fakeMeasurementRepository, config TrainingConfig) (*ModelTrainer, *model.Registry) {
	logger := discardLogger()
	fetcher := source.NewFetcher(repo, logger)
	modelRepo := &fakeModelRepository{snapshots: make(map[int]*model.Snapshot)}
	registry := model.NewRegistry(context.Background(), modelRepo, config.Horizons, logger)
	return NewModelTrainer(fetcher, registry, config, logger), registry
}

func TestModelTrainerRunTrainsAllHorizons(t *testing.T) {
	repo := newFakeMeasurementRepository()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	period := seedTrainingData(t, repo, start, 48)

	config := DefaultTrainingConfig()
	trainer, registry := newTrainer(repo, config)

	report, err := trainer.Run(context.Background(), period)
	require.NoError(t, err)

	assert.Equal(t, 48*60+1, report.Rows)
	assert.Empty(t, report.Skipped)
	require.Len(t, report.Trained, len(config.Horizons))

	for _, horizon := range config.Horizons {
		snapshot, err := registry.Get(horizon)
		require.NoError(t, err)
		assert.Equal(t, horizon, snapshot.Horizon)
		assert.Equal(t, config.Windows.FeatureColumns(), snapshot.FeatureColumns)
		assert.Positive(t, snapshot.Metrics.TrainingSamples)
	}
}

func TestModelTrainerRunFailsWithoutGlucose(t *testing.T) {
	repo := newFakeMeasurementRepository()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	period := measurement.Period{
		Start: measurement.Epoch(start.Unix()),
		End:   measurement.Epoch(start.Add(24 * time.Hour).Unix()),
	}

	trainer, _ := newTrainer(repo, DefaultTrainingConfig())

	_, err := trainer.Run(context.Background(), period)
	assert.ErrorIs(t, err, feature.ErrNoReferenceSignal)
}

func TestModelTrainerRunReportsInsufficientData(t *testing.T) {
	repo := newFakeMeasurementRepository()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	period := seedTrainingData(t, repo, start, 8)

	config := DefaultTrainingConfig()
	config.MinRows = 5000
	trainer, _ := newTrainer(repo, config)

	_, err := trainer.Run(context.Background(), period)

	var insufficientErr *InsufficientDataError
	require.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, 5000, insufficientErr.Need)
	assert.Less(t, insufficientErr.Have, 5000)
}

func TestModelTrainerSkipsShortHorizons(t *testing.T) {
	repo := newFakeMeasurementRepository()
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	// 4 hours = 241 minutes: horizon 120 leaves ~60 usable rows after
	// the 60-minute lag warmup, under the per-horizon floor
	period := seedTrainingData(t, repo, start, 4)

	config := DefaultTrainingConfig()
	config.MinRows = 100
	trainer, registry := newTrainer(repo, config)

	report, err := trainer.Run(context.Background(), period)
	require.NoError(t, err)

	assert.Contains(t, report.Trained, 30)
	assert.Contains(t, report.Skipped, 120)

	_, err = registry.Get(120)
	assert.ErrorIs(t, err, model.ErrModelUnavailable)
}
