package feature

import (
	"fmt"
	"log/slog"

	"github.com/timgluz/zuckerspiegel/source"
)

// Pipeline assembles the complete feature frame from raw sources. Stages
// run in a fixed order — grid, alignment, derived features, targets —
// because each stage reads only columns the previous stages produced.
type Pipeline struct {
	windows  Windows
	horizons []int
	logger   *slog.Logger
}

func NewPipeline(windows Windows, horizons []int, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		windows:  windows,
		horizons: horizons,
		logger:   logger,
	}
}

func (p *Pipeline) Windows() Windows {
	return p.windows
}

func (p *Pipeline) Horizons() []int {
	return p.horizons
}

// Build runs the whole pipeline and returns a frame carrying every aligned,
// derived, and target column. It fails only when the reference signal is
// missing; empty secondary sources degrade to zero or undefined columns.
func (p *Pipeline) Build(dataset *source.Dataset) (*Frame, error) {
	grid, err := BuildGrid(dataset.Glucose)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("Built minute grid", "minutes", grid.Len())

	frame := NewFrame(grid)
	if err := p.alignSources(frame, dataset); err != nil {
		return nil, err
	}
	if err := p.deriveFeatures(frame); err != nil {
		return nil, err
	}
	if err := p.addTargets(frame); err != nil {
		return nil, err
	}

	p.logger.Info("Feature frame built", "minutes", frame.Len(), "columns", len(frame.Names()))
	return frame, nil
}

func (p *Pipeline) alignSources(frame *Frame, dataset *source.Dataset) error {
	grid := frame.Grid()

	for _, desc := range source.Catalog() {
		for _, column := range desc.Columns {
			var aligned *Column

			switch desc.Kind {
			case source.KindContinuous:
				ts := dataset.Glucose
				if desc.Name == source.HeartRate {
					ts = dataset.HeartRate
				}
				aligned = AlignContinuous(grid, ts, column)
			case source.KindEvent:
				aligned = AlignEvent(grid, dataset.Events[column], column)
			case source.KindDaily:
				aligned = AlignDaily(grid, dataset.Daily[column], column, desc.DayShift)
			default:
				return fmt.Errorf("unknown source kind %q for %s", desc.Kind, desc.Name)
			}

			if err := frame.Add(aligned); err != nil {
				return err
			}
		}
	}

	return nil
}

func (p *Pipeline) deriveFeatures(frame *Frame) error {
	glucose, ok := frame.Column("glucose")
	if !ok {
		return fmt.Errorf("glucose column missing from aligned frame")
	}

	derived := make([]*Column, 0, 16)
	for _, lag := range p.windows.Lags {
		derived = append(derived, Lag(glucose, lag, LagName(lag)))
	}
	for _, delta := range p.windows.Deltas {
		derived = append(derived, Delta(glucose, delta, DeltaName(delta)))
	}

	rollingSums := []struct {
		src    string
		window int
		name   string
	}{
		{"carbs", p.windows.FoodWindow, RollingName("carbs", p.windows.FoodWindow)},
		{"fiber", p.windows.FoodWindow, RollingName("fiber", p.windows.FoodWindow)},
		{"protein", p.windows.FoodWindow, RollingName("protein", p.windows.FoodWindow)},
		{"fat", p.windows.FoodWindow, RollingName("fat", p.windows.FoodWindow)},
		{"bolus_units", p.windows.InsulinWindow, RollingName("bolus", p.windows.InsulinWindow)},
		{"basal_units", p.windows.InsulinWindow, RollingName("basal", p.windows.InsulinWindow)},
		{"steps", p.windows.StepsWindow, RollingName("steps", p.windows.StepsWindow)},
	}
	for _, rs := range rollingSums {
		src, ok := frame.Column(rs.src)
		if !ok {
			return fmt.Errorf("column %s missing from aligned frame", rs.src)
		}
		derived = append(derived, RollingSum(src, rs.window, rs.name))
	}

	heartRate, ok := frame.Column("heart_rate")
	if !ok {
		return fmt.Errorf("heart_rate column missing from aligned frame")
	}
	avgName := fmt.Sprintf("avg_hr_%dmin", p.windows.HeartRateWindow)
	derived = append(derived, RollingMean(heartRate, p.windows.HeartRateWindow, avgName))

	derived = append(derived,
		HourOfDay(frame.Grid(), "hour"),
		WeekendIndicator(frame.Grid(), "is_weekend"),
	)

	for _, column := range derived {
		if err := frame.Add(column); err != nil {
			return err
		}
	}

	return nil
}

func (p *Pipeline) addTargets(frame *Frame) error {
	glucose, ok := frame.Column("glucose")
	if !ok {
		return fmt.Errorf("glucose column missing from aligned frame")
	}

	for _, horizon := range p.horizons {
		if horizon <= 0 {
			return fmt.Errorf("horizon must be positive, got %d", horizon)
		}
		if err := frame.Add(Target(glucose, horizon)); err != nil {
			return err
		}
	}

	return nil
}
