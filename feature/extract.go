package feature

import "fmt"

// TrainingSet is a horizon-specific (X, y) pair: one feature row per usable
// minute, in the fixed schema order, plus the matching target values.
type TrainingSet struct {
	Horizon int
	Columns []string
	X       [][]float64
	Y       []float64
}

func (ts *TrainingSet) Len() int {
	return len(ts.Y)
}

// Extract slices the frame into a training set for one horizon. A row is
// kept only when every schema column and the horizon's target are defined;
// this predicate is the single source of truth for "is this row usable".
func Extract(frame *Frame, columns []string, horizon int) (*TrainingSet, error) {
	features := make([]*Column, 0, len(columns))
	for _, name := range columns {
		column, ok := frame.Column(name)
		if !ok {
			return nil, fmt.Errorf("feature column %s missing from frame", name)
		}
		features = append(features, column)
	}

	target, ok := frame.Column(TargetName(horizon))
	if !ok {
		return nil, fmt.Errorf("target column %s missing from frame", TargetName(horizon))
	}

	set := &TrainingSet{Horizon: horizon, Columns: columns}
	for i := 0; i < frame.Len(); i++ {
		y, ok := target.Value(i)
		if !ok {
			continue
		}

		row := make([]float64, len(features))
		usable := true
		for j, column := range features {
			v, ok := column.Value(i)
			if !ok {
				usable = false
				break
			}
			row[j] = v
		}
		if !usable {
			continue
		}

		set.X = append(set.X, row)
		set.Y = append(set.Y, y)
	}

	return set, nil
}
