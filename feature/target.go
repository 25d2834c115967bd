package feature

import "fmt"

// TargetName is the column name for a prediction horizon's target.
func TargetName(horizon int) string {
	return fmt.Sprintf("glucose_target_%dmin", horizon)
}

// Target returns the glucose value horizon minutes into the future: value
// at minute t is glucose at t+horizon. The final horizon minutes of the
// frame have no future data and stay undefined.
func Target(glucose *Column, horizon int) *Column {
	column := NewColumn(TargetName(horizon), glucose.Len())
	for i := 0; i+horizon < glucose.Len(); i++ {
		if v, ok := glucose.Value(i + horizon); ok {
			column.Set(i, v)
		}
	}
	return column
}
