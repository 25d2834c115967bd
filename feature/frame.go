package feature

import "fmt"

// Frame is a minute grid plus named columns of equal length. Each pipeline
// stage produces a fresh set of columns on the same grid; frames are never
// mutated in place once a later stage has read them.
type Frame struct {
	grid    *Grid
	order   []string
	columns map[string]*Column
}

func NewFrame(grid *Grid) *Frame {
	return &Frame{
		grid:    grid,
		columns: make(map[string]*Column),
	}
}

func (f *Frame) Grid() *Grid {
	return f.grid
}

// Len returns the number of minute rows.
func (f *Frame) Len() int {
	return f.grid.Len()
}

func (f *Frame) Add(column *Column) error {
	if column == nil {
		return fmt.Errorf("column cannot be nil")
	}
	if column.Len() != f.grid.Len() {
		return fmt.Errorf("column %s has %d minutes, grid has %d", column.Name(), column.Len(), f.grid.Len())
	}
	if _, exists := f.columns[column.Name()]; exists {
		return fmt.Errorf("column %s already exists", column.Name())
	}

	f.order = append(f.order, column.Name())
	f.columns[column.Name()] = column
	return nil
}

func (f *Frame) Column(name string) (*Column, bool) {
	column, ok := f.columns[name]
	return column, ok
}

// Names returns column names in insertion order.
func (f *Frame) Names() []string {
	names := make([]string, len(f.order))
	copy(names, f.order)
	return names
}
