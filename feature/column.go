package feature

import "fmt"

// Column is one value-per-minute series with an explicit defined mask.
// Undefined is not zero: a continuous signal before its first observation
// is unknown, while an event column without events is exactly zero. The
// mask keeps those two apart.
type Column struct {
	name    string
	values  []float64
	defined []bool
}

func NewColumn(name string, length int) *Column {
	return &Column{
		name:    name,
		values:  make([]float64, length),
		defined: make([]bool, length),
	}
}

// NewZeroColumn returns a column where every minute is defined as 0.
func NewZeroColumn(name string, length int) *Column {
	c := NewColumn(name, length)
	for i := range c.defined {
		c.defined[i] = true
	}
	return c
}

func (c *Column) Name() string {
	return c.name
}

func (c *Column) Len() int {
	return len(c.values)
}

func (c *Column) Set(i int, value float64) {
	c.values[i] = value
	c.defined[i] = true
}

// Value returns the value at minute index i and whether it is defined.
func (c *Column) Value(i int) (float64, bool) {
	return c.values[i], c.defined[i]
}

func (c *Column) Defined(i int) bool {
	return c.defined[i]
}

// ForwardFill propagates the last defined value into later undefined
// minutes. Minutes before the first defined value stay undefined.
func (c *Column) ForwardFill() {
	var last float64
	seen := false
	for i := range c.values {
		if c.defined[i] {
			last = c.values[i]
			seen = true
			continue
		}
		if seen {
			c.values[i] = last
			c.defined[i] = true
		}
	}
}

// DefinedCount returns how many minutes carry a defined value.
func (c *Column) DefinedCount() int {
	count := 0
	for _, ok := range c.defined {
		if ok {
			count++
		}
	}
	return count
}

func (c *Column) String() string {
	return fmt.Sprintf("Column(%s, %d minutes, %d defined)", c.name, c.Len(), c.DefinedCount())
}
