package dataset

import (
	"fmt"
	"math"
)

// ColumnKind distinguishes numeric measurement columns from categorical ones.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// Column holds one variable of the tabular dataset. Numeric columns store
// values in Numbers with NaN marking a missing cell; categorical columns
// store values in Labels with "" marking a missing cell.
type Column struct {
	Name    string
	Kind    ColumnKind
	Numbers []float64
	Labels  []string
}

// Len returns the number of observations in the column
func (c *Column) Len() int {
	if c.Kind == KindNumeric {
		return len(c.Numbers)
	}
	return len(c.Labels)
}

// MissingCount returns how many cells of the column are missing
func (c *Column) MissingCount() int {
	missing := 0
	if c.Kind == KindNumeric {
		for _, v := range c.Numbers {
			if math.IsNaN(v) {
				missing++
			}
		}
		return missing
	}
	for _, v := range c.Labels {
		if v == "" {
			missing++
		}
	}
	return missing
}

// Present returns the non-missing numeric values of a numeric column
func (c *Column) Present() []float64 {
	present := make([]float64, 0, len(c.Numbers))
	for _, v := range c.Numbers {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	return present
}

// Clone returns a deep copy of the column
func (c *Column) Clone() Column {
	out := Column{Name: c.Name, Kind: c.Kind}
	if c.Numbers != nil {
		out.Numbers = make([]float64, len(c.Numbers))
		copy(out.Numbers, c.Numbers)
	}
	if c.Labels != nil {
		out.Labels = make([]string, len(c.Labels))
		copy(out.Labels, c.Labels)
	}
	return out
}

// Table is the in-memory tabular dataset: ordered columns of equal length.
type Table struct {
	Name    string
	Columns []Column
}

// NumRows returns the number of observations
func (t *Table) NumRows() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return t.Columns[0].Len()
}

// Column returns the column with the given name
func (t *Table) Column(name string) (*Column, error) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], nil
		}
	}
	return nil, fmt.Errorf("column %q not in table", name)
}

// HasColumn reports whether a column with the given name exists
func (t *Table) HasColumn(name string) bool {
	_, err := t.Column(name)
	return err == nil
}

// ColumnNames returns all column names in table order
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i := range t.Columns {
		names[i] = t.Columns[i].Name
	}
	return names
}

// NumericNames returns the names of the numeric columns in table order
func (t *Table) NumericNames() []string {
	var names []string
	for i := range t.Columns {
		if t.Columns[i].Kind == KindNumeric {
			names = append(names, t.Columns[i].Name)
		}
	}
	return names
}

// CategoricalNames returns the names of the categorical columns in table order
func (t *Table) CategoricalNames() []string {
	var names []string
	for i := range t.Columns {
		if t.Columns[i].Kind == KindCategorical {
			names = append(names, t.Columns[i].Name)
		}
	}
	return names
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := &Table{Name: t.Name, Columns: make([]Column, len(t.Columns))}
	for i := range t.Columns {
		out.Columns[i] = t.Columns[i].Clone()
	}
	return out
}

// AddNumeric appends a derived numeric column. The values slice must match
// the table's row count.
func (t *Table) AddNumeric(name string, values []float64) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already in table", name)
	}
	if t.NumRows() != 0 && len(values) != t.NumRows() {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.NumRows())
	}
	t.Columns = append(t.Columns, Column{Name: name, Kind: KindNumeric, Numbers: values})
	return nil
}

// AddCategorical appends a derived categorical column such as a cluster label.
func (t *Table) AddCategorical(name string, values []string) error {
	if t.HasColumn(name) {
		return fmt.Errorf("column %q already in table", name)
	}
	if t.NumRows() != 0 && len(values) != t.NumRows() {
		return fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), t.NumRows())
	}
	t.Columns = append(t.Columns, Column{Name: name, Kind: KindCategorical, Labels: values})
	return nil
}

// Matrix extracts the named numeric columns as a row-major matrix.
// Missing cells surface as NaN; callers that need complete data should
// clean the table first.
func (t *Table) Matrix(names []string) ([][]float64, error) {
	cols := make([]*Column, len(names))
	for i, name := range names {
		col, err := t.Column(name)
		if err != nil {
			return nil, err
		}
		if col.Kind != KindNumeric {
			return nil, fmt.Errorf("column %q is not numeric", name)
		}
		cols[i] = col
	}

	rows := t.NumRows()
	out := make([][]float64, rows)
	for r := 0; r < rows; r++ {
		row := make([]float64, len(cols))
		for c, col := range cols {
			row[c] = col.Numbers[r]
		}
		out[r] = row
	}
	return out, nil
}
