package datapackage

import (
	"errors"
	"fmt"
	"io"
)

// ErrColumnNotFound is returned when a named column is not in the data.
var ErrColumnNotFound = errors.New("column not found")

// A Table holds the columns of one resource.  Index holds the primary
// key columns, in key order; Columns holds the remaining columns in
// file order.
type Table struct {
	Name    string
	Index   []*Series
	Columns []*Series
}

// NewTable splits series into index and data columns.  Every name in
// index must match a series.
func NewTable(name string, series []*Series, index []string) (*Table, error) {

	tbl := &Table{Name: name}

	isIndex := make(map[string]bool, len(index))
	for _, k := range index {
		isIndex[k] = true
	}

	byName := make(map[string]*Series, len(series))
	for _, s := range series {
		if _, ok := byName[s.Name]; !ok {
			byName[s.Name] = s
		}
		if !isIndex[s.Name] {
			tbl.Columns = append(tbl.Columns, s)
		}
	}

	for _, k := range index {
		s, ok := byName[k]
		if !ok {
			return nil, fmt.Errorf("index %q: %w", k, ErrColumnNotFound)
		}
		tbl.Index = append(tbl.Index, s)
	}

	return tbl, nil
}

// Column returns the index or data column with the given name.
func (tbl *Table) Column(name string) (*Series, error) {
	for _, s := range tbl.All() {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("table %q: %q: %w", tbl.Name, name, ErrColumnNotFound)
}

// IndexNames returns the names of the index columns.
func (tbl *Table) IndexNames() []string {
	return seriesNames(tbl.Index)
}

// ColumnNames returns the names of the data columns.
func (tbl *Table) ColumnNames() []string {
	return seriesNames(tbl.Columns)
}

// All returns the index columns followed by the data columns.
func (tbl *Table) All() []*Series {
	all := make([]*Series, 0, len(tbl.Index)+len(tbl.Columns))
	all = append(all, tbl.Index...)
	return append(all, tbl.Columns...)
}

// NumRows returns the number of rows.
func (tbl *Table) NumRows() int {
	all := tbl.All()
	if len(all) == 0 {
		return 0
	}
	return all[0].Length()
}

// WriteRange writes rows first through last-1 of every column to w.
func (tbl *Table) WriteRange(w io.Writer, first, last int) error {

	if _, err := fmt.Fprintf(w, "Table: %s\nRows: %d\n", tbl.Name, tbl.NumRows()); err != nil {
		return err
	}
	for _, s := range tbl.All() {
		if err := s.WriteRange(w, first, last); err != nil {
			return err
		}
	}
	return nil
}

func seriesNames(series []*Series) []string {
	names := make([]string, len(series))
	for i, s := range series {
		names[i] = s.Name
	}
	return names
}
