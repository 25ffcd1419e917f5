// Package export writes tables read from data packages to CSV or
// Parquet files.
package export

import (
	"encoding/csv"
	"io"

	"github.com/openclimatedata/datapackage"
)

// WriteCSV writes the index and data columns of tbl as CSV, with a
// header row.  Missing values are written as empty fields.
func WriteCSV(w io.Writer, tbl *datapackage.Table) error {

	cols := tbl.All()

	cw := csv.NewWriter(w)
	header := make([]string, len(cols))
	for j, s := range cols {
		header[j] = s.Name
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(cols))
	nrow := tbl.NumRows()
	for i := 0; i < nrow; i++ {
		for j, s := range cols {
			row[j] = s.Format(i)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
