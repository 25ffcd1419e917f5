package datapackage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Type hint names understood by CSVReader.
const (
	TypeInfer = "infer"
)

// DefaultMissingValues are the cell values treated as missing when the
// caller does not provide MissingValues.
var DefaultMissingValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// number of records cached for type sniffing
const sniffRows = 100

// A CSVReader specifies how a data set in CSV format can be read from
// a text file.
type CSVReader struct {

	// Skip this number of rows before reading the header.
	SkipRows int

	// If true, there is a header to read, otherwise default column names are used
	HasHeader bool

	// Field delimiter, a comma if zero.
	Comma rune

	// The column names, in the order that they appear in the
	// file.  Can be set by caller.
	ColumnNames []string

	// User-specified data types (maps column name to type name).
	// Recognized types are float64, int64, string, date and infer.
	TypeHintsName map[string]string

	// User-specified data types (indexed by column number).
	TypeHintsPos []string

	// Formats for date columns, keyed by column name.
	DateFormats map[string]string

	// Cell values that denote a missing value.  DefaultMissingValues
	// is used when nil.
	MissingValues []string

	// The data type for each column.
	DataTypes []string

	// Has the init method been run yet?
	initRun bool

	// Cached lines
	lines [][]string

	// The underlying csv Reader object
	csvreader *csv.Reader

	missing     map[string]bool
	dateParsers []*DateParser

	// eof is set once the csv reader is drained, done once a Read
	// call has returned the last rows.
	eof   bool
	done  bool
	reads int
}

// NewCSVReader returns a CSVReader that reads CSV data from the given io.reader,
// with type inference and chunking.
func NewCSVReader(r io.Reader) *CSVReader {

	rdr := new(CSVReader)
	rdr.HasHeader = true

	rdr.csvreader = csv.NewReader(r)
	rdr.csvreader.FieldsPerRecord = -1

	return rdr
}

func (rdr *CSVReader) getColumnNames() {

	if rdr.HasHeader {
		rdr.ColumnNames = rdr.lines[0]
		rdr.lines = rdr.lines[1:]
		if len(rdr.ColumnNames) > 0 {
			rdr.ColumnNames[0] = strings.TrimPrefix(rdr.ColumnNames[0], "\ufeff")
		}
		return
	}

	// Default names
	m := len(rdr.lines[0])
	rdr.ColumnNames = make([]string, m)
	for k := 0; k < m; k++ {
		rdr.ColumnNames[k] = defaultColumnName(k)
	}
}

func defaultColumnName(k int) string {
	return fmt.Sprintf("Column %d", k+1)
}

func (rdr *CSVReader) typeHint(j int, col string) string {

	if t, ok := rdr.TypeHintsName[col]; ok && t != "" {
		return t
	}
	if len(rdr.TypeHintsPos) >= j+1 && rdr.TypeHintsPos[j] != "" {
		return rdr.TypeHintsPos[j]
	}
	return TypeInfer
}

func (rdr *CSVReader) sniffTypes() error {

	rdr.DataTypes = make([]string, len(rdr.ColumnNames))
	rdr.dateParsers = make([]*DateParser, len(rdr.ColumnNames))

	for j, col := range rdr.ColumnNames {

		t := rdr.typeHint(j, col)

		switch t {
		case KindFloat64, KindString:
			rdr.DataTypes[j] = t
		case KindInt64:
			if rdr.columnParses(j, func(s string) bool {
				_, err := strconv.ParseInt(s, 10, 64)
				return err == nil
			}) {
				rdr.DataTypes[j] = KindInt64
			} else {
				rdr.DataTypes[j] = rdr.inferType(j)
			}
		case KindDate:
			dp, err := NewDateParser(rdr.DateFormats[col])
			if err != nil {
				return fmt.Errorf("column %q: %w", col, err)
			}
			if rdr.columnParses(j, func(s string) bool {
				_, err := dp.Parse(s)
				return err == nil
			}) {
				rdr.DataTypes[j] = KindDate
				rdr.dateParsers[j] = dp
			} else {
				rdr.DataTypes[j] = KindString
			}
		default:
			rdr.DataTypes[j] = rdr.inferType(j)
		}
	}

	return nil
}

// columnParses reports whether every non-missing cached value of
// column j is accepted by ok.
func (rdr *CSVReader) columnParses(j int, ok func(string) bool) bool {

	for _, line := range rdr.lines {
		if j >= len(line) {
			continue
		}
		y := strings.TrimSpace(line[j])
		if rdr.isMissing(y) {
			continue
		}
		if !ok(y) {
			return false
		}
	}
	return true
}

// inferType returns float64 if every non-missing cached value of
// column j is a number, otherwise string.
func (rdr *CSVReader) inferType(j int) string {

	nFloats, nObs := 0, 0
	for _, line := range rdr.lines {
		if j >= len(line) {
			continue
		}
		y := strings.TrimSpace(line[j])
		// Skip blanks
		if rdr.isMissing(y) {
			continue
		}
		nObs++
		if _, err := strconv.ParseFloat(y, 64); err == nil {
			nFloats++
		}
	}

	if nFloats == nObs && nObs > 0 {
		return KindFloat64
	}
	return KindString
}

func (rdr *CSVReader) isMissing(s string) bool {
	return rdr.missing[strings.TrimSpace(s)]
}

// init performs some initializations before reading data.
func (rdr *CSVReader) init() error {

	if rdr.Comma != 0 {
		rdr.csvreader.Comma = rdr.Comma
	}

	mv := rdr.MissingValues
	if mv == nil {
		mv = DefaultMissingValues
	}
	rdr.missing = make(map[string]bool, len(mv))
	for _, v := range mv {
		rdr.missing[strings.TrimSpace(v)] = true
	}

	// Read up to 100 lines.
	rdr.lines = make([][]string, 0, sniffRows)
	for k := 0; k < sniffRows+rdr.SkipRows; k++ {
		v, err := rdr.csvreader.Read()
		if err == io.EOF {
			rdr.eof = true
			break
		} else if err != nil {
			return err
		}
		if k >= rdr.SkipRows {
			rdr.lines = append(rdr.lines, v)
		}
	}

	if len(rdr.lines) == 0 {
		return fmt.Errorf("file appears to be empty")
	}

	if rdr.ColumnNames == nil {
		rdr.getColumnNames()
	} else if rdr.HasHeader {
		rdr.lines = rdr.lines[1:]
	}

	if rdr.DataTypes == nil {
		if err := rdr.sniffTypes(); err != nil {
			return err
		}
	}
	for len(rdr.dateParsers) < len(rdr.DataTypes) {
		rdr.dateParsers = append(rdr.dateParsers, nil)
	}
	for j, t := range rdr.DataTypes {
		if t == KindDate && rdr.dateParsers[j] == nil {
			dp, err := NewDateParser(rdr.DateFormats[rdr.ColumnNames[j]])
			if err != nil {
				return err
			}
			rdr.dateParsers[j] = dp
		}
	}

	rdr.initRun = true

	return nil
}

// ensureWidth adds string columns so that there are at least w of
// them.  The new columns are missing for the nrow rows already read.
func (rdr *CSVReader) ensureWidth(w, nrow int, raw [][]string, absent [][]bool) ([][]string, [][]bool) {

	for k := len(rdr.ColumnNames); k < w; k++ {
		rdr.ColumnNames = append(rdr.ColumnNames, defaultColumnName(k))
	}
	for k := len(rdr.DataTypes); k < len(rdr.ColumnNames); k++ {
		rdr.DataTypes = append(rdr.DataTypes, KindString)
		rdr.dateParsers = append(rdr.dateParsers, nil)
	}

	for len(raw) < len(rdr.ColumnNames) {
		a := make([]bool, nrow)
		for i := range a {
			a[i] = true
		}
		raw = append(raw, make([]string, nrow))
		absent = append(absent, a)
	}

	return raw, absent
}

// Read reads up lines rows of data and returns the results as an
// array of Series objects.  If lines is negative the whole file is
// read.  Data types of the Series objects are inferred from the file.
// Use type hints in the CSVReader struct to control the types
// directly.  Once all rows have been returned, Read returns io.EOF.
func (rdr *CSVReader) Read(lines int) ([]*Series, error) {

	if !rdr.initRun {
		if err := rdr.init(); err != nil {
			return nil, err
		}
	}

	if rdr.done {
		return nil, io.EOF
	}

	var raw [][]string
	var absent [][]bool
	raw, absent = rdr.ensureWidth(0, 0, raw, absent)

	nrow := 0
	for lines < 0 || nrow < lines {

		var line []string
		if len(rdr.lines) > 0 {
			line = rdr.lines[0]
			rdr.lines = rdr.lines[1:]
		} else if rdr.eof {
			break
		} else {
			var err error
			line, err = rdr.csvreader.Read()
			if err == io.EOF {
				rdr.eof = true
				break
			} else if err != nil {
				return nil, err
			}
		}

		raw, absent = rdr.ensureWidth(len(line), nrow, raw, absent)

		for j := range raw {
			if j < len(line) {
				raw[j] = append(raw[j], line[j])
				absent[j] = append(absent[j], false)
			} else {
				raw[j] = append(raw[j], "")
				absent[j] = append(absent[j], true)
			}
		}

		nrow++
	}

	if rdr.eof && len(rdr.lines) == 0 {
		rdr.done = true
		if nrow == 0 && rdr.reads > 0 {
			return nil, io.EOF
		}
	}
	rdr.reads++

	dataSeries := make([]*Series, len(raw))
	for j := range raw {
		var err error
		dataSeries[j], err = rdr.convert(j, raw[j], absent[j])
		if err != nil {
			return nil, err
		}
	}
	return dataSeries, nil
}

// convert builds the Series for column j from its raw cell values.
// A value that does not parse as the column type demotes the column,
// int64 to float64 to string and date to string, and the new type is
// kept for later chunks.
func (rdr *CSVReader) convert(j int, vals []string, absent []bool) (*Series, error) {

	miss := make([]bool, len(vals))
	for i, v := range vals {
		miss[i] = absent[i] || rdr.isMissing(v)
	}

	for {
		data, ok := rdr.parseColumn(j, vals, miss)
		if ok {
			return NewSeries(rdr.ColumnNames[j], data, miss)
		}
		rdr.DataTypes[j] = fallbackType(rdr.DataTypes[j])
	}
}

// parseColumn converts vals to the type of column j.  It returns false
// at the first value that does not parse.
func (rdr *CSVReader) parseColumn(j int, vals []string, miss []bool) (interface{}, bool) {

	n := len(vals)

	switch rdr.DataTypes[j] {
	case KindFloat64:
		x := make([]float64, n)
		for i, v := range vals {
			if miss[i] {
				continue
			}
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, false
			}
			x[i] = f
		}
		return x, true
	case KindInt64:
		x := make([]int64, n)
		for i, v := range vals {
			if miss[i] {
				continue
			}
			k, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
			if err != nil {
				return nil, false
			}
			x[i] = k
		}
		return x, true
	case KindDate:
		x := make([]time.Time, n)
		dp := rdr.dateParsers[j]
		for i, v := range vals {
			if miss[i] {
				continue
			}
			t, err := dp.Parse(v)
			if err != nil {
				return nil, false
			}
			x[i] = t
		}
		return x, true
	default:
		x := make([]string, n)
		for i, v := range vals {
			if !miss[i] {
				x[i] = v
			}
		}
		return x, true
	}
}

func fallbackType(t string) string {
	if t == KindInt64 {
		return KindFloat64
	}
	return KindString
}
