package datapackage

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"
)

// Kinds of data a Series can hold.
const (
	KindFloat64 = "float64"
	KindInt64   = "int64"
	KindString  = "string"
	KindDate    = "date"
)

// A Series is a fixed-type one-dimensional sequence of data
// values, with an optional mask for missing values.
type Series struct {

	// A name describing what is in this series.
	Name string

	// The length of the series.
	length int

	// The data, one of []float64, []int64, []string or []time.Time.
	data interface{}

	// Indicators that data values are missing.  If nil, there are
	// no missing values.
	missing []bool
}

// ilen returns the length of a slice, held in an interface value.
// If the interface does not hold a slice of a known type, an error
// is returned.
func ilen(data interface{}) (int, error) {

	switch x := data.(type) {
	case []float64:
		return len(x), nil
	case []int64:
		return len(x), nil
	case []string:
		return len(x), nil
	case []time.Time:
		return len(x), nil
	default:
		return 0, fmt.Errorf("unsupported series data type %T", data)
	}
}

// NewSeries returns a new Series value with the given name and data
// contents.  The data slice parameter is not copied.
func NewSeries(name string, data interface{}, missing []bool) (*Series, error) {

	length, err := ilen(data)
	if err != nil {
		return nil, err
	}

	if missing != nil && len(missing) != length {
		return nil, fmt.Errorf("series %q: %d values but %d missing indicators",
			name, length, len(missing))
	}

	ser := Series{
		Name:    name,
		length:  length,
		data:    data,
		missing: missing,
	}

	return &ser, nil
}

// Kind returns one of KindFloat64, KindInt64, KindString or KindDate.
func (ser *Series) Kind() string {
	switch ser.data.(type) {
	case []float64:
		return KindFloat64
	case []int64:
		return KindInt64
	case []time.Time:
		return KindDate
	default:
		return KindString
	}
}

// IsMissing reports whether position i holds a missing value.
func (ser *Series) IsMissing(i int) bool {
	return ser.missing != nil && ser.missing[i]
}

// Value returns the value at position i, and false if it is missing.
func (ser *Series) Value(i int) (interface{}, bool) {

	if ser.IsMissing(i) {
		return nil, false
	}

	switch x := ser.data.(type) {
	case []float64:
		return x[i], true
	case []int64:
		return x[i], true
	case []string:
		return x[i], true
	case []time.Time:
		return x[i], true
	}
	return nil, false
}

// Format returns the text form of the value at position i, or the
// empty string if it is missing.
func (ser *Series) Format(i int) string {

	v, ok := ser.Value(i)
	if !ok {
		return ""
	}

	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(x, 10)
	case time.Time:
		return formatTime(x)
	default:
		return v.(string)
	}
}

// formatTime writes dates without a clock component as plain dates.
func formatTime(t time.Time) string {
	if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format(time.RFC3339)
}

// Write writes the entire Series to the given writer.
func (ser *Series) Write(w io.Writer) error {
	return ser.WriteRange(w, 0, ser.length)
}

// WriteRange writes the given subinterval of the Series to the given writer.
func (ser *Series) WriteRange(w io.Writer, first, last int) error {

	if last > ser.length {
		last = ser.length
	}

	if _, err := fmt.Fprintf(w, "Name: %s\nType: %s\n", ser.Name, ser.Kind()); err != nil {
		return err
	}

	for j := first; j < last; j++ {
		var err error
		if ser.IsMissing(j) {
			_, err = fmt.Fprintf(w, "%d:\n", j)
		} else {
			_, err = fmt.Fprintf(w, "%d:  %s\n", j, ser.Format(j))
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// Data returns the data component of the Series.
func (ser *Series) Data() interface{} {
	return ser.data
}

// Missing returns the array of missing value indicators.
func (ser *Series) Missing() []bool {
	return ser.missing
}

// Length returns the number of elements in a Series.
func (ser *Series) Length() int {
	return ser.length
}

// AllClose returns true, 0 if the Series is within tol of the other
// series.  If the Series have different lengths, AllClose returns
// false, -1.  If the Series have different types, AllClose returns
// false, -2.  If the Series have the same type and the same length
// but are not equal, AllClose returns false, j, where j is the index
// of the first position where the two series differ.
func (ser *Series) AllClose(other *Series, tol float64) (bool, int) {

	if ser.length != other.length {
		return false, -1
	}

	if ser.Kind() != other.Kind() {
		return false, -2
	}

	for j := 0; j < ser.length; j++ {
		m1, m2 := ser.IsMissing(j), other.IsMissing(j)
		if m1 != m2 {
			return false, j
		}
		if m1 {
			continue
		}

		switch u := ser.data.(type) {
		case []float64:
			v := other.data.([]float64)
			if math.Abs(u[j]-v[j]) > tol {
				return false, j
			}
		case []int64:
			if u[j] != other.data.([]int64)[j] {
				return false, j
			}
		case []string:
			if u[j] != other.data.([]string)[j] {
				return false, j
			}
		case []time.Time:
			if !u[j].Equal(other.data.([]time.Time)[j]) {
				return false, j
			}
		}
	}

	return true, 0
}

// AllEqual is equivalent to AllClose with tol=0.
func (ser *Series) AllEqual(other *Series) (bool, int) {
	return ser.AllClose(other, 0.0)
}

// UpcastNumeric returns a float64 copy of an int64 Series.  Other
// Series are returned unchanged.
func (ser *Series) UpcastNumeric() *Series {

	d, ok := ser.data.([]int64)
	if !ok {
		return ser
	}

	a := make([]float64, len(d))
	for i, v := range d {
		a[i] = float64(v)
	}
	s, _ := NewSeries(ser.Name, a, copyMask(ser.missing))
	return s
}

// ForceNumeric converts string values to float64 values, creating
// missing values where the conversion is not possible.  If the data
// is not string type, it is unaffected.
func (ser *Series) ForceNumeric() *Series {

	y, ok := ser.data.([]string)
	if !ok {
		return ser
	}

	cmiss := make([]bool, ser.length)
	copy(cmiss, ser.missing)
	x := make([]float64, ser.length)
	for i := range y {
		if cmiss[i] {
			continue
		}
		v, err := strconv.ParseFloat(y[i], 64)
		if err != nil {
			cmiss[i] = true
		} else {
			x[i] = v
		}
	}
	s, _ := NewSeries(ser.Name, x, cmiss)
	return s
}

// CountMissing returns the number of missing values in the Series.
func (ser *Series) CountMissing() int {

	m := 0
	for _, v := range ser.missing {
		if v {
			m++
		}
	}

	return m
}

// HasMissing reports whether at least one value is missing.
func (ser *Series) HasMissing() bool {
	for _, v := range ser.missing {
		if v {
			return true
		}
	}
	return false
}

// DropEmptyMask discards the missing value mask when no value is
// missing, so that Missing returns nil for a fully observed Series.
func (ser *Series) DropEmptyMask() {
	if !ser.HasMissing() {
		ser.missing = nil
	}
}

// ToString returns a Series with string values, derived
// from the given series.
func (ser *Series) ToString() *Series {

	if ser.Kind() == KindString {
		return ser
	}

	x := make([]string, ser.length)
	for i := 0; i < ser.length; i++ {
		x[i] = ser.Format(i)
	}
	s, _ := NewSeries(ser.Name, x, copyMask(ser.missing))
	return s
}

// SeriesArray is an array of pointers to Series objects.  It can represent
// a dataset consisting of several variables.
type SeriesArray []*Series

// AllClose returns (true, 0, 0) if all numeric values in
// corresponding columns of the two arrays of Series objects are
// within the given tolerance.  If any corresponding columns are not
// identically equal, returns (false, j, i), where j is the index of a
// column and i is the index of a row where the two Series are not
// identical.  If the two SeriesArray objects have different numbers
// of columns, returns (false, -1, -1).  If column j of the two
// SeriesArray objects have different lengths, returns (false, j, -1).
// If column j of the two SeriesArray objects have different types,
// returns (false, j, -2)
func (ser SeriesArray) AllClose(other []*Series, tol float64) (bool, int, int) {

	if len(ser) != len(other) {
		return false, -1, -1
	}

	for j := 0; j < len(ser); j++ {
		f, i := ser[j].AllClose(other[j], tol)
		if !f {
			return false, j, i
		}
	}

	return true, 0, 0
}

// AllEqual is equivalent to AllClose with tol = 0.
func (ser SeriesArray) AllEqual(other []*Series) (bool, int, int) {
	return ser.AllClose(other, 0.0)
}

// AsFloat64Slice returns the data of the series as a float64 slice,
// and a boolean slice for the missing value indicators.
func (ser *Series) AsFloat64Slice() ([]float64, []bool, error) {

	v, ok := ser.data.([]float64)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %T to []float64", ser.data)
	}

	return v, ser.missing, nil
}

// AsInt64Slice returns the data of the series as an int64 slice,
// and a boolean slice for the missing value indicators.
func (ser *Series) AsInt64Slice() ([]int64, []bool, error) {

	v, ok := ser.data.([]int64)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %T to []int64", ser.data)
	}

	return v, ser.missing, nil
}

// AsStringSlice returns the series data as slices for the values,
// and the missing data indicators.
func (ser *Series) AsStringSlice() ([]string, []bool, error) {

	v, ok := ser.data.([]string)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %T to []string", ser.data)
	}

	return v, ser.missing, nil
}

// AsTimeSlice returns the series data as time values, and the missing
// data indicators.
func (ser *Series) AsTimeSlice() ([]time.Time, []bool, error) {

	v, ok := ser.data.([]time.Time)
	if !ok {
		return nil, nil, fmt.Errorf("can't convert %T to []time.Time", ser.data)
	}

	return v, ser.missing, nil
}

func copyMask(m []bool) []bool {
	if m == nil {
		return nil
	}
	c := make([]bool, len(m))
	copy(c, m)
	return c
}
