package datapackage

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Field formats understood for date columns, in addition to strptime
// style patterns such as "%d/%m/%Y".
const (
	DateFormatDefault = "default"
	DateFormatAny     = "any"
)

// DateParser converts the text of a date column into time values.
type DateParser struct {
	format string
	layout string
}

// NewDateParser returns a parser for the given field format.  An empty
// format is the same as "default": ISO 8601 dates, falling back to
// format inference for other common spellings.
func NewDateParser(format string) (*DateParser, error) {

	dp := &DateParser{format: format}

	switch format {
	case "", DateFormatDefault, DateFormatAny:
		return dp, nil
	}

	layout, err := strptimeLayout(format)
	if err != nil {
		return nil, err
	}
	dp.layout = layout

	return dp, nil
}

// Parse returns the time value for s, in UTC unless s carries a zone.
func (dp *DateParser) Parse(s string) (time.Time, error) {

	s = strings.TrimSpace(s)

	if dp.layout != "" {
		return time.Parse(dp.layout, s)
	}

	if dp.format != DateFormatAny {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, nil
		}
	}

	return dateparse.ParseIn(s, time.UTC)
}

var strptimeDirectives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'd': "02",
	'e': "_2",
	'j': "002",
	'b': "Jan",
	'h': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'H': "15",
	'I': "03",
	'M': "04",
	'S': "05",
	'p': "PM",
	'f': "000000",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// strptimeLayout translates a strptime pattern into a Go time layout.
func strptimeLayout(format string) (string, error) {

	var b strings.Builder
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		if i+1 >= len(format) {
			return "", fmt.Errorf("date format %q ends with a bare %%", format)
		}
		i++
		l, ok := strptimeDirectives[format[i]]
		if !ok {
			return "", fmt.Errorf("date format %q: unsupported directive %%%c", format, format[i])
		}
		b.WriteString(l)
	}

	return b.String(), nil
}
