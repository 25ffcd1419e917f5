package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/openclimatedata/datapackage"
)

// number of goroutines used by the parquet writer
const parallelism = 4

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// WriteParquetFile writes tbl to a new Parquet file at path.
func WriteParquetFile(path string, tbl *datapackage.Table) error {

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := writeParquet(fw, tbl); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

// WriteParquet writes tbl in Parquet format to w.
func WriteParquet(w io.Writer, tbl *datapackage.Table) error {
	pfw := writerfile.NewWriterFile(w)
	if err := writeParquet(pfw, tbl); err != nil {
		_ = pfw.Close()
		return err
	}
	return pfw.Close()
}

func writeParquet(pf source.ParquetFile, tbl *datapackage.Table) error {

	cols := tbl.All()
	names := ColumnNames(cols)

	pw, err := writer.NewJSONWriter(parquetSchema(cols, names), pf, parallelism)
	if err != nil {
		return fmt.Errorf("table %s: %w", tbl.Name, err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	nrow := tbl.NumRows()
	for i := 0; i < nrow; i++ {
		row := make(map[string]interface{}, len(cols))
		for j, s := range cols {
			if v, ok := parquetValue(s, i); ok {
				row[names[j]] = v
			}
		}
		b, err := json.Marshal(row)
		if err != nil {
			_ = pw.WriteStop()
			return err
		}
		if err := pw.Write(string(b)); err != nil {
			_ = pw.WriteStop()
			return fmt.Errorf("table %s row %d: %w", tbl.Name, i, err)
		}
	}

	return pw.WriteStop()
}

// parquetSchema builds the JSON schema definition of the parquet
// writer.  All columns are optional.
func parquetSchema(cols []*datapackage.Series, names []string) string {

	fields := make([]map[string]string, 0, len(cols))
	for j, s := range cols {
		fields = append(fields, map[string]string{
			"Tag": fmt.Sprintf("name=%s, %s, repetitiontype=OPTIONAL", names[j], parquetType(s.Kind())),
		})
	}
	out := map[string]interface{}{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(out)
	return string(b)
}

func parquetType(kind string) string {
	switch kind {
	case datapackage.KindInt64:
		return "type=INT64"
	case datapackage.KindFloat64:
		return "type=DOUBLE"
	case datapackage.KindDate:
		return "type=INT32, convertedtype=DATE"
	default:
		return "type=BYTE_ARRAY, convertedtype=UTF8"
	}
}

// parquetValue returns the JSON value of row i of s; dates are days
// since the Unix epoch.
func parquetValue(s *datapackage.Series, i int) (interface{}, bool) {

	v, ok := s.Value(i)
	if !ok {
		return nil, false
	}
	if t, isTime := v.(time.Time); isTime {
		y, m, d := t.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return int32(day.Sub(epoch).Hours() / 24), true
	}
	return v, true
}

// ColumnNames returns parquet-safe, unique column names.
func ColumnNames(cols []*datapackage.Series) []string {

	seen := make(map[string]int, len(cols))
	names := make([]string, len(cols))
	for j, s := range cols {
		n := sanitize(s.Name)
		if k := seen[n]; k > 0 {
			seen[n] = k + 1
			n = fmt.Sprintf("%s_%d", n, k+1)
		} else {
			seen[n] = 1
		}
		names[j] = n
	}
	return names
}

func sanitize(name string) string {

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "column"
	}
	s := b.String()
	if s[0] >= '0' && s[0] <= '9' {
		s = "c" + s
	}
	return s
}
