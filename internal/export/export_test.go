package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openclimatedata/datapackage"
)

func testTable(t *testing.T) *datapackage.Table {
	t.Helper()

	code, err := datapackage.NewSeries("code", []string{"DEU", "FRA"}, nil)
	require.NoError(t, err)
	day, err := datapackage.NewSeries("day", []time.Time{
		time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(1991, 6, 30, 0, 0, 0, 0, time.UTC),
	}, nil)
	require.NoError(t, err)
	count, err := datapackage.NewSeries("count", []int64{10, 0}, []bool{false, true})
	require.NoError(t, err)
	value, err := datapackage.NewSeries("value (Mt)", []float64{1.5, 2}, nil)
	require.NoError(t, err)

	tbl, err := datapackage.NewTable("emissions", []*datapackage.Series{code, day, count, value}, []string{"code"})
	require.NoError(t, err)
	return tbl
}

func TestWriteCSV(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, testTable(t)))

	expected := "code,day,count,value (Mt)\n" +
		"DEU,1990-01-01,10,1.5\n" +
		"FRA,1991-06-30,,2\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteParquet(t *testing.T) {

	var buf bytes.Buffer
	require.NoError(t, WriteParquet(&buf, testTable(t)))

	b := buf.Bytes()
	require.Greater(t, len(b), 8)
	assert.Equal(t, "PAR1", string(b[:4]))
	assert.Equal(t, "PAR1", string(b[len(b)-4:]))
}

func TestWriteParquetFile(t *testing.T) {

	path := filepath.Join(t.TempDir(), "emissions.parquet")
	require.NoError(t, WriteParquetFile(path, testTable(t)))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(8))
}

func TestColumnNames(t *testing.T) {

	mk := func(name string) *datapackage.Series {
		s, err := datapackage.NewSeries(name, []string{}, nil)
		require.NoError(t, err)
		return s
	}

	names := ColumnNames([]*datapackage.Series{mk("value (Mt)"), mk("value_Mt_"), mk("2020"), mk("")})
	assert.Equal(t, []string{"value__Mt_", "value_Mt_", "c2020", "column"}, names)

	names = ColumnNames([]*datapackage.Series{mk("a b"), mk("a-b")})
	assert.Equal(t, []string{"a_b", "a_b_2"}, names)
}

func TestParquetValue(t *testing.T) {

	s, err := datapackage.NewSeries("d", []time.Time{time.Date(1970, 1, 11, 0, 0, 0, 0, time.UTC)}, nil)
	require.NoError(t, err)
	v, ok := parquetValue(s, 0)
	assert.True(t, ok)
	assert.Equal(t, int32(10), v)
}
