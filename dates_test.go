package datapackage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateParserDefault(t *testing.T) {

	dp, err := NewDateParser("")
	require.NoError(t, err)

	d, err := dp.Parse("2019-12-31")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2019, 12, 31, 0, 0, 0, 0, time.UTC), d)

	// Non-ISO spellings are inferred.
	d, err = dp.Parse("2019/12/31")
	require.NoError(t, err)
	assert.Equal(t, 2019, d.Year())
	assert.Equal(t, time.December, d.Month())
}

func TestDateParserPattern(t *testing.T) {

	dp, err := NewDateParser("%d/%m/%Y")
	require.NoError(t, err)

	d, err := dp.Parse("15/03/2020")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), d)

	_, err = dp.Parse("2020-03-15")
	assert.Error(t, err)
}

func TestStrptimeLayout(t *testing.T) {

	cases := map[string]string{
		"%Y-%m-%d":          "2006-01-02",
		"%d %B %Y":          "02 January 2006",
		"%Y-%m-%dT%H:%M:%S": "2006-01-02T15:04:05",
		"100%%":             "100%",
	}
	for in, want := range cases {
		got, err := strptimeLayout(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := strptimeLayout("%Q")
	assert.Error(t, err)
	_, err = strptimeLayout("%Y%")
	assert.Error(t, err)
}
