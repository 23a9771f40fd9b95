package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	val1 = `[[[1, 2, "hello"], [5, 4, 6]], [[10, 20, 30], [40, 50, 60]], [[9, 8, 7], [6, 5, 4]]]`
	val2 = `["1.0", "2.0", "3.0"]`
	val3 = `["3.0", "", ""]`
)

func fixture(k1, k2, k3 string) string {
	return `{"0": {"` + k1 + `": ` + val1 + `, "` + k2 + `": ` + val2 + `, "` + k3 + `": ` + val3 + `}}`
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSeasonalLookup(t *testing.T) {
	s, err := Parse(fixture("9999-01-01", "9999-02-01", "9999-03-01"), 9999)
	require.NoError(t, err)
	assert.Equal(t, KindTime, s.Kind())
	assert.True(t, s.Seasonal())

	tests := []struct {
		at   time.Time
		want string
	}{
		{date(2000, time.January, 10), val1},
		{date(2000, time.February, 10), val2},
		{date(2000, time.March, 10), val3},
		{date(2000, time.October, 10), val3},
	}
	for _, tt := range tests {
		t.Run(tt.at.Month().String(), func(t *testing.T) {
			assert.JSONEq(t, tt.want, string(s.At(tt.at)))
		})
	}
}

func TestSeasonalLookupLeapDay(t *testing.T) {
	s, err := Parse(fixture("9999-01-01", "9999-02-01", "9999-03-01"), 9999)
	require.NoError(t, err)

	assert.JSONEq(t, val2, string(s.At(date(2024, time.February, 29))), "29 February stays in February")
	assert.JSONEq(t, val2, string(s.Lookup("2024-02-29T23:00:00Z")))
	assert.JSONEq(t, val3, string(s.At(date(2024, time.March, 1))))
}

func TestSeasonalPrefix(t *testing.T) {
	s, err := Parse(fixture("XXXX-01-01", "XXXX-02-01", "XXXX-03-01"), 1678)
	require.NoError(t, err)
	assert.True(t, s.Seasonal())
	assert.JSONEq(t, val2, string(s.Lookup("2017-02-14 12:00:00")))
}

func TestAbsoluteLookup(t *testing.T) {
	s, err := Parse(fixture("2000-01-01T00:00:00Z", "2000-02-01T00:00:00Z", "2000-03-01T00:00:00Z"), 9999)
	require.NoError(t, err)
	assert.False(t, s.Seasonal())

	assert.Nil(t, s.At(date(1999, time.December, 31)), "query before the first key")
	assert.JSONEq(t, val1, string(s.At(date(2000, time.January, 1))))
	assert.JSONEq(t, val2, string(s.At(date(2000, time.February, 28))))
	assert.JSONEq(t, val3, string(s.At(date(2010, time.January, 1))), "last value is carried forward")
}

func TestRelativeLookup(t *testing.T) {
	s, err := Parse(fixture("1.0", "2.0", "3.0"), 9999)
	require.NoError(t, err)
	assert.Equal(t, KindRelative, s.Kind())

	assert.Nil(t, s.AtOffset(0.5))
	assert.JSONEq(t, val1, string(s.AtOffset(1.5)))
	assert.JSONEq(t, val3, string(s.Lookup("3")))
	assert.Nil(t, s.At(date(2000, time.January, 1)), "time queries do not apply")
}

func TestArbitraryLookup(t *testing.T) {
	s, err := Parse(fixture("arb", "it", "rary"), 9999)
	require.NoError(t, err)
	assert.Equal(t, KindArbitrary, s.Kind())

	assert.JSONEq(t, val2, string(s.AtKey("it")))
	assert.Nil(t, s.Lookup("missing"))
}

func TestMultipleColumns(t *testing.T) {
	s, err := Parse(`{"a": {"2000-01-01": 1, "2000-01-03": 3}, "b": {"2000-01-02": 20}}`, 9999)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Columns())
	assert.Equal(t, 3, s.Len())

	assert.JSONEq(t, `[1, null]`, string(s.At(date(2000, time.January, 1))))
	assert.JSONEq(t, `[null, 20]`, string(s.At(date(2000, time.January, 2))))
	assert.JSONEq(t, `[3, null]`, string(s.At(date(2000, time.January, 5))))
}

func TestParseErrors(t *testing.T) {
	for _, v := range []string{`not json`, `[1, 2]`, `{"0": 5}`} {
		_, err := Parse(v, 9999)
		assert.Error(t, err, v)
	}
}
