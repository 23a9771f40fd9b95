// Package timeseries parses stored timeseries values and answers point and
// range queries against them.
//
// A timeseries value is a JSON object of columns, each mapping an index key
// to a value:
//
//	{"0": {"2000-01-01T00:00:00Z": 1.5, "2000-02-01T00:00:00Z": 2.5}}
//
// Index keys are absolute timestamps, seasonal timestamps (placed in a
// placeholder year, or written with an "XXXX-" prefix, that recur every
// year), relative offsets (plain numbers) or arbitrary labels. Point
// lookups use the value at the latest index key not after the query.
package timeseries

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

// Kind is the kind of index a Series uses.
type Kind int

const (
	KindTime Kind = iota
	KindRelative
	KindArbitrary
)

func (k Kind) String() string {
	switch k {
	case KindTime:
		return "time"
	case KindRelative:
		return "relative"
	default:
		return "arbitrary"
	}
}

// SeasonalPrefix marks a seasonal key written without a year.
const SeasonalPrefix = "XXXX-"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime parses a timestamp key or query. An "XXXX-" prefix is replaced
// by seasonalYear.
func ParseTime(s string, seasonalYear int) (time.Time, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, SeasonalPrefix) {
		s = fmt.Sprintf("%04d-%s", seasonalYear, s[len(SeasonalPrefix):])
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q", s)
}

type key struct {
	raw    string
	t      time.Time
	offset float64
}

// Series is a parsed timeseries.
type Series struct {
	columns      []string
	keys         []key
	rows         [][]json.RawMessage
	kind         Kind
	seasonal     bool
	seasonalYear int
}

// Parse parses a stored timeseries value.
func Parse(value string, seasonalYear int) (*Series, error) {
	if !gjson.Valid(value) {
		return nil, fmt.Errorf("timeseries value is not valid JSON")
	}
	root := gjson.Parse(value)
	if !root.IsObject() {
		return nil, fmt.Errorf("timeseries value must be a JSON object of columns")
	}

	s := &Series{seasonalYear: seasonalYear}
	var rawKeys []string
	seen := map[string]int{}
	cells := map[string]map[int]json.RawMessage{}

	var parseErr error
	root.ForEach(func(col, obj gjson.Result) bool {
		if !obj.IsObject() {
			parseErr = fmt.Errorf("timeseries column %q must be an object", col.String())
			return false
		}
		c := len(s.columns)
		s.columns = append(s.columns, col.String())
		obj.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			if _, ok := seen[name]; !ok {
				seen[name] = len(rawKeys)
				rawKeys = append(rawKeys, name)
				cells[name] = map[int]json.RawMessage{}
			}
			cells[name][c] = json.RawMessage(v.Raw)
			return true
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	s.keys, s.kind = classify(rawKeys, seasonalYear)
	if s.kind == KindTime && len(s.keys) > 0 {
		s.seasonal = true
		for _, k := range s.keys {
			if k.t.Year() != seasonalYear {
				s.seasonal = false
				break
			}
		}
	}

	switch s.kind {
	case KindTime:
		sort.SliceStable(s.keys, func(i, j int) bool { return s.keys[i].t.Before(s.keys[j].t) })
	case KindRelative:
		sort.SliceStable(s.keys, func(i, j int) bool { return s.keys[i].offset < s.keys[j].offset })
	}

	s.rows = make([][]json.RawMessage, len(s.keys))
	for i, k := range s.keys {
		row := make([]json.RawMessage, len(s.columns))
		for c, v := range cells[k.raw] {
			row[c] = v
		}
		s.rows[i] = row
	}
	return s, nil
}

func classify(raw []string, seasonalYear int) ([]key, Kind) {
	keys := make([]key, len(raw))
	for i, r := range raw {
		keys[i].raw = r
	}

	allTimes := len(raw) > 0
	for i, r := range raw {
		t, err := ParseTime(r, seasonalYear)
		if err != nil {
			allTimes = false
			break
		}
		keys[i].t = t
	}
	if allTimes {
		return keys, KindTime
	}

	allNumbers := len(raw) > 0
	for i, r := range raw {
		f, err := strconv.ParseFloat(strings.TrimSpace(r), 64)
		if err != nil {
			allNumbers = false
			break
		}
		keys[i].offset = f
	}
	if allNumbers {
		return keys, KindRelative
	}
	return keys, KindArbitrary
}

func (s *Series) Columns() []string { return s.columns }

func (s *Series) Kind() Kind { return s.kind }

// Seasonal reports whether every key lies in the placeholder year.
func (s *Series) Seasonal() bool { return s.seasonal }

func (s *Series) Len() int { return len(s.keys) }

// At returns the value at t, or nil when the series has no time index or t
// precedes the first key. Seasonal series match t's date in any year.
func (s *Series) At(t time.Time) json.RawMessage {
	if s.kind != KindTime {
		return nil
	}
	if s.seasonal {
		t = inYear(t, s.seasonalYear)
	}
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].t.After(t) }) - 1
	return s.row(i)
}

// inYear moves t into year. A day past the end of its month in that year,
// 29 February outside leap years, becomes the month's last day.
func inYear(t time.Time, year int) time.Time {
	day := t.Day()
	if last := time.Date(year, t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day(); day > last {
		day = last
	}
	return time.Date(year, t.Month(), day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AtOffset returns the value at relative offset x.
func (s *Series) AtOffset(x float64) json.RawMessage {
	if s.kind != KindRelative {
		return nil
	}
	i := sort.Search(len(s.keys), func(i int) bool { return s.keys[i].offset > x }) - 1
	return s.row(i)
}

// AtKey returns the value stored under exactly k.
func (s *Series) AtKey(k string) json.RawMessage {
	for i, key := range s.keys {
		if key.raw == k {
			return s.row(i)
		}
	}
	return nil
}

// Lookup interprets q according to the series' index kind.
func (s *Series) Lookup(q string) json.RawMessage {
	switch s.kind {
	case KindTime:
		t, err := ParseTime(q, s.seasonalYear)
		if err != nil {
			return nil
		}
		return s.At(t)
	case KindRelative:
		x, err := strconv.ParseFloat(strings.TrimSpace(q), 64)
		if err != nil {
			return nil
		}
		return s.AtOffset(x)
	default:
		return s.AtKey(q)
	}
}

// row renders row i: the bare value for a single column, otherwise an
// array with one entry per column. Missing rows and all-null rows are nil.
func (s *Series) row(i int) json.RawMessage {
	if i < 0 || i >= len(s.rows) {
		return nil
	}
	row := s.rows[i]
	if len(row) == 1 {
		if isNull(row[0]) {
			return nil
		}
		return row[0]
	}

	var buf bytes.Buffer
	empty := true
	buf.WriteByte('[')
	for c, v := range row {
		if c > 0 {
			buf.WriteByte(',')
		}
		if isNull(v) {
			buf.WriteString("null")
			continue
		}
		empty = false
		buf.Write(v)
	}
	buf.WriteByte(']')
	if empty {
		return nil
	}
	return json.RawMessage(buf.Bytes())
}

func isNull(v json.RawMessage) bool {
	return len(v) == 0 || string(bytes.TrimSpace(v)) == "null"
}
