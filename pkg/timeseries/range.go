package timeseries

import (
	"time"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

//go:generate go run github.com/dmarkham/enumer -type Unit -trimprefix Unit -transform lower -json -output unit.gen.go

// Unit is the step unit of a time range query.
type Unit int

const (
	UnitSeconds Unit = iota
	UnitMinutes
	UnitHours
	UnitDays
	UnitWeeks
	UnitMonths
	UnitYears
)

// Add advances t by n units. Months and years use calendar arithmetic.
func (u Unit) Add(t time.Time, n int) time.Time {
	switch u {
	case UnitSeconds:
		return t.Add(time.Duration(n) * time.Second)
	case UnitMinutes:
		return t.Add(time.Duration(n) * time.Minute)
	case UnitHours:
		return t.Add(time.Duration(n) * time.Hour)
	case UnitDays:
		return t.AddDate(0, 0, n)
	case UnitWeeks:
		return t.AddDate(0, 0, 7*n)
	case UnitMonths:
		return t.AddDate(0, n, 0)
	default:
		return t.AddDate(n, 0, 0)
	}
}

// Times returns the instants from start to end inclusive, increment units
// apart. At most max points are produced.
func Times(start, end time.Time, unit Unit, increment, max int) ([]time.Time, error) {
	if increment <= 0 {
		return nil, fault.Validation("Increment must be a positive number, got %d", increment)
	}
	if !unit.IsAUnit() {
		return nil, fault.Validation("Unknown time unit %s", unit)
	}

	var times []time.Time
	// Stepping from start avoids drift from repeated month arithmetic.
	for n := 0; ; n++ {
		t := unit.Add(start, n*increment)
		if t.After(end) {
			break
		}
		if len(times) >= max {
			return nil, fault.Validation("Time range produces more than %d timesteps", max)
		}
		times = append(times, t)
	}
	return times, nil
}

// Offsets is Times for relative indexes.
func Offsets(start, end, increment float64, max int) ([]float64, error) {
	if increment <= 0 {
		return nil, fault.Validation("Increment must be a positive number, got %g", increment)
	}

	var offsets []float64
	for n := 0; ; n++ {
		x := start + float64(n)*increment
		if x > end {
			break
		}
		if len(offsets) >= max {
			return nil, fault.Validation("Range produces more than %d steps", max)
		}
		offsets = append(offsets, x)
	}
	return offsets, nil
}
