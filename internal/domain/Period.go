package domain

import (
	"time"
)

// PeriodPreset is a relative-period token resolved against the dataset's
// available date range and the current date.
type PeriodPreset string

const (
	PresetLast30Days            PeriodPreset = "last_30_days"
	PresetPreviousCalendarMonth PeriodPreset = "previous_calendar_month"
	PresetLast3Months           PeriodPreset = "last_3_months"
	PresetLast6Months           PeriodPreset = "last_6_months"
	PresetLastYear              PeriodPreset = "last_year"
	PresetAllTime               PeriodPreset = "all_time"
)

// Presets lists every supported preset in display order.
var Presets = []PeriodPreset{
	PresetLast30Days,
	PresetPreviousCalendarMonth,
	PresetLast3Months,
	PresetLast6Months,
	PresetLastYear,
	PresetAllTime,
}

// Valid reports whether p is a known preset token.
func (p PeriodPreset) Valid() bool {
	for _, preset := range Presets {
		if p == preset {
			return true
		}
	}
	return false
}

// Period is an inclusive [StartDate, EndDate] interval. StartDate never
// falls after EndDate.
type Period struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// Contains reports whether d falls inside the period, both ends inclusive.
func (p Period) Contains(d time.Time) bool {
	return !d.Before(p.StartDate) && !d.After(p.EndDate)
}

// IsZero reports whether the period carries no bounds at all, which happens
// only when the active selection has no loaded data.
func (p Period) IsZero() bool {
	return p.StartDate.IsZero() && p.EndDate.IsZero()
}
