package reporting

import (
	"time"

	"github.com/pkg/errors"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// ErrInvalidRange reports an explicit period whose start date falls after
// its end date. The computation is refused rather than swapping the bounds.
var ErrInvalidRange = errors.New("invalid date range: start date falls after end date")

// ResolvePeriod converts the period selection into a concrete inclusive
// interval. minDate and maxDate are the bounds of the loaded dataset for
// the active selection; today is sampled by the caller at resolution time.
//
// Explicit bounds are clamped to [minDate, maxDate] and rejected with
// ErrInvalidRange when start > end after clamping. Preset semantics:
//
//	last_30_days             end = min(today, maxDate), start = end − 30 days
//	previous_calendar_month  the full month preceding today's month
//	last_3_months/6_months/  end = min(today, maxDate), start = end minus the
//	last_year                calendar offset (calendar-aware, not fixed days)
//	all_time                 [minDate, maxDate] exactly
func ResolvePeriod(req PeriodRequest, minDate, maxDate, today time.Time) (domain.Period, error) {
	minDate = utils.TruncateToDay(minDate)
	maxDate = utils.TruncateToDay(maxDate)
	today = utils.TruncateToDay(today)

	if req.Explicit() {
		start := clamp(utils.TruncateToDay(*req.StartDate), minDate, maxDate)
		end := clamp(utils.TruncateToDay(*req.EndDate), minDate, maxDate)

		if start.After(end) {
			return domain.Period{}, ErrInvalidRange
		}

		return domain.Period{StartDate: start, EndDate: end}, nil
	}

	preset := req.Preset
	if preset == "" {
		preset = domain.PresetAllTime
	}

	switch preset {
	case domain.PresetAllTime:
		return domain.Period{StartDate: minDate, EndDate: maxDate}, nil

	case domain.PresetLast30Days:
		end := earlier(today, maxDate)
		return domain.Period{StartDate: end.AddDate(0, 0, -30), EndDate: end}, nil

	case domain.PresetPreviousCalendarMonth:
		firstOfThisMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := firstOfThisMonth.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
		return domain.Period{StartDate: start, EndDate: end}, nil

	case domain.PresetLast3Months:
		end := earlier(today, maxDate)
		return domain.Period{StartDate: end.AddDate(0, -3, 0), EndDate: end}, nil

	case domain.PresetLast6Months:
		end := earlier(today, maxDate)
		return domain.Period{StartDate: end.AddDate(0, -6, 0), EndDate: end}, nil

	case domain.PresetLastYear:
		end := earlier(today, maxDate)
		return domain.Period{StartDate: end.AddDate(-1, 0, 0), EndDate: end}, nil

	default:
		return domain.Period{}, errors.Errorf("unknown period preset %q", preset)
	}
}

func clamp(d, min, max time.Time) time.Time {
	if d.Before(min) {
		return min
	}
	if d.After(max) {
		return max
	}
	return d
}

func earlier(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
