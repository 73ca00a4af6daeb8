package reporting

import (
	"sort"
	"time"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// AggregateByDay merges the given records into one row per calendar date
// inside the period, summing every flow field across tariffs. Duplicate
// (tariff, date) records sum as well. Dates with no records are simply
// absent; the output is ordered ascending by date.
func AggregateByDay(records []domain.DailyRecord, period domain.Period) []domain.AggregatedDay {
	totals := make(map[time.Time]*domain.AggregatedDay)

	for _, record := range records {
		date := utils.TruncateToDay(record.Date)
		if !period.Contains(date) {
			continue
		}

		day, ok := totals[date]
		if !ok {
			day = &domain.AggregatedDay{Date: date}
			totals[date] = day
		}

		day.Start += record.Start
		day.New += record.New
		day.Reactivated += record.Reactivated
		day.UpgradedEnter += record.UpgradedEnter
		day.DowngradedEnter += record.DowngradedEnter
		day.End += record.End
		day.UpgradedExit += record.UpgradedExit
		day.DowngradedExit += record.DowngradedExit
	}

	days := make([]domain.AggregatedDay, 0, len(totals))
	for _, day := range totals {
		day.Churned = churnedOn(*day)
		days = append(days, *day)
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})

	return days
}

// churnedOn derives the day's churned count from the flow balance. Floored
// at 0: a day where inflows exceed the closing count cannot churn a
// negative number of subscribers.
func churnedOn(day domain.AggregatedDay) float64 {
	balance := day.Start + day.New + day.Reactivated + day.UpgradedEnter + day.DowngradedEnter -
		day.End - day.UpgradedExit - day.DowngradedExit

	if balance < 0 {
		return 0
	}

	return balance
}
