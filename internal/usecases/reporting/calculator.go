package reporting

import (
	"time"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// TariffSeries pairs a catalogue tariff with its loaded daily records. The
// records are the tariff's full series; period filtering happens inside
// the calculator and aggregator.
type TariffSeries struct {
	Tariff  domain.Tariff
	Records []domain.DailyRecord
}

// Calculator derives the business metrics for one period. It never fails:
// division by zero and missing boundary rows resolve to the undefined
// marker per scalar, and undefined-ness propagates independently through
// dependent scalars.
type Calculator struct {
	adBudget float64
}

// NewCalculator creates a calculator with the configured ad budget, the one
// external constant the metric chain consumes.
func NewCalculator(adBudget float64) *Calculator {
	return &Calculator{adBudget: adBudget}
}

// Compute derives the full metrics snapshot. days must be the aggregation
// of series over the same period (AggregateByDay output); series carries
// the per-tariff records the MRR reconstruction needs.
func (c *Calculator) Compute(period domain.Period, days []domain.AggregatedDay, series []TariffSeries) *domain.MetricsSnapshot {
	snapshot := &domain.MetricsSnapshot{
		StartValue: domain.UndefinedMetric(),
		EndValue:   domain.UndefinedMetric(),
		ChurnRate:  domain.UndefinedMetric(),
		GrowthRate: domain.UndefinedMetric(),
		Lifetime:   domain.UndefinedMetric(),
		ARPPU:      domain.UndefinedMetric(),
		LTV:        domain.UndefinedMetric(),
		CAC:        domain.UndefinedMetric(),
		LTVCAC:     domain.UndefinedMetric(),
	}

	for _, day := range days {
		if day.Date.Equal(period.StartDate) {
			snapshot.StartValue = domain.MetricOf(day.Start)
		}
		if day.Date.Equal(period.EndDate) {
			snapshot.EndValue = domain.MetricOf(day.End)
		}

		snapshot.NewSubs += day.New
		snapshot.Reactivated += day.Reactivated
		snapshot.Upgraded += day.UpgradedEnter
		snapshot.Downgraded += day.DowngradedEnter
		snapshot.ChurnedTotal += day.Churned
	}

	// MRR is 0, not undefined, for an empty period. Deliberate asymmetry
	// with the ratio metrics below.
	snapshot.MRR = meanMRR(period, series)

	if start, ok := snapshot.StartValue.Float64(); ok && start != 0 {
		snapshot.ChurnRate = domain.MetricOf(snapshot.ChurnedTotal / start)
	}

	snapshot.GrowthRate = c.growthRate(period, series)

	if churn, ok := snapshot.ChurnRate.Float64(); ok && churn != 0 {
		snapshot.Lifetime = domain.MetricOf(1 / churn)
	}

	if end, ok := snapshot.EndValue.Float64(); ok && end != 0 {
		snapshot.ARPPU = domain.MetricOf(snapshot.MRR / end)
	}

	if lifetime, ok := snapshot.Lifetime.Float64(); ok {
		if arppu, arppuOK := snapshot.ARPPU.Float64(); arppuOK {
			snapshot.LTV = domain.MetricOf(lifetime * arppu)
		}
	}

	if snapshot.NewSubs != 0 {
		snapshot.CAC = domain.MetricOf(c.adBudget / snapshot.NewSubs)
	}

	if ltv, ok := snapshot.LTV.Float64(); ok {
		if cac, cacOK := snapshot.CAC.Float64(); cacOK && cac != 0 {
			snapshot.LTVCAC = domain.MetricOf(ltv / cac)
		}
	}

	return snapshot
}

// meanMRR is the period MRR: per tariff, the mean of its start counts over
// its rows inside the period times its price, summed across tariffs. A
// tariff with no rows in the period contributes 0.
func meanMRR(period domain.Period, series []TariffSeries) float64 {
	var total float64

	for _, ts := range series {
		var sum float64
		var count int

		for _, record := range ts.Records {
			if period.Contains(utils.TruncateToDay(record.Date)) {
				sum += record.Start
				count++
			}
		}

		if count == 0 {
			continue
		}

		total += sum / float64(count) * float64(ts.Tariff.Price)
	}

	return total
}

// MRRByDay reconstructs the selection's MRR on each date inside the period:
// the sum of start × price across tariffs with a row on that date. Dates
// with no rows are absent from the map.
func MRRByDay(period domain.Period, series []TariffSeries) map[time.Time]float64 {
	byDay := make(map[time.Time]float64)

	for _, ts := range series {
		for _, record := range ts.Records {
			date := utils.TruncateToDay(record.Date)
			if !period.Contains(date) {
				continue
			}
			byDay[date] += record.Start * float64(ts.Tariff.Price)
		}
	}

	return byDay
}

// growthRate compares the reconstructed MRR at exactly the period bounds.
// The denominator is the start-of-period MRR; a zero starting MRR reads as
// 0% growth by convention. Undefined when either boundary date has no row.
func (c *Calculator) growthRate(period domain.Period, series []TariffSeries) domain.Metric {
	byDay := MRRByDay(period, series)

	mrrFirst, okFirst := byDay[period.StartDate]
	mrrLast, okLast := byDay[period.EndDate]
	if !okFirst || !okLast {
		return domain.UndefinedMetric()
	}

	if mrrFirst == 0 {
		return domain.MetricOf(0)
	}

	return domain.MetricOf((mrrLast - mrrFirst) / mrrFirst)
}
