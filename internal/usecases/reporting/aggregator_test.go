package reporting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

func record(tariffID, date string, start, newSubs, reactivated, end float64) domain.DailyRecord {
	return domain.DailyRecord{
		Date:        day(date),
		TariffID:    tariffID,
		Start:       start,
		New:         newSubs,
		Reactivated: reactivated,
		End:         end,
	}
}

func TestAggregateByDay_SumsAcrossTariffs(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 100, 5, 1, 98),
		record("full_900", "2024-03-01", 40, 2, 0, 41),
		record("theory_250", "2024-03-02", 98, 3, 0, 99),
	}

	days := AggregateByDay(records, period)

	require.Len(t, days, 2)
	assert.Equal(t, day("2024-03-01"), days[0].Date)
	assert.Equal(t, 140.0, days[0].Start)
	assert.Equal(t, 7.0, days[0].New)
	assert.Equal(t, 139.0, days[0].End)
	assert.Equal(t, day("2024-03-02"), days[1].Date)
	assert.Equal(t, 98.0, days[1].Start)
}

func TestAggregateByDay_ChurnedNeverNegative(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	// End exceeds all inflows: the raw balance is negative.
	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 10, 0, 0, 50),
	}

	days := AggregateByDay(records, period)

	require.Len(t, days, 1)
	assert.Equal(t, 0.0, days[0].Churned)
}

func TestAggregateByDay_ChurnedBalance(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 100, 10, 2, 95),
	}

	days := AggregateByDay(records, period)

	require.Len(t, days, 1)
	assert.Equal(t, 17.0, days[0].Churned)
}

func TestAggregateByDay_FiltersToPeriodInclusive(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-02"), EndDate: day("2024-03-03")}

	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 1, 0, 0, 1),
		record("theory_250", "2024-03-02", 2, 0, 0, 2),
		record("theory_250", "2024-03-03", 3, 0, 0, 3),
		record("theory_250", "2024-03-04", 4, 0, 0, 4),
	}

	days := AggregateByDay(records, period)

	require.Len(t, days, 2)
	assert.Equal(t, day("2024-03-02"), days[0].Date)
	assert.Equal(t, day("2024-03-03"), days[1].Date)
}

func TestAggregateByDay_DuplicateRecordsSum(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 100, 5, 0, 98),
		record("theory_250", "2024-03-01", 100, 5, 0, 98),
	}

	days := AggregateByDay(records, period)

	require.Len(t, days, 1)
	assert.Equal(t, 200.0, days[0].Start)
	assert.Equal(t, 10.0, days[0].New)
}

func TestAggregateByDay_SparseUnionKeepsGaps(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-05")}

	records := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 1, 0, 0, 1),
		record("full_900", "2024-03-05", 2, 0, 0, 2),
	}

	days := AggregateByDay(records, period)

	// No zero-fill for the dates in between.
	require.Len(t, days, 2)
	assert.Equal(t, day("2024-03-01"), days[0].Date)
	assert.Equal(t, day("2024-03-05"), days[1].Date)
}

func TestAggregateByDay_EmptyInput(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	assert.Empty(t, AggregateByDay(nil, period))
}

// Aggregating a union of disjoint tariff sets must equal the field-wise sum
// of aggregating each set independently.
func TestAggregateByDay_Additivity(t *testing.T) {
	period := domain.Period{StartDate: day("2024-03-01"), EndDate: day("2024-03-31")}

	setA := []domain.DailyRecord{
		record("theory_250", "2024-03-01", 100, 5, 1, 98),
		record("theory_250", "2024-03-02", 98, 3, 0, 97),
	}
	setB := []domain.DailyRecord{
		record("full_900", "2024-03-01", 40, 2, 0, 41),
		record("full_900", "2024-03-02", 41, 1, 1, 40),
	}

	union := AggregateByDay(append(append([]domain.DailyRecord{}, setA...), setB...), period)
	onlyA := AggregateByDay(setA, period)
	onlyB := AggregateByDay(setB, period)

	require.Len(t, union, 2)
	require.Len(t, onlyA, 2)
	require.Len(t, onlyB, 2)

	for i := range union {
		assert.Equal(t, onlyA[i].Start+onlyB[i].Start, union[i].Start)
		assert.Equal(t, onlyA[i].New+onlyB[i].New, union[i].New)
		assert.Equal(t, onlyA[i].Reactivated+onlyB[i].Reactivated, union[i].Reactivated)
		assert.Equal(t, onlyA[i].End+onlyB[i].End, union[i].End)
	}
}
