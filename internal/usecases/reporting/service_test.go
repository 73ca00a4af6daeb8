package reporting

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/casesmedia/subscription-insights-api/infrastructure/dataset"
	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets/mocks"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

func testConfig() *config.Config {
	return &config.Config{
		Metrics: config.Metrics{AdBudget: 5000},
		Tariffs: []config.TariffEntry{
			{ID: "theory_250", Name: "Theory 250", SheetID: "s1"},
			{ID: "full_900", Name: "Full 900", SheetID: "s2"},
		},
	}
}

func newTestService(t *testing.T, loader *mocks.MockLoader) *Service {
	t.Helper()

	service := NewService(testConfig(), loader, dataset.NewStore())
	service.now = func() time.Time { return day("2024-07-05") }
	return service
}

func theoryRecords() []domain.DailyRecord {
	return []domain.DailyRecord{
		{Date: day("2024-03-01"), TariffID: "theory_250", Price: 250, Start: 100, New: 10, Reactivated: 2, End: 95},
		{Date: day("2024-03-02"), TariffID: "theory_250", Price: 250, Start: 95, New: 4, End: 97},
	}
}

func fullRecords() []domain.DailyRecord {
	return []domain.DailyRecord{
		{Date: day("2024-03-01"), TariffID: "full_900", Price: 900, Start: 40, New: 1, End: 40},
		{Date: day("2024-03-02"), TariffID: "full_900", Price: 900, Start: 40, New: 2, End: 41},
	}
}

func TestService_Dashboard(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(theoryRecords(), nil)
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(fullRecords(), nil)

	service := newTestService(t, mockLoader)

	report, err := service.Dashboard(context.Background(), DashboardRequest{
		Period: PeriodRequest{Preset: domain.PresetAllTime},
	})
	require.NoError(t, err)

	assert.Equal(t, day("2024-03-01"), report.Period.StartDate)
	assert.Equal(t, day("2024-03-02"), report.Period.EndDate)
	assert.Equal(t, []string{"theory_250", "full_900"}, report.TariffIDs)

	startValue, ok := report.Metrics.StartValue.Float64()
	require.True(t, ok)
	assert.Equal(t, 140.0, startValue)

	endValue, ok := report.Metrics.EndValue.Float64()
	require.True(t, ok)
	assert.Equal(t, 138.0, endValue)

	assert.Equal(t, 17.0, report.Metrics.NewSubs)

	// mean(100,95)×250 + mean(40,40)×900
	assert.InDelta(t, 97.5*250+40*900, report.Metrics.MRR, 1e-9)
}

func TestService_DashboardCachesLoadedTariffs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	// One load per tariff even though we request twice.
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(theoryRecords(), nil).Times(1)

	service := newTestService(t, mockLoader)
	req := DashboardRequest{
		TariffIDs: []string{"theory_250"},
		Period:    PeriodRequest{Preset: domain.PresetAllTime},
	}

	_, err := service.Dashboard(context.Background(), req)
	require.NoError(t, err)

	_, err = service.Dashboard(context.Background(), req)
	require.NoError(t, err)
}

func TestService_DashboardUnknownTariff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := newTestService(t, mocks.NewMockLoader(ctrl))

	_, err := service.Dashboard(context.Background(), DashboardRequest{
		TariffIDs: []string{"platinum_9000"},
	})

	assert.ErrorIs(t, err, ErrUnknownTariff)
}

func TestService_DashboardInvalidExplicitRange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(theoryRecords(), nil)

	service := newTestService(t, mockLoader)

	_, err := service.Dashboard(context.Background(), DashboardRequest{
		TariffIDs: []string{"theory_250"},
		Period: PeriodRequest{
			StartDate: dayPtr("2024-03-02"),
			EndDate:   dayPtr("2024-03-01"),
		},
	})

	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestService_SeriesIncludesPerDayMRR(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(theoryRecords(), nil)

	service := newTestService(t, mockLoader)

	report, err := service.Series(context.Background(), DashboardRequest{
		TariffIDs: []string{"theory_250"},
		Period:    PeriodRequest{Preset: domain.PresetAllTime},
	})
	require.NoError(t, err)

	require.Len(t, report.Days, 2)
	assert.Equal(t, 100.0*250, report.Days[0].MRR)
	assert.Equal(t, 95.0*250, report.Days[1].MRR)
	assert.Equal(t, 17.0, report.Days[0].Churned)

	// Ascending date order for charting.
	assert.True(t, report.Days[0].Date.Before(report.Days[1].Date))
}

func TestService_ComparisonSkipsFailedTariff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	mockLoader.EXPECT().
		LoadTariff(gomock.Any(), tariffWithID("theory_250")).
		Return(theoryRecords(), nil)
	mockLoader.EXPECT().
		LoadTariff(gomock.Any(), tariffWithID("full_900")).
		Return(nil, errors.New("sheet unavailable"))

	service := newTestService(t, mockLoader)

	table, err := service.Comparison(context.Background(), PeriodRequest{Preset: domain.PresetAllTime})
	require.NoError(t, err)

	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0], "full_900")

	theoryGroup, ok := table.Groups[domain.AccessGroupTheoryOnly]
	require.True(t, ok)

	cell, ok := theoryGroup["250"]
	require.True(t, ok)
	assert.Equal(t, "theory_250", cell.TariffID)
	assert.Equal(t, 250, cell.Price)

	// The per-tariff path uses the tariff's own series and price.
	startValue, defined := cell.Metrics.StartValue.Float64()
	require.True(t, defined)
	assert.Equal(t, 100.0, startValue)
	assert.InDelta(t, 97.5*250, cell.Metrics.MRR, 1e-9)

	// The failed tariff is absent from the grid entirely.
	_, ok = table.Groups[domain.AccessGroupFullAccess]
	assert.False(t, ok)
}

func TestService_AvailablePeriods(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockLoader(ctrl)
	mockLoader.EXPECT().LoadTariff(gomock.Any(), gomock.Any()).Return(theoryRecords(), nil)

	service := newTestService(t, mockLoader)

	periods, err := service.AvailablePeriods(context.Background(), []string{"theory_250"})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", periods.MinDate)
	assert.Equal(t, "2024-03-02", periods.MaxDate)
	assert.Equal(t, domain.Presets, periods.Presets)
}

// tariffWithID matches a domain.Tariff argument by its ID.
func tariffWithID(id string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		tariff, ok := x.(domain.Tariff)
		return ok && tariff.ID == id
	})
}
