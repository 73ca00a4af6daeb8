package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets/sheetsclient/mocks"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

func testTariff() domain.Tariff {
	return domain.NewTariff("theory_250", "Theory 250", "sheet-250")
}

func testDay(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSheetsLoader_LoadTariff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), "sheet-250").Return([][]string{
		{"date", "start", "new", "reactivated", "upgradedEnter", "downgradedEnter", "end", "upgradedExit", "downgradedExit"},
		{"2024-03-01", "100", "10", "2", "0", "1", "95", "0", "0"},
		{"2024-03-02", "95", "4", "0", "0", "0", "97", "1", "0"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, testDay("2024-03-01"), first.Date)
	assert.Equal(t, "theory_250", first.TariffID)
	assert.Equal(t, 250, first.Price)
	assert.Equal(t, 100.0, first.Start)
	assert.Equal(t, 10.0, first.New)
	assert.Equal(t, 2.0, first.Reactivated)
	assert.Equal(t, 1.0, first.DowngradedEnter)
	assert.Equal(t, 95.0, first.End)

	assert.Equal(t, 1.0, records[1].UpgradedExit)
}

func TestSheetsLoader_DropsRowsWithBadDates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"date", "start", "end"},
		{"not-a-date", "100", "95"},
		{"", "100", "95"},
		{"2024-03-02", "95", "97"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, testDay("2024-03-02"), records[0].Date)
}

func TestSheetsLoader_AcceptsAlternateDateFormats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"date", "start"},
		{"2024-03-01 10:30:00", "100"},
		{"02.03.2024", "95"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Timestamps are truncated to the day.
	assert.Equal(t, testDay("2024-03-01"), records[0].Date)
	assert.Equal(t, testDay("2024-03-02"), records[1].Date)
}

func TestSheetsLoader_CoercesBadNumbersToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"date", "start", "new", "end"},
		{"2024-03-01", "n/a", "12,5", ""},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 0.0, records[0].Start)
	// Decimal commas are normalized before parsing.
	assert.Equal(t, 12.5, records[0].New)
	assert.Equal(t, 0.0, records[0].End)
}

func TestSheetsLoader_MissingColumnsDefaultToZero(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"date", "start", "end"},
		{"2024-03-01", "100", "95"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 100.0, records[0].Start)
	assert.Equal(t, 95.0, records[0].End)
	assert.Equal(t, 0.0, records[0].New)
	assert.Equal(t, 0.0, records[0].UpgradedEnter)
}

func TestSheetsLoader_RaggedRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Sheets exports drop trailing empty cells.
	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"date", "start", "new", "end"},
		{"2024-03-01", "100"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, 100.0, records[0].Start)
	assert.Equal(t, 0.0, records[0].End)
}

func TestSheetsLoader_MissingDateColumn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return([][]string{
		{"day", "start", "end"},
		{"2024-03-01", "100", "95"},
	}, nil)

	loader := New(&config.Config{}, mockClient)

	_, err := loader.LoadTariff(context.Background(), testTariff())
	assert.Error(t, err)
}

func TestSheetsLoader_FetchError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return(nil, errors.New("export unavailable"))

	loader := New(&config.Config{}, mockClient)

	_, err := loader.LoadTariff(context.Background(), testTariff())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theory_250")
}

func TestSheetsLoader_EmptySheet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().FetchCSV(gomock.Any(), gomock.Any()).Return(nil, nil)

	loader := New(&config.Config{}, mockClient)

	records, err := loader.LoadTariff(context.Background(), testTariff())
	require.NoError(t, err)
	assert.Empty(t, records)
}
