package sheets

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets/sheetsclient"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/log"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// Loader fetches and normalizes the daily snapshot series for one tariff.
type Loader interface {
	LoadTariff(ctx context.Context, tariff domain.Tariff) ([]domain.DailyRecord, error)
}

// flowColumns are the numeric columns summed downstream, in sheet order.
// A missing column or unparseable cell coerces to 0.
var flowColumns = []string{
	"start",
	"new",
	"reactivated",
	"upgradedEnter",
	"downgradedEnter",
	"end",
	"upgradedExit",
	"downgradedExit",
}

// dateFormats accepted for the date column, tried in order.
var dateFormats = []string{
	time.DateOnly,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02.01.2006",
}

type SheetsLoader struct {
	cfg    *config.Config
	client sheetsclient.Client
}

// New creates the sheet-backed loader.
func New(cfg *config.Config, client sheetsclient.Client) Loader {
	return &SheetsLoader{
		cfg:    cfg,
		client: client,
	}
}

// LoadTariff fetches the tariff's sheet and converts it to daily records.
// Rows whose date cannot be parsed are dropped; numeric cells that cannot
// be parsed become 0. Duplicate dates are kept as-is.
func (l *SheetsLoader) LoadTariff(ctx context.Context, tariff domain.Tariff) ([]domain.DailyRecord, error) {
	logger := log.ForContext(ctx)

	rows, err := l.client.FetchCSV(ctx, tariff.SheetID)
	if err != nil {
		return nil, errors.Wrapf(err, "loading tariff %s", tariff.ID)
	}

	if len(rows) == 0 {
		logger.WithField("tariff_id", tariff.ID).Warn("sheets: empty sheet for tariff")
		return nil, nil
	}

	columns := columnIndex(rows[0])
	dateCol, hasDate := columns["date"]
	if !hasDate {
		return nil, errors.Errorf("sheet for tariff %s has no date column", tariff.ID)
	}

	records := make([]domain.DailyRecord, 0, len(rows)-1)
	dropped := 0

	for _, row := range rows[1:] {
		if dateCol >= len(row) {
			dropped++
			continue
		}

		date, ok := parseDateCell(row[dateCol])
		if !ok {
			dropped++
			continue
		}

		record := domain.DailyRecord{
			Date:     date,
			TariffID: tariff.ID,
			Price:    tariff.Price,
		}

		values := make([]float64, len(flowColumns))
		for i, column := range flowColumns {
			idx, present := columns[column]
			if !present || idx >= len(row) {
				continue
			}
			values[i] = coerceNumber(row[idx])
		}

		record.Start = values[0]
		record.New = values[1]
		record.Reactivated = values[2]
		record.UpgradedEnter = values[3]
		record.DowngradedEnter = values[4]
		record.End = values[5]
		record.UpgradedExit = values[6]
		record.DowngradedExit = values[7]

		records = append(records, record)
	}

	if dropped > 0 {
		logger.WithFields(log.Fields{
			"tariff_id": tariff.ID,
			"dropped":   dropped,
		}).Debug("sheets: dropped rows with unparseable dates")
	}

	logger.WithFields(log.Fields{
		"tariff_id": tariff.ID,
		"records":   len(records),
	}).Info("sheets: tariff snapshot loaded")

	return records, nil
}

func columnIndex(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	return columns
}

func parseDateCell(cell string) (time.Time, bool) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return time.Time{}, false
	}

	for _, format := range dateFormats {
		if date, err := time.Parse(format, cell); err == nil {
			return utils.TruncateToDay(date), true
		}
	}

	return time.Time{}, false
}

// coerceNumber converts a sheet cell to a number, defaulting to 0 rather
// than failing the row.
func coerceNumber(cell string) float64 {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return 0
	}

	// Sheets export decimal commas for some locales.
	cell = strings.ReplaceAll(cell, ",", ".")

	value, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0
	}

	return value
}
