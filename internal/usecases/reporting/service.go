package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/casesmedia/subscription-insights-api/infrastructure/dataset"
	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/pkg/log"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// ErrUnknownTariff reports a selection naming a tariff absent from the
// catalogue.
var ErrUnknownTariff = errors.New("unknown tariff")

// Service implements Reporter on top of the sheet loader and the in-memory
// dataset store. All computation is per-request over immutable snapshots;
// the service itself holds no mutable state.
type Service struct {
	cfg        *config.Config
	loader     sheets.Loader
	store      *dataset.Store
	calculator *Calculator
	catalogue  []domain.Tariff

	// now is re-sampled on every period resolution; swapped in tests.
	now func() time.Time
}

// NewService creates the reporting service, deriving the tariff catalogue
// from configuration.
func NewService(cfg *config.Config, loader sheets.Loader, store *dataset.Store) *Service {
	catalogue := make([]domain.Tariff, 0, len(cfg.Tariffs))
	for _, entry := range cfg.Tariffs {
		catalogue = append(catalogue, domain.NewTariff(entry.ID, entry.Name, entry.SheetID))
	}

	return &Service{
		cfg:        cfg,
		loader:     loader,
		store:      store,
		calculator: NewCalculator(cfg.Metrics.AdBudget),
		catalogue:  catalogue,
		now:        time.Now,
	}
}

// Catalogue lists the configured tariffs in display order.
func (s *Service) Catalogue() []domain.Tariff {
	return s.catalogue
}

// Dashboard computes the headline metrics snapshot for the selection.
func (s *Service) Dashboard(ctx context.Context, req DashboardRequest) (*domain.DashboardReport, error) {
	tariffs, err := s.selectTariffs(req.TariffIDs)
	if err != nil {
		return nil, err
	}

	series, err := s.loadSelection(ctx, tariffs)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(req.Period, series)
	if err != nil {
		return nil, err
	}

	days := AggregateByDay(flatten(series), period)
	metrics := s.calculator.Compute(period, days, series)

	return &domain.DashboardReport{
		Period:    period,
		TariffIDs: tariffIDs(tariffs),
		Metrics:   metrics,
	}, nil
}

// Series returns the aggregated per-day rows plus per-day MRR for charting.
func (s *Service) Series(ctx context.Context, req DashboardRequest) (*domain.SeriesReport, error) {
	tariffs, err := s.selectTariffs(req.TariffIDs)
	if err != nil {
		return nil, err
	}

	series, err := s.loadSelection(ctx, tariffs)
	if err != nil {
		return nil, err
	}

	period, err := s.resolvePeriod(req.Period, series)
	if err != nil {
		return nil, err
	}

	days := AggregateByDay(flatten(series), period)
	mrrByDay := MRRByDay(period, series)

	points := make([]domain.SeriesPoint, 0, len(days))
	for _, day := range days {
		points = append(points, domain.SeriesPoint{
			AggregatedDay: day,
			MRR:           mrrByDay[day.Date],
		})
	}

	return &domain.SeriesReport{
		Period:    period,
		TariffIDs: tariffIDs(tariffs),
		Days:      points,
	}, nil
}

// Comparison runs the calculator once per catalogue tariff over one shared
// period, each on that tariff's own records and price. A tariff whose data
// fails to load is skipped with a warning; the others proceed.
func (s *Service) Comparison(ctx context.Context, req PeriodRequest) (*domain.ComparisonTable, error) {
	logger := log.ForContext(ctx)

	var series []TariffSeries
	var warnings []string

	for _, tariff := range s.catalogue {
		records, err := s.ensureLoaded(ctx, tariff)
		if err != nil {
			logger.WithError(err).WithField("tariff_id", tariff.ID).
				Warn("comparison: skipping tariff, data unavailable")
			warnings = append(warnings, fmt.Sprintf("tariff %s: data unavailable", tariff.ID))
			continue
		}

		series = append(series, TariffSeries{Tariff: tariff, Records: records})
	}

	period, err := s.resolvePeriod(req, series)
	if err != nil {
		return nil, err
	}

	table := &domain.ComparisonTable{
		Period:   period,
		Groups:   make(map[domain.AccessGroup]map[string]*domain.ComparisonCell),
		Warnings: warnings,
	}

	for _, ts := range series {
		days := AggregateByDay(ts.Records, period)
		metrics := s.calculator.Compute(period, days, []TariffSeries{ts})

		group, ok := table.Groups[ts.Tariff.AccessGroup]
		if !ok {
			group = make(map[string]*domain.ComparisonCell)
			table.Groups[ts.Tariff.AccessGroup] = group
		}

		label := ts.Tariff.TierLabel()
		if _, taken := group[label]; taken {
			label = ts.Tariff.Name
		}

		group[label] = &domain.ComparisonCell{
			TariffID:   ts.Tariff.ID,
			TariffName: ts.Tariff.Name,
			Price:      ts.Tariff.Price,
			Metrics:    metrics,
		}
	}

	return table, nil
}

// AvailablePeriods returns the selection's dataset date range and presets.
func (s *Service) AvailablePeriods(ctx context.Context, ids []string) (*domain.AvailablePeriods, error) {
	tariffs, err := s.selectTariffs(ids)
	if err != nil {
		return nil, err
	}

	series, err := s.loadSelection(ctx, tariffs)
	if err != nil {
		return nil, err
	}

	periods := &domain.AvailablePeriods{Presets: domain.Presets}

	if minDate, maxDate, ok := datasetBounds(series); ok {
		periods.MinDate = minDate.Format(time.DateOnly)
		periods.MaxDate = maxDate.Format(time.DateOnly)
	}

	return periods, nil
}

// selectTariffs maps the requested IDs onto catalogue tariffs. An empty
// selection means the whole catalogue.
func (s *Service) selectTariffs(ids []string) ([]domain.Tariff, error) {
	if len(ids) == 0 {
		return s.catalogue, nil
	}

	byID := make(map[string]domain.Tariff, len(s.catalogue))
	for _, tariff := range s.catalogue {
		byID[tariff.ID] = tariff
	}

	tariffs := make([]domain.Tariff, 0, len(ids))
	for _, id := range ids {
		tariff, ok := byID[id]
		if !ok {
			return nil, errors.Wrap(ErrUnknownTariff, id)
		}
		tariffs = append(tariffs, tariff)
	}

	return tariffs, nil
}

// ensureLoaded serves the tariff's records from the dataset store, loading
// them through the sheet integrator on first use.
func (s *Service) ensureLoaded(ctx context.Context, tariff domain.Tariff) ([]domain.DailyRecord, error) {
	if records, ok := s.store.Records(tariff.ID); ok {
		return records, nil
	}

	records, err := s.loader.LoadTariff(ctx, tariff)
	if err != nil {
		return nil, err
	}

	s.store.Put(tariff.ID, records)
	return records, nil
}

// loadSelection loads every selected tariff. On the headline path a load
// failure fails the request; only the comparison path degrades per tariff.
func (s *Service) loadSelection(ctx context.Context, tariffs []domain.Tariff) ([]TariffSeries, error) {
	series := make([]TariffSeries, 0, len(tariffs))

	for _, tariff := range tariffs {
		records, err := s.ensureLoaded(ctx, tariff)
		if err != nil {
			return nil, err
		}
		series = append(series, TariffSeries{Tariff: tariff, Records: records})
	}

	return series, nil
}

// resolvePeriod resolves the request against the selection's dataset
// bounds. With no loaded data at all the bounds collapse to today, which
// yields an empty aggregation and an all-undefined snapshot downstream.
func (s *Service) resolvePeriod(req PeriodRequest, series []TariffSeries) (domain.Period, error) {
	today := s.now()

	minDate, maxDate, ok := datasetBounds(series)
	if !ok {
		minDate = utils.TruncateToDay(today)
		maxDate = minDate
	}

	return ResolvePeriod(req, minDate, maxDate, today)
}

func datasetBounds(series []TariffSeries) (time.Time, time.Time, bool) {
	var minDate, maxDate time.Time
	found := false

	for _, ts := range series {
		for _, record := range ts.Records {
			date := utils.TruncateToDay(record.Date)
			if !found {
				minDate, maxDate = date, date
				found = true
				continue
			}
			if date.Before(minDate) {
				minDate = date
			}
			if date.After(maxDate) {
				maxDate = date
			}
		}
	}

	return minDate, maxDate, found
}

func flatten(series []TariffSeries) []domain.DailyRecord {
	var records []domain.DailyRecord
	for _, ts := range series {
		records = append(records, ts.Records...)
	}
	return records
}

func tariffIDs(tariffs []domain.Tariff) []string {
	ids := make([]string, 0, len(tariffs))
	for _, tariff := range tariffs {
		ids = append(ids, tariff.ID)
	}
	return ids
}
