package reporting

import (
	"context"
	"time"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

// PeriodRequest selects the reporting window: either a relative preset or
// explicit bounds. When both are present the explicit bounds win.
type PeriodRequest struct {
	Preset    domain.PeriodPreset
	StartDate *time.Time
	EndDate   *time.Time
}

// Explicit reports whether the request carries usable explicit bounds.
func (r PeriodRequest) Explicit() bool {
	return r.StartDate != nil && !r.StartDate.IsZero() &&
		r.EndDate != nil && !r.EndDate.IsZero()
}

// DashboardRequest is one dashboard interaction: a tariff selection plus a
// period selection. An empty tariff list selects the whole catalogue.
type DashboardRequest struct {
	TariffIDs []string
	Period    PeriodRequest
}

// Reporter is the reporting surface the HTTP layer consumes.
type Reporter interface {
	// Dashboard computes the headline metrics snapshot for the selection.
	Dashboard(ctx context.Context, req DashboardRequest) (*domain.DashboardReport, error)

	// Series returns the aggregated per-day rows, with per-day MRR, for the
	// dashboard charts.
	Series(ctx context.Context, req DashboardRequest) (*domain.SeriesReport, error)

	// Comparison computes metrics independently per catalogue tariff over
	// one shared period.
	Comparison(ctx context.Context, req PeriodRequest) (*domain.ComparisonTable, error)

	// AvailablePeriods returns the selection's dataset date range and the
	// supported presets.
	AvailablePeriods(ctx context.Context, tariffIDs []string) (*domain.AvailablePeriods, error)

	// Catalogue lists the configured tariffs.
	Catalogue() []domain.Tariff
}
