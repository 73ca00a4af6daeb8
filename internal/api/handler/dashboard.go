package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/casesmedia/subscription-insights-api/internal/domain"
	"github.com/casesmedia/subscription-insights-api/internal/usecases/reporting"
	"github.com/casesmedia/subscription-insights-api/pkg/apiErrors"
	"github.com/casesmedia/subscription-insights-api/pkg/log"
	"github.com/casesmedia/subscription-insights-api/pkg/utils"
)

// GetDashboardMetrics returns the headline metrics snapshot for a tariff
// selection and period.
func GetDashboardMetrics(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		req, ok := parseDashboardRequest(w, r)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"tariffs": req.TariffIDs,
			"preset":  req.Period.Preset,
		}).Debug("dashboard: computing headline metrics")

		report, err := service.Dashboard(r.Context(), req)
		if err != nil {
			writeReportingError(w, logger, err)
			return
		}

		report.Display = displayFor(report.Metrics)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetDashboardSeries returns the aggregated per-day series for charting.
func GetDashboardSeries(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		req, ok := parseDashboardRequest(w, r)
		if !ok {
			return
		}

		report, err := service.Series(r.Context(), req)
		if err != nil {
			writeReportingError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"tariffs": req.TariffIDs,
			"days":    len(report.Days),
		}).Info("dashboard: series computed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(report); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetComparisonTable returns the per-tariff comparison grid.
func GetComparisonTable(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		period, ok := parsePeriodRequest(w, r)
		if !ok {
			return
		}

		table, err := service.Comparison(r.Context(), period)
		if err != nil {
			writeReportingError(w, logger, err)
			return
		}

		logger.WithFields(log.Fields{
			"groups":   len(table.Groups),
			"warnings": len(table.Warnings),
		}).Info("dashboard: comparison table computed")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(table); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// GetAvailablePeriods returns the dataset's date range and supported presets.
func GetAvailablePeriods(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		periods, err := service.AvailablePeriods(r.Context(), parseTariffIDs(r))
		if err != nil {
			writeReportingError(w, logger, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(periods); err != nil {
			logger.WithError(err).Error("dashboard: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

// ListTariffs returns the static tariff catalogue.
func ListTariffs(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(service.Catalogue()); err != nil {
			logger.WithError(err).Error("tariffs: failed to encode response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})
}

func parseTariffIDs(r *http.Request) []string {
	raw := r.URL.Query().Get("tariffs")
	if raw == "" {
		return nil
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// parsePeriodRequest reads the preset or explicit date bounds from the
// query string, writing a coded 400 on malformed input.
func parsePeriodRequest(w http.ResponseWriter, r *http.Request) (reporting.PeriodRequest, bool) {
	logger := log.ForContext(r.Context())
	query := r.URL.Query()

	req := reporting.PeriodRequest{}

	if preset := query.Get("preset"); preset != "" {
		req.Preset = domain.PeriodPreset(preset)
		if !req.Preset.Valid() {
			logger.WithField("preset", preset).Warn("dashboard: unknown period preset")
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "unknown period preset", preset)
			return reporting.PeriodRequest{}, false
		}
	}

	startDate, err := utils.ParseDate(query.Get("start_date"))
	if err != nil {
		logger.WithField("start_date", query.Get("start_date")).Warn("dashboard: invalid start_date parameter")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid start_date", query.Get("start_date"))
		return reporting.PeriodRequest{}, false
	}

	endDate, err := utils.ParseDate(query.Get("end_date"))
	if err != nil {
		logger.WithField("end_date", query.Get("end_date")).Warn("dashboard: invalid end_date parameter")
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "invalid end_date", query.Get("end_date"))
		return reporting.PeriodRequest{}, false
	}

	if startDate.IsZero() != endDate.IsZero() {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "start_date and end_date must be provided together", nil)
		return reporting.PeriodRequest{}, false
	}

	req.StartDate = startDate
	req.EndDate = endDate

	return req, true
}

func parseDashboardRequest(w http.ResponseWriter, r *http.Request) (reporting.DashboardRequest, bool) {
	period, ok := parsePeriodRequest(w, r)
	if !ok {
		return reporting.DashboardRequest{}, false
	}

	return reporting.DashboardRequest{
		TariffIDs: parseTariffIDs(r),
		Period:    period,
	}, true
}

// writeReportingError maps reporting errors onto the coded API responses.
func writeReportingError(w http.ResponseWriter, logger log.Logger, err error) {
	switch {
	case errors.Is(err, reporting.ErrInvalidRange):
		logger.WithError(err).Warn("dashboard: invalid explicit date range")
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, err.Error(), nil)
	case errors.Is(err, reporting.ErrUnknownTariff):
		logger.WithError(err).Warn("dashboard: unknown tariff in selection")
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, err.Error(), nil)
	default:
		logger.WithError(err).Error("dashboard: failed to compute report")
		apiErrors.WriteError(w, apiErrors.ErrUpstreamFetch, err.Error(), nil)
	}
}

// displayFor renders the snapshot for the dashboard cards. This is the one
// place presentation formatting happens; the raw values travel untouched.
func displayFor(m *domain.MetricsSnapshot) map[string]string {
	return map[string]string{
		"start_value":   utils.FormatCount(m.StartValue),
		"end_value":     utils.FormatCount(m.EndValue),
		"new_subs":      utils.FormatCount(domain.MetricOf(m.NewSubs)),
		"reactivated":   utils.FormatCount(domain.MetricOf(m.Reactivated)),
		"upgraded":      utils.FormatCount(domain.MetricOf(m.Upgraded)),
		"downgraded":    utils.FormatCount(domain.MetricOf(m.Downgraded)),
		"churned_total": utils.FormatCount(domain.MetricOf(m.ChurnedTotal)),
		"mrr":           utils.FormatMoney(domain.MetricOf(m.MRR)),
		"churn_rate":    utils.FormatPercent(m.ChurnRate),
		"growth_rate":   utils.FormatPercent(m.GrowthRate),
		"lifetime":      utils.FormatNumber(m.Lifetime, 1),
		"arppu":         utils.FormatMoney(m.ARPPU),
		"ltv":           utils.FormatMoney(m.LTV),
		"cac":           utils.FormatMoney(m.CAC),
		"ltv_cac":       utils.FormatNumber(m.LTVCAC, 2),
	}
}
