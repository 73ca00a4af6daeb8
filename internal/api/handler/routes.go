package handler

import (
	"net/http"

	"github.com/casesmedia/subscription-insights-api/internal/api/handler/router"
	"github.com/casesmedia/subscription-insights-api/internal/usecases/reporting"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Tariffs(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/tariffs",
			Method:  http.MethodGet,
			Handler: ListTariffs(service),
		},
	}
}

func Dashboard(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/dashboard/metrics",
			Method:  http.MethodGet,
			Handler: GetDashboardMetrics(service),
		},
		{
			Path:    "/v1/dashboard/series",
			Method:  http.MethodGet,
			Handler: GetDashboardSeries(service),
		},
		{
			Path:    "/v1/dashboard/comparison",
			Method:  http.MethodGet,
			Handler: GetComparisonTable(service),
		},
		{
			Path:    "/v1/dashboard/periods",
			Method:  http.MethodGet,
			Handler: GetAvailablePeriods(service),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
