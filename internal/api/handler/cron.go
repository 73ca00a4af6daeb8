package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/casesmedia/subscription-insights-api/internal/scheduler"
	"github.com/casesmedia/subscription-insights-api/pkg/apiErrors"
)

// CronJobType names the cron jobs that can be triggered manually.
const (
	CronJobTypeRefresh = "refresh"
)

// CronJobServices holds the schedulers exposed through the cron endpoints.
type CronJobServices struct {
	DatasetRefreshService *scheduler.DatasetRefreshService
}

// RunCronJob triggers one cron job manually.
func RunCronJob(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "cron job type not specified", nil)
			return
		}

		switch cronType {
		case CronJobTypeRefresh:
			if services.DatasetRefreshService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "dataset refresh service unavailable", nil)
				return
			}

			logrus.Info("cron: manual dataset refresh triggered")
			services.DatasetRefreshService.TriggerManualRefresh()

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "started",
				"type":   cronType,
			})

		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "unknown cron job type", cronType)
		}
	}
}

// GetCronStatus reports the refresh scheduler's status.
func GetCronStatus(services CronJobServices) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if services.DatasetRefreshService == nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "dataset refresh service unavailable", nil)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(services.DatasetRefreshService.Status()); err != nil {
			logrus.WithError(err).Error("cron: failed to encode status response")
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	}
}
