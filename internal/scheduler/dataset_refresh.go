package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/casesmedia/subscription-insights-api/infrastructure/dataset"
	"github.com/casesmedia/subscription-insights-api/infrastructure/integrator/sheets"
	"github.com/casesmedia/subscription-insights-api/internal/config"
	"github.com/casesmedia/subscription-insights-api/internal/domain"
)

// DatasetRefreshConfig holds the refresh scheduler settings.
type DatasetRefreshConfig struct {
	CronSchedule        string
	RequestDelaySeconds int
	Enabled             bool
}

// RefreshStatus is the status surface exposed through the cron endpoint.
type RefreshStatus struct {
	Running             bool       `json:"running"`
	LastRefreshStarted  *time.Time `json:"last_refresh_started,omitempty"`
	LastRefreshFinished *time.Time `json:"last_refresh_finished,omitempty"`
	LastError           string     `json:"last_error,omitempty"`
	TariffsLoaded       int        `json:"tariffs_loaded"`
}

// DatasetRefreshService re-fetches every catalogue tariff's sheet on a cron
// schedule and replaces the in-memory snapshots wholesale. Requests in
// flight keep the snapshot they already read.
type DatasetRefreshService struct {
	scheduler *gocron.Scheduler
	config    DatasetRefreshConfig
	loader    sheets.Loader
	store     *dataset.Store
	catalogue []domain.Tariff

	refreshRunning      bool
	refreshMutex        sync.Mutex
	lastRefreshStarted  time.Time
	lastRefreshFinished time.Time
	lastError           error
}

// NewDatasetRefreshService creates the refresh scheduler from the global
// configuration.
func NewDatasetRefreshService(
	loader sheets.Loader,
	store *dataset.Store,
	appConfig *config.Config,
) *DatasetRefreshService {
	refreshConfig := DatasetRefreshConfig{
		CronSchedule:        appConfig.DatasetRefresh.CronSchedule,
		RequestDelaySeconds: appConfig.DatasetRefresh.RequestDelaySeconds,
		Enabled:             appConfig.DatasetRefresh.Enabled,
	}

	catalogue := make([]domain.Tariff, 0, len(appConfig.Tariffs))
	for _, entry := range appConfig.Tariffs {
		catalogue = append(catalogue, domain.NewTariff(entry.ID, entry.Name, entry.SheetID))
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule":         refreshConfig.CronSchedule,
		"request_delay_seconds": refreshConfig.RequestDelaySeconds,
		"enabled":               refreshConfig.Enabled,
		"tariffs":               len(catalogue),
	}).Info("dataset refresh scheduler configured")

	return &DatasetRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    refreshConfig,
		loader:    loader,
		store:     store,
		catalogue: catalogue,
	}
}

// Start schedules the refresh job and stops it when ctx is cancelled.
func (s *DatasetRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("dataset refresh disabled by configuration")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("starting dataset refresh scheduler")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.refreshAll(context.Background())
	})
	if err != nil {
		return fmt.Errorf("scheduling dataset refresh: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("stopping dataset refresh scheduler")
		s.scheduler.Stop()
	}()

	return nil
}

// TriggerManualRefresh runs one refresh pass in the background, regardless
// of the enabled flag.
func (s *DatasetRefreshService) TriggerManualRefresh() {
	go s.refreshAll(context.Background())
}

// Status reports the scheduler's current state.
func (s *DatasetRefreshService) Status() RefreshStatus {
	s.refreshMutex.Lock()
	defer s.refreshMutex.Unlock()

	status := RefreshStatus{
		Running:       s.refreshRunning,
		TariffsLoaded: len(s.store.TariffIDs()),
	}

	if !s.lastRefreshStarted.IsZero() {
		started := s.lastRefreshStarted
		status.LastRefreshStarted = &started
	}
	if !s.lastRefreshFinished.IsZero() {
		finished := s.lastRefreshFinished
		status.LastRefreshFinished = &finished
	}
	if s.lastError != nil {
		status.LastError = s.lastError.Error()
	}

	return status
}

// refreshAll re-fetches every catalogue tariff, tolerating per-tariff
// failures so one broken sheet does not block the rest.
func (s *DatasetRefreshService) refreshAll(ctx context.Context) {
	s.refreshMutex.Lock()
	if s.refreshRunning {
		s.refreshMutex.Unlock()
		logrus.Info("dataset refresh already running, skipping")
		return
	}
	s.refreshRunning = true
	s.lastRefreshStarted = time.Now()
	s.refreshMutex.Unlock()

	defer func() {
		s.refreshMutex.Lock()
		s.refreshRunning = false
		s.lastRefreshFinished = time.Now()
		s.refreshMutex.Unlock()
	}()

	logrus.WithField("tariffs", len(s.catalogue)).Info("dataset refresh started")

	var failures int
	var lastErr error

	for i, tariff := range s.catalogue {
		if i > 0 && s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}

		records, err := s.loader.LoadTariff(ctx, tariff)
		if err != nil {
			failures++
			lastErr = err
			logrus.WithError(err).WithField("tariff_id", tariff.ID).
				Warn("dataset refresh: tariff load failed, keeping previous snapshot")
			continue
		}

		s.store.Put(tariff.ID, records)
	}

	s.refreshMutex.Lock()
	s.lastError = lastErr
	s.refreshMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"tariffs":  len(s.catalogue),
		"failures": failures,
	}).Info("dataset refresh finished")
}
