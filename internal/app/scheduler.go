package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Freeeeeet/afterschool_planner/internal/catalog"
	"github.com/Freeeeeet/afterschool_planner/internal/metrics"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	store   *catalog.Store
	metrics *metrics.Metrics
	logger  *zap.Logger

	cron     *cron.Cron
	timeout  time.Duration
	baseCtx  context.Context
	cancel   context.CancelFunc
	stopChan chan struct{}
	stopOnce sync.Once
}

// NewScheduler создаёт планировщик перезагрузки каталога по cron-выражению
func NewScheduler(store *catalog.Store, m *metrics.Metrics, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		store:    store,
		metrics:  m,
		logger:   logger,
		cron:     cron.New(),
		timeout:  30 * time.Second,
		stopChan: make(chan struct{}),
	}
}

// Start регистрирует задачу и запускает cron
func (s *Scheduler) Start(ctx context.Context, expr string) error {
	s.baseCtx, s.cancel = context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(expr, func() { _ = s.ReloadCatalog(s.baseCtx) }); err != nil {
		s.cancel()
		return fmt.Errorf("schedule catalog reload %q: %w", expr, err)
	}

	s.logger.Info("Starting background scheduler", zap.String("catalog_reload", expr))
	s.cron.Start()

	go func() {
		select {
		case <-ctx.Done():
			s.logger.Info("Scheduler context cancelled")
			s.Stop()
		case <-s.stopChan:
		}
	}()

	return nil
}

// Stop останавливает cron и дожидается текущей задачи
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.logger.Info("Stopping background scheduler")
		<-s.cron.Stop().Done()
		if s.cancel != nil {
			s.cancel()
		}
	})
}

// ReloadCatalog перечитывает каталог. При ошибке остаётся прежний каталог.
func (s *Scheduler) ReloadCatalog(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.store.Reload(ctx); err != nil {
		s.logger.Error("Failed to reload catalog", zap.Error(err))
		if s.metrics != nil {
			s.metrics.ObserveReload(false, 0, 0)
		}
		return err
	}

	slots, version := s.store.Snapshot()
	if s.metrics != nil {
		s.metrics.ObserveReload(true, len(slots), version)
	}
	s.logger.Debug("Catalog reloaded",
		zap.Int("slots", len(slots)),
		zap.Int64("version", version),
		zap.Time("loaded_at", s.store.LoadedAt()),
	)
	return nil
}
