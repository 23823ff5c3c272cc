package worker // import "github.com/libris-io/libris/worker"

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
	"github.com/libris-io/libris/store"
)

// Scheduler pushes a debtor scan job into the pool on every tick.
type Scheduler struct {
	store    *store.Store
	pool     WorkPool
	interval time.Duration
}

func NewScheduler(store *store.Store, pool WorkPool, interval time.Duration) *Scheduler {
	return &Scheduler{
		store:    store,
		pool:     pool,
		interval: interval,
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		s.schedule()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.schedule()
			}
		}
	}()
}

func (s *Scheduler) schedule() {
	job, err := s.store.AddJob(model.Job{
		Type:   model.JobTypeDebtorScan,
		Status: model.JobStatusPending,
	})
	if err != nil {
		log.Error("Failed to add debtor scan job", zap.Error(err))
		return
	}
	s.pool.Push(*job)
}
