package worker // import "github.com/libris-io/libris/worker"

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/libris-io/libris/config"
	"github.com/libris-io/libris/log"
	"github.com/libris-io/libris/model"
	"github.com/libris-io/libris/store"
)

// DebtorScanWorker processes scheduled debtor scans: it lists the
// students holding books past the loan period and logs them.
type DebtorScanWorker struct {
	id    int
	store *store.Store
}

func (w *DebtorScanWorker) Run(c <-chan model.Job) {
	log.Debug("DebtorScanWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.Int("job_id", job.ID),
			zap.String("job_type", job.Type),
		)
		w.process(job)
	}
}

func (w *DebtorScanWorker) process(job model.Job) {
	if job.Type != model.JobTypeDebtorScan {
		log.Warn("Unexpected job type", zap.String("job_type", job.Type))
		return
	}

	deadline := model.DebtorDeadline(time.Now(), config.Opts.LoanPeriodDays)
	studentIDs, err := w.store.ListDebtorIDs(deadline)
	if err != nil {
		log.Error("Debtor scan failed", zap.Int("job_id", job.ID), zap.Error(err))
		if err := w.store.UpdateJobStatus(job.ID, model.JobStatusFailed, err.Error()); err != nil {
			log.Warn("Failed to update job status", zap.Error(err))
		}
		return
	}

	if len(studentIDs) > 0 {
		log.Info("Students holding books past the loan period",
			zap.Int("job_id", job.ID),
			zap.Ints("student_ids", studentIDs),
		)
	}

	detail := fmt.Sprintf("%d debtors", len(studentIDs))
	if err := w.store.UpdateJobStatus(job.ID, model.JobStatusDone, detail); err != nil {
		log.Warn("Failed to update job status", zap.Error(err))
	}
}
