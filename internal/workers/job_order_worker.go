package workers

import (
	"context"
	"time"

	"recruit_backend/internal/logger"
	"recruit_backend/internal/services"

	"gorm.io/gorm"
)

const jobOrderWorkerName = "job_order_expiry"

type JobOrderWorker struct {
	db              *gorm.DB
	jobOrderService services.JobOrderService
	interval        time.Duration
	now             func() time.Time
}

func NewJobOrderWorker(db *gorm.DB, jobOrderService services.JobOrderService, interval time.Duration) *JobOrderWorker {
	return &JobOrderWorker{
		db:              db,
		jobOrderService: jobOrderService,
		interval:        interval,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Start запускает фоновое закрытие просроченных вакансий.
// При interval <= 0 воркер не запускается.
func (w *JobOrderWorker) Start(ctx context.Context) {
	if w.interval <= 0 {
		logger.Info("Job order worker disabled")
		return
	}
	go w.autoExpireJobOrders(ctx)
}

// autoExpireJobOrders переводит ACTIVE вакансии с прошедшим expires_at в EXPIRED
func (w *JobOrderWorker) autoExpireJobOrders(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Job order worker stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce - один проход воркера
func (w *JobOrderWorker) RunOnce(ctx context.Context) int64 {
	expired, err := w.jobOrderService.ExpireDue(ctx, w.db.WithContext(ctx), w.now())
	if err != nil {
		logger.WorkerLog(jobOrderWorkerName, "expire", err)
		return 0
	}
	if expired > 0 {
		logger.WorkerLog(jobOrderWorkerName, "expire", nil, "expired", expired)
	}
	return expired
}
