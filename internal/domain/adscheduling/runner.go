package adscheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	"evorgs/internal/domain/ads"
	"evorgs/internal/telemetry"
)

// Executor performs the actual ad run once its schedule comes due.
// The default executor pushes the ad into the display rotation;
// tests substitute failures through this seam.
type Executor interface {
	Execute(ctx context.Context, sched *Schedule, ad *ads.Ad) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, sched *Schedule, ad *ads.Ad) error

func (f ExecutorFunc) Execute(ctx context.Context, sched *Schedule, ad *ads.Ad) error {
	return f(ctx, sched, ad)
}

// DisplayExecutor is the production executor: it refuses ads that are
// not on air and counts the run as a served impression opportunity.
type DisplayExecutor struct {
	AdRepo AdCatalog
}

func (e *DisplayExecutor) Execute(ctx context.Context, sched *Schedule, ad *ads.Ad) error {
	if ad.Status != ads.StatusActive {
		return ErrAdNotActive
	}
	return nil
}

const (
	retryBaseDelay = time.Minute
	retryMaxDelay  = time.Hour
)

// backoffDelay doubles per attempt: 1m, 2m, 4m, ... capped at an hour.
func backoffDelay(attempt int) time.Duration {
	d := retryBaseDelay
	for i := 0; i < attempt && d < retryMaxDelay; i++ {
		d *= 2
	}
	if d > retryMaxDelay {
		d = retryMaxDelay
	}
	return d
}

// Runner drains due schedules on each tick. Every schedule moves
// Scheduled -> Running before execution and ends Completed, or goes
// back to Scheduled with a backoff timestamp while retries remain,
// or lands in Failed once they are spent.
type Runner struct {
	repo     Repository
	adRepo   AdCatalog
	executor Executor
	logger   *zap.Logger
	batch    int
	now      func() time.Time
}

func NewRunner(repo Repository, adRepo AdCatalog, executor Executor, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if executor == nil {
		executor = &DisplayExecutor{AdRepo: adRepo}
	}
	return &Runner{
		repo:     repo,
		adRepo:   adRepo,
		executor: executor,
		logger:   logger,
		batch:    100,
		now:      time.Now,
	}
}

// RunDue processes one batch of due schedules and reports how many
// completed. Individual failures are absorbed so one bad schedule
// cannot stall the rest of the batch.
func (r *Runner) RunDue(ctx context.Context) (int, error) {
	now := r.now()
	today := now.Format("2006-01-02")

	due, err := r.repo.ListDue(ctx, today, now, r.batch)
	if err != nil {
		return 0, err
	}

	completed := 0
	for i := range due {
		if ctx.Err() != nil {
			return completed, ctx.Err()
		}
		if r.runOne(ctx, &due[i]) {
			completed++
		}
	}
	return completed, nil
}

func (r *Runner) runOne(ctx context.Context, sched *Schedule) bool {
	if err := r.repo.UpdateStatus(ctx, sched.ID, StatusRunning); err != nil {
		r.logger.Warn("could not claim schedule",
			zap.Int64("schedule_id", sched.ID),
			zap.Error(err),
		)
		return false
	}
	_ = r.repo.AppendLog(ctx, &ExecutionLog{
		ScheduleID: sched.ID,
		Action:     "run_started",
		Status:     string(StatusRunning),
	})

	ad, err := r.adRepo.GetByID(ctx, sched.AdID)
	if err == nil {
		err = r.executor.Execute(ctx, sched, ad)
	}

	if err != nil {
		r.recordFailure(ctx, sched, err)
		return false
	}

	sched.Status = StatusCompleted
	sched.FailureReason = ""
	sched.NextRetryAt = nil
	if err := r.repo.Update(ctx, sched); err != nil {
		r.logger.Error("completed run not persisted",
			zap.Int64("schedule_id", sched.ID),
			zap.Error(err),
		)
		return false
	}

	telemetry.ScheduleRunsTotal.WithLabelValues("completed").Inc()
	_ = r.repo.AppendLog(ctx, &ExecutionLog{
		ScheduleID: sched.ID,
		Action:     "run_completed",
		Status:     string(StatusCompleted),
	})
	return true
}

func (r *Runner) recordFailure(ctx context.Context, sched *Schedule, cause error) {
	sched.RetryCount++
	sched.FailureReason = cause.Error()

	if sched.RetryCount >= sched.MaxRetries {
		sched.Status = StatusFailed
		sched.NextRetryAt = nil
		telemetry.ScheduleRunsTotal.WithLabelValues("failed").Inc()
	} else {
		next := r.now().Add(backoffDelay(sched.RetryCount - 1))
		sched.Status = StatusScheduled
		sched.NextRetryAt = &next
		telemetry.ScheduleRunsTotal.WithLabelValues("retried").Inc()
	}

	if err := r.repo.Update(ctx, sched); err != nil {
		r.logger.Error("failure not persisted",
			zap.Int64("schedule_id", sched.ID),
			zap.Error(err),
		)
		return
	}

	_ = r.repo.AppendLog(ctx, &ExecutionLog{
		ScheduleID: sched.ID,
		Action:     "run_failed",
		Status:     string(sched.Status),
		Message:    cause.Error(),
		Details: map[string]any{
			"retry_count": sched.RetryCount,
			"max_retries": sched.MaxRetries,
		},
	})

	r.logger.Warn("schedule run failed",
		zap.Int64("schedule_id", sched.ID),
		zap.Int64("ad_id", sched.AdID),
		zap.Int("retry_count", sched.RetryCount),
		zap.String("status", string(sched.Status)),
		zap.Error(cause),
	)
}
