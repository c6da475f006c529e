package jobs

import (
	"context"
	"log/slog"
	"time"

	"backoffice/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSettlementSchedule runs the settlement once a minute.
const DefaultSettlementSchedule = "@every 1m"

// SettlementObserver is told the outcome of every settlement run.
type SettlementObserver interface {
	ObserveRun(settled, skipped, failed int, err error)
}

// CommissionSettlementJob periodically charges the commission of delivered orders to their
// agents. Runs never overlap: a tick that fires while the previous run is still going is skipped.
type CommissionSettlementJob struct {
	handler  commands.SettleCommissionsCommandHandler
	observer SettlementObserver
	schedule string
	batch    int
	timeout  time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewCommissionSettlementJob creates the job. observer may be nil.
func NewCommissionSettlementJob(
	handler commands.SettleCommissionsCommandHandler,
	schedule string,
	batch int,
	observer SettlementObserver,
	logger *slog.Logger,
) *CommissionSettlementJob {
	logger = logger.With("component", "commission_settlement_job")
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))

	return &CommissionSettlementJob{
		handler:  handler,
		observer: observer,
		schedule: schedule,
		batch:    batch,
		timeout:  time.Minute,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

func (j *CommissionSettlementJob) Name() string {
	return "commission settlement"
}

// Start schedules the job. An invalid schedule or batch size is reported here rather than on
// the first tick.
func (j *CommissionSettlementJob) Start() error {
	if _, err := commands.NewSettleCommissionsCommand(j.batch); err != nil {
		return err
	}

	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
		defer cancel()
		_, _ = j.RunOnce(ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("Commission settlement job started", "schedule", j.schedule, "batch", j.batch)
	return nil
}

// RunOnce settles one batch.
func (j *CommissionSettlementJob) RunOnce(ctx context.Context) (commands.SettlementResult, error) {
	cmd, err := commands.NewSettleCommissionsCommand(j.batch)
	if err != nil {
		return commands.SettlementResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if j.observer != nil {
		j.observer.ObserveRun(result.Settled, result.Skipped, result.Failed, err)
	}

	switch {
	case err != nil:
		j.logger.ErrorContext(ctx, "Commission settlement run failed", "error", err)
	case result.Settled+result.Failed > 0:
		j.logger.InfoContext(ctx, "Commission settlement run finished",
			"settled", result.Settled, "skipped", result.Skipped, "failed", result.Failed)
	}
	return result, err
}

// Stop unschedules the job and waits for a running settlement to finish.
func (j *CommissionSettlementJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("Commission settlement job stopped")
}
