// Package jobs provides scheduled background tasks for the back office.
//
// Jobs are built on github.com/robfig/cron/v3 with the seconds-enabled parser, so both
// six-field expressions ("*/30 * * * * *") and descriptors ("@every 1m") are accepted.
//
// # Available Jobs
//
// CommissionSettlementJob charges the commission of every delivered, unsettled order to the
// agent that delivered it, in batches. Each order is settled at most once.
//
// # Usage
//
//	job := jobs.NewCommissionSettlementJob(settleHandler, "@every 1m", 100, metrics, logger)
//	jobManager := jobs.NewJobManager(logger, job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Failures of single orders are counted and logged by the settlement handler; the run keeps
// going. A run that cannot list its batch is logged and retried on the next tick. Failed job
// starts stop any already running jobs.
package jobs
