// Package jobs provides scheduled background tasks for the rental service.
//
// Jobs use github.com/robfig/cron/v3 with a seconds field, so schedules have
// six fields.
//
// # Available Jobs
//
// OverdueOrdersJob scans approved orders whose end date has passed and logs
// one warning per order. It never changes an order.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(overdueHandler, "0 0 * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
package jobs
