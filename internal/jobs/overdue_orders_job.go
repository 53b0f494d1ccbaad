package jobs

import (
	"context"
	"time"

	"rental/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultOverdueSchedule runs the scan at the start of every hour.
const DefaultOverdueSchedule = "0 0 * * * *"

type overdueOrdersHandler interface {
	Handle(ctx context.Context, query queries.GetOverdueOrdersQuery) ([]queries.OrderResponse, error)
}

// OverdueOrdersJob reports approved orders whose end date has passed.
// It only logs; closing an order and charging the late fee stay manual.
type OverdueOrdersJob struct {
	handler  overdueOrdersHandler
	cron     *cron.Cron
	schedule string
	now      func() time.Time
	logger   *zap.Logger
}

func NewOverdueOrdersJob(handler overdueOrdersHandler, schedule string, logger *zap.Logger) *OverdueOrdersJob {
	if schedule == "" {
		schedule = DefaultOverdueSchedule
	}
	return &OverdueOrdersJob{
		handler:  handler,
		cron:     cron.New(cron.WithSeconds()),
		schedule: schedule,
		now:      time.Now,
		logger:   logger.With(zap.String("component", "overdue_orders_job")),
	}
}

// Start schedules the scan. An invalid cron expression is returned as is.
func (j *OverdueOrdersJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("overdue orders job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop waits for a running scan to finish.
func (j *OverdueOrdersJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("overdue orders job stopped")
}

// Run performs one scan.
func (j *OverdueOrdersJob) Run(ctx context.Context) {
	asOf := j.now()
	query, err := queries.NewGetOverdueOrdersQuery(asOf)
	if err != nil {
		j.logger.Error("build overdue orders query", zap.Error(err))
		return
	}

	orders, err := j.handler.Handle(ctx, query)
	if err != nil {
		j.logger.Error("overdue orders scan failed", zap.Error(err))
		return
	}

	for _, o := range orders {
		j.logger.Warn("order is overdue",
			zap.String("orderId", o.ID.String()),
			zap.Int64("clientId", o.ClientID),
			zap.Int64("carId", o.CarID),
			zap.Time("endDate", o.EndDate),
			zap.Duration("overdueBy", query.AsOf().Sub(o.EndDate)),
		)
	}

	j.logger.Info("overdue orders scan finished", zap.Int("overdue", len(orders)))
}
