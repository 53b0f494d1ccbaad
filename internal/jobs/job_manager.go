package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// JobManager starts and stops the scheduled jobs together.
type JobManager struct {
	overdueOrdersJob *OverdueOrdersJob
}

func NewJobManager(
	overdueOrdersHandler overdueOrdersHandler,
	overdueSchedule string,
	logger *zap.Logger,
) *JobManager {
	return &JobManager{
		overdueOrdersJob: NewOverdueOrdersJob(overdueOrdersHandler, overdueSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueOrdersJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue orders job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.overdueOrdersJob.Stop()
}
