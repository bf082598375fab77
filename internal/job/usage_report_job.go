package job

import (
	"context"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type UserCounter interface {
	CountUsers(ctx context.Context) (int64, error)
}

type TodoCounter interface {
	CountTodos(ctx context.Context) (int64, error)
}

// UsageReportJob logs table sizes on a schedule so growth shows up in
// the logs without a metrics stack.
type UsageReportJob struct {
	users UserCounter
	todos TodoCounter
}

func NewUsageReportJob(users UserCounter, todos TodoCounter) *UsageReportJob {
	return &UsageReportJob{users: users, todos: todos}
}

func (j *UsageReportJob) Name() string {
	return "usage_report"
}

func (j *UsageReportJob) Run(ctx context.Context) error {
	userCount, err := j.users.CountUsers(ctx)
	if err != nil {
		return err
	}
	todoCount, err := j.todos.CountTodos(ctx)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("usage report",
		zap.Int64("users", userCount),
		zap.Int64("todos", todoCount),
	)
	return nil
}
