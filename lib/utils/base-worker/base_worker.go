package baseworker

import (
	"context"
	"runtime/debug"
	"time"

	log "github.com/sirupsen/logrus"
)

type BaseImpl struct {
	WorkerName    string
	firstRunDelay time.Duration
	runInterval   time.Duration
}

func NewInstance(workerName string, firstRunDelay, runInterval time.Duration) *BaseImpl {
	return &BaseImpl{
		WorkerName:    workerName,
		firstRunDelay: firstRunDelay,
		runInterval:   runInterval,
	}
}

func (i BaseImpl) GetLogger() *log.Entry {
	return log.WithField("worker_name", i.WorkerName)
}

// Run calls jobFunc after firstRunDelay and then every runInterval until ctx is done.
// A panic inside jobFunc is logged and the loop goes on.
func (i BaseImpl) Run(ctx context.Context, jobFunc func(ctx context.Context)) {
	period := i.firstRunDelay
	logger := i.GetLogger()
	for {
		select {
		case <-ctx.Done():
			logger.Info("worker stopped")
			return
		case <-time.After(period):
			logger.Debug("worker iteration started")
			i.safeRun(ctx, jobFunc)
			logger.Debug("worker iteration finished")
		}
		period = i.runInterval
	}
}

func (i BaseImpl) safeRun(ctx context.Context, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			i.GetLogger().
				WithField("panic_stack", string(debug.Stack())).
				Errorf("panic: (%v)", r)
		}
	}()
	jobFunc(ctx)
}
