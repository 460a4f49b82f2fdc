package notificationqueueworker

import (
	"context"
	"time"

	"campus-jobs-backend/config"
	notificationhandler "campus-jobs-backend/lib/notification"
	baseworker "campus-jobs-backend/lib/utils/base-worker"
)

const firstRunDelay = 5 * time.Second

func StartWorker(ctx context.Context) {
	interval := time.Duration(config.Conf.Notification.WorkerIntervalInSec) * time.Second
	if interval <= 0 {
		interval = 10 * time.Second
	}
	worker := baseworker.NewInstance("notification-queue", firstRunDelay, interval)
	go worker.Run(ctx, notificationhandler.Instance.DrainQueue)
}
