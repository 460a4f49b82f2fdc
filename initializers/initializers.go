package initializers

import (
	"context"
	"time"

	"campus-jobs-backend/config"
	"campus-jobs-backend/fiberlog"
	analyticshandler "campus-jobs-backend/lib/analytics"
	applicationhandler "campus-jobs-backend/lib/application"
	companyhandler "campus-jobs-backend/lib/company"
	applicationstatusprovider "campus-jobs-backend/lib/dicts/application-status"
	categoryprovider "campus-jobs-backend/lib/dicts/category"
	hiringstageprovider "campus-jobs-backend/lib/dicts/hiring-stage"
	eventhandler "campus-jobs-backend/lib/event"
	pdfexport "campus-jobs-backend/lib/export/pdf"
	xlsexport "campus-jobs-backend/lib/export/xls"
	"campus-jobs-backend/lib/guard"
	jobhandler "campus-jobs-backend/lib/job"
	messaginghandler "campus-jobs-backend/lib/messaging"
	notificationhandler "campus-jobs-backend/lib/notification"
	notificationqueueworker "campus-jobs-backend/lib/notification/queue-worker"
	"campus-jobs-backend/lib/rbac"
	"campus-jobs-backend/lib/scheduler"
	connectionhub "campus-jobs-backend/lib/ws/hub/connection-hub"
	wsmodels "campus-jobs-backend/models/ws"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	SetLogLevel(config.Conf.App.LogLevel)
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	InitCache(ctx)
	connectionhub.Init(func(userID string) ([]wsmodels.ServerMessage, error) {
		return notificationhandler.Instance.PendingMessages(userID)
	})
	rbac.NewHandler()
	guard.NewHandler()
	categoryprovider.NewHandler()
	hiringstageprovider.NewHandler()
	applicationstatusprovider.NewHandler()
	xlsexport.NewHandler()
	pdfexport.NewHandler()
	notificationhandler.NewHandler()
	companyhandler.NewHandler()
	jobhandler.NewHandler()
	eventhandler.NewHandler()
	applicationhandler.NewHandler()
	messaginghandler.NewHandler()
	analyticshandler.NewHandler()
	go initWorkers(ctx)
}

// workers start with a gap to spread the first-run load
func initWorkers(ctx context.Context) {
	notificationqueueworker.StartWorker(ctx)

	if makeTimeGap(ctx) {
		scheduler.StartScheduler(ctx)
	}
}

func makeTimeGap(ctx context.Context) (canRun bool) {
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Second * 10):
		return true
	}
}
