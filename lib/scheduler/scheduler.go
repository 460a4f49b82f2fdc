// Package scheduler runs the periodic maintenance jobs: event reminders and
// notification outbox cleanup.
package scheduler

import (
	"context"
	"time"

	"campus-jobs-backend/config"
	eventhandler "campus-jobs-backend/lib/event"
	notificationhandler "campus-jobs-backend/lib/notification"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type ReminderSender interface {
	SendReminders(now time.Time, leadIn time.Duration) (count int, err error)
}

type QueuePurger interface {
	PurgeQueue(before time.Time) (int64, error)
}

type Settings struct {
	ReminderSpec   string
	ReminderLeadIn time.Duration
	PurgeSpec      string
	Retention      time.Duration
}

type Scheduler struct {
	cron      *cron.Cron
	settings  Settings
	reminders ReminderSender
	queue     QueuePurger
	now       func() time.Time
}

var Instance *Scheduler

// StartScheduler builds the scheduler from the configuration and starts it
func StartScheduler(ctx context.Context) {
	settings := Settings{
		ReminderSpec:   config.Conf.Scheduler.EventReminderSpec,
		ReminderLeadIn: time.Duration(config.Conf.Scheduler.EventReminderLeadIn) * time.Hour,
		PurgeSpec:      config.Conf.Scheduler.QueuePurgeSpec,
		Retention:      time.Duration(config.Conf.Scheduler.QueueRetentionDays) * 24 * time.Hour,
	}
	s := New(settings, eventhandler.Instance, notificationhandler.Instance)
	if err := s.Start(ctx); err != nil {
		log.WithError(err).Fatal("scheduler start failed")
	}
	Instance = s
}

func New(settings Settings, reminders ReminderSender, queue QueuePurger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		settings:  settings,
		reminders: reminders,
		queue:     queue,
		now:       time.Now,
	}
}

// Start registers the jobs and starts the cron loop, it stops together with ctx
func (s *Scheduler) Start(ctx context.Context) error {
	if s.settings.ReminderSpec != "" {
		if _, err := s.cron.AddFunc(s.settings.ReminderSpec, s.RunReminders); err != nil {
			return errors.Wrapf(err, "invalid reminder schedule %q", s.settings.ReminderSpec)
		}
	}
	if s.settings.PurgeSpec != "" {
		if _, err := s.cron.AddFunc(s.settings.PurgeSpec, s.RunPurge); err != nil {
			return errors.Wrapf(err, "invalid queue purge schedule %q", s.settings.PurgeSpec)
		}
	}
	s.cron.Start()
	log.WithField("entries", len(s.cron.Entries())).Info("scheduler started")

	go func() {
		<-ctx.Done()
		s.Stop()
	}()
	return nil
}

func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("scheduler stopped")
}

func (s *Scheduler) RunReminders() {
	logger := log.WithField("job", "event-reminders")
	count, err := s.reminders.SendReminders(s.now(), s.settings.ReminderLeadIn)
	if err != nil {
		logger.WithError(err).Error("reminders sending failed")
		return
	}
	if count > 0 {
		logger.Infof("%v reminders sent", count)
	}
}

func (s *Scheduler) RunPurge() {
	logger := log.WithField("job", "queue-purge")
	if s.settings.Retention <= 0 {
		return
	}
	count, err := s.queue.PurgeQueue(s.now().Add(-s.settings.Retention))
	if err != nil {
		logger.WithError(err).Error("notification queue purge failed")
		return
	}
	logger.Infof("%v queue rows purged", count)
}
