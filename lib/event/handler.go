package eventhandler

import (
	"time"

	"campus-jobs-backend/db"
	applicationstore "campus-jobs-backend/lib/application/store"
	eventstore "campus-jobs-backend/lib/event/store"
	"campus-jobs-backend/lib/guard"
	jobstore "campus-jobs-backend/lib/job/store"
	notificationhandler "campus-jobs-backend/lib/notification"
	initchecker "campus-jobs-backend/lib/utils/init-checker"
	"campus-jobs-backend/models"
	eventapimodels "campus-jobs-backend/models/api/event"
	dbmodels "campus-jobs-backend/models/db"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	Create(managerID string, data eventapimodels.EventData) (id string, err error)
	// Update moves a pending event to rescheduled when its time window changes
	Update(managerID, id string, data eventapimodels.EventData) error
	Cancel(managerID, id string) error
	Complete(managerID, id string) error
	Delete(managerID, id string) error
	Get(managerID, id string) (item eventapimodels.EventView, err error)
	List(managerID string, filter eventapimodels.EventFilter) (list []eventapimodels.EventView, rowCount int64, err error)
	// SendReminders notifies about pending events starting within leadIn from now
	SendReminders(now time.Time, leadIn time.Duration) (count int, err error)
}

var Instance Provider

func NewHandler() {
	instance := impl{
		store:         eventstore.NewInstance(db.DB),
		jobStore:      jobstore.NewInstance(db.DB),
		appStore:      applicationstore.NewInstance(db.DB),
		guard:         guard.Instance,
		notifications: notificationhandler.Instance,
	}
	initchecker.CheckInit(
		"guard", instance.guard,
		"notifications", instance.notifications,
	)
	Instance = instance
}

type impl struct {
	store         eventstore.Provider
	jobStore      jobstore.Provider
	appStore      applicationstore.Provider
	guard         guard.Provider
	notifications notificationhandler.Sink
}

func (i impl) getLogger(managerID, eventID string) *log.Entry {
	logger := log.WithField("manager_id", managerID)
	if eventID != "" {
		logger = logger.WithField("event_id", eventID)
	}
	return logger
}

// checkDependency returns the candidate of the linked application, if any
func (i impl) checkDependency(managerID string, data eventapimodels.EventData) (candidateID string, err error) {
	job, err := i.jobStore.GetByID(data.JobID)
	if err != nil {
		return "", errors.Wrap(err, "job loading failed")
	}
	if job == nil {
		return "", models.NewValidationError("job_id", "job not found")
	}
	if err = i.guard.CompanyAllowed(managerID, job.CompanyID); err != nil {
		return "", err
	}
	if data.ApplicationID == nil || *data.ApplicationID == "" {
		return "", nil
	}
	app, err := i.appStore.GetByID(*data.ApplicationID)
	if err != nil {
		return "", errors.Wrap(err, "application loading failed")
	}
	if app == nil || app.JobID != data.JobID {
		return "", models.NewValidationError("application_id", "the application does not belong to the job")
	}
	return app.UserID, nil
}

func (i impl) Create(managerID string, data eventapimodels.EventData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	candidateID, err := i.checkDependency(managerID, data)
	if err != nil {
		return "", err
	}
	attendees, _ := data.GetAttendees()
	rec := dbmodels.Event{
		JobID:         data.JobID,
		ApplicationID: emptyToNil(data.ApplicationID),
		CreatedByID:   managerID,
		Title:         data.Title,
		Description:   data.Description,
		StartTime:     data.StartTime,
		EndTime:       data.EndTime,
		Location:      data.Location,
		MeetingLink:   data.MeetingLink,
		Type:          data.Type,
		Status:        models.EventStatusScheduled,
		Attendees:     attendees,
	}
	id, err = i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "event creation failed")
	}
	logger := i.getLogger(managerID, id)
	logger.Info("event scheduled")
	if candidateID != "" {
		i.notify(logger, candidateID, models.GetEventScheduled(id, rec.Title, rec.StartTime))
	}
	return id, nil
}

func (i impl) getAllowed(managerID, id string) (*dbmodels.Event, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "event loading failed")
	}
	if rec == nil || rec.Job == nil {
		return nil, models.NewNotFound("event")
	}
	if err = i.guard.CompanyAllowed(managerID, rec.Job.CompanyID); err != nil {
		return nil, err
	}
	return rec, nil
}

func (i impl) Update(managerID, id string, data eventapimodels.EventData) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	if err = data.Validate(); err != nil {
		return err
	}
	candidateID, err := i.checkDependency(managerID, data)
	if err != nil {
		return err
	}
	attendees, _ := data.GetAttendees()
	moved := !rec.StartTime.Equal(data.StartTime) || !rec.EndTime.Equal(data.EndTime)
	updMap := map[string]interface{}{
		"job_id":         data.JobID,
		"application_id": emptyToNil(data.ApplicationID),
		"title":          data.Title,
		"description":    data.Description,
		"start_time":     data.StartTime,
		"end_time":       data.EndTime,
		"location":       data.Location,
		"meeting_link":   data.MeetingLink,
		"type":           data.Type,
		"attendees":      attendees,
	}
	rescheduled := moved && rec.Status.IsPending()
	if rescheduled {
		updMap["status"] = models.EventStatusRescheduled
		updMap["reminder_sent_at"] = nil
	}
	if err = i.store.Update(id, updMap); err != nil {
		return err
	}
	logger := i.getLogger(managerID, id)
	logger.WithField("rescheduled", rescheduled).Info("event updated")
	if rescheduled && candidateID != "" {
		i.notify(logger, candidateID, models.GetEventRescheduled(id, data.Title, data.StartTime))
	}
	return nil
}

func (i impl) Cancel(managerID, id string) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsPending() {
		return models.NewPolicyError("only a scheduled event can be cancelled")
	}
	if err = i.store.Update(id, map[string]interface{}{"status": models.EventStatusCancelled}); err != nil {
		return err
	}
	logger := i.getLogger(managerID, id)
	logger.Info("event cancelled")
	if rec.Application != nil {
		i.notify(logger, rec.Application.UserID, models.GetEventCancelled(id, rec.Title, rec.StartTime))
	}
	return nil
}

func (i impl) Complete(managerID, id string) error {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return err
	}
	if !rec.Status.IsPending() {
		return models.NewPolicyError("only a scheduled event can be completed")
	}
	if err = i.store.Update(id, map[string]interface{}{"status": models.EventStatusCompleted}); err != nil {
		return err
	}
	i.getLogger(managerID, id).Info("event completed")
	return nil
}

func (i impl) Delete(managerID, id string) error {
	if _, err := i.getAllowed(managerID, id); err != nil {
		return err
	}
	if err := i.store.Delete(id); err != nil {
		return errors.Wrap(err, "event deletion failed")
	}
	i.getLogger(managerID, id).Info("event deleted")
	return nil
}

func (i impl) Get(managerID, id string) (item eventapimodels.EventView, err error) {
	rec, err := i.getAllowed(managerID, id)
	if err != nil {
		return eventapimodels.EventView{}, err
	}
	return eventapimodels.EventConvert(*rec), nil
}

func (i impl) List(managerID string, filter eventapimodels.EventFilter) (list []eventapimodels.EventView, rowCount int64, err error) {
	companyIDs, err := i.guard.ManagedCompanyIDs(managerID)
	if err != nil {
		return nil, 0, err
	}
	rowCount, err = i.store.ListCount(companyIDs, filter)
	if err != nil {
		return nil, 0, err
	}
	page, limit := filter.GetPage()
	if int64((page-1)*limit) >= rowCount {
		return []eventapimodels.EventView{}, rowCount, nil
	}
	recList, err := i.store.List(companyIDs, filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]eventapimodels.EventView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, eventapimodels.EventConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) SendReminders(now time.Time, leadIn time.Duration) (count int, err error) {
	list, err := i.store.DueReminders(now, now.Add(leadIn))
	if err != nil {
		return 0, errors.Wrap(err, "due events loading failed")
	}
	for _, rec := range list {
		logger := log.WithField("event_id", rec.ID)
		data := models.GetEventReminder(rec.ID, rec.Title, rec.StartTime)
		i.notify(logger, rec.CreatedByID, data)
		if rec.Application != nil && rec.Application.UserID != rec.CreatedByID {
			i.notify(logger, rec.Application.UserID, data)
		}
		if err = i.store.MarkReminderSent(rec.ID, now); err != nil {
			logger.WithError(err).Error("reminder mark failed")
			continue
		}
		count++
	}
	return count, nil
}

func (i impl) notify(logger *log.Entry, userID string, data models.NotificationData) {
	if err := i.notifications.Send(userID, data); err != nil {
		logger.WithError(err).WithField("code", data.Code).Error("notification failed")
	}
}

func emptyToNil(value *string) *string {
	if value == nil || *value == "" {
		return nil
	}
	return value
}
