package models

import (
	"fmt"
	"time"
)

type NotificationCode string

type NotificationTpl struct {
	Name  string
	Title string
	Msg   string
}

var NotificationCodeMap = map[NotificationCode]NotificationTpl{
	JobCreated:   {Name: "New job posted", Title: "New job opportunity", Msg: "A new job «%v» has been posted by %v."},
	JobActivated: {Name: "Job activated by a colleague", Title: "Job activated", Msg: "Job «%v» at %v was activated by %v."},

	NewApplication:           {Name: "New application received", Title: "New application", Msg: "%v applied for «%v»."},
	ApplicationStatusChanged: {Name: "Application status changed", Title: "Application status updated", Msg: "Your application for «%v» changed status from %v to %v."},
	ApplicationStageChanged:  {Name: "Application moved to a new stage", Title: "Application stage updated", Msg: "Your application for «%v» moved to stage «%v»."},
	ApplicationAccepted:      {Name: "Application accepted", Title: "Congratulations!", Msg: "Your application for «%v» has been accepted."},
	ApplicationRejected:      {Name: "Application rejected", Title: "Application update", Msg: "Your application for «%v» was not selected."},
	ApplicationFavorite:      {Name: "Application shortlisted", Title: "Your application was shortlisted", Msg: "Your application for «%v» was marked as a favorite by the hiring team."},
	ApplicationNote:          {Name: "Application note updated", Title: "Application reviewed", Msg: "The hiring team left feedback on your application for «%v»."},

	NewMessage: {Name: "New message", Title: "New message from %v", Msg: "%v sent you a message: «%v»."},

	EventScheduled:   {Name: "Event scheduled", Title: "Event scheduled", Msg: "«%v» is scheduled for %v."},
	EventRescheduled: {Name: "Event rescheduled", Title: "Event rescheduled", Msg: "«%v» was moved to %v."},
	EventCancelled:   {Name: "Event cancelled", Title: "Event cancelled", Msg: "«%v» planned for %v was cancelled."},
	EventReminder:    {Name: "Event reminder", Title: "Upcoming event", Msg: "Reminder: «%v» starts at %v."},
}

const (
	JobCreated   NotificationCode = "JobCreated"
	JobActivated NotificationCode = "JobActivated"

	NewApplication           NotificationCode = "NewApplication"
	ApplicationStatusChanged NotificationCode = "ApplicationStatusChanged"
	ApplicationStageChanged  NotificationCode = "ApplicationStageChanged"
	ApplicationAccepted      NotificationCode = "ApplicationAccepted"
	ApplicationRejected      NotificationCode = "ApplicationRejected"
	ApplicationFavorite      NotificationCode = "ApplicationFavorite"
	ApplicationNote          NotificationCode = "ApplicationNote"

	NewMessage NotificationCode = "NewMessage"

	EventScheduled   NotificationCode = "EventScheduled"
	EventRescheduled NotificationCode = "EventRescheduled"
	EventCancelled   NotificationCode = "EventCancelled"
	EventReminder    NotificationCode = "EventReminder"
)

const eventTimeLayout = "Jan 2, 2006 15:04"

type NotificationData struct {
	Code     NotificationCode `json:"code"`
	Title    string           `json:"title"`
	Msg      string           `json:"msg"`
	EntityID string           `json:"entity_id,omitempty"`
}

func buildNotification(code NotificationCode, entityID string, titleArgs []any, msgArgs ...any) NotificationData {
	tpl := NotificationCodeMap[code]
	title := tpl.Title
	if len(titleArgs) > 0 {
		title = fmt.Sprintf(tpl.Title, titleArgs...)
	}
	return NotificationData{
		Code:     code,
		Title:    title,
		Msg:      fmt.Sprintf(tpl.Msg, msgArgs...),
		EntityID: entityID,
	}
}

func GetJobCreated(jobID, jobTitle, companyName string) NotificationData {
	return buildNotification(JobCreated, jobID, nil, jobTitle, companyName)
}

func GetJobActivated(jobID, jobTitle, companyName, actorName string) NotificationData {
	return buildNotification(JobActivated, jobID, nil, jobTitle, companyName, actorName)
}

func GetNewApplication(applicationID, candidateName, jobTitle string) NotificationData {
	return buildNotification(NewApplication, applicationID, nil, candidateName, jobTitle)
}

func GetApplicationStatusChanged(applicationID, jobTitle, oldStatus, newStatus string) NotificationData {
	return buildNotification(ApplicationStatusChanged, applicationID, nil, jobTitle, oldStatus, newStatus)
}

func GetApplicationStageChanged(applicationID, jobTitle, stageName string) NotificationData {
	return buildNotification(ApplicationStageChanged, applicationID, nil, jobTitle, stageName)
}

func GetApplicationAccepted(applicationID, jobTitle string) NotificationData {
	return buildNotification(ApplicationAccepted, applicationID, nil, jobTitle)
}

func GetApplicationRejected(applicationID, jobTitle string) NotificationData {
	return buildNotification(ApplicationRejected, applicationID, nil, jobTitle)
}

func GetApplicationFavorite(applicationID, jobTitle string) NotificationData {
	return buildNotification(ApplicationFavorite, applicationID, nil, jobTitle)
}

func GetApplicationNote(applicationID, jobTitle string) NotificationData {
	return buildNotification(ApplicationNote, applicationID, nil, jobTitle)
}

func GetNewMessage(conversationID, senderName, preview string) NotificationData {
	return buildNotification(NewMessage, conversationID, []any{senderName}, senderName, preview)
}

func GetEventScheduled(eventID, title string, start time.Time) NotificationData {
	return buildNotification(EventScheduled, eventID, nil, title, start.Format(eventTimeLayout))
}

func GetEventRescheduled(eventID, title string, start time.Time) NotificationData {
	return buildNotification(EventRescheduled, eventID, nil, title, start.Format(eventTimeLayout))
}

func GetEventCancelled(eventID, title string, start time.Time) NotificationData {
	return buildNotification(EventCancelled, eventID, nil, title, start.Format(eventTimeLayout))
}

func GetEventReminder(eventID, title string, start time.Time) NotificationData {
	return buildNotification(EventReminder, eventID, nil, title, start.Format(eventTimeLayout))
}
