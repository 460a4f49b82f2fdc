package models

type QueueStatus string

const (
	QueueStatusPending QueueStatus = "pending"
	QueueStatusSent    QueueStatus = "sent"
	QueueStatusFailed  QueueStatus = "failed"
)
