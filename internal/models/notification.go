package models

import "time"

type NotificationType string

const (
	NotificationRegistrationSubmitted NotificationType = "registration_submitted"
	NotificationStatusChanged         NotificationType = "status_changed"
)

type NotificationStatus string

const (
	NotificationSent     NotificationStatus = "sent"
	NotificationFailed   NotificationStatus = "failed"
	NotificationDisabled NotificationStatus = "disabled"
)

type Notification struct {
	ID             string             `json:"id"`
	RegistrationID string             `json:"registrationId"`
	Type           NotificationType   `json:"type"`
	Channels       []string           `json:"channels"` // "sms", "email"
	Status         NotificationStatus `json:"status"`
	SentAt         time.Time          `json:"sentAt"`
}

type NotificationTemplate struct {
	Type    NotificationType `json:"type"`
	Subject string           `json:"subject"`
	Body    string           `json:"body"`
}
