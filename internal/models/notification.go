package models

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationTypeEmail NotificationType = "email"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusFailed  NotificationStatus = "failed"
)

// Notification is one delivery attempt to one recipient.
type Notification struct {
	ID           uuid.UUID          `json:"id"`
	TenantID     uuid.UUID          `json:"tenant_id"`
	UserID       uuid.UUID          `json:"user_id"`
	ProductID    *uuid.UUID         `json:"product_id,omitempty"`
	Type         NotificationType   `json:"type"`
	Recipient    string             `json:"recipient"`
	Subject      string             `json:"subject,omitempty"`
	Content      string             `json:"content"`
	Status       NotificationStatus `json:"status"`
	ErrorMessage string             `json:"error,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// Message is the transport-agnostic payload handed to the dispatcher.
type Message struct {
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	ProductID *uuid.UUID `json:"product_id,omitempty"`
}

type EmailNotificationRequest struct {
	To          string `json:"to" validate:"required,email"`
	Subject     string `json:"subject" validate:"required"`
	Content     string `json:"content" validate:"required"`
	HTMLContent string `json:"html_content,omitempty"`
}

type DispatchResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
}
