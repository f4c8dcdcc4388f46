package models

import (
	"time"

	"github.com/google/uuid"
)

// NotificationSubscription opts a user into expiry warnings. A nil
// CategoryID covers every product of the tenant.
type NotificationSubscription struct {
	ID         uuid.UUID  `json:"id"`
	TenantID   uuid.UUID  `json:"tenant_id"`
	UserID     uuid.UUID  `json:"user_id"`
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type SubscribeRequest struct {
	CategoryID *uuid.UUID `json:"category_id,omitempty"`
}

// Subscriber is a resolved delivery target.
type Subscriber struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
}
