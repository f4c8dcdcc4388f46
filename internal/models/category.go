package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products. Prints of products in a category with
// notifications disabled never create alerts.
type Category struct {
	ID                  uuid.UUID `json:"id"`
	TenantID            uuid.UUID `json:"tenant_id"`
	Name                string    `json:"name"`
	NotificationEnabled bool      `json:"notification_enabled"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type CreateCategoryRequest struct {
	Name                string `json:"name" validate:"required,min=2,max=100"`
	NotificationEnabled bool   `json:"notification_enabled"`
}

type UpdateCategoryRequest struct {
	Name                *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	NotificationEnabled *bool   `json:"notification_enabled,omitempty"`
}
