package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/expiry"
)

// Alert is the obligation created by a print: the printed batch expires at
// AlertDate. AlertDate is fixed at creation.
type Alert struct {
	ID         uuid.UUID   `json:"id"`
	TenantID   uuid.UUID   `json:"tenant_id"`
	ProductID  uuid.UUID   `json:"product_id"`
	PrintLogID uuid.UUID   `json:"print_log_id"`
	AlertDate  time.Time   `json:"alert_date"`
	Status     AlertStatus `json:"status"`
	Quantity   int         `json:"quantity"`
	LotNumber  string      `json:"lot_number"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// PendingAlert is a pending alert as listed to users.
type PendingAlert struct {
	Alert
	ProductName     string `json:"product_name"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
}

type AlertFilter struct {
	Window expiry.Window `json:"window,omitempty" validate:"omitempty,oneof=7days 15days month"`
	Search string        `json:"search,omitempty" validate:"omitempty,max=100"`
}
