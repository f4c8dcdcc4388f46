package models

import (
	"time"

	"github.com/google/uuid"
)

// PrintLog records one label print. Rows are immutable.
type PrintLog struct {
	ID        uuid.UUID `json:"id"`
	TenantID  uuid.UUID `json:"tenant_id"`
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	Quantity  int       `json:"quantity"`
	PrintedAt time.Time `json:"printed_at"`
}

type PrintRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,gt=0"`
	LotNumber string    `json:"lot_number" validate:"required,max=100"`
}

// PrintResult is what a print returns: the log row, the alert when the
// category has notifications enabled, and the ambient ready time when the
// product has a setting configured.
type PrintResult struct {
	PrintLog *PrintLog  `json:"print_log"`
	Alert    *Alert     `json:"alert,omitempty"`
	ReadyAt  *time.Time `json:"ready_at,omitempty"`
}

type RecentPrint struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	PrintedAt   time.Time `json:"printed_at"`
}
