package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/expiry"
)

type Product struct {
	ID           uuid.UUID     `json:"id"`
	TenantID     uuid.UUID     `json:"tenant_id"`
	CategoryID   uuid.UUID     `json:"category_id"`
	Name         string        `json:"name"`
	Validity     *int          `json:"validity,omitempty"`
	ValidityUnit *expiry.Unit  `json:"validity_unit,omitempty"`
	Setting      *int          `json:"setting,omitempty"`
	SettingUnit  *expiry.Unit  `json:"setting_unit,omitempty"`
	Status       ProductStatus `json:"status"`
	Deleted      bool          `json:"-"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
	Category     *Category     `json:"category,omitempty"`
}

// HasValidity reports whether both halves of the validity pair are set.
func (p *Product) HasValidity() bool {
	return p.Validity != nil && p.ValidityUnit != nil
}

func (p *Product) HasSetting() bool {
	return p.Setting != nil && p.SettingUnit != nil
}

type CreateProductRequest struct {
	CategoryID   uuid.UUID    `json:"category_id" validate:"required"`
	Name         string       `json:"name" validate:"required,min=2,max=200"`
	Validity     *int         `json:"validity,omitempty" validate:"omitempty,gt=0,lte=87600"`
	ValidityUnit *expiry.Unit `json:"validity_unit,omitempty" validate:"omitempty,oneof=hours days"`
	Setting      *int         `json:"setting,omitempty" validate:"omitempty,gt=0,lte=87600"`
	SettingUnit  *expiry.Unit `json:"setting_unit,omitempty" validate:"omitempty,oneof=hours days"`
}

type UpdateProductRequest struct {
	CategoryID   *uuid.UUID     `json:"category_id,omitempty"`
	Name         *string        `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Validity     *int           `json:"validity,omitempty" validate:"omitempty,gt=0,lte=87600"`
	ValidityUnit *expiry.Unit   `json:"validity_unit,omitempty" validate:"omitempty,oneof=hours days"`
	Setting      *int           `json:"setting,omitempty" validate:"omitempty,gt=0,lte=87600"`
	SettingUnit  *expiry.Unit   `json:"setting_unit,omitempty" validate:"omitempty,oneof=hours days"`
	Status       *ProductStatus `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
}
