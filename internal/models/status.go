package models

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

type AlertStatus string

const (
	AlertStatusPending   AlertStatus = "pending"
	AlertStatusDiscarded AlertStatus = "discarded"
	AlertStatusResolved  AlertStatus = "resolved"
)

// Terminal statuses never transition again.
func (s AlertStatus) Terminal() bool {
	return s == AlertStatusDiscarded || s == AlertStatusResolved
}
