package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/savedate/save-date/internal/expiry"
)

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}

	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullUnit(u *expiry.Unit) sql.NullString {
	if u == nil {
		return sql.NullString{}
	}

	return sql.NullString{String: string(*u), Valid: true}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}

	v := int(n.Int64)

	return &v
}

func unitPtr(s sql.NullString) *expiry.Unit {
	if !s.Valid {
		return nil
	}

	u := expiry.Unit(s.String)

	return &u
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}

	return uuid.NullUUID{UUID: *id, Valid: true}
}
