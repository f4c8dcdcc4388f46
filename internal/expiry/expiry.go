// Package expiry holds the date arithmetic behind alerts and the expiry
// sweep: turning a validity amount into a deadline and a deadline into a
// whole number of days left.
package expiry

import (
	"errors"
	"fmt"
	"math"
	"time"
)

type Unit string

const (
	Hours Unit = "hours"
	Days  Unit = "days"
)

// MaxAmount bounds a validity or setting amount in either unit. Ten years
// of hours keeps every deadline representable in a duration and a
// TIMESTAMPTZ column.
const MaxAmount = 87600

var (
	ErrInvalidUnit      = errors.New("invalid validity unit")
	ErrAmountOutOfRange = errors.New("validity amount out of range")
)

func (u Unit) Valid() bool {
	return u == Hours || u == Days
}

// Deadline adds amount units to from. Days are calendar days, so the wall
// clock time of from is preserved.
func Deadline(from time.Time, amount int, unit Unit) (time.Time, error) {
	if amount < 0 || amount > MaxAmount {
		return time.Time{}, fmt.Errorf("%w: %d", ErrAmountOutOfRange, amount)
	}

	switch unit {
	case Hours:
		return from.Add(time.Duration(amount) * time.Hour), nil
	case Days:
		return from.AddDate(0, 0, amount), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidUnit, string(unit))
	}
}

// DaysUntil is ceil((deadline - now) / 24h). Past deadlines give zero or a
// negative count.
func DaysUntil(deadline, now time.Time) int {
	days := math.Ceil(deadline.Sub(now).Hours() / 24)

	// math.Ceil(-0.4) is -0
	if days == 0 {
		return 0
	}

	return int(days)
}

// Window is a look-ahead bucket used to filter pending alerts.
type Window string

const (
	WindowWeek      Window = "7days"
	WindowFortnight Window = "15days"
	WindowMonth     Window = "month"
)

func (w Window) Valid() bool {
	_, ok := w.upperBound()
	return ok
}

func (w Window) upperBound() (int, bool) {
	switch w {
	case WindowWeek:
		return 7, true
	case WindowFortnight:
		return 15, true
	case WindowMonth:
		return 30, true
	default:
		return 0, false
	}
}

// Contains reports whether an item daysLeft days away falls in the window.
// Items already due (daysLeft <= 0) are never in a window.
func (w Window) Contains(daysLeft int) bool {
	upper, ok := w.upperBound()
	if !ok {
		return false
	}

	return daysLeft > 0 && daysLeft <= upper
}
