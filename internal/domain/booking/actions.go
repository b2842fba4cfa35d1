package booking

import (
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// SetStatus applies a validated status change to the booking.
func SetStatus(b *models.Booking, to Status, admin bool) error {
	from, err := ParseStatus(b.Status)
	if err != nil {
		return err
	}
	if err := CanTransition(from, to, admin); err != nil {
		return err
	}
	b.Status = string(to)
	return nil
}

// CancelByCustomer is the only status change a customer may make.
func CancelByCustomer(b *models.Booking) error {
	from, err := ParseStatus(b.Status)
	if err != nil {
		return err
	}
	if !CustomerCanCancel(from) {
		return httperr.ErrBusiness("invalid_transition", "Booking can no longer be cancelled")
	}
	b.Status = string(StatusCancelled)
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
