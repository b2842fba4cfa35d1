package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/httperr"
)

type UnassignStaff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUnassignStaff(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UnassignStaff {
	return &UnassignStaff{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UnassignStaff) Execute(
	ctx context.Context,
	actor authz.Actor,
	bookingID uint,
	staffID uint,
) error {

	if !authz.CanManageAssignments(actor) {
		return httperr.ErrBusiness("forbidden", "Only admins can manage assignments")
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		return httperr.ErrBusiness("booking_not_found", "Booking not found")
	}

	if err := uc.repo.DeleteAssignment(ctx, b.ID, staffID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httperr.ErrBusiness("assignment_not_found", "Assignment not found")
		}
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_staff_unassigned",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"staff_id": staffID},
	})

	return nil
}
