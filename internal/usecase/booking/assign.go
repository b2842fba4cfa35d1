package booking

import (
	"context"
	"time"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

type AssignmentItem struct {
	StaffID uint   `json:"staff_id"`
	Role    string `json:"role"`
}

type AssignStaffInput struct {
	Actor     authz.Actor
	BookingID uint
	Items     []AssignmentItem
}

type AssignStaff struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAssignStaff(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AssignStaff {
	return &AssignStaff{
		repo:  repo,
		audit: audit,
	}
}

// Execute upserts one roster row per requested pair. Ids that do not resolve
// to an active staff/admin account are skipped, not reported; the result
// holds only the rows actually written.
func (uc *AssignStaff) Execute(
	ctx context.Context,
	in AssignStaffInput,
) ([]models.BookingAssignment, error) {

	if !authz.CanManageAssignments(in.Actor) {
		return nil, httperr.ErrBusiness("forbidden", "Only admins can manage assignments")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found", "Booking not found")
	}

	now := time.Now()
	written := make([]models.BookingAssignment, 0, len(in.Items))

	for _, item := range in.Items {
		staff, err := uc.repo.GetActiveStaff(ctx, item.StaffID)
		if err != nil {
			continue
		}

		a := &models.BookingAssignment{
			BookingID:  b.ID,
			StaffID:    staff.ID,
			Role:       item.Role,
			AssignedAt: now,
		}
		if err := uc.repo.UpsertAssignment(ctx, a); err != nil {
			return nil, err
		}

		row, err := uc.repo.GetAssignment(ctx, b.ID, staff.ID)
		if err != nil {
			return nil, err
		}
		written = append(written, *row)

		uc.audit.Dispatch(audit.Event{
			UserID:   &in.Actor.ID,
			Action:   "booking_staff_assigned",
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]any{"staff_id": staff.ID, "role": item.Role},
		})
	}

	return written, nil
}
