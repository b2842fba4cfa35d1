package booking

import (
	"context"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

type UpdateBookingInput struct {
	Actor     authz.Actor
	BookingID uint

	ScheduledDate       *string
	ScheduledTime       *string
	SpecialInstructions *string
	Address             *string
	City                *string
	Province            *string
	PostalCode          *string

	Status *string
}

type UpdateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateBooking {
	return &UpdateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateBooking) Execute(
	ctx context.Context,
	in UpdateBookingInput,
) (*models.Booking, error) {

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found", "Booking not found")
	}

	if !authz.CanWriteBooking(in.Actor, b) {
		return nil, httperr.ErrBusiness("booking_not_found", "Booking not found")
	}

	prevStatus := b.Status

	if in.Status != nil && *in.Status != b.Status {
		to, err := domain.ParseStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		if in.Actor.IsStaff() {
			if err := domain.SetStatus(b, to, in.Actor.IsAdmin()); err != nil {
				return nil, err
			}
		} else {
			// Customers only get to cancel.
			if to != domain.StatusCancelled {
				return nil, httperr.ErrBusiness("invalid_transition", "Only staff can change a booking status")
			}
			if err := domain.CancelByCustomer(b); err != nil {
				return nil, err
			}
		}
	}

	if hasFieldEdits(in) && !in.Actor.IsStaff() && prevStatus != string(domain.StatusPending) {
		return nil, httperr.ErrBusiness("not_editable", "Booking details can only be changed while pending")
	}

	if in.ScheduledDate != nil {
		b.ScheduledDate = *in.ScheduledDate
	}
	if in.ScheduledTime != nil {
		b.ScheduledTime = *in.ScheduledTime
	}
	if in.SpecialInstructions != nil {
		b.SpecialInstructions = *in.SpecialInstructions
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.City != nil {
		b.City = *in.City
	}
	if in.Province != nil {
		b.Province = *in.Province
	}
	if in.PostalCode != nil {
		b.PostalCode = *in.PostalCode
	}

	if err := uc.repo.SaveBooking(ctx, b); err != nil {
		return nil, err
	}

	if b.Status != prevStatus {
		uc.notifyStatusChange(ctx, b)
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.Actor.ID,
			Action:   "booking_status_changed",
			Entity:   "booking",
			EntityID: &b.ID,
			Metadata: map[string]string{"from": prevStatus, "to": b.Status},
		})
	} else {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.Actor.ID,
			Action:   "booking_updated",
			Entity:   "booking",
			EntityID: &b.ID,
		})
	}

	return b, nil
}

func (uc *UpdateBooking) notifyStatusChange(ctx context.Context, b *models.Booking) {
	var typ, title string
	switch domain.Status(b.Status) {
	case domain.StatusConfirmed:
		typ, title = models.NotificationBookingConfirmed, "Booking confirmed"
	case domain.StatusCancelled:
		typ, title = models.NotificationBookingCancelled, "Booking cancelled"
	default:
		return
	}

	// Best effort, a failed notification never fails the update.
	_ = uc.repo.CreateNotification(ctx, &models.Notification{
		UserID:  b.CustomerID,
		Type:    typ,
		Title:   title,
		Message: "Your booking " + b.BookingID + " is now " + b.Status + ".",
	})
}

func hasFieldEdits(in UpdateBookingInput) bool {
	return in.ScheduledDate != nil || in.ScheduledTime != nil ||
		in.SpecialInstructions != nil || in.Address != nil ||
		in.City != nil || in.Province != nil || in.PostalCode != nil
}
