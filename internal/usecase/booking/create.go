package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/elitehands/elitehands-api/internal/audit"
	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	CustomerID uint

	ServiceID uint

	ScheduledDate string // YYYY-MM-DD
	ScheduledTime string // HH:MM

	SpecialInstructions string
	Address             string
	City                string
	Province            string
	PostalCode          string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if _, err := time.Parse("2006-01-02", in.ScheduledDate); err != nil {
		return nil, httperr.ErrBusiness("invalid_date", "Scheduled date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", in.ScheduledTime); err != nil {
		return nil, httperr.ErrBusiness("invalid_time", "Scheduled time must be HH:MM")
	}

	svc, err := uc.repo.GetActiveService(ctx, in.ServiceID)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found", "Service not found")
	}

	// Price is snapshotted here; later catalog edits never touch the booking.
	// No provider-calendar conflict check is performed: two bookings may share
	// a slot.
	b := &models.Booking{
		BookingID:           uuid.NewString(),
		CustomerID:          in.CustomerID,
		ServiceID:           svc.ID,
		ScheduledDate:       in.ScheduledDate,
		ScheduledTime:       in.ScheduledTime,
		Status:              string(domain.InitialStatus()),
		TotalAmount:         svc.Price,
		SpecialInstructions: in.SpecialInstructions,
		Address:             in.Address,
		City:                in.City,
		Province:            in.Province,
		PostalCode:          in.PostalCode,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
