package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/models"
)

type CreateReviewInput struct {
	Actor     authz.Actor
	BookingID uint
	Rating    int
	Comment   string
}

type CreateReview struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateReview(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateReview {
	return &CreateReview{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	in CreateReviewInput,
) (*models.Review, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrBusiness("invalid_rating", "Rating must be between 1 and 5")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found", "Booking not found")
	}

	if !authz.CanReviewBooking(in.Actor, b) || b.Status != string(domain.StatusCompleted) {
		return nil, httperr.ErrBusiness("review_not_allowed", "You can only review completed bookings you have made")
	}

	providerID, err := uc.resolveProvider(ctx, b)
	if err != nil {
		return nil, err
	}

	r := &models.Review{
		BookingID:  b.ID,
		CustomerID: b.CustomerID,
		ProviderID: providerID,
		Rating:     in.Rating,
		Comment:    in.Comment,
		Published:  true,
	}

	if err := uc.repo.CreateReview(ctx, r); err != nil {
		// One review per booking, backed by the unique index.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrBusiness("duplicate_review", "This booking has already been reviewed")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.Actor.ID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &r.ID,
	})

	_ = uc.repo.CreateNotification(ctx, &models.Notification{
		UserID:  providerID,
		Type:    models.NotificationReviewReceived,
		Title:   "New review received",
		Message: "A customer left a review on one of your bookings.",
	})

	return r, nil
}

// resolveProvider prefers the booking's direct provider, falling back to the
// earliest roster assignment.
func (uc *CreateReview) resolveProvider(ctx context.Context, b *models.Booking) (uint, error) {
	if b.ProviderID != nil {
		return *b.ProviderID, nil
	}

	a, err := uc.repo.EarliestAssignment(ctx, b.ID)
	if err != nil {
		return 0, httperr.ErrBusiness("no_provider", "No assigned provider to review yet")
	}
	return a.StaffID, nil
}
