package booking

import (
	"context"

	"github.com/elitehands/elitehands-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetActiveService(
		ctx context.Context,
		serviceID uint,
	) (*models.Service, error)

	// -------- Booking --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	SaveBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Staff --------
	GetActiveStaff(
		ctx context.Context,
		userID uint,
	) (*models.User, error)

	// -------- Assignment roster --------
	UpsertAssignment(
		ctx context.Context,
		a *models.BookingAssignment,
	) error

	GetAssignment(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) (*models.BookingAssignment, error)

	DeleteAssignment(
		ctx context.Context,
		bookingID uint,
		staffID uint,
	) error

	ListAssignmentsByBooking(
		ctx context.Context,
		bookingID uint,
	) ([]models.BookingAssignment, error)

	EarliestAssignment(
		ctx context.Context,
		bookingID uint,
	) (*models.BookingAssignment, error)

	// -------- Reviews --------
	CreateReview(
		ctx context.Context,
		r *models.Review,
	) error

	// -------- Notifications --------
	CreateNotification(
		ctx context.Context,
		n *models.Notification,
	) error
}
