package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/elitehands/elitehands-api/internal/domain/booking"
	"github.com/elitehands/elitehands-api/internal/models"
)

type MarketplaceGormRepository struct {
	db *gorm.DB
}

func NewMarketplaceGormRepository(db *gorm.DB) *MarketplaceGormRepository {
	return &MarketplaceGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

// GetActiveService resolves a bookable service: both the service and its
// category must be active.
func (r *MarketplaceGormRepository) GetActiveService(
	ctx context.Context,
	serviceID uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Joins("JOIN service_categories ON service_categories.id = services.category_id").
		Where("services.id = ? AND services.active = ? AND service_categories.active = ?",
			serviceID, true, true).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *MarketplaceGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *MarketplaceGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *MarketplaceGormRepository) SaveBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Staff
// --------------------------------------------------

func (r *MarketplaceGormRepository) GetActiveStaff(
	ctx context.Context,
	userID uint,
) (*models.User, error) {

	var u models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role IN ? AND active = ? AND active_staff = ?",
			userID, []string{models.RoleStaff, models.RoleAdmin}, true, true).
		First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// --------------------------------------------------
// Assignment roster
// --------------------------------------------------

// UpsertAssignment is a single atomic statement keyed on (booking_id,
// staff_id); two concurrent assigns of the same pair cannot produce two rows.
func (r *MarketplaceGormRepository) UpsertAssignment(
	ctx context.Context,
	a *models.BookingAssignment,
) error {

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "booking_id"}, {Name: "staff_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"role":          a.Role,
				"assigned_at":   a.AssignedAt,
				"unassigned_at": nil,
			}),
		}).
		Create(a).Error
}

func (r *MarketplaceGormRepository) GetAssignment(
	ctx context.Context,
	bookingID uint,
	staffID uint,
) (*models.BookingAssignment, error) {

	var a models.BookingAssignment
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("booking_id = ? AND staff_id = ?", bookingID, staffID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *MarketplaceGormRepository) DeleteAssignment(
	ctx context.Context,
	bookingID uint,
	staffID uint,
) error {

	res := r.db.WithContext(ctx).
		Where("booking_id = ? AND staff_id = ?", bookingID, staffID).
		Delete(&models.BookingAssignment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *MarketplaceGormRepository) ListAssignmentsByBooking(
	ctx context.Context,
	bookingID uint,
) ([]models.BookingAssignment, error) {

	var rows []models.BookingAssignment
	if err := r.db.WithContext(ctx).
		Preload("Staff").
		Where("booking_id = ?", bookingID).
		Order("assigned_at ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *MarketplaceGormRepository) EarliestAssignment(
	ctx context.Context,
	bookingID uint,
) (*models.BookingAssignment, error) {

	var a models.BookingAssignment
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("assigned_at ASC").
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// --------------------------------------------------
// Reviews
// --------------------------------------------------

func (r *MarketplaceGormRepository) CreateReview(
	ctx context.Context,
	rev *models.Review,
) error {
	return r.db.WithContext(ctx).Create(rev).Error
}

// --------------------------------------------------
// Notifications
// --------------------------------------------------

func (r *MarketplaceGormRepository) CreateNotification(
	ctx context.Context,
	n *models.Notification,
) error {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(n).Error
}

// Compile-time check
var _ domain.Repository = (*MarketplaceGormRepository)(nil)
