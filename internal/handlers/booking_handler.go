package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/dto"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
	usecase "github.com/elitehands/elitehands-api/internal/usecase/booking"
)

type BookingHandler struct {
	db     *gorm.DB
	create *usecase.CreateBooking
	update *usecase.UpdateBooking
	audit  *audit.Dispatcher
}

func NewBookingHandler(
	db *gorm.DB,
	create *usecase.CreateBooking,
	update *usecase.UpdateBooking,
	dispatcher *audit.Dispatcher,
) *BookingHandler {
	return &BookingHandler{
		db:     db,
		create: create,
		update: update,
		audit:  dispatcher,
	}
}

// --------- Requests ---------

type CreateBookingRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`

	ScheduledDate string `json:"scheduled_date" binding:"required"`
	ScheduledTime string `json:"scheduled_time" binding:"required"`

	SpecialInstructions string `json:"special_instructions"`
	Address             string `json:"address" binding:"required"`
	City                string `json:"city" binding:"required"`
	Province            string `json:"province"`
	PostalCode          string `json:"postal_code"`
}

type UpdateBookingRequest struct {
	ScheduledDate       *string `json:"scheduled_date"`
	ScheduledTime       *string `json:"scheduled_time"`
	SpecialInstructions *string `json:"special_instructions"`
	Address             *string `json:"address"`
	City                *string `json:"city"`
	Province            *string `json:"province"`
	PostalCode          *string `json:"postal_code"`

	Status *string `json:"status"`
}

// --------- Handlers ---------

// List shows staff every booking and customers only their own. Optional
// filters: status, date (scheduled_date).
func (h *BookingHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	q := h.db.Preload("Customer").Preload("Service")

	if !actor.IsStaff() {
		q = q.Where("customer_id = ?", actor.ID)
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		q = q.Where("scheduled_date = ?", date)
	}

	var bookings []models.Booking
	if err := q.
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		httperr.Internal(c, "Could not load bookings")
		return
	}

	httpresp.List(c, dto.NewBookingSummaries(bookings))
}

func (h *BookingHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid booking payload")
		return
	}

	b, err := h.create.Execute(c.Request.Context(), usecase.CreateBookingInput{
		CustomerID:          actor.ID,
		ServiceID:           req.ServiceID,
		ScheduledDate:       req.ScheduledDate,
		ScheduledTime:       req.ScheduledTime,
		SpecialInstructions: req.SpecialInstructions,
		Address:             req.Address,
		City:                req.City,
		Province:            req.Province,
		PostalCode:          req.PostalCode,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, ok := h.visibleBooking(c, actor, id)
	if !ok {
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid booking payload")
		return
	}

	b, err := h.update.Execute(c.Request.Context(), usecase.UpdateBookingInput{
		Actor:               actor,
		BookingID:           id,
		ScheduledDate:       req.ScheduledDate,
		ScheduledTime:       req.ScheduledTime,
		SpecialInstructions: req.SpecialInstructions,
		Address:             req.Address,
		City:                req.City,
		Province:            req.Province,
		PostalCode:          req.PostalCode,
		Status:              req.Status,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, b)
}

func (h *BookingHandler) Delete(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, ok := h.visibleBooking(c, actor, id)
	if !ok {
		return
	}

	if !authz.CanDeleteBooking(actor, b) {
		httperr.NotFound(c, "Booking not found")
		return
	}

	if err := h.db.Delete(&models.Booking{}, b.ID).Error; err != nil {
		httperr.Internal(c, "Could not delete booking")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	httpresp.OK(c, gin.H{"message": "Booking deleted"})
}

// ListAssignments returns the active roster for a booking the actor can see.
func (h *BookingHandler) ListAssignments(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	b, ok := h.visibleBooking(c, actor, id)
	if !ok {
		return
	}

	if !authz.CanListAssignments(actor, b) {
		httperr.NotFound(c, "Booking not found")
		return
	}

	var assignments []models.BookingAssignment
	if err := h.db.
		Preload("Staff").
		Where("booking_id = ? AND unassigned_at IS NULL", b.ID).
		Order("assigned_at ASC").
		Find(&assignments).Error; err != nil {
		httperr.Internal(c, "Could not load assignments")
		return
	}

	httpresp.List(c, assignments)
}

// visibleBooking loads a booking and hides its existence from actors who may
// not see it; both cases answer 404.
func (h *BookingHandler) visibleBooking(c *gin.Context, actor authz.Actor, id uint) (*models.Booking, bool) {
	var b models.Booking
	err := h.db.
		Preload("Customer").
		Preload("Service").
		Preload("Provider").
		First(&b, id).Error
	if err != nil {
		httperr.NotFound(c, "Booking not found")
		return nil, false
	}

	if !authz.CanViewBooking(actor, &b) {
		httperr.NotFound(c, "Booking not found")
		return nil, false
	}

	return &b, true
}
