package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

type StaffHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewStaffHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *StaffHandler {
	return &StaffHandler{db: db, audit: dispatcher}
}

type UpdateStaffRequest struct {
	Position    *string `json:"position"`
	WorkEmail   *string `json:"work_email"`
	WorkPhone   *string `json:"work_phone"`
	Active      *bool   `json:"active"`
	ActiveStaff *bool   `json:"active_staff"`
	Role        *string `json:"role"`
}

// List is the internal staff directory: every staff/admin account except the
// caller, searchable by name or position.
func (h *StaffHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanViewStaffDirectory(actor) {
		httperr.Forbidden(c, "Staff directory is internal")
		return
	}

	q := h.db.
		Where("role IN ?", []string{models.RoleStaff, models.RoleAdmin}).
		Where("id <> ?", actor.ID)

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(position) LIKE ?",
			like, like, like,
		)
	}

	if c.Query("active") == "true" {
		q = q.Where("active = ? AND active_staff = ?", true, true)
	}

	var staff []models.User
	if err := q.Order("last_name ASC, first_name ASC").Find(&staff).Error; err != nil {
		httperr.Internal(c, "Could not load staff directory")
		return
	}

	httpresp.List(c, staff)
}

// ListAssigned gives a customer the distinct providers across their bookings.
func (h *StaffHandler) ListAssigned(c *gin.Context) {
	actor := actorFrom(c)

	var staff []models.User
	err := h.db.
		Distinct("users.*").
		Joins("JOIN booking_assignments ON booking_assignments.staff_id = users.id").
		Joins("JOIN bookings ON bookings.id = booking_assignments.booking_id").
		Where("bookings.customer_id = ?", actor.ID).
		Where("booking_assignments.unassigned_at IS NULL").
		Find(&staff).Error
	if err != nil {
		httperr.Internal(c, "Could not load assigned staff")
		return
	}

	httpresp.List(c, staff)
}

// ListMyAssignments returns the acting staff member's roster rows; customers
// get an empty list rather than an error.
func (h *StaffHandler) ListMyAssignments(c *gin.Context) {
	actor := actorFrom(c)

	if !actor.IsStaff() {
		httpresp.List(c, []models.BookingAssignment{})
		return
	}

	var assignments []models.BookingAssignment
	if err := h.db.
		Preload("Booking").
		Preload("Booking.Customer").
		Preload("Booking.Service").
		Where("staff_id = ? AND unassigned_at IS NULL", actor.ID).
		Order("assigned_at DESC").
		Find(&assignments).Error; err != nil {
		httperr.Internal(c, "Could not load assignments")
		return
	}

	httpresp.List(c, assignments)
}

func (h *StaffHandler) Get(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanViewStaffDirectory(actor) {
		httperr.Forbidden(c, "Staff directory is internal")
		return
	}

	user, ok := h.staffMember(c)
	if !ok {
		return
	}

	httpresp.OK(c, user)
}

// Update lets admins edit staff records: position, contact, activation, role.
func (h *StaffHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanManageStaff(actor) {
		httperr.Forbidden(c, "Only admins can manage staff")
		return
	}

	var req UpdateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid staff payload")
		return
	}

	user, ok := h.staffMember(c)
	if !ok {
		return
	}

	if req.Role != nil {
		if *req.Role != models.RoleStaff && *req.Role != models.RoleAdmin {
			httperr.BadRequest(c, "Role must be staff or admin")
			return
		}
		user.Role = *req.Role
	}
	if req.Position != nil {
		user.Position = *req.Position
	}
	if req.WorkEmail != nil {
		user.WorkEmail = *req.WorkEmail
	}
	if req.WorkPhone != nil {
		user.WorkPhone = *req.WorkPhone
	}
	if req.Active != nil {
		user.Active = *req.Active
	}
	if req.ActiveStaff != nil {
		user.ActiveStaff = *req.ActiveStaff
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "Could not update staff member")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "staff_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, user)
}

// Deactivate is the directory's DELETE: the account stays, bookings and
// history stay, the staff flag goes off.
func (h *StaffHandler) Deactivate(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanManageStaff(actor) {
		httperr.Forbidden(c, "Only admins can manage staff")
		return
	}

	user, ok := h.staffMember(c)
	if !ok {
		return
	}

	user.ActiveStaff = false
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "Could not deactivate staff member")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "staff_deactivated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.OK(c, gin.H{"message": "Staff member deactivated"})
}

func (h *StaffHandler) ToggleStatus(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanManageStaff(actor) {
		httperr.Forbidden(c, "Only admins can manage staff")
		return
	}

	user, ok := h.staffMember(c)
	if !ok {
		return
	}

	user.ActiveStaff = !user.ActiveStaff
	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "Could not update staff member")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "staff_status_toggled",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"active_staff": user.ActiveStaff},
	})

	httpresp.OK(c, user)
}

func (h *StaffHandler) staffMember(c *gin.Context) (*models.User, bool) {
	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var user models.User
	err := h.db.
		Where("id = ? AND role IN ?", id, []string{models.RoleStaff, models.RoleAdmin}).
		First(&user).Error
	if err != nil {
		httperr.NotFound(c, "Staff member not found")
		return nil, false
	}

	return &user, true
}
