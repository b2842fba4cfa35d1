package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

type LeaveHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewLeaveHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *LeaveHandler {
	return &LeaveHandler{db: db, audit: dispatcher}
}

type CreateLeaveRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

type DecideLeaveRequest struct {
	Status string `json:"status" binding:"required"`
}

// Create submits a leave request for the acting staff member.
func (h *LeaveHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanSubmitLeave(actor) {
		httperr.Forbidden(c, "Only staff can request leave")
		return
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Start and end dates are required")
		return
	}

	start, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		httperr.BadRequest(c, "Start date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse("2006-01-02", req.EndDate)
	if err != nil {
		httperr.BadRequest(c, "End date must be YYYY-MM-DD")
		return
	}
	if end.Before(start) {
		httperr.BadRequest(c, "End date must not be before start date")
		return
	}

	lr := models.LeaveRequest{
		StaffID:   actor.ID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Reason:    req.Reason,
		Status:    models.LeavePending,
	}

	if err := h.db.Create(&lr).Error; err != nil {
		httperr.Internal(c, "Could not submit leave request")
		return
	}

	httpresp.Created(c, lr)
}

// ListMine returns the acting staff member's own requests.
func (h *LeaveHandler) ListMine(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanSubmitLeave(actor) {
		httperr.Forbidden(c, "Only staff can request leave")
		return
	}

	var requests []models.LeaveRequest
	if err := h.db.
		Where("staff_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		httperr.Internal(c, "Could not load leave requests")
		return
	}

	httpresp.List(c, requests)
}

// ListAll is the admin review queue, optionally filtered by status.
func (h *LeaveHandler) ListAll(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanDecideLeave(actor) {
		httperr.Forbidden(c, "Only admins can review leave requests")
		return
	}

	q := h.db.Preload("Staff")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var requests []models.LeaveRequest
	if err := q.Order("created_at DESC").Find(&requests).Error; err != nil {
		httperr.Internal(c, "Could not load leave requests")
		return
	}

	httpresp.List(c, requests)
}

// Decide approves or rejects a pending request. Decided requests are final.
func (h *LeaveHandler) Decide(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanDecideLeave(actor) {
		httperr.Forbidden(c, "Only admins can review leave requests")
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "A status is required")
		return
	}

	if req.Status != models.LeaveApproved && req.Status != models.LeaveRejected {
		httperr.BadRequest(c, "Status must be approved or rejected")
		return
	}

	var lr models.LeaveRequest
	if err := h.db.First(&lr, id).Error; err != nil {
		httperr.NotFound(c, "Leave request not found")
		return
	}

	if lr.Status != models.LeavePending {
		httperr.BadRequest(c, "This leave request has already been decided")
		return
	}

	now := time.Now()
	lr.Status = req.Status
	lr.DecidedBy = &actor.ID
	lr.DecidedAt = &now

	if err := h.db.Save(&lr).Error; err != nil {
		httperr.Internal(c, "Could not update leave request")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "leave_request_decided",
		Entity:   "leave_request",
		EntityID: &lr.ID,
		Metadata: map[string]any{"status": lr.Status},
	})

	httpresp.OK(c, lr)
}
