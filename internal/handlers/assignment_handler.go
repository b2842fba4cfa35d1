package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	usecase "github.com/elitehands/elitehands-api/internal/usecase/booking"
)

// AssignmentHandler covers the admin-only roster writes; reads live on the
// booking handler.
type AssignmentHandler struct {
	assign   *usecase.AssignStaff
	unassign *usecase.UnassignStaff
}

func NewAssignmentHandler(
	assign *usecase.AssignStaff,
	unassign *usecase.UnassignStaff,
) *AssignmentHandler {
	return &AssignmentHandler{
		assign:   assign,
		unassign: unassign,
	}
}

type AssignStaffRequest struct {
	Assignments []usecase.AssignmentItem `json:"assignments" binding:"required,min=1"`
}

func (h *AssignmentHandler) Assign(c *gin.Context) {
	actor := actorFrom(c)

	bookingID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req AssignStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "At least one assignment is required")
		return
	}

	written, err := h.assign.Execute(c.Request.Context(), usecase.AssignStaffInput{
		Actor:     actor,
		BookingID: bookingID,
		Items:     req.Assignments,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.List(c, written)
}

func (h *AssignmentHandler) Unassign(c *gin.Context) {
	actor := actorFrom(c)

	bookingID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	staffID, ok := uintParam(c, "staffID")
	if !ok {
		return
	}

	err := h.unassign.Execute(c.Request.Context(), actor, bookingID, staffID)
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.OK(c, gin.H{"message": "Staff unassigned"})
}
