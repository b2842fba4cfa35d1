package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

type MessageHandler struct {
	db *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{db: db}
}

type CreateMessageRequest struct {
	StaffID   uint   `json:"staff_id"`
	BookingID *uint  `json:"booking_id"`
	Subject   string `json:"subject"`
	Body      string `json:"message" binding:"required"`
}

// List shows the actor's side of the thread: staff see messages addressed to
// them, customers the ones they sent.
func (h *MessageHandler) List(c *gin.Context) {
	actor := actorFrom(c)

	q := h.db.Preload("Customer").Preload("Staff")
	if actor.IsStaff() {
		q = q.Where("staff_id = ?", actor.ID)
	} else {
		q = q.Where("customer_id = ?", actor.ID)
	}

	var messages []models.Message
	if err := q.Order("created_at DESC").Find(&messages).Error; err != nil {
		httperr.Internal(c, "Could not load messages")
		return
	}

	httpresp.List(c, messages)
}

// Create sends a message from the acting customer to a staff member and
// notifies the recipient.
func (h *MessageHandler) Create(c *gin.Context) {
	actor := actorFrom(c)

	// Threads are customer → staff; a staff actor on the customer side would
	// corrupt the thread shape.
	if actor.IsStaff() {
		httperr.Forbidden(c, "Only customers can start a message thread")
		return
	}

	var req CreateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "A message body is required")
		return
	}

	if strings.TrimSpace(req.Body) == "" {
		httperr.BadRequest(c, "A message body is required")
		return
	}

	var staff models.User
	err := h.db.
		Where("id = ? AND role IN ? AND active = ? AND active_staff = ?",
			req.StaffID,
			[]string{models.RoleStaff, models.RoleAdmin},
			true, true,
		).
		First(&staff).Error
	if err != nil {
		httperr.NotFound(c, "Staff member not found")
		return
	}

	m := models.Message{
		CustomerID: actor.ID,
		StaffID:    staff.ID,
		BookingID:  req.BookingID,
		Subject:    req.Subject,
		Body:       req.Body,
	}

	if err := h.db.Create(&m).Error; err != nil {
		httperr.Internal(c, "Could not send message")
		return
	}

	_ = h.db.Create(&models.Notification{
		UserID:  staff.ID,
		Type:    models.NotificationMessageReceived,
		Title:   "New message",
		Message: "You have received a new message.",
	}).Error

	httpresp.Created(c, m)
}

func (h *MessageHandler) Get(c *gin.Context) {
	m, ok := h.ownMessage(c)
	if !ok {
		return
	}

	httpresp.OK(c, m)
}

type UpdateMessageRequest struct {
	Subject *string `json:"subject"`
	Body    *string `json:"message"`
}

// Update edits subject/body; only the sending customer may rewrite a message.
func (h *MessageHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	m, ok := h.ownMessage(c)
	if !ok {
		return
	}

	if actor.IsStaff() {
		httperr.Forbidden(c, "Only the sender can edit a message")
		return
	}

	var req UpdateMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid message payload")
		return
	}

	if req.Subject != nil {
		m.Subject = *req.Subject
	}
	if req.Body != nil {
		if strings.TrimSpace(*req.Body) == "" {
			httperr.BadRequest(c, "A message body is required")
			return
		}
		m.Body = *req.Body
	}

	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "Could not update message")
		return
	}

	httpresp.OK(c, m)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	m, ok := h.ownMessage(c)
	if !ok {
		return
	}

	if err := h.db.Delete(&models.Message{}, m.ID).Error; err != nil {
		httperr.Internal(c, "Could not delete message")
		return
	}

	httpresp.OK(c, gin.H{"message": "Message deleted"})
}

func (h *MessageHandler) MarkRead(c *gin.Context) {
	m, ok := h.ownMessage(c)
	if !ok {
		return
	}

	m.IsRead = true
	if err := h.db.Save(m).Error; err != nil {
		httperr.Internal(c, "Could not update message")
		return
	}

	httpresp.OK(c, m)
}

// ownMessage loads the message and hides it from the wrong side of the
// thread; absent and inaccessible both answer 404.
func (h *MessageHandler) ownMessage(c *gin.Context) (*models.Message, bool) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return nil, false
	}

	var m models.Message
	if err := h.db.First(&m, id).Error; err != nil {
		httperr.NotFound(c, "Message not found")
		return nil, false
	}

	if !authz.CanAccessMessage(actor, &m) {
		httperr.NotFound(c, "Message not found")
		return nil, false
	}

	return &m, true
}
