package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
	usecase "github.com/elitehands/elitehands-api/internal/usecase/review"
)

type ReviewHandler struct {
	db     *gorm.DB
	create *usecase.CreateReview
	audit  *audit.Dispatcher
}

func NewReviewHandler(
	db *gorm.DB,
	create *usecase.CreateReview,
	dispatcher *audit.Dispatcher,
) *ReviewHandler {
	return &ReviewHandler{
		db:     db,
		create: create,
		audit:  dispatcher,
	}
}

type CreateReviewRequest struct {
	BookingID uint   `json:"booking_id" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

type PublishReviewRequest struct {
	Published bool `json:"published"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actor, ok := optionalActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid review payload")
		return
	}

	r, err := h.create.Execute(c.Request.Context(), usecase.CreateReviewInput{
		Actor:     actor,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	httpresp.Created(c, r)
}

// List serves two views from one route: `?published=true` is the public feed
// (optionally filtered by provider), anything else is the caller's own
// reviews and requires authentication.
func (h *ReviewHandler) List(c *gin.Context) {
	if c.Query("published") == "true" {
		h.listPublic(c)
		return
	}

	actor, ok := optionalActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "Authentication required")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("Provider").
		Where("customer_id = ?", actor.ID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "Could not load reviews")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) listPublic(c *gin.Context) {
	q := h.db.
		Preload("Customer").
		Preload("Provider").
		Where("published = ?", true)

	if providerID := c.Query("provider"); providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}

	var reviews []models.Review
	if err := q.Order("created_at DESC").Find(&reviews).Error; err != nil {
		httperr.Internal(c, "Could not load reviews")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var r models.Review
	if err := h.db.Preload("Provider").First(&r, id).Error; err != nil {
		httperr.NotFound(c, "Review not found")
		return
	}

	if !authz.CanEditReview(actor, &r) && !authz.CanModerateReviews(actor) {
		httperr.NotFound(c, "Review not found")
		return
	}

	httpresp.OK(c, r)
}

// Update lets the owner edit rating and comment; publication state stays as
// the moderators left it.
func (h *ReviewHandler) Update(c *gin.Context) {
	actor := actorFrom(c)

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid review payload")
		return
	}

	var r models.Review
	if err := h.db.First(&r, id).Error; err != nil {
		httperr.NotFound(c, "Review not found")
		return
	}

	if !authz.CanEditReview(actor, &r) {
		httperr.NotFound(c, "Review not found")
		return
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			httperr.BadRequest(c, "Rating must be between 1 and 5")
			return
		}
		r.Rating = *req.Rating
	}
	if req.Comment != nil {
		r.Comment = *req.Comment
	}

	if err := h.db.Save(&r).Error; err != nil {
		httperr.Internal(c, "Could not update review")
		return
	}

	httpresp.OK(c, r)
}

// ListAll is the moderation view: every review, any publication state.
func (h *ReviewHandler) ListAll(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanModerateReviews(actor) {
		httperr.Forbidden(c, "Only admins can moderate reviews")
		return
	}

	var reviews []models.Review
	if err := h.db.
		Preload("Customer").
		Preload("Provider").
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "Could not load reviews")
		return
	}

	httpresp.List(c, reviews)
}

func (h *ReviewHandler) SetPublished(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanModerateReviews(actor) {
		httperr.Forbidden(c, "Only admins can moderate reviews")
		return
	}

	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req PublishReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid payload")
		return
	}

	var r models.Review
	if err := h.db.First(&r, id).Error; err != nil {
		httperr.NotFound(c, "Review not found")
		return
	}

	r.Published = req.Published
	if err := h.db.Save(&r).Error; err != nil {
		httperr.Internal(c, "Could not update review")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "review_moderated",
		Entity:   "review",
		EntityID: &r.ID,
		Metadata: map[string]any{"published": req.Published},
	})

	httpresp.OK(c, r)
}
