package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/audit"
	"github.com/elitehands/elitehands-api/internal/authz"
	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *AdminHandler {
	return &AdminHandler{db: db, audit: dispatcher}
}

type UpdateSettingsRequest struct {
	SiteName        *string `json:"site_name"`
	ContactEmail    *string `json:"contact_email"`
	ContactPhone    *string `json:"contact_phone"`
	Address         *string `json:"address"`
	MaintenanceMode *bool   `json:"maintenance_mode"`
}

func (h *AdminHandler) GetSettings(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanEditSettings(actor) {
		httperr.Forbidden(c, "Only admins can access settings")
		return
	}

	var settings models.SiteSettings
	if err := h.db.First(&settings, 1).Error; err != nil {
		httperr.Internal(c, "Could not load settings")
		return
	}

	httpresp.OK(c, settings)
}

func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanEditSettings(actor) {
		httperr.Forbidden(c, "Only admins can access settings")
		return
	}

	var req UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "Invalid settings payload")
		return
	}

	var settings models.SiteSettings
	if err := h.db.First(&settings, 1).Error; err != nil {
		httperr.Internal(c, "Could not load settings")
		return
	}

	if req.SiteName != nil {
		settings.SiteName = *req.SiteName
	}
	if req.ContactEmail != nil {
		settings.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		settings.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		settings.Address = *req.Address
	}
	if req.MaintenanceMode != nil {
		settings.MaintenanceMode = *req.MaintenanceMode
	}

	if err := h.db.Save(&settings).Error; err != nil {
		httperr.Internal(c, "Could not update settings")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "settings_updated",
		Entity:   "site_settings",
		EntityID: &settings.ID,
	})

	httpresp.OK(c, settings)
}

type statusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type roleCount struct {
	Role  string `json:"role"`
	Count int64  `json:"count"`
}

type topService struct {
	ServiceID uint   `json:"service_id"`
	Name      string `json:"name"`
	Bookings  int64  `json:"bookings"`
}

// Analytics aggregates the dashboard numbers: bookings by status, completed
// revenue, users by role, top services and the average published rating.
func (h *AdminHandler) Analytics(c *gin.Context) {
	actor := actorFrom(c)

	if !authz.CanViewAnalytics(actor) {
		httperr.Forbidden(c, "Only admins can view analytics")
		return
	}

	var byStatus []statusCount
	if err := h.db.Model(&models.Booking{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		httperr.Internal(c, "Could not compute analytics")
		return
	}

	var revenue float64
	if err := h.db.Model(&models.Booking{}).
		Where("status = ?", "completed").
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue).Error; err != nil {
		httperr.Internal(c, "Could not compute analytics")
		return
	}

	var byRole []roleCount
	if err := h.db.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Scan(&byRole).Error; err != nil {
		httperr.Internal(c, "Could not compute analytics")
		return
	}

	var topServices []topService
	if err := h.db.Model(&models.Booking{}).
		Select("bookings.service_id, services.name, COUNT(*) AS bookings").
		Joins("JOIN services ON services.id = bookings.service_id").
		Group("bookings.service_id, services.name").
		Order("bookings DESC").
		Limit(5).
		Scan(&topServices).Error; err != nil {
		httperr.Internal(c, "Could not compute analytics")
		return
	}

	var avgRating float64
	if err := h.db.Model(&models.Review{}).
		Where("published = ?", true).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avgRating).Error; err != nil {
		httperr.Internal(c, "Could not compute analytics")
		return
	}

	httpresp.OK(c, gin.H{
		"bookings_by_status": byStatus,
		"completed_revenue":  revenue,
		"users_by_role":      byRole,
		"top_services":       topServices,
		"average_rating":     avgRating,
	})
}
