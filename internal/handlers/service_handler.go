package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/elitehands/elitehands-api/internal/httperr"
	"github.com/elitehands/elitehands-api/internal/httpresp"
	"github.com/elitehands/elitehands-api/internal/models"
)

// ServiceHandler serves the public catalog: active services in active
// categories only, no authentication required.
type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

func (h *ServiceHandler) ListCategories(c *gin.Context) {
	var categories []models.ServiceCategory
	if err := h.db.
		Where("active = ?", true).
		Order("name ASC").
		Find(&categories).Error; err != nil {
		httperr.Internal(c, "Could not load categories")
		return
	}

	httpresp.List(c, categories)
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	q := h.db.
		Joins("JOIN service_categories ON service_categories.id = services.category_id").
		Where("services.active = ? AND service_categories.active = ?", true, true).
		Preload("Category")

	if categoryID := c.Query("category"); categoryID != "" {
		q = q.Where("services.category_id = ?", categoryID)
	}

	if search := strings.ToLower(strings.TrimSpace(c.Query("search"))); search != "" {
		like := "%" + search + "%"
		q = q.Where("LOWER(services.name) LIKE ? OR LOWER(services.description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("services.name ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "Could not load services")
		return
	}

	httpresp.List(c, services)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var svc models.Service
	err := h.db.
		Joins("JOIN service_categories ON service_categories.id = services.category_id").
		Where("services.id = ? AND services.active = ? AND service_categories.active = ?", id, true, true).
		Preload("Category").
		First(&svc).Error
	if err != nil {
		httperr.NotFound(c, "Service not found")
		return
	}

	httpresp.OK(c, svc)
}
