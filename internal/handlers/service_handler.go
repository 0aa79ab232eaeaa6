package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/httpresp"
	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	NameFr          string  `json:"name_fr" binding:"required"`
	NameAr          string  `json:"name_ar" binding:"required"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=1"`
	Price           float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	NameFr          *string  `json:"name_fr,omitempty"`
	NameAr          *string  `json:"name_ar,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	Active          *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	activeStr := c.Query("active")

	q := h.db.Where("shop_id = ?", shopID)
	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		ShopID:          shopID,
		NameFr:          req.NameFr,
		NameAr:          req.NameAr,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		Active:          true,
	}

	if err := h.db.Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	httpresp.Created(c, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&service).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.NameFr != nil {
		service.NameFr = *req.NameFr
	}
	if req.NameAr != nil {
		service.NameAr = *req.NameAr
	}
	if req.DurationMinutes != nil {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		service.Price = *req.Price
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	c.JSON(http.StatusOK, service)
}

// Delete supprime un service sans historique ; un service déjà référencé
// par des réservations doit être désactivé, pas supprimé
func (h *ServiceHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var service models.Service
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return
	}

	var refs int64
	h.db.Model(&models.Booking{}).Where("service_id = ?", service.ID).Count(&refs)
	if refs > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "service_has_bookings"})
		return
	}

	if err := h.db.Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
