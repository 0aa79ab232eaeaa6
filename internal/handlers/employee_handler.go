package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/httpresp"
	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

type EmployeeHandler struct {
	db *gorm.DB
}

func NewEmployeeHandler(db *gorm.DB) *EmployeeHandler {
	return &EmployeeHandler{db: db}
}

// --------- Requests ---------

type CreateEmployeeRequest struct {
	FullNameFr string `json:"full_name_fr" binding:"required"`
	FullNameAr string `json:"full_name_ar" binding:"required"`
	Role       string `json:"role"`
}

type UpdateEmployeeRequest struct {
	FullNameFr *string `json:"full_name_fr,omitempty"`
	FullNameAr *string `json:"full_name_ar,omitempty"`
	Role       *string `json:"role,omitempty"`
	Active     *bool   `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *EmployeeHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var employees []models.Employee
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("created_at ASC").
		Find(&employees).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

func (h *EmployeeHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	role := req.Role
	if role != models.RoleManager {
		role = models.RoleBarber
	}

	employee := models.Employee{
		ShopID:     shopID,
		FullNameFr: req.FullNameFr,
		FullNameAr: req.FullNameAr,
		Role:       role,
		Active:     true,
	}

	if err := h.db.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_employee"})
		return
	}

	httpresp.Created(c, employee)
}

// Update couvre aussi la bascule actif/inactif ; un coiffeur n'est
// jamais supprimé, seulement désactivé
func (h *EmployeeHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	id := c.Param("id")

	var employee models.Employee
	if err := h.db.
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&employee).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "employee_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_employee"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FullNameFr != nil {
		employee.FullNameFr = *req.FullNameFr
	}
	if req.FullNameAr != nil {
		employee.FullNameAr = *req.FullNameAr
	}
	if req.Role != nil && (*req.Role == models.RoleBarber || *req.Role == models.RoleManager) {
		employee.Role = *req.Role
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.db.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_employee"})
		return
	}

	c.JSON(http.StatusOK, employee)
}
