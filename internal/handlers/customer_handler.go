package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

type CustomerHandler struct {
	db *gorm.DB
}

func NewCustomerHandler(db *gorm.DB) *CustomerHandler {
	return &CustomerHandler{db: db}
}

// ======================================================
// LIST CUSTOMERS (PERSONNEL)
// ======================================================
func (h *CustomerHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	q := h.db.Where("shop_id = ?", shopID)

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(full_name) LIKE ? OR phone LIKE ?",
			like, like,
		)
	}

	var customers []models.Customer
	if err := q.
		Order("last_visit DESC NULLS LAST").
		Find(&customers).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed_to_list_customers",
		})
		return
	}

	c.JSON(http.StatusOK, customers)
}
