package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/i18n"
	"github.com/BarberProDZ/salon-scheduler/internal/logger"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	ucBooking "github.com/BarberProDZ/salon-scheduler/internal/usecase/booking"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler porte le parcours de réservation en libre-service :
// services → coiffeurs → disponibilité → confirmation
type PublicHandler struct {
	db             *gorm.DB
	availabilityUC *ucBooking.GetAvailability
	confirmUC      *ucBooking.ConfirmBooking
}

func NewPublicHandler(
	db *gorm.DB,
	availabilityUC *ucBooking.GetAvailability,
	confirmUC *ucBooking.ConfirmBooking,
) *PublicHandler {
	return &PublicHandler{
		db:             db,
		availabilityUC: availabilityUC,
		confirmUC:      confirmUC,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type ConfirmBookingRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ServiceIDs []uint `json:"service_ids" binding:"required"`

	Date  string `json:"date" binding:"required"`  // YYYY-MM-DD
	Start string `json:"start" binding:"required"` // HH:MM
	End   string `json:"end" binding:"required"`   // HH:MM

	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone" binding:"required"`
}

////////////////////////////////////////////////////////
// SERVICES / EMPLOYEES
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	shop, ok := h.currentShop(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("shop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erreur au chargement des services.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop":     gin.H{"id": shop.ID, "name": shop.Name, "slug": shop.Slug},
		"services": services,
	})
}

func (h *PublicHandler) ListEmployees(c *gin.Context) {
	shop, ok := h.currentShop(c)
	if !ok {
		return
	}

	var employees []models.Employee
	if err := h.db.
		Where("shop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		httperr.Internal(c, "failed_to_list_employees", "Erreur au chargement des coiffeurs.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"employees": employees})
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	shop, ok := h.currentShop(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	employeeIDStr := c.Query("employee_id")
	serviceIDs := parseIDList(c.Query("service_ids"))

	if dateStr == "" || employeeIDStr == "" || len(serviceIDs) == 0 {
		httperr.BadRequest(c, "missing_params", "Date, coiffeur et services obligatoires.")
		return
	}

	employeeID, err := strconv.ParseUint(employeeIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_employee_id", "Coiffeur invalide.")
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	slots, err := h.availabilityUC.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ShopID:     shop.ID,
			EmployeeID: uint(employeeID),
			ServiceIDs: serviceIDs,
			Date:       date,
		},
	)

	if err != nil {
		if code, ok := httperr.AsBusiness(err); ok {
			httperr.BadRequest(c, code, "Paramètres invalides.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erreur au calcul des créneaux.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

////////////////////////////////////////////////////////
// CONFIRM
////////////////////////////////////////////////////////

func (h *PublicHandler) ConfirmBooking(c *gin.Context) {
	shop, ok := h.currentShop(c)
	if !ok {
		return
	}

	lang := i18n.Normalize(c.Query("lang"))

	var req ConfirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", i18n.Message(lang, "missing_fields"))
		return
	}

	receipt, err := h.confirmUC.Execute(
		c.Request.Context(),
		ucBooking.ConfirmBookingInput{
			ShopID:        shop.ID,
			EmployeeID:    req.EmployeeID,
			ServiceIDs:    req.ServiceIDs,
			Date:          req.Date,
			Slot:          domain.TimeSlot{Start: req.Start, End: req.End},
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			Lang:          lang,
		},
	)

	if err != nil {
		mapConfirmErrors(c, err, lang)
		return
	}

	c.JSON(http.StatusCreated, receipt)
}

// mapConfirmErrors traduit l'échec pour l'utilisateur final : les erreurs
// de validation sont précises, tout le reste se résume à "réessayez".
// La cause exacte part dans les logs, jamais dans la réponse.
func mapConfirmErrors(c *gin.Context, err error, lang string) {
	if code, ok := httperr.AsBusiness(err); ok {
		switch code {
		case "slot_taken":
			httperr.Conflict(c, code, i18n.Message(lang, "slot_taken"))
		case "empty_selection":
			httperr.BadRequest(c, code, i18n.Message(lang, "empty_services"))
		case "missing_contact_fields", "invalid_phone":
			httperr.BadRequest(c, code, i18n.Message(lang, "missing_fields"))
		default:
			httperr.BadRequest(c, code, i18n.Message(lang, "retry"))
		}
		return
	}

	logger.L().Error("booking confirmation failed", zap.Error(err))
	httperr.Internal(c, "booking_failed", i18n.Message(lang, "retry"))
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

// tenant unique : le salon du déploiement est la seule ligne de shops
func (h *PublicHandler) currentShop(c *gin.Context) (*models.Shop, bool) {
	var shop models.Shop
	if err := h.db.First(&shop).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Salon introuvable.")
		return nil, false
	}
	return &shop, true
}

func parseIDList(raw string) []uint {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if id, err := strconv.ParseUint(p, 10, 64); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}
