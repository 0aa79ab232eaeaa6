package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/httpresp"
	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	ucBooking "github.com/BarberProDZ/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type DashboardHandler struct {
	db          *gorm.DB
	listByDate  *ucBooking.ListBookingsByDate
	listByMonth *ucBooking.ListBookingsByMonth
	cancelUC    *ucBooking.CancelBooking
	completeUC  *ucBooking.CompleteBooking
}

func NewDashboardHandler(
	db *gorm.DB,
	listByDate *ucBooking.ListBookingsByDate,
	listByMonth *ucBooking.ListBookingsByMonth,
	cancelUC *ucBooking.CancelBooking,
	completeUC *ucBooking.CompleteBooking,
) *DashboardHandler {
	return &DashboardHandler{
		db:          db,
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancelUC:    cancelUC,
		completeUC:  completeUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// LISTINGS
// ======================================================

func (h *DashboardHandler) ListByDate(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Salon introuvable.")
		return
	}

	dateStr := c.DefaultQuery("date", nowInShop(&shop).Format("2006-01-02"))
	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date invalide.")
		return
	}

	bookings, err := h.listByDate.Execute(c.Request.Context(), shopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erreur au chargement des réservations.")
		return
	}

	httpresp.List(c, bookings)
}

func (h *DashboardHandler) ListByMonth(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_period", "Période invalide.")
		return
	}

	bookings, err := h.listByMonth.Execute(c.Request.Context(), shopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erreur au chargement des réservations.")
		return
	}

	httpresp.List(c, bookings)
}

// ======================================================
// STATUS
// ======================================================

// UpdateStatus applique les règles de transition du domaine pour
// annulation et clôture ; pending/confirmed restent des corrections
// manuelles du personnel
func (h *DashboardHandler) UpdateStatus(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Réservation invalide.")
		return
	}

	var req UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Données invalides.")
		return
	}

	status := domain.Status(req.Status)
	if !domain.IsValid(status) {
		httperr.BadRequest(c, "invalid_status", "Statut inconnu.")
		return
	}

	switch status {
	case domain.StatusCancelled:
		b, err := h.cancelUC.Execute(c.Request.Context(), shopID, userID, uint(bookingID))
		if err != nil {
			mapStatusErrors(c, err)
			return
		}
		c.JSON(http.StatusOK, b)

	case domain.StatusCompleted:
		b, err := h.completeUC.Execute(c.Request.Context(), shopID, userID, uint(bookingID))
		if err != nil {
			mapStatusErrors(c, err)
			return
		}
		c.JSON(http.StatusOK, b)

	default:
		var b models.Booking
		if err := h.db.
			Where("id = ? AND shop_id = ?", bookingID, shopID).
			First(&b).Error; err != nil {
			httperr.NotFound(c, "booking_not_found", "Réservation introuvable.")
			return
		}

		b.Status = string(status)
		if err := h.db.Save(&b).Error; err != nil {
			httperr.Internal(c, "failed_to_update_booking", "Erreur à la mise à jour.")
			return
		}
		c.JSON(http.StatusOK, b)
	}
}

func mapStatusErrors(c *gin.Context, err error) {
	if code, ok := httperr.AsBusiness(err); ok {
		switch code {
		case "booking_not_found":
			httperr.NotFound(c, code, "Réservation introuvable.")
		case "invalid_state":
			httperr.Conflict(c, code, "Transition de statut impossible.")
		default:
			httperr.BadRequest(c, code, "Requête invalide.")
		}
		return
	}
	httperr.Internal(c, "failed_to_update_booking", "Erreur à la mise à jour.")
}

// ======================================================
// STATS
// ======================================================

// Stats agrège la journée courante : lignes, chiffre d'affaires hors
// annulations, clientèle totale
func (h *DashboardHandler) Stats(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Salon introuvable.")
		return
	}

	today := nowInShop(&shop).Format("2006-01-02")

	var todayCount int64
	h.db.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_date = ?", shopID, today).
		Count(&todayCount)

	var todayRevenue float64
	h.db.Model(&models.Booking{}).
		Select("COALESCE(SUM(price), 0)").
		Where("shop_id = ? AND booking_date = ? AND status <> ?",
			shopID, today, string(domain.StatusCancelled)).
		Scan(&todayRevenue)

	var completedCount int64
	h.db.Model(&models.Booking{}).
		Where("shop_id = ? AND booking_date = ? AND status = ?",
			shopID, today, string(domain.StatusCompleted)).
		Count(&completedCount)

	var customerCount int64
	h.db.Model(&models.Customer{}).
		Where("shop_id = ?", shopID).
		Count(&customerCount)

	c.JSON(http.StatusOK, gin.H{
		"date":            today,
		"today_bookings":  todayCount,
		"today_revenue":   todayRevenue,
		"today_completed": completedCount,
		"total_customers": customerCount,
	})
}
