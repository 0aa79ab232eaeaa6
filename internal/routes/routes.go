package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/audit"
	"github.com/BarberProDZ/salon-scheduler/internal/config"
	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/handlers"
	infraRepo "github.com/BarberProDZ/salon-scheduler/internal/infra/repository"
	"github.com/BarberProDZ/salon-scheduler/internal/middleware"
	"github.com/BarberProDZ/salon-scheduler/internal/notify"
	ucBooking "github.com/BarberProDZ/salon-scheduler/internal/usecase/booking"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	holder domain.SlotHolder,
) {

	// ======================================================
	// 🔧 INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	smsSender := notify.NewSMSSender(cfg)
	notifyDispatcher := notify.NewDispatcher(smsSender)

	// ======================================================
	// 🧠 USE CASES
	// ======================================================
	availabilityUC := ucBooking.NewGetAvailability(bookingRepo)

	confirmUC := ucBooking.NewConfirmBooking(
		bookingRepo,
		holder,
		auditDispatcher,
		notifyDispatcher,
		cfg.ConfirmTimeout,
	)

	cancelUC := ucBooking.NewCancelBooking(bookingRepo, auditDispatcher)
	completeUC := ucBooking.NewCompleteBooking(bookingRepo, auditDispatcher)

	listByDateUC := ucBooking.NewListBookingsByDate(bookingRepo)
	listByMonthUC := ucBooking.NewListBookingsByMonth(bookingRepo)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)

	publicHandler := handlers.NewPublicHandler(db, availabilityUC, confirmUC)

	serviceHandler := handlers.NewServiceHandler(db)
	employeeHandler := handlers.NewEmployeeHandler(db)
	customerHandler := handlers.NewCustomerHandler(db)

	dashboardHandler := handlers.NewDashboardHandler(
		db,
		listByDateUC,
		listByMonthUC,
		cancelUC,
		completeUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// 🌐 API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PUBLIQUE (PARCOURS DE RÉSERVATION)
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/services", publicHandler.ListServices)
			publicAPI.GET("/employees", publicHandler.ListEmployees)
			publicAPI.GET("/availability", publicHandler.Availability)
			publicAPI.POST("/bookings", publicHandler.ConfirmBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// 🔐 API PRIVÉE (TABLEAU DE BORD)
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			secured.GET("/me/employees", employeeHandler.List)
			secured.POST("/me/employees", employeeHandler.Create)
			secured.PATCH("/me/employees/:id", employeeHandler.Update)

			secured.GET("/me/customers", customerHandler.List)

			// ------------------------------
			// BOOKINGS
			// ------------------------------
			secured.GET("/me/bookings", dashboardHandler.ListByDate)
			secured.GET("/me/bookings/month", dashboardHandler.ListByMonth)
			secured.PATCH("/me/bookings/:id/status", dashboardHandler.UpdateStatus)
			secured.GET("/me/stats", dashboardHandler.Stats)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}
}
