package jobs

import (
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/logger"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/timezone"
)

// Scheduler porte les tâches planifiées du salon. Une seule aujourd'hui :
// clôturer chaque soir les réservations confirmées des jours passés que
// le personnel n'a pas pointées à la main.
type Scheduler struct {
	db   *gorm.DB
	cron *cron.Cron
}

func NewScheduler(db *gorm.DB) *Scheduler {
	return &Scheduler{
		db:   db,
		cron: cron.New(cron.WithLocation(timezone.Location(timezone.DefaultTimezone))),
	}
}

func (s *Scheduler) Start() {
	// chaque soir après la fermeture
	s.cron.AddFunc("0 21 * * *", s.CompletePastBookings)

	s.cron.Start()
	logger.L().Info("job scheduler started")
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// CompletePastBookings marque honorées les réservations confirmées dont
// la date est passée. L'horodatage suit la même règle que la clôture
// manuelle du tableau de bord.
func (s *Scheduler) CompletePastBookings() {
	now := timezone.Now()
	today := now.Format("2006-01-02")

	res := s.db.
		Model(&models.Booking{}).
		Where("booking_date < ? AND status = ?", today, string(domain.StatusConfirmed)).
		Updates(map[string]any{
			"status":       string(domain.StatusCompleted),
			"completed_at": now,
			"updated_at":   time.Now(),
		})

	if res.Error != nil {
		logger.L().Warn("auto-complete pass failed", zap.Error(res.Error))
		return
	}

	if res.RowsAffected > 0 {
		logger.L().Info("auto-completed past bookings",
			zap.Int64("count", res.RowsAffected))
	}
}
