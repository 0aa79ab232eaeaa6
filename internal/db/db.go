package db

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/BarberProDZ/salon-scheduler/internal/config"
	"github.com/BarberProDZ/salon-scheduler/internal/logger"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/timezone"
)

func NewDB(cfg *config.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt: true,
	})
	if err != nil {
		logger.L().Fatal("failed to connect database", zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.L().Fatal("failed to get sql.DB", zap.Error(err))
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := db.AutoMigrate(
		&models.Shop{},
		&models.User{},
		&models.Employee{},
		&models.Service{},
		&models.Customer{},
		&models.Booking{},
		&models.AuditLog{},
	); err != nil {
		logger.L().Fatal("failed to migrate", zap.Error(err))
	}

	db.Exec(`
        UPDATE shops
        SET timezone = ?
        WHERE timezone IS NULL OR timezone = ''
    `, timezone.DefaultTimezone)

	seedShop(db, cfg)

	return db
}

// seedShop crée le salon du déploiement au premier démarrage.
// Tenant unique : toutes les entités sont rattachées à ce salon.
func seedShop(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Shop{}).Count(&count)
	if count > 0 {
		return
	}

	shop := models.Shop{
		Name:      cfg.ShopName,
		Slug:      cfg.ShopSlug,
		Timezone:  timezone.DefaultTimezone,
		OpenTime:  "09:00",
		CloseTime: "18:00",
	}

	if err := db.Create(&shop).Error; err != nil {
		logger.L().Fatal("failed to seed shop", zap.Error(err))
	}

	logger.L().Info("seeded default shop",
		zap.Uint("shop_id", shop.ID),
		zap.String("slug", shop.Slug),
	)
}
