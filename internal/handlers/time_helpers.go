package handlers

import (
	"time"

	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/timezone"
)

// resout le fuseau officiel du salon
func locationFromShop(shop *models.Shop) *time.Location {
	if shop != nil && shop.Timezone != "" {
		return timezone.Location(shop.Timezone)
	}
	return timezone.Location(timezone.DefaultTimezone)
}

func nowInShop(shop *models.Shop) time.Time {
	return time.Now().In(locationFromShop(shop))
}

func parseDateInShop(shop *models.Shop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}
