package models

import "time"

// Client final, sans compte, identifié par (salon, téléphone)
type Customer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"uniqueIndex:idx_shop_phone,priority:1" json:"shop_id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	Phone    string `gorm:"size:20;not null;uniqueIndex:idx_shop_phone,priority:2" json:"phone"`

	// Incrémenté une fois par passage en caisse, pas par ligne de réservation
	TotalVisits int        `gorm:"default:0" json:"total_visits"`
	LastVisit   *time.Time `json:"last_visit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
