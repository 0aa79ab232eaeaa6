package models

import "time"

type Service struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	NameFr string `gorm:"size:100;not null" json:"name_fr"`
	NameAr string `gorm:"size:100;not null" json:"name_ar"`

	DurationMinutes int     `json:"duration_minutes"`
	Price           float64 `json:"price"`
	Active          bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
