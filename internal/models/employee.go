package models

import "time"

const (
	RoleBarber  = "barber"
	RoleManager = "manager"
)

type Employee struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `json:"shop_id"`

	FullNameFr string `gorm:"size:100;not null" json:"full_name_fr"`
	FullNameAr string `gorm:"size:100;not null" json:"full_name_ar"`

	Role   string `gorm:"size:20;default:'barber'" json:"role"`
	Active bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
