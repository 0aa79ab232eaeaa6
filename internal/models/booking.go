package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint `json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	EmployeeID uint     `gorm:"uniqueIndex:idx_employee_slot,priority:1" json:"employee_id"`
	Employee   Employee `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"employee"`

	ServiceID uint    `gorm:"uniqueIndex:idx_employee_slot,priority:4" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service"`

	BookingDate time.Time `gorm:"type:date;uniqueIndex:idx_employee_slot,priority:2" json:"booking_date"`

	// Bornes du créneau, format "HH:MM", [start, end)
	StartTime string `gorm:"size:5;uniqueIndex:idx_employee_slot,priority:3" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`

	// Prix figé au moment de la réservation, indépendant du prix courant du service
	Price float64 `json:"price"`

	Status string `gorm:"size:20;default:'confirmed'" json:"status"`

	// Toutes les lignes d'un même passage partagent la même référence
	GroupRef string `gorm:"size:36;index" json:"group_ref"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
