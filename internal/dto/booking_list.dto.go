package dto

import "time"

type BookingListDTO struct {
	ID            uint      `json:"id"`
	BookingDate   time.Time `json:"booking_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Status        string    `json:"status"`
	GroupRef      string    `json:"group_ref"`
	Price         float64   `json:"price"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	EmployeeFr    string    `json:"employee_name_fr"`
	EmployeeAr    string    `json:"employee_name_ar"`
	ServiceFr     string    `json:"service_name_fr"`
	ServiceAr     string    `json:"service_name_ar"`
}
