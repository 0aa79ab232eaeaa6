package booking

import (
	"context"
	"time"

	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	// -------- Services --------
	ListActiveServices(
		ctx context.Context,
		shopID uint,
	) ([]models.Service, error)

	// GetServices ne retourne que les services actifs du salon ;
	// un id inconnu ou inactif fait échouer l'appel
	GetServices(
		ctx context.Context,
		shopID uint,
		ids []uint,
	) ([]models.Service, error)

	// -------- Employees --------
	ListActiveEmployees(
		ctx context.Context,
		shopID uint,
	) ([]models.Employee, error)

	GetEmployee(
		ctx context.Context,
		shopID uint,
		employeeID uint,
	) (*models.Employee, error)

	// -------- Availability --------
	// Plages réservées (statut != annulé) pour un coiffeur et une date,
	// ordonnées par heure de début
	ListBookedIntervals(
		ctx context.Context,
		employeeID uint,
		date time.Time,
	) ([]Interval, error)

	// -------- Customer --------
	// Retourne (nil, nil) quand aucun client ne correspond
	FindCustomerByPhone(
		ctx context.Context,
		shopID uint,
		phone string,
	) (*models.Customer, error)

	CreateCustomer(
		ctx context.Context,
		customer *models.Customer,
	) error

	UpdateCustomerVisit(
		ctx context.Context,
		customerID uint,
		totalVisits int,
		lastVisit time.Time,
	) error

	// -------- Booking (create / conflict) --------
	CreateBookings(
		ctx context.Context,
		rows []models.Booking,
	) error

	AssertSlotFree(
		ctx context.Context,
		employeeID uint,
		date time.Time,
		start string,
		end string,
	) error

	// -------- Booking (state change / listing) --------
	GetBookingForShop(
		ctx context.Context,
		bookingID uint,
		shopID uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	ListBookingsForDay(
		ctx context.Context,
		shopID uint,
		date time.Time,
	) ([]models.Booking, error)

	ListBookingsForMonth(
		ctx context.Context,
		shopID uint,
		year int,
		month time.Month,
	) ([]models.Booking, error)

	// -------- Transaction --------
	// InTx exécute fn dans une transaction unique : tout ou rien
	InTx(
		ctx context.Context,
		fn func(Repository) error,
	) error
}

// SlotHolder pose une réservation éphémère sur un créneau entre le calcul
// de disponibilité et l'écriture en base, pour fermer la fenêtre de course
// entre deux sessions visant le même créneau.
type SlotHolder interface {
	Acquire(ctx context.Context, employeeID uint, date time.Time, start string) (bool, error)
	Release(ctx context.Context, employeeID uint, date time.Time, start string) error
}
