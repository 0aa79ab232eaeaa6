package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

const pgUniqueViolation = "23505"

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveServices(
	ctx context.Context,
	shopID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = true", shopID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	shopID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = true AND id IN ?", shopID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}

	if len(services) != len(ids) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return services, nil
}

// --------------------------------------------------
// Employees
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveEmployees(
	ctx context.Context,
	shopID uint,
) ([]models.Employee, error) {

	var employees []models.Employee
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = true", shopID).
		Order("id ASC").
		Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *BookingGormRepository) GetEmployee(
	ctx context.Context,
	shopID uint,
	employeeID uint,
) (*models.Employee, error) {

	var employee models.Employee
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", employeeID, shopID).
		First(&employee).Error; err != nil {
		return nil, err
	}
	return &employee, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *BookingGormRepository) ListBookedIntervals(
	ctx context.Context,
	employeeID uint,
	date time.Time,
) ([]domain.Interval, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"employee_id = ? AND booking_date = ? AND status <> ?",
			employeeID,
			date.Format("2006-01-02"),
			string(domain.StatusCancelled),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	intervals := make([]domain.Interval, 0, len(rows))
	for _, b := range rows {
		startMin, err := domain.MinutesFromClock(b.StartTime)
		if err != nil {
			continue
		}
		endMin, err := domain.MinutesFromClock(b.EndTime)
		if err != nil {
			continue
		}
		intervals = append(intervals, domain.Interval{StartMin: startMin, EndMin: endMin})
	}

	return intervals, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) FindCustomerByPhone(
	ctx context.Context,
	shopID uint,
	phone string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND phone = ?", shopID, phone).
		First(&customer).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BookingGormRepository) CreateCustomer(
	ctx context.Context,
	customer *models.Customer,
) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *BookingGormRepository) UpdateCustomerVisit(
	ctx context.Context,
	customerID uint,
	totalVisits int,
	lastVisit time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("id = ?", customerID).
		Updates(map[string]any{
			"total_visits": totalVisits,
			"last_visit":   lastVisit,
		}).Error
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBookings(
	ctx context.Context,
	rows []models.Booking,
) error {

	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		// l'index unique (coiffeur, date, début, service) sert de garde-fou
		// de dernier recours : la violation se lit comme "créneau pris"
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return httperr.ErrBusiness("slot_taken")
		}
		return err
	}
	return nil
}

func (r *BookingGormRepository) AssertSlotFree(
	ctx context.Context,
	employeeID uint,
	date time.Time,
	start string,
	end string,
) error {

	var conflicts []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"employee_id = ? AND booking_date = ? AND status <> ? AND start_time < ? AND end_time > ?",
			employeeID,
			date.Format("2006-01-02"),
			string(domain.StatusCancelled),
			end,
			start,
		).
		Limit(1).
		Find(&conflicts).Error; err != nil {
		return err
	}

	if len(conflicts) > 0 {
		return httperr.ErrBusiness("slot_taken")
	}
	return nil
}

// --------------------------------------------------
// Booking (state change / listing)
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingForShop(
	ctx context.Context,
	bookingID uint,
	shopID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", bookingID, shopID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BookingGormRepository) ListBookingsForDay(
	ctx context.Context,
	shopID uint,
	date time.Time,
) ([]models.Booking, error) {

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Employee").
		Preload("Service").
		Where(
			"shop_id = ? AND booking_date = ?",
			shopID,
			date.Format("2006-01-02"),
		).
		Order("start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *BookingGormRepository) ListBookingsForMonth(
	ctx context.Context,
	shopID uint,
	year int,
	month time.Month,
) ([]models.Booking, error) {

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	next := first.AddDate(0, 1, 0)

	var rows []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Service").
		Where(
			"shop_id = ? AND booking_date >= ? AND booking_date < ?",
			shopID,
			first.Format("2006-01-02"),
			next.Format("2006-01-02"),
		).
		Order("booking_date ASC, start_time ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) InTx(
	ctx context.Context,
	fn func(domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
