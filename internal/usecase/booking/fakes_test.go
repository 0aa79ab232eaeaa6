package booking

import (
	"context"
	"time"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

// ======================================================
// Fake repository (in-memory)
// ======================================================

type fakeRepo struct {
	shop      models.Shop
	services  []models.Service
	employees []models.Employee
	customers []models.Customer
	booked    []domain.Interval

	createdBookings []models.Booking
	createdCustomer *models.Customer
	visitUpdates    []int

	assertSlotErr    error
	createBookingErr error

	txCalls int
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetShopByID(ctx context.Context, id uint) (*models.Shop, error) {
	if f.shop.ID != id {
		return nil, httperr.ErrBusiness("shop_not_found")
	}
	shop := f.shop
	return &shop, nil
}

func (f *fakeRepo) ListActiveServices(ctx context.Context, shopID uint) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range f.services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetServices(ctx context.Context, shopID uint, ids []uint) ([]models.Service, error) {
	out := []models.Service{}
	for _, id := range ids {
		found := false
		for _, s := range f.services {
			if s.ID == id && s.Active {
				out = append(out, s)
				found = true
				break
			}
		}
		if !found {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}
	return out, nil
}

func (f *fakeRepo) ListActiveEmployees(ctx context.Context, shopID uint) ([]models.Employee, error) {
	out := []models.Employee{}
	for _, e := range f.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetEmployee(ctx context.Context, shopID, employeeID uint) (*models.Employee, error) {
	for _, e := range f.employees {
		if e.ID == employeeID {
			emp := e
			return &emp, nil
		}
	}
	return nil, httperr.ErrBusiness("employee_not_found")
}

func (f *fakeRepo) ListBookedIntervals(ctx context.Context, employeeID uint, date time.Time) ([]domain.Interval, error) {
	return f.booked, nil
}

func (f *fakeRepo) FindCustomerByPhone(ctx context.Context, shopID uint, phone string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			cust := c
			return &cust, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) CreateCustomer(ctx context.Context, customer *models.Customer) error {
	customer.ID = uint(len(f.customers) + 100)
	f.createdCustomer = customer
	return nil
}

func (f *fakeRepo) UpdateCustomerVisit(ctx context.Context, customerID uint, totalVisits int, lastVisit time.Time) error {
	f.visitUpdates = append(f.visitUpdates, totalVisits)
	return nil
}

func (f *fakeRepo) CreateBookings(ctx context.Context, rows []models.Booking) error {
	if f.createBookingErr != nil {
		return f.createBookingErr
	}
	f.createdBookings = append(f.createdBookings, rows...)
	return nil
}

func (f *fakeRepo) AssertSlotFree(ctx context.Context, employeeID uint, date time.Time, start, end string) error {
	return f.assertSlotErr
}

func (f *fakeRepo) GetBookingForShop(ctx context.Context, bookingID, shopID uint) (*models.Booking, error) {
	for i := range f.createdBookings {
		if f.createdBookings[i].ID == bookingID {
			return &f.createdBookings[i], nil
		}
	}
	return nil, httperr.ErrBusiness("booking_not_found")
}

func (f *fakeRepo) UpdateBooking(ctx context.Context, b *models.Booking) error {
	for i := range f.createdBookings {
		if f.createdBookings[i].ID == b.ID {
			f.createdBookings[i] = *b
			return nil
		}
	}
	return httperr.ErrBusiness("booking_not_found")
}

func (f *fakeRepo) ListBookingsForDay(ctx context.Context, shopID uint, date time.Time) ([]models.Booking, error) {
	return f.createdBookings, nil
}

func (f *fakeRepo) ListBookingsForMonth(ctx context.Context, shopID uint, year int, month time.Month) ([]models.Booking, error) {
	return f.createdBookings, nil
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(domain.Repository) error) error {
	f.txCalls++
	snapshot := f.createdBookings
	if err := fn(f); err != nil {
		// rollback simulé : aucune écriture partielle ne survit
		f.createdBookings = snapshot
		f.createdCustomer = nil
		return err
	}
	return nil
}

// ======================================================
// Fake slot holder
// ======================================================

type fakeHolder struct {
	granted bool

	acquireCalls int
	releaseCalls int
}

var _ domain.SlotHolder = (*fakeHolder)(nil)

func (h *fakeHolder) Acquire(ctx context.Context, employeeID uint, date time.Time, start string) (bool, error) {
	h.acquireCalls++
	return h.granted, nil
}

func (h *fakeHolder) Release(ctx context.Context, employeeID uint, date time.Time, start string) error {
	h.releaseCalls++
	return nil
}

// ======================================================
// Audit sink silencieux
// ======================================================

type noopSink struct{}

func (noopSink) Log(shopID uint, userID *uint, action, entity string, entityID *uint, metadata any) error {
	return nil
}
