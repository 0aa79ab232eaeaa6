package booking

import (
	"context"
	"time"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/dto"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(repo domain.Repository) *ListBookingsByDate {
	return &ListBookingsByDate{repo: repo}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	shopID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.repo.ListBookingsForDay(ctx, shopID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(rows))
	for _, b := range rows {
		out = append(out, dto.BookingListDTO{
			ID:            b.ID,
			BookingDate:   b.BookingDate,
			StartTime:     b.StartTime,
			EndTime:       b.EndTime,
			Status:        b.Status,
			GroupRef:      b.GroupRef,
			Price:         b.Price,
			CustomerName:  b.Customer.FullName,
			CustomerPhone: b.Customer.Phone,
			EmployeeFr:    b.Employee.FullNameFr,
			EmployeeAr:    b.Employee.FullNameAr,
			ServiceFr:     b.Service.NameFr,
			ServiceAr:     b.Service.NameAr,
		})
	}

	return out, nil
}
