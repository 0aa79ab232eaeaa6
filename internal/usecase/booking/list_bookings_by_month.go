package booking

import (
	"context"
	"time"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/dto"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(repo domain.Repository) *ListBookingsByMonth {
	return &ListBookingsByMonth{repo: repo}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	shopID uint,
	year int,
	month int,
) ([]dto.BookingListDTO, error) {

	rows, err := uc.repo.ListBookingsForMonth(ctx, shopID, year, time.Month(month))
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
			ServiceFr:     b.Service.NameFr,
			ServiceAr:     b.Service.NameAr,
		})
	}

	return out, nil
}
