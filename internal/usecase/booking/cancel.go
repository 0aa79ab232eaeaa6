package booking

import (
	"context"

	"github.com/BarberProDZ/salon-scheduler/internal/audit"
	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelBooking(
	repo domain.Repository,
	auditDispatcher *audit.Dispatcher,
) *CancelBooking {
	return &CancelBooking{
		repo:  repo,
		audit: auditDispatcher,
	}
}

func (uc *CancelBooking) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	bookingID uint,
) (*models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	return b, nil
}
