package booking

import (
	"context"

	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute recalcule les créneaux libres à chaque changement de couple
// (coiffeur, date). Aucun cache : le résultat ne dépend que des entrées.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.TimeSlot, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	employee, err := uc.repo.GetEmployee(ctx, in.ShopID, in.EmployeeID)
	if err != nil || !employee.Active {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	services, err := uc.repo.GetServices(ctx, in.ShopID, in.ServiceIDs)
	if err != nil {
		return nil, httperr.ErrBusiness("service_not_found")
	}

	total := 0
	for _, svc := range services {
		total += svc.DurationMinutes
	}
	if total <= 0 {
		return nil, httperr.ErrBusiness("empty_selection")
	}

	openMin, err := domain.MinutesFromClock(shop.OpenTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_working_window")
	}
	closeMin, err := domain.MinutesFromClock(shop.CloseTime)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_working_window")
	}

	booked, err := uc.repo.ListBookedIntervals(ctx, in.EmployeeID, in.Date)
	if err != nil {
		return nil, err
	}

	// liste vide = journée complète : état terminal normal, pas une erreur
	return domain.ComputeSlots(total, booked, domain.Window{
		OpenMin:  openMin,
		CloseMin: closeMin,
	}), nil
}
