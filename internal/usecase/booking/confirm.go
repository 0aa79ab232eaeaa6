package booking

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BarberProDZ/salon-scheduler/internal/audit"
	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/i18n"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/notify"
	"github.com/BarberProDZ/salon-scheduler/internal/timezone"
	"github.com/BarberProDZ/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

type ConfirmBookingInput struct {
	ShopID     uint
	EmployeeID uint
	ServiceIDs []uint

	Date string // YYYY-MM-DD
	Slot domain.TimeSlot

	CustomerName  string
	CustomerPhone string

	Lang string
}

type ReceiptService struct {
	NameFr string  `json:"name_fr"`
	NameAr string  `json:"name_ar"`
	Price  float64 `json:"price"`
}

// Receipt est la charge utile de confirmation affichable telle quelle
type Receipt struct {
	Reference string `json:"reference"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	EmployeeNameFr string `json:"employee_name_fr"`
	EmployeeNameAr string `json:"employee_name_ar"`

	Date  string `json:"date"`
	Start string `json:"start"`
	End   string `json:"end"`

	Services             []ReceiptService `json:"services"`
	TotalPrice           float64          `json:"total_price"`
	TotalDurationMinutes int              `json:"total_duration_minutes"`
}

// ======================================================
// USE CASE
// ======================================================

type ConfirmBooking struct {
	repo    domain.Repository
	holder  domain.SlotHolder
	audit   *audit.Dispatcher
	notify  *notify.Dispatcher
	timeout time.Duration
}

func NewConfirmBooking(
	repo domain.Repository,
	holder domain.SlotHolder,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	timeout time.Duration,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:    repo,
		holder:  holder,
		audit:   auditDispatcher,
		notify:  notifyDispatcher,
		timeout: timeout,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute est la confirmation tout-ou-rien : résolution du client,
// une ligne de réservation par service, le tout dans une transaction
// unique. En cas d'échec, aucune écriture partielle ne survit et la
// sélection du client reste réutilisable pour un nouvel essai.
func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	in ConfirmBookingInput,
) (*Receipt, error) {

	// --------------------------------------------------
	// 1️⃣ Délai maximal : un appel réseau suspendu ne doit
	//    jamais bloquer la confirmation indéfiniment
	// --------------------------------------------------
	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	// --------------------------------------------------
	// 2️⃣ Salon
	// --------------------------------------------------
	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 3️⃣ Sélection reconstruite étape par étape : chaque
	//    transition valide son entrée avant tout accès réseau
	// --------------------------------------------------
	services, err := uc.repo.GetServices(ctx, in.ShopID, in.ServiceIDs)
	if err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return nil, err
		}
		return nil, httperr.ErrBusiness("service_not_found")
	}

	employee, err := uc.repo.GetEmployee(ctx, in.ShopID, in.EmployeeID)
	if err != nil {
		return nil, httperr.ErrBusiness("employee_not_found")
	}

	date, err := time.ParseInLocation(
		"2006-01-02",
		in.Date,
		timezone.Location(shop.Timezone),
	)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	sel := domain.NewSelection()
	if sel, err = sel.WithServices(services); err != nil {
		return nil, err
	}
	if sel, err = sel.WithEmployee(*employee); err != nil {
		return nil, err
	}
	if sel, err = sel.WithSlot(date, in.Slot); err != nil {
		return nil, err
	}
	if sel, err = sel.WithContact(in.CustomerName, in.CustomerPhone); err != nil {
		return nil, err
	}

	if !validators.IsPhoneValid(sel.CustomerPhone()) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	phone := validators.NormalizePhone(sel.CustomerPhone())

	// --------------------------------------------------
	// 4️⃣ Cohérence du créneau : bornes valides, durée égale à
	//    la somme des services, dans la fenêtre d'ouverture
	// --------------------------------------------------
	if err := uc.validateSlot(shop, sel, date); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5️⃣ Pose éphémère du créneau : ferme la course entre le
	//    calcul de disponibilité et l'écriture en base
	// --------------------------------------------------
	held, err := uc.holder.Acquire(ctx, employee.ID, date, sel.Slot().Start)
	if err != nil {
		return nil, err
	}
	if !held {
		return nil, httperr.ErrBusiness("slot_taken")
	}

	// --------------------------------------------------
	// 6️⃣ Transaction unique : client + N lignes, tout ou rien
	// --------------------------------------------------
	groupRef := uuid.NewString()
	today := timezone.NowIn(shop.Timezone)
	var customer *models.Customer

	txErr := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		if err := tx.AssertSlotFree(
			ctx,
			employee.ID,
			date,
			sel.Slot().Start,
			sel.Slot().End,
		); err != nil {
			return err
		}

		customer, err = uc.resolveCustomer(ctx, tx, shop.ID, sel.CustomerName(), phone, today)
		if err != nil {
			return err
		}

		rows := make([]models.Booking, 0, len(sel.Services()))
		for _, svc := range sel.Services() {
			rows = append(rows, models.Booking{
				ShopID:      shop.ID,
				CustomerID:  customer.ID,
				EmployeeID:  employee.ID,
				ServiceID:   svc.ID,
				BookingDate: date,
				StartTime:   sel.Slot().Start,
				EndTime:     sel.Slot().End,
				Price:       svc.Price,
				Status:      string(domain.InitialStatus()),
				GroupRef:    groupRef,
			})
		}

		return tx.CreateBookings(ctx, rows)
	})

	if txErr != nil {
		// la pose est libérée tout de suite pour ne pas bloquer un
		// autre client pendant toute la durée du TTL
		_ = uc.holder.Release(context.Background(), employee.ID, date, sel.Slot().Start)
		return nil, txErr
	}

	if sel, err = sel.Complete(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 7️⃣ Audit + SMS hors chemin critique
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ShopID:   shop.ID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &customer.ID,
		Metadata: map[string]any{
			"group_ref":   groupRef,
			"employee_id": employee.ID,
			"date":        in.Date,
			"start":       sel.Slot().Start,
			"services":    len(sel.Services()),
		},
	})

	receipt := uc.buildReceipt(groupRef, sel, customer, in.Date)

	uc.notify.Dispatch(notify.Confirmation{
		Phone:        phone,
		CustomerName: customer.FullName,
		ShopName:     shop.Name,
		Date:         in.Date,
		Start:        receipt.Start,
		ServiceNames: joinServiceNames(receipt.Services, in.Lang),
		TotalPrice:   receipt.TotalPrice,
		Lang:         in.Lang,
	})

	return receipt, nil
}

// ======================================================
// STEPS
// ======================================================

func (uc *ConfirmBooking) validateSlot(
	shop *models.Shop,
	sel domain.Selection,
	date time.Time,
) error {

	startMin, err := domain.MinutesFromClock(sel.Slot().Start)
	if err != nil {
		return httperr.ErrBusiness("invalid_slot")
	}
	endMin, err := domain.MinutesFromClock(sel.Slot().End)
	if err != nil {
		return httperr.ErrBusiness("invalid_slot")
	}

	if endMin-startMin != sel.TotalDurationMinutes() {
		return httperr.ErrBusiness("invalid_slot")
	}

	openMin, err := domain.MinutesFromClock(shop.OpenTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_working_window")
	}
	closeMin, err := domain.MinutesFromClock(shop.CloseTime)
	if err != nil {
		return httperr.ErrBusiness("invalid_working_window")
	}
	if startMin < openMin || endMin > closeMin {
		return httperr.ErrBusiness("outside_working_window")
	}

	now := timezone.NowIn(shop.Timezone)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(todayStart) {
		return httperr.ErrBusiness("invalid_date")
	}

	return nil
}

// resolveCustomer : client existant par (salon, téléphone) → visite +1,
// sinon création avec total_visits = 1. Un passage à N services n'incrémente
// le compteur qu'une seule fois.
func (uc *ConfirmBooking) resolveCustomer(
	ctx context.Context,
	tx domain.Repository,
	shopID uint,
	name string,
	phone string,
	today time.Time,
) (*models.Customer, error) {

	existing, err := tx.FindCustomerByPhone(ctx, shopID, phone)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		visits := existing.TotalVisits + 1
		if err := tx.UpdateCustomerVisit(ctx, existing.ID, visits, today); err != nil {
			return nil, err
		}
		existing.TotalVisits = visits
		existing.LastVisit = &today
		return existing, nil
	}

	customer := &models.Customer{
		ShopID:      shopID,
		FullName:    name,
		Phone:       phone,
		TotalVisits: 1,
		LastVisit:   &today,
	}
	if err := tx.CreateCustomer(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (uc *ConfirmBooking) buildReceipt(
	reference string,
	sel domain.Selection,
	customer *models.Customer,
	date string,
) *Receipt {

	services := make([]ReceiptService, 0, len(sel.Services()))
	for _, svc := range sel.Services() {
		services = append(services, ReceiptService{
			NameFr: svc.NameFr,
			NameAr: svc.NameAr,
			Price:  svc.Price,
		})
	}

	return &Receipt{
		Reference:            reference,
		CustomerName:         customer.FullName,
		CustomerPhone:        customer.Phone,
		EmployeeNameFr:       sel.Employee().FullNameFr,
		EmployeeNameAr:       sel.Employee().FullNameAr,
		Date:                 date,
		Start:                sel.Slot().Start,
		End:                  sel.Slot().End,
		Services:             services,
		TotalPrice:           sel.TotalPrice(),
		TotalDurationMinutes: sel.TotalDurationMinutes(),
	}
}

func joinServiceNames(services []ReceiptService, lang string) string {
	names := make([]string, 0, len(services))
	for _, s := range services {
		names = append(names, i18n.Pick(lang, s.NameFr, s.NameAr))
	}
	return strings.Join(names, " + ")
}
