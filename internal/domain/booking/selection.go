package booking

import (
	"strings"
	"time"

	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

// ===============================
// Selection (machine à états)
// ===============================
//
// Le parcours de réservation est modélisé comme une valeur immuable : chaque
// transition retourne une nouvelle Selection, jamais de mutation partagée.
// Ordre des étapes : services → coiffeur → date/créneau → coordonnées →
// confirmation → terminé.

type Stage int

const (
	StageChoosingServices Stage = iota
	StageChoosingEmployee
	StageChoosingDate
	StageEnteringContact
	StageConfirming
	StageDone
)

type Selection struct {
	stage Stage

	services []models.Service
	employee models.Employee
	date     time.Time
	slot     TimeSlot

	customerName  string
	customerPhone string
}

func NewSelection() Selection {
	return Selection{stage: StageChoosingServices}
}

// WithServices retient les services choisis (uniques par id) et avance
// vers le choix du coiffeur. Une sélection vide est un échec de validation,
// jamais un no-op silencieux.
func (s Selection) WithServices(services []models.Service) (Selection, error) {
	seen := make(map[uint]bool, len(services))
	unique := make([]models.Service, 0, len(services))

	for _, svc := range services {
		if seen[svc.ID] {
			continue
		}
		if svc.DurationMinutes <= 0 {
			return s, httperr.ErrBusiness("invalid_service_duration")
		}
		seen[svc.ID] = true
		unique = append(unique, svc)
	}

	if len(unique) == 0 {
		return s, httperr.ErrBusiness("empty_selection")
	}

	next := s
	next.services = unique
	next.stage = StageChoosingEmployee
	return next, nil
}

func (s Selection) WithEmployee(e models.Employee) (Selection, error) {
	if s.stage < StageChoosingEmployee {
		return s, httperr.ErrBusiness("services_not_chosen")
	}
	if !e.Active {
		return s, httperr.ErrBusiness("employee_inactive")
	}

	next := s
	next.employee = e
	next.slot = TimeSlot{} // changer de coiffeur invalide le créneau retenu
	next.stage = StageChoosingDate
	return next, nil
}

func (s Selection) WithSlot(date time.Time, slot TimeSlot) (Selection, error) {
	if s.stage < StageChoosingDate {
		return s, httperr.ErrBusiness("employee_not_chosen")
	}
	if slot.Start == "" || slot.End == "" {
		return s, httperr.ErrBusiness("slot_not_chosen")
	}

	next := s
	next.date = date
	next.slot = slot
	next.stage = StageEnteringContact
	return next, nil
}

func (s Selection) WithContact(name, phone string) (Selection, error) {
	if s.stage < StageEnteringContact {
		return s, httperr.ErrBusiness("slot_not_chosen")
	}

	name = strings.TrimSpace(name)
	phone = strings.TrimSpace(phone)
	if name == "" || phone == "" {
		return s, httperr.ErrBusiness("missing_contact_fields")
	}

	next := s
	next.customerName = name
	next.customerPhone = phone
	next.stage = StageConfirming
	return next, nil
}

func (s Selection) Complete() (Selection, error) {
	if s.stage != StageConfirming {
		return s, httperr.ErrBusiness("selection_incomplete")
	}

	next := s
	next.stage = StageDone
	return next, nil
}

// ===============================
// Accesseurs
// ===============================

func (s Selection) Stage() Stage               { return s.stage }
func (s Selection) Services() []models.Service { return s.services }
func (s Selection) Employee() models.Employee  { return s.employee }
func (s Selection) Date() time.Time            { return s.date }
func (s Selection) Slot() TimeSlot             { return s.slot }
func (s Selection) CustomerName() string       { return s.customerName }
func (s Selection) CustomerPhone() string      { return s.customerPhone }

// TotalDurationMinutes est la somme des durées des services retenus ;
// c'est elle qui dimensionne les créneaux du Slot Engine.
func (s Selection) TotalDurationMinutes() int {
	total := 0
	for _, svc := range s.services {
		total += svc.DurationMinutes
	}
	return total
}

func (s Selection) TotalPrice() float64 {
	total := 0.0
	for _, svc := range s.services {
		total += svc.Price
	}
	return total
}

func (s Selection) ServiceIDs() []uint {
	ids := make([]uint, 0, len(s.services))
	for _, svc := range s.services {
		ids = append(ids, svc.ID)
	}
	return ids
}
