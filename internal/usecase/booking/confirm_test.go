package booking

import (
	"context"
	"testing"
	"time"

	"github.com/BarberProDZ/salon-scheduler/internal/audit"
	"github.com/BarberProDZ/salon-scheduler/internal/config"
	domain "github.com/BarberProDZ/salon-scheduler/internal/domain/booking"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
	"github.com/BarberProDZ/salon-scheduler/internal/notify"
)

func newTestRepo() *fakeRepo {
	return &fakeRepo{
		shop: models.Shop{
			ID:        1,
			Name:      "Salon Mohamed",
			Timezone:  "Africa/Algiers",
			OpenTime:  "09:00",
			CloseTime: "18:00",
		},
		services: []models.Service{
			{ID: 1, ShopID: 1, NameFr: "Coupe homme", NameAr: "قص شعر رجالي", DurationMinutes: 30, Price: 500, Active: true},
			{ID: 2, ShopID: 1, NameFr: "Taille de barbe", NameAr: "تحديد اللحية", DurationMinutes: 15, Price: 300, Active: true},
		},
		employees: []models.Employee{
			{ID: 7, ShopID: 1, FullNameFr: "Karim", FullNameAr: "كريم", Role: models.RoleBarber, Active: true},
		},
	}
}

func newConfirmUC(repo *fakeRepo, holder *fakeHolder) *ConfirmBooking {
	return NewConfirmBooking(
		repo,
		holder,
		audit.NewDispatcher(noopSink{}),
		notify.NewDispatcher(notify.NewSMSSender(&config.Config{})),
		5*time.Second,
	)
}

// date de réservation toujours dans le futur, indépendante du jour d'exécution
func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format("2006-01-02")
}

func validInput() ConfirmBookingInput {
	return ConfirmBookingInput{
		ShopID:        1,
		EmployeeID:    7,
		ServiceIDs:    []uint{1, 2},
		Date:          futureDate(),
		Slot:          domain.TimeSlot{Start: "10:00", End: "10:45"},
		CustomerName:  "Amine",
		CustomerPhone: "0551 23 45 67",
		Lang:          "fr",
	}
}

func TestConfirmBookingNewCustomer(t *testing.T) {
	repo := newTestRepo()
	holder := &fakeHolder{granted: true}
	uc := newConfirmUC(repo, holder)

	receipt, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("confirmation en échec: %v", err)
	}

	if receipt.Reference == "" {
		t.Error("le reçu doit porter une référence")
	}
	if receipt.TotalPrice != 800 || receipt.TotalDurationMinutes != 45 {
		t.Errorf("totaux incorrects: %v DZD / %d min", receipt.TotalPrice, receipt.TotalDurationMinutes)
	}
	if receipt.EmployeeNameFr != "Karim" {
		t.Errorf("coiffeur incorrect: %s", receipt.EmployeeNameFr)
	}

	if repo.createdCustomer == nil {
		t.Fatal("un nouveau client aurait dû être créé")
	}
	if repo.createdCustomer.TotalVisits != 1 {
		t.Errorf("nouveau client: total_visits = %d, attendu 1", repo.createdCustomer.TotalVisits)
	}
	if repo.createdCustomer.Phone != "0551234567" {
		t.Errorf("téléphone non normalisé: %q", repo.createdCustomer.Phone)
	}

	// une ligne par service, toutes sur le même créneau et la même référence
	if len(repo.createdBookings) != 2 {
		t.Fatalf("attendu 2 lignes, obtenu %d", len(repo.createdBookings))
	}
	for _, b := range repo.createdBookings {
		if b.GroupRef != receipt.Reference {
			t.Errorf("la ligne ne partage pas la référence du reçu")
		}
		if b.StartTime != "10:00" || b.EndTime != "10:45" {
			t.Errorf("bornes incorrectes: %s-%s", b.StartTime, b.EndTime)
		}
		if b.Status != "confirmed" {
			t.Errorf("statut initial = %q, attendu confirmed", b.Status)
		}
	}
	if repo.createdBookings[0].Price != 500 || repo.createdBookings[1].Price != 300 {
		t.Errorf("les prix doivent être figés par service")
	}

	if holder.acquireCalls != 1 {
		t.Errorf("la pose du créneau doit être tentée exactement une fois")
	}
	if holder.releaseCalls != 0 {
		t.Errorf("la pose ne doit pas être libérée après un succès")
	}
}

func TestConfirmBookingExistingCustomer(t *testing.T) {
	repo := newTestRepo()
	last := time.Now().AddDate(0, -1, 0)
	repo.customers = []models.Customer{
		{ID: 42, ShopID: 1, FullName: "Amine", Phone: "0551234567", TotalVisits: 3, LastVisit: &last},
	}
	uc := newConfirmUC(repo, &fakeHolder{granted: true})

	receipt, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("confirmation en échec: %v", err)
	}

	if repo.createdCustomer != nil {
		t.Error("aucun client ne doit être créé pour un téléphone connu")
	}
	// le compteur monte d'un seul cran, pas d'un par service
	if len(repo.visitUpdates) != 1 || repo.visitUpdates[0] != 4 {
		t.Errorf("mises à jour de visites = %v, attendu [4]", repo.visitUpdates)
	}
	if receipt.CustomerName != "Amine" {
		t.Errorf("client incorrect sur le reçu: %s", receipt.CustomerName)
	}
}

func TestConfirmBookingValidationFailures(t *testing.T) {
	cases := []struct {
		name     string
		mutate   func(*ConfirmBookingInput)
		wantCode string
	}{
		{
			"aucun service choisi",
			func(in *ConfirmBookingInput) { in.ServiceIDs = nil },
			"empty_selection",
		},
		{
			"service inconnu",
			func(in *ConfirmBookingInput) { in.ServiceIDs = []uint{99} },
			"service_not_found",
		},
		{
			"coiffeur inconnu",
			func(in *ConfirmBookingInput) { in.EmployeeID = 99 },
			"employee_not_found",
		},
		{
			"durée du créneau incohérente",
			func(in *ConfirmBookingInput) { in.Slot = domain.TimeSlot{Start: "10:00", End: "11:00"} },
			"invalid_slot",
		},
		{
			"créneau hors fenêtre d'ouverture",
			func(in *ConfirmBookingInput) { in.Slot = domain.TimeSlot{Start: "17:30", End: "18:15"} },
			"outside_working_window",
		},
		{
			"date passée",
			func(in *ConfirmBookingInput) { in.Date = "2020-01-15" },
			"invalid_date",
		},
		{
			"date illisible",
			func(in *ConfirmBookingInput) { in.Date = "15/01/2026" },
			"invalid_date",
		},
		{
			"téléphone invalide",
			func(in *ConfirmBookingInput) { in.CustomerPhone = "123" },
			"invalid_phone",
		},
		{
			"nom manquant",
			func(in *ConfirmBookingInput) { in.CustomerName = "   " },
			"missing_contact_fields",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTestRepo()
			holder := &fakeHolder{granted: true}
			uc := newConfirmUC(repo, holder)

			in := validInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if code, ok := httperr.AsBusiness(err); !ok || code != tc.wantCode {
				t.Fatalf("attendu %s, obtenu %v", tc.wantCode, err)
			}

			// un échec de validation ne touche ni la pose ni la base
			if holder.acquireCalls != 0 {
				t.Error("la pose ne doit pas être tentée avant validation complète")
			}
			if len(repo.createdBookings) != 0 || repo.createdCustomer != nil {
				t.Error("aucune écriture ne doit survivre à un échec de validation")
			}
		})
	}
}

func TestConfirmBookingSlotAlreadyHeld(t *testing.T) {
	repo := newTestRepo()
	holder := &fakeHolder{granted: false}
	uc := newConfirmUC(repo, holder)

	_, err := uc.Execute(context.Background(), validInput())
	if code, ok := httperr.AsBusiness(err); !ok || code != "slot_taken" {
		t.Fatalf("attendu slot_taken, obtenu %v", err)
	}

	if repo.txCalls != 0 {
		t.Error("la transaction ne doit pas démarrer sans la pose du créneau")
	}
	if len(repo.createdBookings) != 0 {
		t.Error("aucune ligne ne doit être écrite")
	}
}

func TestConfirmBookingSlotTakenInTx(t *testing.T) {
	repo := newTestRepo()
	repo.assertSlotErr = httperr.ErrBusiness("slot_taken")
	holder := &fakeHolder{granted: true}
	uc := newConfirmUC(repo, holder)

	_, err := uc.Execute(context.Background(), validInput())
	if code, ok := httperr.AsBusiness(err); !ok || code != "slot_taken" {
		t.Fatalf("attendu slot_taken, obtenu %v", err)
	}

	if len(repo.createdBookings) != 0 || repo.createdCustomer != nil {
		t.Error("la transaction doit être annulée sans écriture partielle")
	}
	if holder.releaseCalls != 1 {
		t.Errorf("la pose doit être libérée après l'échec, libérations = %d", holder.releaseCalls)
	}
}

func TestConfirmBookingInsertConflict(t *testing.T) {
	// le conflit détecté à l'insertion (index unique) suit le même chemin
	repo := newTestRepo()
	repo.createBookingErr = httperr.ErrBusiness("slot_taken")
	holder := &fakeHolder{granted: true}
	uc := newConfirmUC(repo, holder)

	_, err := uc.Execute(context.Background(), validInput())
	if code, ok := httperr.AsBusiness(err); !ok || code != "slot_taken" {
		t.Fatalf("attendu slot_taken, obtenu %v", err)
	}

	if len(repo.createdBookings) != 0 {
		t.Error("aucune ligne ne doit survivre au conflit")
	}
	if holder.releaseCalls != 1 {
		t.Error("la pose doit être libérée après l'échec de la transaction")
	}
}
