package booking

import (
	"context"
	"testing"
	"time"

	"github.com/BarberProDZ/salon-scheduler/internal/audit"
	"github.com/BarberProDZ/salon-scheduler/internal/httperr"
	"github.com/BarberProDZ/salon-scheduler/internal/models"
)

func seedBooking(repo *fakeRepo, status string) {
	repo.createdBookings = append(repo.createdBookings, models.Booking{
		ID:          10,
		ShopID:      1,
		EmployeeID:  7,
		ServiceID:   1,
		BookingDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		StartTime:   "10:00",
		EndTime:     "10:30",
		Status:      status,
	})
}

func TestCancelBooking(t *testing.T) {
	t.Run("annulation d'une réservation confirmée", func(t *testing.T) {
		repo := newTestRepo()
		seedBooking(repo, "confirmed")
		uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

		b, err := uc.Execute(context.Background(), 1, 5, 10)
		if err != nil {
			t.Fatal(err)
		}

		if b.Status != "cancelled" {
			t.Errorf("statut = %q, attendu cancelled", b.Status)
		}
		if b.CancelledAt == nil {
			t.Error("l'horodatage d'annulation doit être posé")
		}
		if repo.createdBookings[0].Status != "cancelled" {
			t.Error("le statut doit être persisté")
		}
	})

	t.Run("une réservation honorée ne s'annule pas", func(t *testing.T) {
		repo := newTestRepo()
		seedBooking(repo, "completed")
		uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

		_, err := uc.Execute(context.Background(), 1, 5, 10)
		if code, ok := httperr.AsBusiness(err); !ok || code != "invalid_state" {
			t.Errorf("attendu invalid_state, obtenu %v", err)
		}
	})

	t.Run("réservation inconnue", func(t *testing.T) {
		repo := newTestRepo()
		uc := NewCancelBooking(repo, audit.NewDispatcher(noopSink{}))

		_, err := uc.Execute(context.Background(), 1, 5, 999)
		if code, ok := httperr.AsBusiness(err); !ok || code != "booking_not_found" {
			t.Errorf("attendu booking_not_found, obtenu %v", err)
		}
	})
}

func TestCompleteBooking(t *testing.T) {
	t.Run("passage confirmé vers honoré", func(t *testing.T) {
		repo := newTestRepo()
		seedBooking(repo, "confirmed")
		uc := NewCompleteBooking(repo, audit.NewDispatcher(noopSink{}))

		b, err := uc.Execute(context.Background(), 1, 5, 10)
		if err != nil {
			t.Fatal(err)
		}

		if b.Status != "completed" {
			t.Errorf("statut = %q, attendu completed", b.Status)
		}
		if b.CompletedAt == nil {
			t.Error("l'horodatage d'achèvement doit être posé")
		}
	})

	t.Run("une réservation annulée ne s'honore pas", func(t *testing.T) {
		repo := newTestRepo()
		seedBooking(repo, "cancelled")
		uc := NewCompleteBooking(repo, audit.NewDispatcher(noopSink{}))

		_, err := uc.Execute(context.Background(), 1, 5, 10)
		if code, ok := httperr.AsBusiness(err); !ok || code != "invalid_state" {
			t.Errorf("attendu invalid_state, obtenu %v", err)
		}
	})
}
