package booking

import "github.com/BarberProDZ/salon-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel définit si une réservation peut être annulée
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanComplete définit si une réservation peut être marquée honorée
func CanComplete(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus : une réservation en libre-service naît confirmée,
// "pending" n'existe que via les modifications du personnel
func InitialStatus() Status {
	return StatusConfirmed
}

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
