package booking

import (
	"fmt"
	"time"
)

// ===============================
// Slot Engine
// ===============================
//
// Tout le calcul se fait en minutes depuis minuit : les réservations sont
// stockées en "HH:MM" et la fenêtre d'ouverture vient de la fiche du salon.

// Interval représente une plage déjà réservée, [StartMin, EndMin)
type Interval struct {
	StartMin int
	EndMin   int
}

// Window est la fenêtre d'ouverture quotidienne du salon
type Window struct {
	OpenMin  int
	CloseMin int
}

type TimeSlot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type AvailabilityInput struct {
	ShopID     uint
	EmployeeID uint
	ServiceIDs []uint
	Date       time.Time
}

// Overlaps applique le test d'intersection standard sur [start, end)
func (iv Interval) Overlaps(startMin, endMin int) bool {
	return startMin < iv.EndMin && endMin > iv.StartMin
}

// ComputeSlots découpe la fenêtre d'ouverture en créneaux contigus de
// exactement totalDurationMinutes, en partant de l'ouverture. Les créneaux
// ne se chevauchent pas entre eux (pas de fenêtre glissante) ; tout créneau
// qui croise une réservation existante est écarté, et le dernier créneau
// partiel est abandonné plutôt que tronqué.
//
// Le résultat dépend uniquement des entrées : aucun cache, aucun état.
// Une liste vide est un état valide (journée complète), pas une erreur.
func ComputeSlots(totalDurationMinutes int, booked []Interval, window Window) []TimeSlot {
	slots := []TimeSlot{}
	if totalDurationMinutes <= 0 {
		return slots
	}

	for cur := window.OpenMin; cur+totalDurationMinutes <= window.CloseMin; cur += totalDurationMinutes {
		start := cur
		end := cur + totalDurationMinutes

		conflict := false
		for _, iv := range booked {
			if iv.Overlaps(start, end) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, TimeSlot{
				Start: ClockFromMinutes(start),
				End:   ClockFromMinutes(end),
			})
		}
	}

	return slots
}

// MinutesFromClock convertit "HH:MM" en minutes depuis minuit
func MinutesFromClock(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// ClockFromMinutes convertit des minutes depuis minuit en "HH:MM"
func ClockFromMinutes(min int) string {
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}
