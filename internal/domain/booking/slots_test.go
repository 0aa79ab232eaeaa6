package booking

import "testing"

func win(open, close int) Window {
	return Window{OpenMin: open, CloseMin: close}
}

func TestComputeSlots(t *testing.T) {
	// Journée standard 09:00-18:00
	day := win(9*60, 18*60)

	t.Run("journée vide en pas de 30 minutes", func(t *testing.T) {
		slots := ComputeSlots(30, nil, day)

		if len(slots) != 18 {
			t.Fatalf("attendu 18 créneaux, obtenu %d", len(slots))
		}
		if slots[0].Start != "09:00" || slots[0].End != "09:30" {
			t.Errorf("premier créneau incorrect: %+v", slots[0])
		}
		if slots[17].Start != "17:30" || slots[17].End != "18:00" {
			t.Errorf("dernier créneau incorrect: %+v", slots[17])
		}
	})

	t.Run("le nombre de créneaux suit la durée totale", func(t *testing.T) {
		cases := []struct {
			duration int
			want     int
		}{
			{30, 18},
			{45, 12},
			{60, 9},
			{90, 6},
			{120, 4}, // 540/120 = 4.5, le demi-créneau final est abandonné
			{540, 1},
			{541, 0},
		}
		for _, tc := range cases {
			got := len(ComputeSlots(tc.duration, nil, day))
			if got != tc.want {
				t.Errorf("durée %d: attendu %d créneaux, obtenu %d", tc.duration, tc.want, got)
			}
		}
	})

	t.Run("une réservation exclut uniquement les créneaux en conflit", func(t *testing.T) {
		// 10:00-11:00 réservé, créneaux de 60 minutes
		booked := []Interval{{StartMin: 10 * 60, EndMin: 11 * 60}}
		slots := ComputeSlots(60, booked, day)

		if len(slots) != 8 {
			t.Fatalf("attendu 8 créneaux, obtenu %d", len(slots))
		}
		for _, s := range slots {
			if s.Start == "10:00" {
				t.Errorf("le créneau 10:00 aurait dû être exclu")
			}
		}
		if slots[0].Start != "09:00" {
			t.Errorf("09:00 doit rester disponible, premier créneau: %s", slots[0].Start)
		}
		if slots[1].Start != "11:00" {
			t.Errorf("11:00 doit rester disponible, deuxième créneau: %s", slots[1].Start)
		}
	})

	t.Run("un chevauchement partiel exclut le créneau", func(t *testing.T) {
		// 10:15-10:45 réservé : le créneau 10:00-11:00 croise la réservation
		booked := []Interval{{StartMin: 10*60 + 15, EndMin: 10*60 + 45}}
		slots := ComputeSlots(60, booked, day)

		for _, s := range slots {
			if s.Start == "10:00" {
				t.Errorf("le créneau 10:00 croise la réservation et doit être exclu")
			}
		}
	})

	t.Run("les bords qui se touchent ne sont pas un conflit", func(t *testing.T) {
		// [09:00,10:00) réservé : le créneau qui démarre à 10:00 est libre
		booked := []Interval{{StartMin: 9 * 60, EndMin: 10 * 60}}
		slots := ComputeSlots(60, booked, day)

		if slots[0].Start != "10:00" {
			t.Errorf("le créneau 10:00 doit être le premier disponible, obtenu %s", slots[0].Start)
		}
	})

	t.Run("journée complète rend une liste vide, pas nil", func(t *testing.T) {
		booked := []Interval{{StartMin: 9 * 60, EndMin: 18 * 60}}
		slots := ComputeSlots(30, booked, day)

		if slots == nil {
			t.Fatal("attendu une liste vide, obtenu nil")
		}
		if len(slots) != 0 {
			t.Errorf("attendu 0 créneau, obtenu %d", len(slots))
		}
	})

	t.Run("les créneaux sont ordonnés et contigus", func(t *testing.T) {
		slots := ComputeSlots(45, nil, day)

		for i := 1; i < len(slots); i++ {
			if slots[i-1].End != slots[i].Start {
				t.Errorf("créneaux non contigus: %s puis %s", slots[i-1].End, slots[i].Start)
			}
		}
	})

	t.Run("durée nulle ou négative ne produit rien", func(t *testing.T) {
		if got := len(ComputeSlots(0, nil, day)); got != 0 {
			t.Errorf("durée 0: attendu 0 créneau, obtenu %d", got)
		}
		if got := len(ComputeSlots(-30, nil, day)); got != 0 {
			t.Errorf("durée négative: attendu 0 créneau, obtenu %d", got)
		}
	})
}

func TestIntervalOverlaps(t *testing.T) {
	iv := Interval{StartMin: 600, EndMin: 660} // 10:00-11:00

	cases := []struct {
		name       string
		start, end int
		want       bool
	}{
		{"identique", 600, 660, true},
		{"englobe", 570, 690, true},
		{"inclus", 615, 645, true},
		{"chevauche le début", 570, 630, true},
		{"chevauche la fin", 630, 690, true},
		{"juste avant", 540, 600, false},
		{"juste après", 660, 720, false},
		{"disjoint", 480, 540, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := iv.Overlaps(tc.start, tc.end); got != tc.want {
				t.Errorf("Overlaps(%d, %d) = %v, attendu %v", tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestMinutesFromClock(t *testing.T) {
	cases := []struct {
		clock string
		want  int
	}{
		{"00:00", 0},
		{"09:00", 540},
		{"17:30", 1050},
		{"23:59", 1439},
	}
	for _, tc := range cases {
		got, err := MinutesFromClock(tc.clock)
		if err != nil {
			t.Fatalf("MinutesFromClock(%q): %v", tc.clock, err)
		}
		if got != tc.want {
			t.Errorf("MinutesFromClock(%q) = %d, attendu %d", tc.clock, got, tc.want)
		}
	}

	if _, err := MinutesFromClock("9h30"); err == nil {
		t.Error("format invalide accepté")
	}
}

func TestClockFromMinutes(t *testing.T) {
	if got := ClockFromMinutes(540); got != "09:00" {
		t.Errorf("ClockFromMinutes(540) = %q", got)
	}
	if got := ClockFromMinutes(1050); got != "17:30" {
		t.Errorf("ClockFromMinutes(1050) = %q", got)
	}
}
