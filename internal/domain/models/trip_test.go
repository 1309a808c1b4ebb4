package models

import (
	"testing"
	"time"
)

func TestTripBookable(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		status    string
		seats     int
		departure time.Time
		want      bool
	}{
		{"upcoming with seats", TripUpcoming, 3, now.Add(time.Hour), true},
		{"no seats", TripUpcoming, 0, now.Add(time.Hour), false},
		{"departure passed", TripUpcoming, 3, now.Add(-time.Minute), false},
		{"departure exactly now", TripUpcoming, 3, now, false},
		{"ongoing", TripOngoing, 3, now.Add(time.Hour), false},
		{"completed", TripCompleted, 3, now.Add(time.Hour), false},
		{"cancelled", TripCancelled, 3, now.Add(time.Hour), false},
	}
	for _, tc := range cases {
		trip := Trip{Status: tc.status, AvailableSeats: tc.seats, DepartureTime: tc.departure}
		if got := trip.Bookable(now); got != tc.want {
			t.Fatalf("%s: Bookable = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestTripTerminal(t *testing.T) {
	if (Trip{Status: TripUpcoming}).Terminal() {
		t.Fatal("upcoming trip must not be terminal")
	}
	if (Trip{Status: TripOngoing}).Terminal() {
		t.Fatal("ongoing trip must not be terminal")
	}
	if !(Trip{Status: TripCompleted}).Terminal() {
		t.Fatal("completed trip must be terminal")
	}
	if !(Trip{Status: TripCancelled}).Terminal() {
		t.Fatal("cancelled trip must be terminal")
	}
}

func TestValidStars(t *testing.T) {
	for _, n := range []int{1, 2, 3, 4, 5} {
		if !ValidStars(n) {
			t.Fatalf("ValidStars(%d) = false, want true", n)
		}
	}
	for _, n := range []int{0, -1, 6} {
		if ValidStars(n) {
			t.Fatalf("ValidStars(%d) = true, want false", n)
		}
	}
}
