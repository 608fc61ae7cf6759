package handler

import (
	"reflect"
	"testing"
	"time"

	"github.com/dinebook/table-reservation/internal/booking"
)

func TestCreateReservationReqToSeatMap(t *testing.T) {
	layout := booking.Layout{Rows: 2, Columns: 2} // tables 1..4

	tests := []struct {
		name    string
		seats   map[int][]int
		want    booking.SeatMap
		wantErr bool
	}{
		{
			name:  "valid selection",
			seats: map[int][]int{1: {0, 3}, 4: {2}},
			want: booking.SeatMap{
				1: {true, false, false, true},
				4: {false, false, true, false},
			},
		},
		{
			name:  "duplicate indices collapse",
			seats: map[int][]int{2: {1, 1}},
			want:  booking.SeatMap{2: {false, true, false, false}},
		},
		{
			name:    "table outside grid",
			seats:   map[int][]int{5: {0}},
			wantErr: true,
		},
		{
			name:    "seat index too high",
			seats:   map[int][]int{1: {4}},
			wantErr: true,
		},
		{
			name:    "negative seat index",
			seats:   map[int][]int{1: {-1}},
			wantErr: true,
		},
		{
			name:  "empty body",
			seats: nil,
			want:  booking.SeatMap{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := createReservationReq{Seats: tt.seats}.toSeatMap(layout)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("toSeatMap = %v, want error", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("toSeatMap: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("toSeatMap = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeatLabels(t *testing.T) {
	seats := booking.SeatMap{
		3: {true, true, false, false},
		1: {false, false, false, true},
	}
	got := seatLabels(seats)
	want := []string{"1/3", "3/0", "3/1"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("seatLabels = %v, want %v", got, want)
	}
}

func TestStatusOf(t *testing.T) {
	day := func(hh, mm int) time.Time {
		return time.Date(2026, time.August, 29, hh, mm, 0, 0, time.UTC)
	}

	tests := []struct {
		name    string
		opening string
		closing string
		now     time.Time
		want    string
	}{
		{"open mid-day", "09:00", "22:00", day(13, 0), "open"},
		{"before opening window", "09:00", "22:00", day(8, 0), "closed"},
		{"opens soon", "09:00", "22:00", day(8, 45), "opens_soon"},
		{"closes soon", "09:00", "22:00", day(21, 45), "closes_soon"},
		{"after closing", "09:00", "22:00", day(23, 0), "closed"},
		{"bad opening time", "9am", "22:00", day(13, 0), "closed"},
		{"bad closing time", "09:00", "", day(13, 0), "closed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusOf(tt.opening, tt.closing, tt.now); got != tt.want {
				t.Fatalf("statusOf(%q, %q) = %q, want %q", tt.opening, tt.closing, got, tt.want)
			}
		})
	}
}
