package booking

import (
	"reflect"
	"testing"
)

func TestSeatStateCount(t *testing.T) {
	tests := []struct {
		name  string
		state SeatState
		want  int
	}{
		{name: "empty", state: SeatState{}, want: 0},
		{name: "single", state: SeatState{false, true, false, false}, want: 1},
		{name: "full", state: SeatState{true, true, true, true}, want: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRecomputeReservedUnion(t *testing.T) {
	a := SeatMap{1: {true, false, false, false}, 2: {false, true, false, false}}
	b := SeatMap{1: {false, false, true, false}}

	got := RecomputeReserved([]SeatMap{a, b})
	want := SeatMap{
		1: {true, false, true, false},
		2: {false, true, false, false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RecomputeReserved() = %v, want %v", got, want)
	}
}

func TestRecomputeReservedIdempotent(t *testing.T) {
	input := []SeatMap{
		{1: {true, false, false, false}},
		{3: {false, false, true, true}},
	}
	once := RecomputeReserved(input)
	twice := RecomputeReserved([]SeatMap{once, once})
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("union not idempotent: once = %v, twice = %v", once, twice)
	}
}

func TestRecomputeReservedOrderIndependent(t *testing.T) {
	a := SeatMap{1: {true, false, false, false}}
	b := SeatMap{1: {false, true, false, false}, 4: {true, true, false, false}}
	c := SeatMap{4: {false, false, false, true}}

	forward := RecomputeReserved([]SeatMap{a, b, c})
	backward := RecomputeReserved([]SeatMap{c, b, a})
	if !reflect.DeepEqual(forward, backward) {
		t.Errorf("union not order independent: %v vs %v", forward, backward)
	}
}

func TestRecomputeReservedEmpty(t *testing.T) {
	if got := RecomputeReserved(nil); len(got) != 0 {
		t.Errorf("RecomputeReserved(nil) = %v, want empty map", got)
	}
}
