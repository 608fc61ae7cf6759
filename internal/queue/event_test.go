package queue

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWrapRoundTrip(t *testing.T) {
	ev := ReservationConfirmedEvent{
		ReservationID:  "a3f1",
		RestaurantID:   7,
		RestaurantName: "Blue Door",
		UserID:         42,
		Seats:          []string{"3/0", "3/1"},
		ConfirmedAt:    "2026-08-29T12:00:00Z",
	}
	env, err := Wrap(KindReservationConfirmed, ev)
	if err != nil {
		t.Fatalf("Wrap: %v", err)
	}
	if env.Kind != KindReservationConfirmed {
		t.Fatalf("kind = %q, want %q", env.Kind, KindReservationConfirmed)
	}
	var got ReservationConfirmedEvent
	if err := json.Unmarshal(env.Payload, &got); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if got.ReservationID != ev.ReservationID || got.RestaurantName != ev.RestaurantName || len(got.Seats) != 2 {
		t.Fatalf("payload round trip mismatch: %+v", got)
	}
}

func TestFormatEvent(t *testing.T) {
	wrap := func(t *testing.T, kind string, payload any) Event {
		t.Helper()
		env, err := Wrap(kind, payload)
		if err != nil {
			t.Fatalf("Wrap: %v", err)
		}
		return env
	}

	tests := []struct {
		name    string
		env     Event
		want    []string // substrings the line must contain
		wantErr bool
	}{
		{
			name: "confirmed",
			env: wrap(t, KindReservationConfirmed, ReservationConfirmedEvent{
				ReservationID: "r1", RestaurantID: 5, RestaurantName: "Nori",
				UserID: 9, Seats: []string{"2/1"}, ConfirmedAt: "2026-08-29T10:00:00Z",
			}),
			want: []string{"reservation confirmed", "id=r1", `"Nori"`, "seats=[2/1]"},
		},
		{
			name: "settled",
			env: wrap(t, KindReservationSettled, ReservationSettledEvent{
				ReservationID: "r2", RestaurantID: 5, UserID: 9, BilledAt: "2026-08-29T14:00:00Z",
			}),
			want: []string{"reservation settled", "id=r2", "user=9"},
		},
		{
			name: "cancelled",
			env: wrap(t, KindReservationCancelled, ReservationCancelledEvent{
				ReservationID: "r3", RestaurantID: 5, CancelledBy: 9, CancelledAt: "2026-08-29T15:00:00Z",
			}),
			want: []string{"reservation cancelled", "id=r3", "by=9"},
		},
		{
			name:    "unknown kind",
			env:     Event{Kind: "reservation.exploded", Payload: []byte(`{}`)},
			wantErr: true,
		},
		{
			name:    "malformed payload",
			env:     Event{Kind: KindReservationConfirmed, Payload: []byte(`{`)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := formatEvent(tt.env)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("formatEvent = %q, want error", line)
				}
				return
			}
			if err != nil {
				t.Fatalf("formatEvent: %v", err)
			}
			if !strings.HasSuffix(line, "\n") {
				t.Fatalf("line not newline terminated: %q", line)
			}
			for _, sub := range tt.want {
				if !strings.Contains(line, sub) {
					t.Errorf("line %q missing %q", line, sub)
				}
			}
		})
	}
}
