package booking

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, time.March, 14, hour, minute, 0, 0, time.UTC)
}

func TestStatusBoundaries(t *testing.T) {
	opening := TimeOfDay{Hour: 9}
	closing := TimeOfDay{Hour: 22}

	tests := []struct {
		name string
		now  time.Time
		want OpenStatus
	}{
		{name: "beforeLookahead", now: at(8, 29), want: StatusClosed},
		{name: "opensSoonStart", now: at(8, 30), want: StatusOpensSoon},
		{name: "opensSoonLate", now: at(8, 45), want: StatusOpensSoon},
		{name: "openingInstant", now: at(9, 0), want: StatusOpen},
		{name: "midMorning", now: at(9, 30), want: StatusOpen},
		{name: "closesSoonStart", now: at(21, 30), want: StatusClosesSoon},
		{name: "closesSoonLate", now: at(21, 45), want: StatusClosesSoon},
		{name: "closingInstant", now: at(22, 0), want: StatusOpen},
		{name: "afterClosing", now: at(23, 0), want: StatusClosed},
		{name: "earlyMorning", now: at(2, 0), want: StatusClosed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.now, opening, closing); got != tt.want {
				t.Errorf("Status(%s) = %v, want %v", tt.now.Format("15:04"), got, tt.want)
			}
		})
	}
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    TimeOfDay
		wantErr bool
	}{
		{name: "plain", in: "09:00", want: TimeOfDay{Hour: 9}},
		{name: "evening", in: "22:30", want: TimeOfDay{Hour: 22, Minute: 30}},
		{name: "padded", in: " 07:15 ", want: TimeOfDay{Hour: 7, Minute: 15}},
		{name: "noColon", in: "0900", wantErr: true},
		{name: "hourTooHigh", in: "24:00", wantErr: true},
		{name: "minuteTooHigh", in: "12:60", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := (TimeOfDay{Hour: 9, Minute: 5}).String(); got != "09:05" {
		t.Errorf("String() = %q, want %q", got, "09:05")
	}
}

func TestOpenStatusString(t *testing.T) {
	tests := []struct {
		status OpenStatus
		want   string
	}{
		{StatusClosed, "closed"},
		{StatusOpensSoon, "opens_soon"},
		{StatusOpen, "open"},
		{StatusClosesSoon, "closes_soon"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("OpenStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
