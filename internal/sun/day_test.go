package sun

import (
	"testing"
	"time"
)

func TestUTCDay(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"midnight", utcDate(2022, 10, 15), utcDate(2022, 10, 15)},
		{"late evening", time.Date(2022, 10, 15, 23, 59, 59, 999, time.UTC), utcDate(2022, 10, 15)},
		{"zoned", time.Date(2022, 10, 15, 4, 0, 0, 0, time.FixedZone("+06", 6*3600)), utcDate(2022, 10, 14)},
		{"before 1970", time.Date(1969, 7, 20, 20, 17, 0, 0, time.UTC), utcDate(1969, 7, 20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UTCDay(tt.in)
			if !got.Equal(tt.want) || got.Location() != time.UTC {
				t.Errorf("UTCDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLocalDay(t *testing.T) {
	vostok := time.FixedZone("+06", 6*3600)
	kiritimati := time.FixedZone("+14", 14*3600)
	honolulu := time.FixedZone("-10", -10*3600)

	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"early morning east of UTC", time.Date(2022, 10, 15, 4, 0, 0, 0, vostok), utcDate(2022, 10, 15)},
		{"evening east of UTC", time.Date(2022, 10, 15, 23, 0, 0, 0, vostok), utcDate(2022, 10, 15)},
		{"evening west of UTC", time.Date(2022, 10, 15, 20, 0, 0, 0, honolulu), utcDate(2022, 10, 15)},
		{"offset beyond twelve hours wraps", time.Date(2022, 10, 15, 12, 0, 0, 0, kiritimati), utcDate(2022, 10, 14)},
		{"utc", time.Date(2022, 10, 15, 12, 0, 0, 0, time.UTC), utcDate(2022, 10, 15)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LocalDay(tt.in); !got.Equal(tt.want) {
				t.Errorf("LocalDay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDays(t *testing.T) {
	got := Days(time.Date(2024, 2, 28, 15, 0, 0, 0, time.UTC), 3)
	want := []time.Time{utcDate(2024, 2, 28), utcDate(2024, 2, 29), utcDate(2024, 3, 1)}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("day %d = %v, want %v", i, got[i], want[i])
		}
	}
	if Days(time.Now(), 0) != nil {
		t.Error("Days(0) should be nil")
	}
}
