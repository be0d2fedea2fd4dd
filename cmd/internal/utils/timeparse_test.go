package utils

import (
	"errors"
	"testing"
	"time"
)

func TestParseTime_Layouts(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2021-08-27T14:30:00Z", time.Date(2021, 8, 27, 14, 30, 0, 0, time.UTC)},
		{"2021-08-27T14:30:00+02:00", time.Date(2021, 8, 27, 12, 30, 0, 0, time.UTC)},
		{"2021-08-27T14:30:00.5Z", time.Date(2021, 8, 27, 14, 30, 0, 500_000_000, time.UTC)},
		{"2021-08-27T14:30", time.Date(2021, 8, 27, 19, 30, 0, 0, time.UTC)},
		{"2021-08-27T14:30:15", time.Date(2021, 8, 27, 19, 30, 15, 0, time.UTC)},
		{"2021-08-27 14:30", time.Date(2021, 8, 27, 19, 30, 0, 0, time.UTC)},
		{" 2021-08-27 14:30:15 ", time.Date(2021, 8, 27, 19, 30, 15, 0, time.UTC)},
		{"2021-08-27", time.Date(2021, 8, 27, 5, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseTime(tt.raw, now, est)
			if err != nil {
				t.Fatalf("ParseTime() failed: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseTime() = %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("ParseTime() location = %v, want UTC", got.Location())
			}
		})
	}
}

func TestParseTime_NaturalLanguage(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	got, err := ParseTime("tomorrow", now, time.UTC)
	if err != nil {
		t.Fatalf("ParseTime() failed: %v", err)
	}
	if y, m, d := got.Date(); y != 2024 || m != time.March || d != 2 {
		t.Errorf("ParseTime(tomorrow) = %v, want a time on 2024-03-02", got)
	}
}

func TestParseTime_Rejects(t *testing.T) {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	for _, raw := range []string{"", "   ", "qwerty"} {
		if _, err := ParseTime(raw, now, time.UTC); !errors.Is(err, ErrUnparsableTime) {
			t.Errorf("ParseTime(%q) error = %v, want ErrUnparsableTime", raw, err)
		}
	}
}
