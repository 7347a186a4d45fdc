package util

import (
	"testing"
	"time"
)

func TestGetWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			name: "wednesday rolls back to sunday",
			in:   time.Date(2025, 6, 18, 15, 30, 0, 0, time.Local),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "sunday stays on same day",
			in:   time.Date(2025, 6, 15, 23, 59, 0, 0, time.Local),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "saturday rolls back six days",
			in:   time.Date(2025, 6, 21, 0, 0, 1, 0, time.Local),
			want: time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local),
		},
		{
			name: "week start crosses month boundary",
			in:   time.Date(2025, 7, 2, 12, 0, 0, 0, time.Local),
			want: time.Date(2025, 6, 29, 0, 0, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetWeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("GetWeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2025, 6, 18, 0, 0, 1, 0, time.Local)
	b := time.Date(2025, 6, 18, 23, 59, 59, 0, time.Local)
	if !SameDay(a, b) {
		t.Errorf("SameDay(%v, %v) = false, want true", a, b)
	}
	c := time.Date(2025, 6, 19, 0, 0, 0, 0, time.Local)
	if SameDay(b, c) {
		t.Errorf("SameDay(%v, %v) = true, want false", b, c)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"7d", 7 * 24 * time.Hour},
		{"30", 30 * time.Second},
		{"1h30m", 90 * time.Minute},
	}
	for _, tt := range tests {
		got, err := ParseDuration(tt.in)
		if err != nil {
			t.Errorf("ParseDuration(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
