package domain

import (
	"testing"
	"time"
)

func TestAlarm_ShouldFire(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 30, 0, time.Local)

	tests := []struct {
		name  string
		alarm Alarm
		want  bool
	}{
		{
			name:  "fires on matching minute",
			alarm: Alarm{Time: "09:00", Enabled: true},
			want:  true,
		},
		{
			name:  "disabled alarm never fires",
			alarm: Alarm{Time: "09:00", Enabled: false},
			want:  false,
		},
		{
			name:  "wrong minute does not fire",
			alarm: Alarm{Time: "09:01", Enabled: true},
			want:  false,
		},
		{
			name:  "already fired today does not fire again",
			alarm: Alarm{Time: "09:00", Enabled: true, TriggeredDay: "2025-06-18"},
			want:  false,
		},
		{
			name:  "fired yesterday fires again today",
			alarm: Alarm{Time: "09:00", Enabled: true, TriggeredDay: "2025-06-17"},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.alarm.ShouldFire(now); got != tt.want {
				t.Errorf("ShouldFire() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlarm_MarkFired(t *testing.T) {
	now := time.Date(2025, 6, 18, 9, 0, 0, 0, time.Local)
	a := Alarm{Time: "09:00", Enabled: true}

	if !a.ShouldFire(now) {
		t.Fatal("alarm should fire before being marked")
	}
	a.MarkFired(now)
	if a.ShouldFire(now) {
		t.Error("alarm must not fire twice on the same day")
	}
	if a.ShouldFire(now.Add(59 * time.Second)) {
		t.Error("alarm must stay quiet for the rest of the day")
	}

	nextDay := now.AddDate(0, 0, 1)
	if !a.ShouldFire(nextDay) {
		t.Error("alarm should fire again the next day")
	}
}
