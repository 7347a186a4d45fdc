package util

import "testing"

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"example.com", "https://example.com"},
		{"http://example.com", "http://example.com"},
		{"https://example.com/path", "https://example.com/path"},
		{"  example.com ", "https://example.com"},
	}
	for _, tt := range tests {
		if got := NormalizeURL(tt.in); got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDomain(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://www.example.com/a/b", "example.com"},
		{"example.com", "example.com"},
		{"http://sub.example.co.uk", "sub.example.co.uk"},
		{"://///", "unknown"},
		{"", "unknown"},
	}
	for _, tt := range tests {
		if got := ParseDomain(tt.in); got != tt.want {
			t.Errorf("ParseDomain(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsValidAlarmTime(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	for _, v := range valid {
		if !IsValidAlarmTime(v) {
			t.Errorf("IsValidAlarmTime(%q) = false, want true", v)
		}
	}
	invalid := []string{"24:00", "9:30", "12:60", "", "noon"}
	for _, v := range invalid {
		if IsValidAlarmTime(v) {
			t.Errorf("IsValidAlarmTime(%q) = true, want false", v)
		}
	}
}
