package utils

import "testing"

func TestFormatPence(t *testing.T) {
	tests := []struct {
		pence int64
		want  string
	}{
		{0, "£0.00"},
		{5, "£0.05"},
		{2250, "£22.50"},
		{575000, "£5750.00"},
		{-130, "-£1.30"},
	}
	for _, tt := range tests {
		if got := FormatPence(tt.pence); got != tt.want {
			t.Errorf("FormatPence(%d) = %q, want %q", tt.pence, got, tt.want)
		}
	}
}

func TestParsePoundsToPence(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{"£22.50", 2250, false},
		{"22.5", 2250, false},
		{"1,234", 123400, false},
		{"-1.30", -130, false},
		{"0", 0, false},
		{"", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParsePoundsToPence(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParsePoundsToPence(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePoundsToPence(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParsePoundsToPence(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatMiles(t *testing.T) {
	if got := FormatMiles(1050); got != "1050.00" {
		t.Errorf("FormatMiles = %q", got)
	}
	if got := FormatMiles(9999.996); got != "10000.00" {
		t.Errorf("FormatMiles = %q", got)
	}
}
