package helper

import "testing"

func TestFormatLapTime(t *testing.T) {
	cases := []struct {
		seconds float64
		want    string
	}{
		{70.270, "1:10.270"},
		{70.486, "1:10.486"},
		{59.999, "0:59.999"},
		{60.0, "1:00.000"},
		{59.9996, "1:00.000"},
		{119.9996, "2:00.000"},
		{72.4995, "1:12.500"},
		{125.5, "2:05.500"},
		{0, "-"},
		{-3, "-"},
	}
	for _, tc := range cases {
		if got := FormatLapTime(tc.seconds); got != tc.want {
			t.Errorf("FormatLapTime(%f): got %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestFormatDelta(t *testing.T) {
	if got := FormatDelta(0.216); got != "+0.216s" {
		t.Errorf("got %q", got)
	}
	if got := FormatDelta(-1); got != "-" {
		t.Errorf("got %q", got)
	}
}

func TestNormalizeDriverCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"ver", "VER"},
		{" lec ", "LEC"},
		{"HAMILTON", "HAM"},
		{"M", "M"},
	}
	for _, tc := range cases {
		if got := NormalizeDriverCode(tc.in); got != tc.want {
			t.Errorf("NormalizeDriverCode(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}
