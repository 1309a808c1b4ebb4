package utils

import "testing"

func TestParseTimeAcceptsCommonLayouts(t *testing.T) {
	cases := []string{
		"2026-03-01T10:00:00Z",
		"2026-03-01T10:00",
		"2026-03-01 10:00:00",
		"2026-03-01 10:00",
	}
	for _, in := range cases {
		parsed, err := ParseTime(in)
		if err != nil {
			t.Fatalf("ParseTime(%q) error: %v", in, err)
		}
		if parsed.Hour() != 10 {
			t.Fatalf("ParseTime(%q) hour = %d, want 10", in, parsed.Hour())
		}
	}

	if _, err := ParseTime("03/01/2026"); err == nil {
		t.Fatal("ParseTime accepted unsupported layout")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2026-03-01 ")
	if err != nil {
		t.Fatalf("ParseDate error: %v", err)
	}
	if d.Year() != 2026 || int(d.Month()) != 3 || d.Day() != 1 {
		t.Fatalf("ParseDate = %v, want 2026-03-01", d)
	}
}
