package utils

import "testing"

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{1000, "10.00"},
		{1050, "10.50"},
		{2000, "20.00"},
		{-1050, "-10.50"},
	}
	for _, tc := range cases {
		if got := FormatMoney(tc.cents); got != tc.want {
			t.Fatalf("FormatMoney(%d) = %q, want %q", tc.cents, got, tc.want)
		}
	}
}

func TestParseMoney(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"10.50", 1050},
		{"10.5", 1050},
		{"10", 1000},
		{"0.05", 5},
		{"-3.25", -325},
		{" 7.00 ", 700},
	}
	for _, tc := range cases {
		got, err := ParseMoney(tc.in)
		if err != nil {
			t.Fatalf("ParseMoney(%q) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("ParseMoney(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}

	for _, in := range []string{"", "abc", "1.234", "10.5.0"} {
		if _, err := ParseMoney(in); err == nil {
			t.Fatalf("ParseMoney(%q) expected error", in)
		}
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(4.499999); got != 4.5 {
		t.Fatalf("Round2(4.499999) = %v, want 4.5", got)
	}
	if got := Round2(3.144); got != 3.14 {
		t.Fatalf("Round2(3.144) = %v, want 3.14", got)
	}
}
