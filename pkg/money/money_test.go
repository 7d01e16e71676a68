package money

import "testing"

func TestParseCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"", 0},
		{"0", 0},
		{"$12.00", 1200},
		{"12", 1200},
		{"1,234.56", 123456},
		{"-8.40", -840},
		{"-$8.40", -840},
		{"$0.01", 1},
	}
	for _, tt := range tests {
		got, err := ParseCents(tt.in)
		if err != nil {
			t.Fatalf("ParseCents(%q) error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseCentsRejectsSubCentPrecision(t *testing.T) {
	if _, err := ParseCents("1.005"); err == nil {
		t.Fatal("expected error for sub-cent amount")
	}
	if _, err := ParseCents("abc"); err == nil {
		t.Fatal("expected error for garbage input")
	}
}

func TestFormatCents(t *testing.T) {
	if got := FormatCents(1250); got != "$12.50" {
		t.Fatalf("FormatCents(1250) = %q", got)
	}
	if got := FormatCents(-840); got != "-$8.40" {
		t.Fatalf("FormatCents(-840) = %q", got)
	}
	if got := FormatCents(5); got != "$0.05" {
		t.Fatalf("FormatCents(5) = %q", got)
	}
}
