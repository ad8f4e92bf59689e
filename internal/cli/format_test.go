package cli

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		amount   float64
		currency string
		want     string
	}{
		{0, "EUR", "€0.00"},
		{1234.5, "EUR", "€1,234.50"},
		{-42, "EUR", "-€42.00"},
		{999.999, "USD", "$1,000.00"},
		{10.5, "SEK", "SEK 10.50"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.amount, tt.currency); got != tt.want {
			t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(50, "EUR"); got != "+€50.00" {
		t.Errorf("positive delta = %q", got)
	}
	if got := FormatSignedMoney(-50, "EUR"); got != "-€50.00" {
		t.Errorf("negative delta = %q", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("2025-06-15"); got != "Sun, 15 Jun 2025" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate("garbage"); got != "garbage" {
		t.Errorf("unparseable input should pass through, got %q", got)
	}
}

func TestRenderSparkline(t *testing.T) {
	line := RenderSparkline([]float64{-100, 0, 100})
	runes := []rune(line)
	if len(runes) != 3 {
		t.Fatalf("sparkline length = %d, want 3", len(runes))
	}
	if runes[0] != '▁' || runes[2] != '█' {
		t.Errorf("sparkline = %q, want lowest then highest block", line)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty input should yield empty sparkline")
	}
}
