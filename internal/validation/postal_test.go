package validation

import "testing"

func TestValidatePostalCodeCanada(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"a2b3c4", true},
		{"A2B 3C4", true},
		{"  m5b 3c4  ", true},
		{"", true},
		{"D2B 3C4", false},
		{"A2B  3C4", false},
		{"A2B-3C4", false},
		{"12345", false},
		{"A2B 3C", false},
		{"A2B 3C44", false},
	}
	for _, tt := range tests {
		if got := ValidatePostalCodeCanada(tt.in); got != tt.want {
			t.Errorf("ValidatePostalCodeCanada(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatPostalCodeCanada(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a2b3c4", "A2B 3C4"},
		{"a2b 3c4", "A2B 3C4"},
		{" k1a0b1 ", "K1A 0B1"},
		{"A2B 3C4", "A2B 3C4"},
		{"", ""},
		{"12345", ""},
		{"D2B3C4", ""},
	}
	for _, tt := range tests {
		if got := FormatPostalCodeCanada(tt.in); got != tt.want {
			t.Errorf("FormatPostalCodeCanada(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPostalCodeValidForProvince(t *testing.T) {
	tests := []struct {
		province string
		postal   string
		want     bool
	}{
		{"ON", "M5B 3C4", true},
		{"ON", "A1B 2C3", false},
		{"ON", "K1A 0B1", true},
		{"ON", "P3A 1A1", true},
		{"NL", "A1B 2C3", true},
		{"NS", "B3H 1A1", true},
		{"PE", "C1A 1A1", true},
		{"NB", "E1C 1A1", true},
		{"QC", "G1R 1A1", true},
		{"QC", "H2X 1A1", true},
		{"QC", "J4K 1A1", true},
		{"QC", "K1A 0B1", false},
		{"MB", "R3C 1A1", true},
		{"SK", "S4P 1A1", true},
		{"AB", "T2P 1A1", true},
		{"BC", "V6B 1A1", true},
		{"NU", "X0A 0H0", true},
		{"NT", "X1A 2P8", true},
		{"YT", "Y1A 1A1", true},
		{"YT", "X1A 1A1", false},
		{"on", "m5b 3c4", true},
		{"ZZ", "M5B 3C4", false},
		{"", "M5B 3C4", false},
		{"ON", "", false},
	}
	for _, tt := range tests {
		if got := IsPostalCodeValidForProvince(tt.province, tt.postal); got != tt.want {
			t.Errorf("IsPostalCodeValidForProvince(%q, %q) = %v, want %v", tt.province, tt.postal, got, tt.want)
		}
	}
}

func TestValidateAndFormatZip(t *testing.T) {
	tests := []struct {
		in      string
		wantOK  bool
		wantOut string
	}{
		{"123456789", true, "12345-6789"},
		{"12345-6789", true, "12345-6789"},
		{"12345", true, "12345"},
		{" 12345 ", true, "12345"},
		{"", true, ""},
		{"1234", false, "1234"},
		{"1234567", false, "1234567"},
		{"A1B 2C3", false, "A1B 2C3"},
	}
	for _, tt := range tests {
		ok, out := ValidateAndFormatZip(tt.in)
		if ok != tt.wantOK || out != tt.wantOut {
			t.Errorf("ValidateAndFormatZip(%q) = (%v, %q), want (%v, %q)", tt.in, ok, out, tt.wantOK, tt.wantOut)
		}
	}
}
