package validation

import "testing"

func TestValidateOhip(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1234-123-123-AB", true},
		{"1234123123AB", true},
		{"1234-123123-ab", true},
		{" 1234-123-123-xy ", true},
		{"", true},
		{"1234-123-12-AB", false},
		{"1234-123-123-A", false},
		{"1234-123-123-A1", false},
		{"12345-123-123-AB", false},
	}
	for _, tt := range tests {
		if got := ValidateOhip(tt.in); got != tt.want {
			t.Errorf("ValidateOhip(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatOhip(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1234123123ab", "1234-123-123-AB"},
		{" 1234-123-123-AB ", "1234-123-123-AB"},
		{"1234-123123AB", "1234-123-123-AB"},
		{"", ""},
		{"bad", "bad"},
	}
	for _, tt := range tests {
		if got := FormatOhip(tt.in); got != tt.want {
			t.Errorf("FormatOhip(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateAndFormatPhone(t *testing.T) {
	tests := []struct {
		in      string
		wantOK  bool
		wantOut string
	}{
		{"4165551234", true, "416-555-1234"},
		{" 4165551234 ", true, "416-555-1234"},
		{"416-555-1234", true, "416-555-1234"},
		{"", true, ""},
		{"   ", true, ""},
		{"123", false, "123"},
		{"41655512345", false, "41655512345"},
		{"416555123a", false, "416555123a"},
		{"(416)5551234", false, "(416)5551234"},
		{"416 555 1234", false, "416 555 1234"},
	}
	for _, tt := range tests {
		ok, out := ValidateAndFormatPhone(tt.in)
		if ok != tt.wantOK || out != tt.wantOut {
			t.Errorf("ValidateAndFormatPhone(%q) = (%v, %q), want (%v, %q)", tt.in, ok, out, tt.wantOK, tt.wantOut)
		}
	}
}
