package validation

import (
	"regexp"
	"strings"
)

var (
	ohipPattern           = regexp.MustCompile(`^\d{4}-?\d{3}-?\d{3}-?[A-Z]{2}$`)
	phoneDigitsPattern    = regexp.MustCompile(`^\d{10}$`)
	phoneCanonicalPattern = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)
)

// ValidateOhip reports whether code is an Ontario health card number of the
// form 1234-123-123-XX. Dashes are optional and letters may be lower case.
// An empty code is valid.
func ValidateOhip(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return true
	}
	return ohipPattern.MatchString(code)
}

// FormatOhip returns a valid OHIP number upper-cased and dashed as
// 1234-123-123-XX. Input that does not validate is returned unchanged.
func FormatOhip(code string) string {
	if !ValidateOhip(code) {
		return code
	}
	c := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(code)), "-", "")
	if c == "" {
		return ""
	}
	return c[:4] + "-" + c[4:7] + "-" + c[7:10] + "-" + c[10:]
}

// ValidateAndFormatPhone accepts exactly ten digits and returns them as
// 123-456-7890. A number already in that form is accepted as is. Empty input
// is valid and formats to "". Invalid input is returned unchanged.
func ValidateAndFormatPhone(phone string) (bool, string) {
	p := strings.TrimSpace(phone)
	switch {
	case p == "":
		return true, ""
	case phoneCanonicalPattern.MatchString(p):
		return true, p
	case len(p) != 10 || !phoneDigitsPattern.MatchString(p):
		return false, phone
	}
	return true, p[:3] + "-" + p[3:6] + "-" + p[6:]
}
