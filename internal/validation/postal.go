package validation

import (
	"regexp"
	"strings"
)

// Leading letters D, F, I, O, Q, U, W and Z are never assigned.
var canadianPostalPattern = regexp.MustCompile(`^[ABCEGHJKLMNPRSTVXY]\d[A-Z] ?\d[A-Z]\d$`)

// provincePostalLetters maps a province or territory code to the first
// letters Canada Post assigns to it.
var provincePostalLetters = map[string]string{
	"NL": "A",
	"NS": "B",
	"PE": "C",
	"NB": "E",
	"QC": "GHJ",
	"ON": "KLMNP",
	"MB": "R",
	"SK": "S",
	"AB": "T",
	"BC": "V",
	"NU": "X",
	"NT": "X",
	"YT": "Y",
}

// ValidatePostalCodeCanada reports whether code looks like "A2B 3C4", in
// either case and with the middle space optional. An empty code is valid.
func ValidatePostalCodeCanada(code string) bool {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return true
	}
	return canadianPostalPattern.MatchString(code)
}

// FormatPostalCodeCanada returns code upper-cased with a space after the
// third character. It returns "" when code is empty or not a Canadian
// postal code, so "" means "not formattable" rather than "unchanged".
func FormatPostalCodeCanada(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" || !ValidatePostalCodeCanada(code) {
		return ""
	}
	if len(code) == 6 {
		return code[:3] + " " + code[3:]
	}
	return code
}

// IsPostalCodeValidForProvince reports whether postalCode starts with a
// letter assigned to provinceCode. Unknown provinces and empty inputs are
// invalid. Only call it with a code that already passed
// ValidatePostalCodeCanada; it looks at the first character and nothing else.
func IsPostalCodeValidForProvince(provinceCode, postalCode string) bool {
	provinceCode = strings.ToUpper(strings.TrimSpace(provinceCode))
	postalCode = strings.ToUpper(strings.TrimSpace(postalCode))
	if provinceCode == "" || postalCode == "" {
		return false
	}
	letters, ok := provincePostalLetters[provinceCode]
	if !ok {
		return false
	}
	return strings.IndexByte(letters, postalCode[0]) >= 0
}

// ValidateAndFormatZip accepts a US ZIP code of 5 or 9 digits, ignoring any
// other characters, and returns it as "12345" or "12345-6789". Empty input
// is valid and formats to "". Invalid input is returned unchanged.
func ValidateAndFormatZip(code string) (bool, string) {
	if strings.TrimSpace(code) == "" {
		return true, ""
	}
	digits := ExtractDigits(code)
	switch len(digits) {
	case 5:
		return true, digits
	case 9:
		return true, digits[:5] + "-" + digits[5:]
	default:
		return false, code
	}
}
