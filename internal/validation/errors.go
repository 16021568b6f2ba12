package validation

import "strings"

// FieldError is a single validation failure scoped to a record field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// FieldErrors is an ordered list of field failures. It is returned as an
// error by services so callers can recover the whole list with errors.As.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return "validation passed"
	}
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ForField returns the messages recorded against field, in order.
func (fe FieldErrors) ForField(field string) []string {
	var msgs []string
	for _, e := range fe {
		if e.Field == field {
			msgs = append(msgs, e.Message)
		}
	}
	return msgs
}

// Fields returns the distinct field names that failed, in first-seen order.
func (fe FieldErrors) Fields() []string {
	seen := make(map[string]bool, len(fe))
	var fields []string
	for _, e := range fe {
		if !seen[e.Field] {
			seen[e.Field] = true
			fields = append(fields, e.Field)
		}
	}
	return fields
}

func (fe *FieldErrors) add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}
