package validation

import "strings"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors is an insertion-ordered map of form field to message. The zero
// value is empty and ready to use. It implements error so services can hand
// it back through an error return; callers recover it with errors.As.
type FieldErrors struct {
	entries []FieldError
}

// Add records message for field. A second message for the same field
// replaces the first without moving it.
func (e *FieldErrors) Add(field, message string) {
	for i := range e.entries {
		if e.entries[i].Field == field {
			e.entries[i].Message = message
			return
		}
	}
	e.entries = append(e.entries, FieldError{Field: field, Message: message})
}

func (e FieldErrors) Get(field string) (string, bool) {
	for _, fe := range e.entries {
		if fe.Field == field {
			return fe.Message, true
		}
	}
	return "", false
}

func (e FieldErrors) Has(field string) bool {
	_, ok := e.Get(field)
	return ok
}

func (e FieldErrors) Len() int { return len(e.entries) }

func (e FieldErrors) Empty() bool { return len(e.entries) == 0 }

func (e FieldErrors) All() []FieldError {
	out := make([]FieldError, len(e.entries))
	copy(out, e.entries)
	return out
}

func (e FieldErrors) Map() map[string]string {
	out := make(map[string]string, len(e.entries))
	for _, fe := range e.entries {
		out[fe.Field] = fe.Message
	}
	return out
}

func (e FieldErrors) Error() string {
	if len(e.entries) == 0 {
		return "validation passed"
	}
	parts := make([]string, 0, len(e.entries))
	for _, fe := range e.entries {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
