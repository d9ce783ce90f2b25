package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/invoicecreator/invoice-creator/internal/normalize"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldPassword = "password"
)

// RegistrationInput is a sign-up request as entered by an operator.
type RegistrationInput struct {
	Name     string
	Email    string
	Password string
}

// ValidateRegistration checks a sign-up request against the operator
// password policy. The password is counted in runes and never trimmed.
func ValidateRegistration(in RegistrationInput, minPasswordLength int) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(in.Name) == "" {
		errs.Add(FieldName, "Name is required")
	}
	if !normalize.IsEmail(strings.TrimSpace(in.Email)) {
		errs.Add(FieldEmail, "Please provide a valid email address")
	}
	if utf8.RuneCountInString(in.Password) < minPasswordLength {
		errs.Add(FieldPassword, fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
	}
	return errs
}
