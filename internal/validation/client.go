package validation

import (
	"net/url"
	"strings"

	"github.com/invoicecreator/invoice-creator/internal/domain"
	"github.com/invoicecreator/invoice-creator/internal/normalize"
)

const (
	FieldCompanyName  = "company_name"
	FieldContactEmail = "contact_email"
	FieldABN          = "abn"
	FieldContactPhone = "contact_phone"
)

var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ClientInput is a client form exactly as the user submitted it.
type ClientInput struct {
	CompanyName    string
	CompanyContact string
	ABN            string
	ContactEmail   string
	ContactPhone   string
	Address        string
}

func ClientInputFromForm(form url.Values) ClientInput {
	return ClientInput{
		CompanyName:    form.Get("company_name"),
		CompanyContact: form.Get("company_contact"),
		ABN:            form.Get("abn"),
		ContactEmail:   form.Get("contact_email"),
		ContactPhone:   form.Get("contact_phone"),
		Address:        form.Get("address"),
	}
}

// ValidateClient canonicalises in and checks every client rule. The returned
// row is always populated so a form can be redisplayed; it is only fit for
// persistence when the error set is empty.
func ValidateClient(in ClientInput) (domain.Client, FieldErrors) {
	row := domain.Client{
		CompanyName:    strings.TrimSpace(in.CompanyName),
		CompanyContact: strings.TrimSpace(in.CompanyContact),
		ABN:            normalize.ABN(in.ABN),
		ContactEmail:   strings.TrimSpace(in.ContactEmail),
		ContactPhone:   strings.TrimSpace(in.ContactPhone),
		Address:        strings.TrimSpace(in.Address),
	}
	var errs FieldErrors

	if row.CompanyName == "" {
		errs.Add(FieldCompanyName, "Company Name is required")
	}

	if row.ContactEmail != "" && !normalize.IsEmail(row.ContactEmail) {
		errs.Add(FieldContactEmail, "Please provide a valid email address")
	}

	if row.ABN != "" {
		if len(row.ABN) != 11 {
			errs.Add(FieldABN, "ABN must contain 11 digits")
		} else if !IsValidABN(row.ABN) {
			errs.Add(FieldABN, "ABN is invalid")
		}
	}

	// An email address is an accepted contact channel and is kept verbatim.
	if row.ContactPhone != "" && !normalize.IsEmail(row.ContactPhone) {
		digits := normalize.Phone(row.ContactPhone)
		switch {
		case digits == "":
			errs.Add(FieldContactPhone, "Please provide a valid phone number or email")
		case !IsValidAustralianPhone(digits):
			errs.Add(FieldContactPhone, "Please provide a valid Australian phone number")
		default:
			row.ContactPhone = digits
		}
	}

	return row, errs
}

// IsValidABN runs the ATO modulus 89 check over an ABN. Non-digit characters
// are ignored; anything other than 11 digits is invalid.
func IsValidABN(abn string) bool {
	digits := normalize.ABN(abn)
	if len(digits) != 11 {
		return false
	}
	sum := 0
	for i := 0; i < len(digits); i++ {
		d := int(digits[i] - '0')
		if i == 0 {
			d--
		}
		sum += d * abnWeights[i]
	}
	return sum%89 == 0
}

// IsValidAustralianPhone applies the phone policy to normalised digits:
// 10-digit numbers need a 02/03/04/07/08 prefix, while 4, 6 and 7 digit
// numbers starting with 0 are accepted as short service codes.
func IsValidAustralianPhone(digits string) bool {
	if len(digits) < 2 || digits[0] != '0' {
		return false
	}
	for i := 1; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}

	switch len(digits) {
	case 10:
		switch digits[:2] {
		case "02", "03", "04", "07", "08":
			return true
		}
		return false
	case 4, 6, 7:
		return true
	default:
		return false
	}
}
