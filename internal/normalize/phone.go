package normalize

import "strings"

type PhoneType string

const (
	PhoneTypeEmail    PhoneType = "email"
	PhoneTypeMobile   PhoneType = "mobile"
	PhoneTypeLandline PhoneType = "landline"
	PhoneTypeService  PhoneType = "service"
	PhoneTypeUnknown  PhoneType = "unknown"
)

// Phone returns the digits of raw with a leading "61" country code folded to
// the national "0" prefix. It returns "" when raw holds no digits.
func Phone(raw string) string {
	return foldCountryCode(digitsOnly(raw))
}

// FormatPhone groups a phone number for display. Email addresses are returned
// unchanged; anything that is not a recognised shape is returned as given.
func FormatPhone(raw string) string {
	if IsEmail(raw) {
		return raw
	}
	digits := Phone(raw)
	if digits == "" {
		return strings.TrimSpace(raw)
	}

	switch len(digits) {
	case 10:
		if strings.HasPrefix(digits, "04") {
			return digits[:4] + " " + digits[4:7] + " " + digits[7:]
		}
		return digits[:2] + " " + digits[2:6] + " " + digits[6:]
	case 4:
		return digits[:2] + " " + digits[2:]
	default:
		return raw
	}
}

func DetectPhoneType(raw string) PhoneType {
	if IsEmail(raw) {
		return PhoneTypeEmail
	}
	digits := Phone(raw)
	if len(digits) == 10 {
		switch digits[:2] {
		case "04":
			return PhoneTypeMobile
		case "02", "03", "07", "08":
			return PhoneTypeLandline
		}
	}
	if len(digits) == 4 {
		return PhoneTypeService
	}
	return PhoneTypeUnknown
}

func foldCountryCode(digits string) string {
	if strings.HasPrefix(digits, "61") {
		return "0" + digits[2:]
	}
	return digits
}
