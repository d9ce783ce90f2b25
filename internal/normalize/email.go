package normalize

import (
	"net/mail"
	"strings"
)

// IsEmail reports whether s is a bare RFC 5322 address such as
// "jane@example.com". Display names, angle brackets and surrounding
// whitespace are rejected, as is a domain without a dot.
func IsEmail(s string) bool {
	if s == "" || strings.TrimSpace(s) != s {
		return false
	}
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Name != "" || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
