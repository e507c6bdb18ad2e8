package utils

import (
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether email is a plain addr-spec such as
// name@example.com.
func IsValidEmail(email string) bool {
	if email == "" || !emailRegex.MatchString(email) {
		return false
	}
	local, domain, _ := strings.Cut(email, "@")
	if strings.HasPrefix(local, ".") || strings.HasSuffix(local, ".") || strings.Contains(local, "..") {
		return false
	}
	return !strings.HasPrefix(domain, ".") && !strings.Contains(domain, "..") && !strings.HasPrefix(domain, "-")
}
