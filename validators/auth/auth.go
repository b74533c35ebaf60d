package authValidator

import (
	"regexp"
	"strings"
)

// Helper to validate email format
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Helper to validate pin format: a short numeric credential
var pinPattern = regexp.MustCompile(`^\d{4,6}$`)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func isValidPin(pin string) bool {
	return pinPattern.MatchString(pin)
}

// Credentials validates a register or login payload and returns a
// field error map, empty when the payload is acceptable.
func Credentials(email, pin string) map[string]string {
	errors := make(map[string]string)

	// Validate Email
	if strings.TrimSpace(email) == "" || !isValidEmail(strings.TrimSpace(email)) {
		errors["email"] = "Invalid email!"
	}

	// Validate Pin
	if !isValidPin(strings.TrimSpace(pin)) {
		errors["pin"] = "PIN must be 4 to 6 digits!"
	}

	return errors
}
