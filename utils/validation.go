// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Clean the phone number
	cleaned := strings.ReplaceAll(phone, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "-", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	// Regular expression for international phone numbers
	// Allows + prefix followed by 7-15 digits
	regex := `^\+?[1-9]\d{1,14}$`
	match, _ := regexp.MatchString(regex, cleaned)
	return match
}

var nonDigits = regexp.MustCompile(`\D`)

// NormalizePhone strips everything but digits and prepends the Brazilian
// country code when missing, matching the wa.me URL format.
func NormalizePhone(phone string) string {
	cleaned := nonDigits.ReplaceAllString(phone, "")
	if cleaned == "" {
		return ""
	}
	if !strings.HasPrefix(cleaned, "55") {
		cleaned = "55" + cleaned
	}
	return cleaned
}
