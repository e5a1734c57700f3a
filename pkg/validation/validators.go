package validation

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultEmailDomain is the only mailbox provider accepted for candidate profiles.
const DefaultEmailDomain = "gmail.com"

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// New returns a validator with the custom rules registered.
func New(allowedEmailDomain string) *validator.Validate {
	v := validator.New()
	RegisterValidators(v, allowedEmailDomain)
	return v
}

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate, allowedEmailDomain string) {
	if allowedEmailDomain == "" {
		allowedEmailDomain = DefaultEmailDomain
	}
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("allowed_email_domain", EmailDomain(allowedEmailDomain))
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure.
// Spaces, dashes, dots and parentheses are stripped first so "+62 812-3456-789" passes.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(NormalizePhone(val))
}

// NormalizePhone drops common visual separators from a phone number.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '.', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

// EmailDomain builds a validator accepting only addresses whose domain equals domain (case-insensitive).
// Grammar is left to the "email" tag.
func EmailDomain(domain string) validator.Func {
	want := strings.ToLower(domain)
	return func(fl validator.FieldLevel) bool {
		val := fl.Field().String()
		at := strings.LastIndex(val, "@")
		if at < 0 {
			return false
		}
		return strings.ToLower(val[at+1:]) == want
	}
}
