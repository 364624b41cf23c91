package models

import (
	"regexp"
	"strings"
	"unicode"
)

// Validation limits applied across handlers.
const (
	MinNameLength        = 2
	MinDescriptionLength = 3
	MinCommentLength     = 3
	MinConfirmationCode  = 6
	MinPasswordLength    = 8
)

// Email validation regex pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Allowed image file extensions for avatars and post media
var imageExtensionRegex = regexp.MustCompile(`(?i)\.(jpe?g|png|gif)$`)

// IsValidEmail validates an email address format
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPassword validates the password policy: minimum length plus at
// least one upper-case letter, one lower-case letter, one digit and one
// special character, matching the identity provider's pool policy.
func IsValidPassword(password string) bool {
	if len(password) < MinPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	return hasUpper && hasLower && hasDigit && hasSpecial
}

// IsAllowedImage reports whether the filename carries an accepted image
// extension
func IsAllowedImage(filename string) bool {
	return imageExtensionRegex.MatchString(filename)
}

// ImageExtension returns the matched image extension (including the dot),
// lower-cased, or an empty string when the filename is not an image.
func ImageExtension(filename string) string {
	match := imageExtensionRegex.FindString(filename)
	return strings.ToLower(match)
}

// IsValidName validates a display name
func IsValidName(name string) bool {
	return len(strings.TrimSpace(name)) >= MinNameLength
}

// IsValidComment validates comment text
func IsValidComment(text string) bool {
	return len(text) >= MinCommentLength
}

// IsValidConfirmationCode validates an identity provider confirmation code
func IsValidConfirmationCode(code string) bool {
	return len(code) >= MinConfirmationCode
}
