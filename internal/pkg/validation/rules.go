package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	// Matriculation number pattern - letters, digits and separators
	MatricPattern = `^[A-Za-z0-9][A-Za-z0-9/.\-]*$`

	// Username pattern - alphanumeric plus underscore and dot
	UsernamePattern = `^[a-zA-Z0-9_.]+$`

	// Password min length
	PasswordMinLength = 8

	// Name validation min/max length
	NameMinLength = 2
	NameMaxLength = 100

	// Fingerprint templates are opaque descriptor strings; anything shorter
	// is a capture artifact, not a template.
	TemplateMinLength = 8
)

// CompiledPatterns caches compiled regex patterns for better performance
var CompiledPatterns = struct {
	Matric   *regexp.Regexp
	Username *regexp.Regexp
}{
	Matric:   regexp.MustCompile(MatricPattern),
	Username: regexp.MustCompile(UsernamePattern),
}

// IsValidMatricNumber reports whether a matriculation number is well formed.
func IsValidMatricNumber(matric string) bool {
	matric = strings.TrimSpace(matric)
	return matric != "" && CompiledPatterns.Matric.MatchString(matric)
}

// IsValidUsername reports whether an admin username is well formed.
func IsValidUsername(username string) bool {
	username = strings.TrimSpace(username)
	return username != "" && CompiledPatterns.Username.MatchString(username)
}

// IsValidName reports whether a person name length is acceptable.
func IsValidName(name string) bool {
	n := len(strings.TrimSpace(name))
	return n >= NameMinLength && n <= NameMaxLength
}

// IsValidTemplate reports whether a fingerprint template is usable for
// exact-match lookup.
func IsValidTemplate(template string) bool {
	return len(strings.TrimSpace(template)) >= TemplateMinLength
}
