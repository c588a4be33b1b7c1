// Package validate implements the field-level validation rules shared by
// every form in the client.
//
// Validate is a pure function: same (field, value, context) in, same error
// message out, no side effects. Form controllers call it on every change
// event and once more at submit time, so a rule must be cheap and must not
// depend on anything but its inputs. The context exists only for rules that
// read a sibling field (confirmPassword needs the current password draft).
//
// The error strings are part of the product surface — they are shown to the
// user verbatim and asserted on in tests, so do not reword them casually.
package validate

import (
	"regexp"
	"strings"
)

// Field identifies which rule set applies to a value.
type Field string

const (
	FieldName            Field = "name"
	FieldEmail           Field = "email"
	FieldPassword        Field = "password"
	FieldConfirmPassword Field = "confirmPassword"
	FieldGitHub          Field = "github"
	FieldLinkedIn        Field = "linkedin"
	FieldTwitter         Field = "twitter"

	// FieldSearchName is the profile-search name filter: same letters-only
	// rule as FieldName, but empty means "no filter" and is valid.
	FieldSearchName Field = "searchName"
)

// Context carries sibling-field values for cross-field rules.
type Context struct {
	// Password is the current password draft, read by the confirmPassword
	// rule. Zero value is fine for every other field.
	Password string
}

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	urlPattern   = regexp.MustCompile(`(?i)^(https?://)[^\s/$.?#].[^\s]*$`)
)

const (
	msgNameRequired     = "Name is required."
	msgNameLettersOnly  = "Name must contain only letters (no numbers or symbols)."
	msgEmailRequired    = "Email is required."
	msgEmailInvalid     = "Please enter a valid email address."
	msgPasswordRequired = "Password is required."
	msgPasswordInvalid  = "Password must be 8-12 chars, include letter, number & symbol."
	msgConfirmRequired  = "Confirm password is required."
	msgPasswordMismatch = "Passwords do not match."
	msgURLInvalid       = "Please enter a valid URL (must start with http:// or https://)"
)

// Validate checks value against the rule for field and returns a
// human-readable error message, or "" when the value is valid.
//
// Fields without a rule (bio, skills, post text length, ...) always return
// "" — requiredness of free-form fields is the form controller's concern.
func Validate(field Field, value string, ctx Context) string {
	switch field {
	case FieldName:
		if value == "" {
			return msgNameRequired
		}
		if !namePattern.MatchString(value) {
			return msgNameLettersOnly
		}

	case FieldSearchName:
		// Optional filter: blank means "match everyone".
		if strings.TrimSpace(value) == "" {
			return ""
		}
		if !namePattern.MatchString(value) {
			return msgNameLettersOnly
		}

	case FieldEmail:
		if value == "" {
			return msgEmailRequired
		}
		if !emailPattern.MatchString(value) {
			return msgEmailInvalid
		}

	case FieldPassword:
		if value == "" {
			return msgPasswordRequired
		}
		if !validPassword(value) {
			return msgPasswordInvalid
		}

	case FieldConfirmPassword:
		if value == "" {
			return msgConfirmRequired
		}
		if value != ctx.Password {
			return msgPasswordMismatch
		}

	case FieldGitHub, FieldLinkedIn, FieldTwitter:
		// Social links are optional; only a non-blank value is checked.
		if strings.TrimSpace(value) == "" {
			return ""
		}
		if !urlPattern.MatchString(value) {
			return msgURLInvalid
		}
	}

	return ""
}

// validPassword reports whether s is 8-12 characters drawn exclusively from
// letters, digits and @$!%*?&, with at least one of each of the three
// classes present.
//
// The original rule is a single lookahead regex; Go's regexp (RE2) has no
// lookahead, so the classes are counted in one pass instead.
func validPassword(s string) bool {
	if len(s) < 8 || len(s) > 12 {
		return false
	}
	var hasLetter, hasDigit, hasSymbol bool
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune("@$!%*?&", r):
			hasSymbol = true
		default:
			return false // character outside the allowed classes
		}
	}
	return hasLetter && hasDigit && hasSymbol
}
