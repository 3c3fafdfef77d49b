// Package validate holds the per-field checkout form validators.
//
// Every validator is a pure function from a raw string to an error, nil
// meaning valid. Checks short-circuit: emptiness first, then shape, then
// semantics, so the user always sees the most fundamental problem first.
// Nothing here knows about steps or the wizard; wiring a field name to its
// validator is the only coupling, via ForField.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/storefront/checkout/internal/checkout/domain"
)

var (
	nameRe       = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	emailRe      = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	digitsRe     = regexp.MustCompile(`^[0-9]+$`)
	zipRe        = regexp.MustCompile(`^[0-9]{5,}$`)
	cardNumberRe = regexp.MustCompile(`^[0-9]{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/([0-9]{2})$`)
	cvvRe        = regexp.MustCompile(`^[0-9]{3,4}$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
)

// Func validates one raw field value. A nil return means the value is valid.
type Func func(value string) error

// nameLike covers the fields that share name-shaped rules: full name, city,
// state, country and the name on the card. minLen varies per field.
func nameLike(label string, minLen int) Func {
	return func(value string) error {
		v := strings.TrimSpace(value)
		if v == "" {
			return fmt.Errorf("%s is required", label)
		}
		if len(v) < minLen {
			return fmt.Errorf("%s must be at least %d characters", label, minLen)
		}
		// A purely numeric value also fails the letters-only pattern, but
		// the dedicated check keeps the distinction explicit.
		if digitsRe.MatchString(v) {
			return fmt.Errorf("%s cannot be only numbers", label)
		}
		if !nameRe.MatchString(v) {
			return fmt.Errorf("%s can only contain letters, spaces, hyphens and apostrophes", label)
		}
		return nil
	}
}

// FullName validates the customer's full name.
var FullName = nameLike("Full name", 2)

// City validates the shipping city.
var City = nameLike("City", 2)

// State validates the shipping state or province.
var State = nameLike("State", 2)

// Country validates the shipping country.
var Country = nameLike("Country", 2)

// CardName validates the name printed on the card.
var CardName = nameLike("Name on card", 2)

// Email validates an address of the usual local@domain.tld shape.
func Email(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Email is required")
	}
	if !emailRe.MatchString(v) {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

// Phone accepts at least ten digits after stripping spaces, hyphens and
// parentheses.
func Phone(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Phone number is required")
	}
	stripped := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "+", "").Replace(v)
	if !digitsRe.MatchString(stripped) || len(stripped) < 10 {
		return errors.New("Phone number must have at least 10 digits")
	}
	return nil
}

// Address requires a minimally descriptive street line: five characters or
// more with at least one letter, so pure house numbers are rejected.
func Address(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Address is required")
	}
	if len(v) < 5 {
		return errors.New("Address must be at least 5 characters")
	}
	if !letterRe.MatchString(v) {
		return errors.New("Address must contain letters")
	}
	return nil
}

// ZipCode requires at least five digits.
func ZipCode(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("ZIP code is required")
	}
	if !zipRe.MatchString(v) {
		return errors.New("ZIP code must be at least 5 digits")
	}
	return nil
}

// CardNumber requires exactly sixteen digits once spaces are stripped.
func CardNumber(value string) error {
	v := strings.ReplaceAll(strings.TrimSpace(value), " ", "")
	if v == "" {
		return errors.New("Card number is required")
	}
	if !cardNumberRe.MatchString(v) {
		return errors.New("Card number must be 16 digits")
	}
	return nil
}

// ExpiryDate validates an MM/YY expiry against the real clock. A malformed
// month (00, 13) is a format error; a well-formed date earlier than the
// current month is reported as expired. The current month itself is valid.
func ExpiryDate(value string) error {
	return ExpiryDateAt(value, time.Now())
}

// ExpiryDateAt is ExpiryDate with an injectable clock.
func ExpiryDateAt(value string, now time.Time) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("Expiry date is required")
	}
	m := expiryRe.FindStringSubmatch(v)
	if m == nil {
		return errors.New("Expiry date must be in MM/YY format")
	}

	month := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	year := 2000 + int(m[2][0]-'0')*10 + int(m[2][1]-'0')

	if year < now.Year() || (year == now.Year() && month < int(now.Month())) {
		return errors.New("Card has expired")
	}
	return nil
}

// CVV accepts three or four digits.
func CVV(value string) error {
	v := strings.TrimSpace(value)
	if v == "" {
		return errors.New("CVV is required")
	}
	if !cvvRe.MatchString(v) {
		return errors.New("CVV must be 3 or 4 digits")
	}
	return nil
}

var byField = map[string]Func{
	domain.FieldFullName:   FullName,
	domain.FieldEmail:      Email,
	domain.FieldPhone:      Phone,
	domain.FieldAddress:    Address,
	domain.FieldCity:       City,
	domain.FieldState:      State,
	domain.FieldZipCode:    ZipCode,
	domain.FieldCountry:    Country,
	domain.FieldCardNumber: CardNumber,
	domain.FieldCardName:   CardName,
	domain.FieldExpiryDate: ExpiryDate,
	domain.FieldCVV:        CVV,
}

// ForField returns the validator for a form field name, or nil when the
// field is unknown.
func ForField(name string) Func {
	return byField[name]
}

// Field validates a single named field value. Unknown fields are valid:
// the form owns the set of known names, not the validators.
func Field(name, value string) error {
	if fn := byField[name]; fn != nil {
		return fn(value)
	}
	return nil
}
