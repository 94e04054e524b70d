package validate

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"banking-client/internal/errs"
	"banking-client/internal/models/beneficiaries"
	"banking-client/internal/models/money"
)

const (
	RuleMinLength = "At least 8 characters"
	RuleUpper     = "One uppercase letter"
	RuleLower     = "One lowercase letter"
	RuleDigit     = "One number"

	MsgRequired        = "This field is required"
	MsgInvalidEmail    = "Invalid email address"
	MsgPasswordsDiffer = "Passwords do not match"
	MsgInvalidCard     = "Invalid card number"
	MsgInvalidPhone    = "Invalid phone number"
	MsgInvalidAmount   = "Enter a valid amount greater than zero"

	minPasswordLength = 8
)

var (
	emailRegexp = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegexp = regexp.MustCompile(`^\+?[0-9]{6,15}$`)
)

func Required(value string) bool {
	return strings.TrimSpace(value) != ""
}

func Email(value string) bool {
	return emailRegexp.MatchString(value)
}

func Phone(value string) bool {
	return phoneRegexp.MatchString(strings.NewReplacer(" ", "", "-", "").Replace(value))
}

// Password returns the unmet strength rules, empty when the password is ok.
func Password(pwd string) []string {
	var unmet []string
	var hasUpper, hasLower, hasDigit bool

	for _, r := range pwd {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if len([]rune(pwd)) < minPasswordLength {
		unmet = append(unmet, RuleMinLength)
	}
	if !hasUpper {
		unmet = append(unmet, RuleUpper)
	}
	if !hasLower {
		unmet = append(unmet, RuleLower)
	}
	if !hasDigit {
		unmet = append(unmet, RuleDigit)
	}

	return unmet
}

func Amount(value string) (money.Money, bool) {
	m, err := money.ParsePositive(value)
	return m, err == nil
}

// Form collects field errors in the order checks are made.
type Form struct {
	err *errs.ValidationError
}

func (f *Form) Fail(field string, messages ...string) {
	if f.err == nil {
		f.err = &errs.ValidationError{}
	}

	f.err.Add(field, messages...)
}

func (f *Form) Required(field, value string) bool {
	if Required(value) {
		return true
	}

	f.Fail(field, MsgRequired)
	return false
}

func (f *Form) Email(field, value string) {
	if !f.Required(field, value) {
		return
	}

	if !Email(strings.TrimSpace(value)) {
		f.Fail(field, MsgInvalidEmail)
	}
}

func (f *Form) Password(field, value string) {
	if !f.Required(field, value) {
		return
	}

	if unmet := Password(value); len(unmet) > 0 {
		f.Fail(field, unmet...)
	}
}

func (f *Form) Confirm(field, value, confirmation string) {
	if !f.Required(field, confirmation) {
		return
	}

	if value != confirmation {
		f.Fail(field, MsgPasswordsDiffer)
	}
}

func (f *Form) Amount(field, value string) money.Money {
	m, err := money.ParsePositive(value)
	if err != nil {
		msg := MsgInvalidAmount
		if errors.Is(err, money.ErrTooManyDigits) || errors.Is(err, money.ErrTooLarge) {
			msg = err.Error()
		}
		f.Fail(field, msg)
	}

	return m
}

func (f *Form) CardNumber(field, value string) {
	if !f.Required(field, value) {
		return
	}

	if !beneficiaries.ValidateCardNumber(value) {
		f.Fail(field, MsgInvalidCard)
	}
}

func (f *Form) Phone(field, value string) {
	if !f.Required(field, value) {
		return
	}

	if !Phone(value) {
		f.Fail(field, MsgInvalidPhone)
	}
}

// Err returns nil when every check passed.
func (f *Form) Err() error {
	if f.err.Empty() {
		return nil
	}

	return f.err
}
