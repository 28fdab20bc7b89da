package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidInput wraps every local validation failure, before anything is
// sent to the API.
var ErrInvalidInput = errors.New("invalid input")

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateStruct runs struct tag validation and flattens the failures into one
// readable error.
func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "e164":
		return field + " must be in international format, e.g. +962791234567"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s must match %s", field, strings.ToLower(fe.Param()))
	case "numeric":
		return field + " must contain digits only"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}

// PasswordStrength grades a password by how many requirements it meets.
type PasswordStrength string

const (
	StrengthWeak   PasswordStrength = "weak"
	StrengthMedium PasswordStrength = "medium"
	StrengthStrong PasswordStrength = "strong"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
	passwordSpecials  = `!@#$%^&*(),.?":{}|<>`
)

// PasswordCheck is the outcome of CheckPassword.
type PasswordCheck struct {
	Strength   PasswordStrength
	MinLength  bool
	HasUpper   bool
	HasLower   bool
	HasDigit   bool
	HasSpecial bool
	Err        error
}

// Valid reports whether the password may be used.
func (c PasswordCheck) Valid() bool {
	return c.Err == nil
}

// CheckPassword applies the account password policy. Err names the first
// unmet rule; Strength is reported either way.
func CheckPassword(pw string) PasswordCheck {
	c := PasswordCheck{MinLength: len(pw) >= minPasswordLength}
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			c.HasUpper = true
		case r >= 'a' && r <= 'z':
			c.HasLower = true
		case r >= '0' && r <= '9':
			c.HasDigit = true
		case strings.ContainsRune(passwordSpecials, r):
			c.HasSpecial = true
		}
	}

	met := 0
	for _, ok := range []bool{c.MinLength, c.HasUpper, c.HasLower, c.HasDigit, c.HasSpecial} {
		if ok {
			met++
		}
	}
	switch {
	case met >= 4:
		c.Strength = StrengthStrong
	case met >= 2:
		c.Strength = StrengthMedium
	default:
		c.Strength = StrengthWeak
	}

	switch {
	case !c.MinLength:
		c.Err = passwordErr("Password must be at least 8 characters long.")
	case len(pw) > maxPasswordLength:
		c.Err = passwordErr("Password must not exceed 128 characters.")
	case !c.HasUpper:
		c.Err = passwordErr("Password must contain at least one uppercase letter.")
	case !c.HasLower:
		c.Err = passwordErr("Password must contain at least one lowercase letter.")
	case !c.HasDigit:
		c.Err = passwordErr("Password must contain at least one number.")
	case !c.HasSpecial:
		c.Err = passwordErr(`Password must contain at least one special character (!@#$%^&*(),.?":{}|<>)`)
	}
	return c
}

func passwordErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
