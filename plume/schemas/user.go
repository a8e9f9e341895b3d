// plume/schemas/user.go
package schemas

import (
	"regexp"
	"strings"

	"plume/plume/apierrors"
	"plume/plume/types"
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)
)

const passwordSymbols = "@$!%*?&#"

// ValidateLogin checks the login payload. Every rule runs; all violations
// are collected.
func ValidateLogin(req types.LoginRequest) []apierrors.FieldError {
	var errs []apierrors.FieldError
	errs = append(errs, validateEmail(req.Email)...)
	errs = append(errs, validatePassword(req.Password)...)
	return errs
}

// ValidateRegister is the login rule-set plus the username rule.
func ValidateRegister(req types.RegisterRequest) []apierrors.FieldError {
	errs := ValidateLogin(types.LoginRequest{Email: req.Email, Password: req.Password})
	errs = append(errs, validateUsername(req.Username)...)
	return errs
}

// ValidateUpdateUser applies only the username rule.
func ValidateUpdateUser(req types.UpdateUserRequest) []apierrors.FieldError {
	return validateUsername(req.Username)
}

func validateEmail(email string) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if email == "" {
		errs = append(errs, apierrors.FieldError{Field: "email", Message: "El email es requerido"})
		return errs
	}
	if !emailRe.MatchString(email) {
		errs = append(errs, apierrors.FieldError{Field: "email", Message: "El email ingresado no es valido"})
	}
	return errs
}

// validatePassword enforces: minimum 8 characters, at least one lowercase,
// one uppercase, one digit and one symbol from the allowed set, and nothing
// outside [A-Za-z0-9@$!%*?&#]. Go's regexp has no lookahead, so the
// composition check is a rune scan.
func validatePassword(password string) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if password == "" {
		errs = append(errs, apierrors.FieldError{Field: "password", Message: "La contraseña es requerida"})
		return errs
	}
	if len(password) < 8 {
		errs = append(errs, apierrors.FieldError{Field: "password", Message: "La contraseña debe tener al menos 8 caracteres"})
	}
	var lower, upper, digit, symbol, invalid bool
	for _, r := range password {
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		default:
			invalid = true
		}
	}
	if !lower || !upper || !digit || !symbol || invalid {
		errs = append(errs, apierrors.FieldError{
			Field:   "password",
			Message: "La contraseña debe contener al menos una letra mayúscula, una letra minúscula, un número y un carácter especial",
		})
	}
	return errs
}

func validateUsername(username string) []apierrors.FieldError {
	var errs []apierrors.FieldError
	if username == "" {
		errs = append(errs, apierrors.FieldError{Field: "username", Message: "El nombre de usuario es requerido"})
		return errs
	}
	if !usernameRe.MatchString(username) {
		errs = append(errs, apierrors.FieldError{Field: "username", Message: "El nombre de usuario no puede contener caracteres especiales"})
	}
	return errs
}
