package ui

import (
	"regexp"
	"strings"
	"time"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)
	namePattern  = regexp.MustCompile(`^[A-Za-z\s]+$`)
)

const passwordSymbols = "@$!%*?&"

// ValidEmail reports whether value looks like an email address.
func ValidEmail(value string) bool {
	return emailPattern.MatchString(value)
}

// ValidName allows only letters and spaces.
func ValidName(value string) bool {
	return namePattern.MatchString(value)
}

// StrongPassword requires at least 8 characters with an uppercase, a
// lowercase, a digit and a symbol from the allowed set.
func StrongPassword(value string) bool {
	if len(value) < 8 {
		return false
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range value {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(passwordSymbols, r):
			hasSymbol = true
		default:
			return false
		}
	}
	return hasUpper && hasLower && hasDigit && hasSymbol
}

// ValidateLogin checks the login form. An empty map means the form may
// be submitted.
func ValidateLogin(email, password string) map[string]string {
	errs := map[string]string{}

	if email == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(email) {
		errs["email"] = "Enter a valid email"
	}

	if password == "" {
		errs["password"] = "Password is required"
	}

	return errs
}

// ValidateRegistration checks the registration form.
func ValidateRegistration(name, email, password, confirm string) map[string]string {
	errs := map[string]string{}

	if name == "" {
		errs["name"] = "Name is required"
	} else if !ValidName(name) {
		errs["name"] = "Name should contain only letters"
	}

	if email == "" {
		errs["email"] = "Email is required"
	} else if !ValidEmail(email) {
		errs["email"] = "Enter a valid email"
	}

	if password == "" {
		errs["password"] = "Password is required"
	} else if !StrongPassword(password) {
		errs["password"] = "Password must be at least 8 characters long and contain an uppercase, a lowercase, a number and a symbol"
	}

	if confirm == "" {
		errs["confirmPassword"] = "Confirm password is required"
	} else if password != confirm {
		errs["confirmPassword"] = "Passwords do not match"
	}

	return errs
}

// ValidateTaskForm checks the create/edit form. The due date must be a
// calendar date no earlier than today (date-only comparison). These
// checks run before any network call; a failing form never reaches the
// server.
func ValidateTaskForm(title, dueDate string, now time.Time) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(title) == "" {
		errs["title"] = "Title is required"
	}

	if dueDate == "" {
		errs["dueDate"] = "Due date is required"
	} else if due, err := time.Parse("2006-01-02", dueDate); err != nil {
		errs["dueDate"] = "Invalid date format: use YYYY-MM-DD"
	} else {
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
		if due.Before(today) {
			errs["dueDate"] = "Due date cannot be in the past"
		}
	}

	return errs
}
