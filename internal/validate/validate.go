package validate

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalid = errors.New("invalid")
	isbnRe     = regexp.MustCompile(`^(?:\d{10}|\d{13})$`)
)

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// Errors collects field errors; the zero value is ready to use.
type Errors []FieldError

func (e *Errors) Add(field, typ, msg string) {
	*e = append(*e, FieldError{Field: field, Type: typ, Message: msg})
}

func (e Errors) Any() bool { return len(e) > 0 }

// Text trims surrounding whitespace and applies NFC so lengths and
// comparisons are stable regardless of how the client composed characters.
func Text(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// RequireBounded normalizes and ensures length bounds.
func RequireBounded(name, s string, min, max int) (string, error) {
	s = Text(s)
	if n := utf8.RuneCountInString(s); n < min || n > max {
		return "", errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max) + " characters")
	}
	return s, nil
}

// MaxLen normalizes and ensures an upper length bound.
func MaxLen(name, s string, max int) (string, error) {
	s = Text(s)
	if utf8.RuneCountInString(s) > max {
		return "", errors.New(name + " must be at most " + strconv.Itoa(max) + " characters")
	}
	return s, nil
}

// ISBN accepts exactly 10 or 13 ASCII digits.
func ISBN(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !isbnRe.MatchString(s) {
		return "", errors.New("isbn must consist of exactly 10 or 13 digits")
	}
	return s, nil
}

// IntRange ensures min <= v <= max.
func IntRange(name string, v, min, max int) error {
	if v < min || v > max {
		return errors.New(name + " must be between " + strconv.Itoa(min) + " and " + strconv.Itoa(max))
	}
	return nil
}

// ParseBool accepts the usual query-string spellings of a boolean.
func ParseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "t", "yes", "y", "on":
		return true, nil
	case "0", "false", "f", "no", "n", "off":
		return false, nil
	}
	return false, ErrInvalid
}

// ParseInt parses a base-10 integer query value.
func ParseInt(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, ErrInvalid
	}
	return n, nil
}
