package entity

import (
	"regexp"
	"strings"

	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
)

const (
	emailMaxLength      = 256
	emailLocalMaxLength = 64
)

// local@domain.tld: no whitespace, a single '@', and dot separated domain
// labels that are never empty.
var reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@.]+(\.[^\s@.]+)+$`)

// Email is a syntactically valid email address. Deliverability is never checked.
type Email struct {
	value string
}

// NewEmail validates raw as an email address and keeps it as given.
func NewEmail(raw string) either.Either[error, Email] {
	if !validEmail(raw) {
		return either.Left[error, Email](&InvalidEmailError{Value: raw})
	}

	return either.Right[error](Email{value: raw})
}

func (e Email) Value() string {
	return e.value
}

func validEmail(s string) bool {
	if s == "" || len(s) > emailMaxLength {
		return false
	}

	local, _, ok := strings.Cut(s, "@")
	if !ok || len(local) > emailLocalMaxLength {
		return false
	}

	return reEmail.MatchString(s)
}
