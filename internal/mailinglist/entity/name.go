package entity

import (
	"strings"
	"unicode/utf8"

	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
)

const (
	nameMinLength = 2
	nameMaxLength = 256
)

// Name is a validated, trimmed subscriber name.
type Name struct {
	value string
}

// NewName trims raw and checks its length against the allowed bounds.
func NewName(raw string) either.Either[error, Name] {
	trimmed := strings.TrimSpace(raw)

	n := utf8.RuneCountInString(trimmed)
	if n < nameMinLength || n > nameMaxLength {
		return either.Left[error, Name](&InvalidNameError{Value: raw})
	}

	return either.Right[error](Name{value: trimmed})
}

func (n Name) Value() string {
	return n.value
}
