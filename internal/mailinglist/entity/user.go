package entity

import "github.com/shandysiswandi/mailinglist/internal/pkg/either"

// UserData is the plain projection of a User used at the boundaries
// (HTTP payloads, persistence, mail).
type UserData struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
}

// User is a mailing-list subscriber. It can only be obtained through NewUser,
// so every User holds a valid Name and Email.
type User struct {
	name  Name
	email Email
}

// NewUser validates data into a User. The name is checked first, so when both
// fields are invalid the name error is the one returned.
func NewUser(data UserData) either.Either[error, User] {
	nameOrErr := NewName(data.Name)
	if nameOrErr.IsLeft() {
		return either.Left[error, User](nameOrErr.Left())
	}

	emailOrErr := NewEmail(data.Email)
	if emailOrErr.IsLeft() {
		return either.Left[error, User](emailOrErr.Left())
	}

	return either.Right[error](User{name: nameOrErr.Right(), email: emailOrErr.Right()})
}

func (u User) Name() Name {
	return u.name
}

func (u User) Email() Email {
	return u.email
}

// Data projects u back to its boundary shape.
func (u User) Data() UserData {
	return UserData{Name: u.name.Value(), Email: u.email.Value()}
}
