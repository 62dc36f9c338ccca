package entity

import "encoding/json"

// InvalidNameError reports a name that failed validation.
type InvalidNameError struct {
	Value string
}

func (e *InvalidNameError) Error() string {
	return "Invalid name: " + e.Value + "."
}

// Name returns the error kind as exposed to clients.
func (e *InvalidNameError) Name() string {
	return "InvalidNameError"
}

func (e *InvalidNameError) MarshalJSON() ([]byte, error) {
	return marshalError(e.Name(), e.Error())
}

// InvalidEmailError reports an email address that failed validation.
type InvalidEmailError struct {
	Value string
}

func (e *InvalidEmailError) Error() string {
	return "Invalid email: " + e.Value + "."
}

// Name returns the error kind as exposed to clients.
func (e *InvalidEmailError) Name() string {
	return "InvalidEmailError"
}

func (e *InvalidEmailError) MarshalJSON() ([]byte, error) {
	return marshalError(e.Name(), e.Error())
}

// MailServiceError reports that the mail transport refused or failed to
// deliver a message. The transport error is kept for logging only.
type MailServiceError struct {
	Err error
}

func (e *MailServiceError) Error() string {
	return "Mail service error."
}

// Name returns the error kind as exposed to clients.
func (e *MailServiceError) Name() string {
	return "MailServiceError"
}

func (e *MailServiceError) Unwrap() error {
	return e.Err
}

func (e *MailServiceError) MarshalJSON() ([]byte, error) {
	return marshalError(e.Name(), e.Error())
}

type errorBody struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func marshalError(name, msg string) ([]byte, error) {
	return json.Marshal(errorBody{Name: name, Message: msg})
}
