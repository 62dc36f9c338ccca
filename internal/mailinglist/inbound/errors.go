package inbound

import (
	"encoding/json"
	"strings"
)

// MissingParamError lists required body fields that were absent or not strings.
type MissingParamError struct {
	Params []string
}

func (e *MissingParamError) Error() string {
	return "Missing parameter from request: " + strings.Join(e.Params, " ")
}

func (e *MissingParamError) Name() string {
	return "MissingParamError"
}

func (e *MissingParamError) MarshalJSON() ([]byte, error) {
	return marshalError(e.Name(), e.Error())
}

// ServerError hides an unexpected fault from the client.
type ServerError struct {
	Err error
}

func (e *ServerError) Error() string {
	return "Internal server error."
}

func (e *ServerError) Name() string {
	return "ServerError"
}

func (e *ServerError) Unwrap() error {
	return e.Err
}

func (e *ServerError) MarshalJSON() ([]byte, error) {
	return marshalError(e.Name(), e.Error())
}

func marshalError(name, message string) ([]byte, error) {
	return json.Marshal(struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}{Name: name, Message: message})
}
