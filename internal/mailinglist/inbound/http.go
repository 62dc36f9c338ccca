package inbound

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/samber/lo"
	"github.com/shandysiswandi/mailinglist/internal/mailinglist/entity"
	"github.com/shandysiswandi/mailinglist/internal/pkg/either"
	"github.com/shandysiswandi/mailinglist/internal/pkg/stacktrace"
	"github.com/shandysiswandi/mailinglist/internal/pkg/validator"
)

var registerFields = []string{"name", "email"}

type uc interface {
	Perform(ctx context.Context, in entity.UserData) (either.Either[error, entity.UserData], error)
}

// RegisterController turns a registration request into an HTTP status and body.
type RegisterController struct {
	uc       uc
	validate validator.Validator
}

func NewRegisterController(uc uc, validate validator.Validator) *RegisterController {
	return &RegisterController{uc: uc, validate: validate}
}

// Handle never fails: every outcome, including a panic in the use case, is
// mapped to a response.
func (c *RegisterController) Handle(ctx context.Context, req HTTPRequest) (resp HTTPResponse) {
	defer func() {
		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic while registering user", "because", rvr, "stack", stacktrace.InternalPaths(debug.Stack()))
			resp = serverError(fmt.Errorf("panic: %v", rvr))
		}
	}()

	in, err := c.parse(req)
	if err != nil {
		var errMissing *MissingParamError
		if errors.As(err, &errMissing) {
			return HTTPResponse{StatusCode: statusFor(errMissing), Body: errMissing}
		}
		slog.ErrorContext(ctx, "failed to validate register request", "error", err)
		return serverError(err)
	}

	result, err := c.uc.Perform(ctx, in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to register user", "error", err)
		return serverError(err)
	}

	if result.IsLeft() {
		errResult := result.Left()
		return HTTPResponse{StatusCode: statusFor(errResult), Body: errResult}
	}

	data := result.Right()
	return HTTPResponse{
		StatusCode: http.StatusOK,
		Body:       RegisterResponse{Name: data.Name, Email: data.Email},
	}
}

func (c *RegisterController) parse(req HTTPRequest) (entity.UserData, error) {
	var in RegisterRequest
	if name, ok := req.Body["name"].(string); ok {
		in.Name = &name
	}
	if email, ok := req.Body["email"].(string); ok {
		in.Email = &email
	}

	if err := c.validate.Validate(in); err != nil {
		var errValidate validator.V10ValidationError
		if !errors.As(err, &errValidate) {
			return entity.UserData{}, err
		}

		return entity.UserData{}, &MissingParamError{
			Params: lo.Filter(registerFields, func(field string, _ int) bool {
				_, missing := errValidate[field]
				return missing
			}),
		}
	}

	return entity.UserData{Name: *in.Name, Email: *in.Email}, nil
}

// statusFor is the single place deciding how failures surface over HTTP.
// A mail transport failure is the server's problem, not the caller's.
func statusFor(err error) int {
	var (
		errName    *entity.InvalidNameError
		errEmail   *entity.InvalidEmailError
		errMissing *MissingParamError
		errMail    *entity.MailServiceError
	)

	switch {
	case errors.As(err, &errName), errors.As(err, &errEmail), errors.As(err, &errMissing):
		return http.StatusBadRequest
	case errors.As(err, &errMail):
		// The user is already stored; the failed send is still a server error.
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

func serverError(err error) HTTPResponse {
	return HTTPResponse{
		StatusCode: http.StatusInternalServerError,
		Body:       &ServerError{Err: err},
	}
}
