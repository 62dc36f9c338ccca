package inbound

import (
	"context"
	"errors"
	"net/http"

	"github.com/shandysiswandi/mailinglist/internal/pkg/goerror"
	"github.com/shandysiswandi/mailinglist/internal/pkg/router"
	"github.com/shandysiswandi/mailinglist/internal/pkg/validator"
)

// HealthChecker reports whether the subscriber store is reachable.
type HealthChecker func(ctx context.Context) error

// HTTPEndpoint adapts the controller and the health probe to HTTP.
type HTTPEndpoint struct {
	controller *RegisterController
	health     HealthChecker
}

// RegisterHTTPEndpoint mounts the mailing-list routes. mws wrap only the
// registration route.
func RegisterHTTPEndpoint(r *router.Router, uc uc, validate validator.Validator, health HealthChecker, mws ...router.Middleware) {
	end := &HTTPEndpoint{
		controller: NewRegisterController(uc, validate),
		health:     health,
	}

	r.POSTRaw("/api/register", http.HandlerFunc(end.Register), mws...)
	r.GET("/health", end.Health)
}

// Register decodes a JSON object body and writes whatever the controller answers.
// @Summary Subscribe to the mailing list
// @Tags MailingList
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Subscriber"
// @Success 200 {object} RegisterResponse
// @Failure 400 {object} MissingParamError "Missing parameter, invalid name or invalid email"
// @Failure 500 {object} ServerError
// @Router /api/register [post]
func (h *HTTPEndpoint) Register(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	err := (&router.Request{Request: r}).DecodeBody(&body)
	if err == nil && body == nil {
		err = goerror.NewInvalidFormat()
	}
	if err != nil {
		var gerr *goerror.Error
		if errors.As(err, &gerr) {
			router.WriteJSON(w, map[string]string{"message": gerr.Msg()}, gerr.StatusCode())
			return
		}
		router.WriteJSON(w, map[string]string{"message": "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := h.controller.Handle(r.Context(), HTTPRequest{Body: body})
	router.WriteJSON(w, resp.Body, resp.StatusCode)
}

// Health pings the subscriber store.
// @Summary Health check
// @Tags MailingList
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} router.errorResponse "Store unreachable"
// @Router /health [get]
func (h *HTTPEndpoint) Health(r *router.Request) (any, error) {
	if h.health != nil {
		if err := h.health(r.Context()); err != nil {
			return nil, goerror.NewUnavailable(err)
		}
	}

	return HealthResponse{Status: "up"}, nil
}
