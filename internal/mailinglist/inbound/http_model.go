package inbound

// HTTPRequest is the transport-neutral request handed to the controller.
type HTTPRequest struct {
	Body map[string]any
}

// HTTPResponse is the controller's answer; Body is JSON encoded as is.
type HTTPResponse struct {
	StatusCode int
	Body       any
}

// RegisterRequest is the required shape of a registration body. Pointers
// distinguish an absent field from an empty string.
type RegisterRequest struct {
	Name  *string `json:"name" validate:"required"`
	Email *string `json:"email" validate:"required"`
}

type RegisterResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func (HealthResponse) Message() string {
	return "ok"
}
