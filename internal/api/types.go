// Package api defines the shared request/response envelope types used by
// every HTTP handler in the service.
package api

// ErrorResponse is the JSON body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the JSON body returned for requests that succeed
// with a human-readable status message instead of a resource.
type MessageResponse struct {
	Message string `json:"message"`
}

// IDResponse carries the identifier of a created or updated resource.
type IDResponse struct {
	ID string `json:"id"`
}

// OtpResponse is returned when a one-time password has been generated.
// Token carries the generated code back to the caller.
type OtpResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}
