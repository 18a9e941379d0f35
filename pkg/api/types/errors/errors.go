package errors

// Envelope is implemented by every response body of the burger API.
//
// The API marks successful responses with `"success": true`.
// A body without the marker is a failure, even when it is delivered with 2xx status.
type Envelope interface {
	Succeeded() bool
}

// ErrorResponse is the body the API sends when it rejects a request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e ErrorResponse) Succeeded() bool {
	return e.Success
}

func (e ErrorResponse) Error() string {
	return e.Message
}
