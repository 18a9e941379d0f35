package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	cerr "github.com/stellarburgers/burger/cmd/burger/errors"
	apierr "github.com/stellarburgers/burger/pkg/api/types/errors"
)

var (
	// ErrTransport means the request did not get any response.
	ErrTransport = errors.New("cannot communicate with the burger API")

	// ErrRejected means the API responded, but refused the request.
	ErrRejected = errors.New("the burger API rejected the request")

	// ErrUnauthorized is a kind of ErrRejected, caused by missing or invalid credentials.
	ErrUnauthorized = fmt.Errorf("%w: not authorized", ErrRejected)
)

type MessageFor map[StatusCodeRange]string

func transportError(method string, url string, err error) error {
	return cerr.NewCuiError(
		ErrTransport.Error(),
		cerr.WithVerbose(method+" "+url),
		cerr.WithCause(errors.Join(ErrTransport, err)),
	)
}

// rejection builds an error carrying message as it is.
//
// message is what the server said, or a fallback of the client.
func rejection(message string, kind error, verbose string) error {
	return cerr.NewCuiError(
		message,
		cerr.WithVerbose(verbose),
		cerr.WithCause(kind),
	)
}

// unmarshal http response which has json content.
//
// args:
//   - resp: http response to be processed.
//   - v: value which response should be.
//   - messageFor: fallback message for HTTP status code range, used when the server says nothing.
//
// return:
//
//	error if...
//	- can not read response body (ErrTransport)
//	- status code is not 2xx (ErrRejected, or ErrUnauthorized for 401/403)
//	- response body is not shaped of v (ErrRejected)
//	- response body does not have `"success": true` (ErrRejected)
func unmarshalJsonResponse[T apierr.Envelope](resp *http.Response, v *T, messageFor MessageFor) error {
	verbose := fmt.Sprintf("%s %s (status code = %d)", resp.Request.Method, resp.Request.URL, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return transportError(resp.Request.Method, resp.Request.URL.String(), err)
	}

	scr := StatusCodeRangeOf(resp)
	if scr != Status2xx {
		message, ok := parseErrorMessage(body)
		if !ok {
			if message, ok = messageFor[scr]; !ok {
				message = scr.String()
			}
		}
		kind := ErrRejected
		if isUnauthorized(resp) {
			kind = ErrUnauthorized
		}
		return rejection(message, kind, verbose)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return cerr.NewCuiError(
			"unexpected response from the burger API",
			cerr.WithVerbose(verbose),
			cerr.WithCause(errors.Join(ErrRejected, err)),
		)
	}

	if !(*v).Succeeded() {
		message, ok := parseErrorMessage(body)
		if !ok {
			if message, ok = messageFor[Status2xx]; !ok {
				message = "the burger API reports failure"
			}
		}
		return rejection(message, ErrRejected, verbose)
	}
	return nil
}

// discard the rest of response body so that the connection can be reused.
func drain(resp *http.Response) {
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
}

// parseErrorMessage extracts `message` of the error body.
func parseErrorMessage(body []byte) (string, bool) {
	eresp := apierr.ErrorResponse{}
	if err := json.Unmarshal(body, &eresp); err != nil {
		return "", false
	}
	if eresp.Message == "" {
		return "", false
	}
	return eresp.Message, true
}
