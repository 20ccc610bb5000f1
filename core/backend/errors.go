package backend

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// RequestError is a non-success response from the remote service, carrying
// the service's human-readable detail message when the body had one.
type RequestError struct {
	StatusCode int
	Detail     string
}

func (e *RequestError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

// maxErrorBodySize bounds how much of an error body is read for the detail
// message.
const maxErrorBodySize = 1 << 20

// newRequestError extracts the detail message from an error response body.
// Unparseable bodies fall back to the bare status code message.
func newRequestError(resp *http.Response) error {
	requestError := &RequestError{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
	if err != nil {
		return requestError
	}

	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		requestError.Detail = parsed.Detail
	}

	return requestError
}
