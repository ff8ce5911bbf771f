package apiclient

import (
	"encoding/json"
	"fmt"
)

// TransportError reports a call that produced no response: the backend was
// unreachable, the request timed out or the context was cancelled.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport failure: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ResponseError reports a non-2xx response. Payload holds the decoded JSON
// body when the backend sent one.
type ResponseError struct {
	Op         string
	StatusCode int
	Body       []byte
	Payload    any
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
}

// Detail returns the "detail" member of an object payload, or nil.
func (e *ResponseError) Detail() any {
	obj, ok := e.Payload.(map[string]any)
	if !ok {
		return nil
	}
	return obj["detail"]
}

// DecodeError reports a 2xx response whose body could not be read or
// decoded.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func newResponseError(op string, status int, body []byte) *ResponseError {
	respErr := &ResponseError{Op: op, StatusCode: status, Body: body}
	if len(body) > 0 {
		var payload any
		if err := json.Unmarshal(body, &payload); err == nil {
			respErr.Payload = payload
		}
	}
	return respErr
}
