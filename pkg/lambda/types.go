package lambda

import (
	"encoding/json"
	"strings"
)

// Request represents a generic HTTP request for serverless functions
type Request struct {
	Method      string            `json:"method"`
	Path        string            `json:"path"`
	Headers     map[string]string `json:"headers"`
	QueryParams map[string]string `json:"query_params"`
	Body        []byte            `json:"body"`
	PathParams  map[string]string `json:"path_params"`

	// Identity is the authenticated user's stable identifier, extracted
	// from the request token by the entrypoint. Empty on public routes.
	Identity string `json:"identity,omitempty"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(req *Request) (*Response, error)

// Header returns a request header value regardless of the casing API Gateway
// delivered it with.
func (r *Request) Header(name string) string {
	if r.Headers == nil {
		return ""
	}
	if v, ok := r.Headers[name]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// PathParam returns a path parameter value or an empty string.
func (r *Request) PathParam(name string) string {
	if r.PathParams == nil {
		return ""
	}
	return r.PathParams[name]
}

// QueryParam returns a query parameter value or an empty string.
func (r *Request) QueryParam(name string) string {
	if r.QueryParams == nil {
		return ""
	}
	return r.QueryParams[name]
}

type defaultMessage struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

// NewResponse builds the uniform response envelope used by every handler.
// A message on a 2xx-3xx status goes under "message", on any other status
// under "error". When a payload is given it becomes the body as-is and the
// message is ignored.
func NewResponse(statusCode int, message string, payload any) *Response {
	var body []byte

	if payload != nil {
		body, _ = json.Marshal(payload)
	} else {
		msg := defaultMessage{}
		if message != "" && statusCode >= 200 && statusCode <= 399 {
			msg.Message = message
		} else if message != "" {
			msg.Error = message
		}
		body, _ = json.Marshal(msg)
	}

	return &Response{
		StatusCode: statusCode,
		Headers:    map[string]string{"content-type": "application/json"},
		Body:       body,
	}
}

// Message builds an envelope carrying only a message.
func Message(statusCode int, message string) *Response {
	return NewResponse(statusCode, message, nil)
}

// Error builds an error envelope.
func Error(statusCode int, message string) *Response {
	return NewResponse(statusCode, message, nil)
}

// JSON builds an envelope carrying a payload object.
func JSON(statusCode int, payload any) *Response {
	return NewResponse(statusCode, "", payload)
}
