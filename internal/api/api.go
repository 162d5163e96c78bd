// Package api holds satchel's in-process request handlers and the routing
// table that dispatches to them. Nothing here listens on a socket; callers
// build a Request and receive a Response.
package api

import (
	"context"
	"errors"
	"fmt"

	"github.com/ib-77/rop3/pkg/rop"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Response statuses.
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusOK      = "OK"
)

// Dispatch and handler errors.
var (
	ErrRouteNotFound  = errors.New("route not found")
	ErrRouteExists    = errors.New("route already registered")
	ErrInvalidRoute   = errors.New("route path and method must not be empty")
	ErrRateLimited    = errors.New("rate limit exceeded")
	ErrMalformedBody  = errors.New("malformed request body")
	ErrNilHandlerFunc = errors.New("handler must not be nil")
)

// Request is a request-like value handed to a handler. ID is filled in by
// the Router when empty.
type Request struct {
	ID     string
	Method string
	Path   string
	Body   []byte
}

// Response is the mapping a handler produces. Data and ReceivedData are
// only emitted when non-nil; Error only when non-empty.
type Response struct {
	Method       string
	Status       string
	Data         *types.Value
	ReceivedData types.Mapping
	Error        string
	Message      string
}

// HandlerFunc turns a request into a success or failure result. Handlers
// report failures through the result and never panic.
type HandlerFunc func(ctx context.Context, req Request) rop.Result[Response]

// ToMapping returns r in its wire shape.
func (r Response) ToMapping() types.Mapping {
	m := types.Mapping{
		"method": types.String(r.Method),
		"status": types.String(r.Status),
	}
	if r.Data != nil {
		m["data"] = *r.Data
	}
	if r.ReceivedData != nil {
		m["received_data"] = types.Map(r.ReceivedData)
	}
	if r.Error != "" {
		m["error"] = types.String(r.Error)
	}
	if r.Message != "" {
		m["message"] = types.String(r.Message)
	}
	return m
}

// MarshalJSON encodes r as its mapping.
func (r Response) MarshalJSON() ([]byte, error) {
	return r.ToMapping().MarshalJSON()
}

// IsError reports whether r carries the error shape.
func (r Response) IsError() bool {
	return r.Status == StatusError
}

// ErrorResponse shapes err as the response for a failed method call.
func ErrorResponse(method string, err error) Response {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return Response{
		Method:  method,
		Status:  StatusError,
		Error:   msg,
		Message: fmt.Sprintf("Error processing %s request", method),
	}
}

func valuePtr(v types.Value) *types.Value {
	return &v
}
