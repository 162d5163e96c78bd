package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ib-77/rop3/pkg/rop"
	"github.com/ib-77/rop3/pkg/rop/solo"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Processor runs a mapping through the business transform.
// *service.CoreService satisfies it.
type Processor interface {
	ProcessData(ctx context.Context, in types.Mapping) types.Mapping
}

// Snapshotter exposes the stored entries. *model.DataModel satisfies it.
type Snapshotter interface {
	Snapshot() types.Mapping
}

// Handlers binds the request handlers to the service and model.
type Handlers struct {
	processor Processor
	store     Snapshotter
}

// NewHandlers returns Handlers over processor and store.
func NewHandlers(processor Processor, store Snapshotter) *Handlers {
	return &Handlers{processor: processor, store: store}
}

// Health reports liveness.
func (h *Handlers) Health(ctx context.Context, req Request) rop.Result[Response] {
	return rop.Success(Response{
		Method:  http.MethodGet,
		Status:  StatusOK,
		Message: "Service is healthy",
	})
}

// Get returns the stored entries as data.
func (h *Handlers) Get(ctx context.Context, req Request) rop.Result[Response] {
	return rop.Success(Response{
		Method:  http.MethodGet,
		Status:  StatusSuccess,
		Data:    valuePtr(types.Map(h.store.Snapshot())),
		Message: "GET request processed successfully",
	})
}

// Post decodes the body as a JSON object, echoes it as received_data, and
// returns the processed mapping as data. An empty body is the empty
// object. A body that is not a JSON object yields a failure result.
func (h *Handlers) Post(ctx context.Context, req Request) rop.Result[Response] {
	posted := solo.Try(ctx, rop.Success(req.Body), decodeBody)
	return solo.Map(ctx, posted, func(ctx context.Context, in types.Mapping) Response {
		return Response{
			Method:       http.MethodPost,
			Status:       StatusSuccess,
			ReceivedData: in,
			Data:         valuePtr(types.Map(h.processor.ProcessData(ctx, in.Clone()))),
			Message:      "POST request processed successfully",
		}
	})
}

func decodeBody(_ context.Context, body []byte) (types.Mapping, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return types.Mapping{}, nil
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedBody)
	}
	var m types.Mapping
	if err := m.UnmarshalJSON(body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	return m, nil
}
