// Package service implements CoreService, which runs input mappings through
// the model's transform and logs around it.
package service

import (
	"context"
	"log/slog"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Transformer applies the business transform to a mapping.
// *model.DataModel satisfies it.
type Transformer interface {
	Transform(in types.Mapping) types.Mapping
}

// SampleInput is the mapping RunSample processes.
var SampleInput = types.Mapping{
	"key":    types.String("value"),
	"number": types.Int(42),
}

// CoreService orchestrates processing. It holds no state of its own.
type CoreService struct {
	model  Transformer
	logger *slog.Logger
}

// New returns a CoreService over model. A nil logger discards output.
func New(model Transformer, logger *slog.Logger) *CoreService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CoreService{model: model, logger: logger}
}

// ProcessData logs receipt of in, delegates to the model's Transform, logs
// the result, and returns it. Failures from the model are not caught.
func (s *CoreService) ProcessData(ctx context.Context, in types.Mapping) types.Mapping {
	s.logger.InfoContext(ctx, "processing data", "data", in)
	result := s.model.Transform(in)
	s.logger.InfoContext(ctx, "data processed", "result", result)
	return result
}

// RunSample processes SampleInput.
func (s *CoreService) RunSample(ctx context.Context) types.Mapping {
	return s.ProcessData(ctx, SampleInput.Clone())
}
