package service

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/model"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// recordingTransformer counts calls and returns a fixed result.
type recordingTransformer struct {
	calls  int
	result types.Mapping
}

func (r *recordingTransformer) Transform(in types.Mapping) types.Mapping {
	r.calls++
	return r.result
}

// panickingTransformer stands in for a model that fails mid-transform.
type panickingTransformer struct{}

func (panickingTransformer) Transform(types.Mapping) types.Mapping {
	panic("transform failed")
}

func TestProcessData(t *testing.T) {
	svc := New(model.New(), nil)

	got := svc.ProcessData(context.Background(), types.Mapping{"x": types.Int(1)})
	assert.True(t, got.Equal(types.Mapping{
		"x":                types.Int(1),
		types.ProcessedKey: types.Bool(true),
	}))
}

func TestProcessDataDelegates(t *testing.T) {
	rec := &recordingTransformer{result: types.Mapping{"from": types.String("model")}}
	svc := New(rec, nil)

	got := svc.ProcessData(context.Background(), types.Mapping{"in": types.Int(1)})
	assert.Equal(t, 1, rec.calls)
	assert.True(t, got.Equal(rec.result))
}

func TestProcessDataDoesNotRecover(t *testing.T) {
	svc := New(panickingTransformer{}, nil)
	assert.PanicsWithValue(t, "transform failed", func() {
		svc.ProcessData(context.Background(), types.Mapping{})
	})
}

func TestProcessDataLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	svc := New(model.New(), logger)

	svc.ProcessData(context.Background(), types.Mapping{"test": types.String("data")})

	out := buf.String()
	assert.Contains(t, out, "processing data")
	assert.Contains(t, out, "data processed")
	assert.Contains(t, out, `"processed\":true`)
}

func TestRunSample(t *testing.T) {
	svc := New(model.New(), nil)

	got := svc.RunSample(context.Background())
	require.Len(t, got, 3)
	assert.True(t, got["key"].Equal(types.String("value")))
	assert.True(t, got["number"].Equal(types.Int(42)))
	assert.True(t, got[types.ProcessedKey].Equal(types.Bool(true)))
	assert.Len(t, SampleInput, 2, "sample input is not mutated")
}
