package gateway

import (
	"context"
	"fmt"
	"math"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/Cyclone1070/devgate/internal/tool"
	"github.com/Cyclone1070/devgate/internal/tool/errutil"
)

// decode maps loosely typed call parameters onto a request struct.
// Unknown keys are ignored; values must already have the right type.
func decode[Req any](params map[string]any) (*Req, error) {
	req := new(Req)
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           req,
		TagName:          "mapstructure",
		DecodeHook:       integralFloatHook,
		ErrorUnused:      false,
		WeaklyTypedInput: false,
	})
	if err != nil {
		return nil, errutil.Wrap(err, "Failed to build parameter decoder")
	}
	if err := decoder.Decode(params); err != nil {
		return nil, errutil.InvalidParameters("Invalid parameters: %v", err)
	}
	return req, nil
}

// integralFloatHook rejects fractional numbers bound for integer fields.
// JSON numbers arrive as float64, and mapstructure would truncate them.
func integralFloatHook(from, to reflect.Kind, data any) (any, error) {
	if from != reflect.Float32 && from != reflect.Float64 {
		return data, nil
	}
	switch to {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
	default:
		return data, nil
	}
	if f := reflect.ValueOf(data).Float(); f != math.Trunc(f) {
		return nil, fmt.Errorf("expected an integer, got %v", data)
	}
	return data, nil
}

// handler is the shape every tool entry point shares.
type handler[Req any] func(ctx context.Context, req *Req) ([]tool.Content, error)

// call decodes params and invokes h.
func call[Req any](ctx context.Context, params map[string]any, h handler[Req]) ([]tool.Content, error) {
	req, err := decode[Req](params)
	if err != nil {
		return nil, err
	}
	return h(ctx, req)
}
