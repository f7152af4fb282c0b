package formatter

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// BuildStruct converts a traffic response into a google.protobuf.Struct
func (rb *responseBuilder) BuildStruct(res *TrafficResponse) (*structpb.Struct, error) {
	raw, err := json.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to encode response: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	st, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return st, nil
}

// BuildProto serializes a traffic response as a wire-encoded google.protobuf.Struct
func (rb *responseBuilder) BuildProto(res *TrafficResponse) ([]byte, error) {
	st, err := rb.BuildStruct(res)
	if err != nil {
		return nil, err
	}
	return proto.Marshal(st)
}
