package formatter

import (
	"encoding/json"
)

type responseBuilder struct{}

func newResponseBuilder() *responseBuilder { return &responseBuilder{} }

// NewResponseBuilder creates a new response builder for formatting traffic responses
func NewResponseBuilder() *responseBuilder {
	return newResponseBuilder()
}

// BuildJSON serializes a traffic response to JSON
func (rb *responseBuilder) BuildJSON(res *TrafficResponse) []byte {
	b, _ := json.Marshal(res)
	return b
}
