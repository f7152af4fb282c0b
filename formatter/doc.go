// Package formatter provides response wrapping and serialization for traffic responses.
//
// This package is organized into:
// - wrapper.go: the response envelope
// - json.go: JSON serialization
// - text.go: plain text, one station per line
// - proto.go: protobuf wire encoding through structpb
package formatter
