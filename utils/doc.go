// Package utils provides small helpers shared across the bikewatching packages.
//
// It contains:
//   - Minute-of-day parsing and en-US time labels for the time slider
//   - ISO8601 timestamp formatting for response envelopes
//   - Great-circle distance helpers for lane geometry
package utils
