package formatter

import (
	"time"

	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

// TrafficResponse is the envelope returned for a scatter request
type TrafficResponse struct {
	ResponseTimestamp string          `json:"response_timestamp"`
	System            string          `json:"system"`
	SnapshotID        string          `json:"snapshot_id"`
	Scatter           traffic.Scatter `json:"scatter"`
}

// WrapTrafficResponse stamps a scatter with the response time and its source snapshot
func WrapTrafficResponse(sc traffic.Scatter, system, snapshotID string, at time.Time) *TrafficResponse {
	if at.IsZero() {
		at = time.Now()
	}
	if system == "" {
		system = "UNKNOWN"
	}
	return &TrafficResponse{
		ResponseTimestamp: utils.Iso8601FromTime(at),
		System:            system,
		SnapshotID:        snapshotID,
		Scatter:           sc,
	}
}
