package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/VivianChencwy/bikewatching/dataset"
	"github.com/VivianChencwy/bikewatching/formatter"
	"github.com/VivianChencwy/bikewatching/lanes"
	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

type healthResponse struct {
	Status      string `json:"status"`
	System      string `json:"system"`
	SnapshotID  string `json:"snapshot_id,omitempty"`
	LoadedAt    string `json:"loaded_at,omitempty"`
	Stations    int    `json:"stations"`
	Trips       int    `json:"trips"`
	SkippedRows int    `json:"skipped_rows"`
	LaneLayers  int    `json:"lane_layers"`
	CachedWins  int    `json:"cached_windows"`
}

type stationResponse struct {
	ResponseTimestamp string         `json:"response_timestamp"`
	System            string         `json:"system"`
	SnapshotID        string         `json:"snapshot_id"`
	Minute            int            `json:"minute"`
	TimeLabel         string         `json:"time_label"`
	Station           traffic.Marker `json:"station"`
}

type lanesResponse struct {
	System string          `json:"system"`
	Lanes  []lanes.Summary `json:"lanes"`
}

// current returns the snapshot or writes a 503
func (s *Server) current(w http.ResponseWriter) (*dataset.Snapshot, bool) {
	snap := s.Snapshot()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, ErrNoSnapshot.Error())
		return nil, false
	}
	return snap, true
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.Snapshot()
	if snap == nil {
		writeJSONStatus(w, http.StatusServiceUnavailable, healthResponse{Status: "loading", System: s.system.Name})
		return
	}
	writeJSON(w, healthResponse{
		Status:      "ok",
		System:      snap.System,
		SnapshotID:  snap.ID.String(),
		LoadedAt:    utils.Iso8601FromTime(snap.LoadedAt),
		Stations:    len(snap.Stations),
		Trips:       len(snap.Trips),
		SkippedRows: snap.TripStats.Skipped,
		LaneLayers:  len(snap.Lanes),
		CachedWins:  s.cache.len(),
	})
}

func (s *Server) handleStations(w http.ResponseWriter, r *http.Request) {
	minute, err := parseMinute(r.URL.Query())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	format, err := negotiateFormat(r)
	if err != nil {
		writeQueryError(w, err)
		return
	}
	snap, ok := s.current(w)
	if !ok {
		return
	}

	res := formatter.WrapTrafficResponse(s.cache.scatter(snap, minute), snap.System, snap.ID.String(), time.Now())
	rb := formatter.NewResponseBuilder()
	switch format {
	case formatText:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write(rb.BuildText(res))
	case formatProto:
		buf, err := rb.BuildProto(res)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/x-protobuf")
		_, _ = w.Write(buf)
	default:
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(rb.BuildJSON(res))
	}
}

func (s *Server) handleStation(w http.ResponseWriter, r *http.Request) {
	minute, err := parseMinute(r.URL.Query())
	if err != nil {
		writeQueryError(w, err)
		return
	}
	snap, ok := s.current(w)
	if !ok {
		return
	}
	id := mux.Vars(r)["id"]
	st, found := snap.Station(id, minute)
	if !found {
		writeError(w, http.StatusNotFound, "No such station: "+id)
		return
	}
	sc := traffic.BuildScatter([]traffic.Station{st}, minute, snap.DomainMax())
	writeJSON(w, stationResponse{
		ResponseTimestamp: utils.Iso8601Now(),
		System:            snap.System,
		SnapshotID:        snap.ID.String(),
		Minute:            minute,
		TimeLabel:         sc.TimeLabel,
		Station:           sc.Markers[0],
	})
}

func (s *Server) handleLanes(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.current(w)
	if !ok {
		return
	}
	writeJSON(w, lanesResponse{System: snap.System, Lanes: snap.LaneSummaries()})
}

func (s *Server) handleLane(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.current(w)
	if !ok {
		return
	}
	name := mux.Vars(r)["name"]
	layer, found := snap.Lane(name)
	if !found {
		writeError(w, http.StatusNotFound, "No such lane layer: "+name)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	_, _ = w.Write(layer.Raw)
}

func writeQueryError(w http.ResponseWriter, err error) {
	var qe *QueryError
	if errors.As(err, &qe) {
		writeError(w, http.StatusBadRequest, qe.Msg)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}
