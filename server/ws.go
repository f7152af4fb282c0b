package server

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/VivianChencwy/bikewatching/formatter"
	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

// sliderRequest is sent by the client whenever the slider moves.
// Minute wins over Time. Neither means no filter.
type sliderRequest struct {
	Minute *int   `json:"minute"`
	Time   string `json:"time"`
}

type sliderReply struct {
	Error string `json:"error,omitempty"`
	*formatter.TrafficResponse
}

func (req sliderRequest) minute() (int, error) {
	if req.Minute != nil {
		return checkMinute(*req.Minute)
	}
	if t := strings.TrimSpace(req.Time); t != "" {
		m, err := utils.ParseClock(t)
		if err != nil {
			return 0, &QueryError{Msg: err.Error()}
		}
		return m, nil
	}
	return traffic.NoFilter, nil
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	for {
		var req sliderRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("websocket read: %v", err)
			}
			return
		}
		if err := conn.WriteJSON(s.sliderReply(req)); err != nil {
			log.Printf("websocket write: %v", err)
			return
		}
	}
}

func (s *Server) sliderReply(req sliderRequest) sliderReply {
	minute, err := req.minute()
	if err != nil {
		return sliderReply{Error: err.Error()}
	}
	snap := s.Snapshot()
	if snap == nil {
		return sliderReply{Error: ErrNoSnapshot.Error()}
	}
	sc := s.cache.scatter(snap, minute)
	return sliderReply{TrafficResponse: formatter.WrapTrafficResponse(sc, snap.System, snap.ID.String(), time.Now())}
}
