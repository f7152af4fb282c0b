package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/VivianChencwy/bikewatching/traffic"
	"github.com/VivianChencwy/bikewatching/utils"
)

// QueryError is a request validation failure reported as 400
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

const (
	formatJSON  = "json"
	formatText  = "text"
	formatProto = "pb"
)

var validate = validator.New()

// parseMinute reads minute=N or time=HH:MM. Neither means no filter.
func parseMinute(q map[string][]string) (int, error) {
	if v := first(q, "minute"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			return 0, &QueryError{Msg: "minute must be an integer."}
		}
		return checkMinute(m)
	}
	if v := first(q, "time"); v != "" {
		m, err := utils.ParseClock(v)
		if err != nil {
			return 0, &QueryError{Msg: err.Error()}
		}
		return m, nil
	}
	return traffic.NoFilter, nil
}

func checkMinute(m int) (int, error) {
	if err := validate.Var(m, "gte=-1,lte=1439"); err != nil {
		return 0, &QueryError{Msg: "minute must be between -1 and 1439."}
	}
	return m, nil
}

// negotiateFormat picks an encoding from ?format= or the Accept header
func negotiateFormat(r *http.Request) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format"))); f {
	case formatJSON, formatText, formatProto:
		return f, nil
	case "":
	default:
		return "", &QueryError{Msg: "Unsupported format: " + f}
	}
	accept := r.Header.Get("Accept")
	switch {
	case strings.Contains(accept, "application/x-protobuf"), strings.Contains(accept, "application/protobuf"):
		return formatProto, nil
	case strings.Contains(accept, "text/plain"):
		return formatText, nil
	}
	return formatJSON, nil
}

func first(q map[string][]string, key string) string {
	if v := q[key]; len(v) > 0 {
		return strings.TrimSpace(v[0])
	}
	return ""
}

type errorPayload struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

func buildErrorPayload(status int, msg string) []byte {
	var e errorPayload
	e.Error.Status = status
	e.Error.Message = msg
	b, _ := json.Marshal(e)
	return b
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(buildErrorPayload(status, msg))
}

func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
