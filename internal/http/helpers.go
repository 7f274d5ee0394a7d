package http

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/goliatone/go-notes/internal/documents"
)

const (
	messageInvalidPath = "Invalid path"
	messageNotFound    = "File not found"
)

type errorResponse struct {
	Error string `json:"error"`
}

func joinPath(base, suffix string) string {
	trimmedBase := strings.TrimSpace(base)
	trimmedSuffix := strings.TrimSpace(suffix)
	if trimmedBase == "" {
		if trimmedSuffix == "" {
			return "/"
		}
		return "/" + strings.Trim(trimmedSuffix, "/")
	}
	baseClean := "/" + strings.Trim(trimmedBase, "/")
	if trimmedSuffix == "" {
		return baseClean
	}
	return baseClean + "/" + strings.Trim(trimmedSuffix, "/")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	if w == nil {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	status, payload := mapError(err)
	writeJSON(w, status, payload)
}

func mapError(err error) (int, errorResponse) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, errorResponse{Error: "unknown error"}
	case documents.IsInvalidPath(err):
		return http.StatusBadRequest, errorResponse{Error: messageInvalidPath}
	case documents.IsNotFound(err):
		return http.StatusNotFound, errorResponse{Error: messageNotFound}
	default:
		return http.StatusInternalServerError, errorResponse{Error: documents.FailureMessage(err)}
	}
}

func wantsHTML(r *http.Request) bool {
	if r == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(r.URL.Query().Get("render")), "html")
}
