package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/goliatone/go-projectinfo/cache"
	"github.com/goliatone/go-projectinfo/projectinfo"
)

// Result is the envelope every endpoint answers with. Code mirrors the HTTP status.
type Result struct {
	Flag    bool   `json:"flag"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// PageResult is the payload of paginated searches.
type PageResult struct {
	Total int                       `json:"total"`
	Rows  []projectinfo.ProjectInfo `json:"rows"`
}

func writeJSON(w http.ResponseWriter, status int, res Result) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

func ok(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusOK, Result{Flag: true, Code: http.StatusOK, Message: message, Data: data})
}

func created(w http.ResponseWriter, message string, data any) {
	writeJSON(w, http.StatusCreated, Result{Flag: true, Code: http.StatusCreated, Message: message, Data: data})
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Result{Flag: false, Code: status, Message: message})
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported without detail.
func writeError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case projectinfo.IsNotFound(err):
		fail(w, http.StatusNotFound, err.Error())
	case projectinfo.IsInvalid(err):
		fail(w, http.StatusBadRequest, err.Error())
	case cache.IsInvalidResultType(err):
		logger.ErrorContext(r.Context(), "cached value has an unexpected type",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		fail(w, http.StatusInternalServerError, "cache entry is corrupt")
	default:
		logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		fail(w, http.StatusInternalServerError, "internal server error")
	}
}
