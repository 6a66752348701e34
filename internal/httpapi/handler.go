package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-projectinfo/projectinfo"
)

// Service is the part of projectinfo.Service the handlers call.
type Service interface {
	FindAll(ctx context.Context) ([]projectinfo.ProjectInfo, error)
	FindSearchPage(ctx context.Context, filter projectinfo.Filter, page, size int) (projectinfo.Page, error)
	FindSearch(ctx context.Context, filter projectinfo.Filter) ([]projectinfo.ProjectInfo, error)
	FindByID(ctx context.Context, id string) (projectinfo.ProjectInfo, error)
	Add(ctx context.Context, record projectinfo.ProjectInfo) (projectinfo.ProjectInfo, error)
	Update(ctx context.Context, record projectinfo.ProjectInfo) error
	DeleteByID(ctx context.Context, id string) error
	DeleteAllByIDs(ctx context.Context, ids []string) error
	FindByProjectName(ctx context.Context, name string) (*projectinfo.ProjectInfo, error)
	FindIDAndProjectName(ctx context.Context) (map[string]string, error)
	FindByDepartmentIDAndProjectName(ctx context.Context, departmentID, name string) (*projectinfo.ProjectInfo, error)
}

var _ Service = (*projectinfo.Service)(nil)

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

// Handler serves the project info endpoints.
type Handler struct {
	svc    Service
	logger *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(svc Service, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// DeleteBatchRequest lists the ids removed by a batch delete.
type DeleteBatchRequest struct {
	IDs []string `json:"ids"`
}

// List returns every project.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.FindAll(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "query succeeded", records)
}

// Get returns one project by id.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.svc.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "query succeeded", record)
}

// Create adds a project and returns it with its assigned id.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var record projectinfo.ProjectInfo
	if !h.decode(w, r, &record) {
		return
	}

	saved, err := h.svc.Add(r.Context(), record)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	created(w, "add succeeded", saved)
}

// Update replaces the project addressed by the path id.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var record projectinfo.ProjectInfo
	if !h.decode(w, r, &record) {
		return
	}
	record.ID = chi.URLParam(r, "id")

	if err := h.svc.Update(r.Context(), record); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "update succeeded", nil)
}

// Delete removes the project addressed by the path id.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteByID(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "delete succeeded", nil)
}

// DeleteBatch removes every id listed in the body.
func (h *Handler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	var req DeleteBatchRequest
	if !h.decode(w, r, &req) {
		return
	}
	if len(req.IDs) == 0 {
		fail(w, http.StatusBadRequest, "ids are required")
		return
	}

	if err := h.svc.DeleteAllByIDs(r.Context(), req.IDs); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "delete succeeded", nil)
}

// Search returns every project matching the filter in the body.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	filter, done := h.filter(w, r)
	if done {
		return
	}

	records, err := h.svc.FindSearch(r.Context(), filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "query succeeded", records)
}

// SearchPage returns one page of the projects matching the filter in the body.
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(chi.URLParam(r, "page"))
	if err != nil {
		fail(w, http.StatusBadRequest, "page must be a number")
		return
	}
	size, err := strconv.Atoi(chi.URLParam(r, "size"))
	if err != nil {
		fail(w, http.StatusBadRequest, "size must be a number")
		return
	}

	filter, done := h.filter(w, r)
	if done {
		return
	}

	result, err := h.svc.FindSearchPage(r.Context(), filter, page, size)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "query succeeded", PageResult{Total: result.Total, Rows: result.Rows})
}

// Names returns project names keyed by id.
func (h *Handler) Names(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.FindIDAndProjectName(r.Context())
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	ok(w, "query succeeded", names)
}

// Lookup finds a project by name, scoped to a department when departmentid is given.
// A miss answers 200 with no data.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	name := query.Get("projectname")
	if name == "" {
		fail(w, http.StatusBadRequest, "projectname is required")
		return
	}

	var (
		record *projectinfo.ProjectInfo
		err    error
	)
	if departmentID := query.Get("departmentid"); departmentID != "" {
		record, err = h.svc.FindByDepartmentIDAndProjectName(r.Context(), departmentID, name)
	} else {
		record, err = h.svc.FindByProjectName(r.Context(), name)
	}
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if record == nil {
		ok(w, "query succeeded", nil)
		return
	}
	ok(w, "query succeeded", record)
}

// filter decodes an optional SearchRequest body. It reports true when a
// response has already been written.
func (h *Handler) filter(w http.ResponseWriter, r *http.Request) (projectinfo.Filter, bool) {
	var req projectinfo.SearchRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		bodyError(w, err)
		return projectinfo.Filter{}, true
	}

	filter, err := req.Filter()
	if err != nil {
		writeError(w, r, h.logger, err)
		return projectinfo.Filter{}, true
	}
	return filter, false
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		bodyError(w, err)
		return false
	}
	return true
}

func bodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	switch {
	case errors.As(err, &tooLarge):
		fail(w, http.StatusRequestEntityTooLarge, "request body too large")
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr):
		fail(w, http.StatusBadRequest, "invalid request body: "+err.Error())
	default:
		fail(w, http.StatusBadRequest, "invalid request body")
	}
}
