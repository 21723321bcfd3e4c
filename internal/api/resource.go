package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"journal-transporter/transporter/internal/auth"
	"journal-transporter/transporter/internal/common"
	"journal-transporter/transporter/internal/constants"
	"journal-transporter/transporter/internal/logging"
	"journal-transporter/transporter/internal/middleware"
	"journal-transporter/transporter/internal/models/dtos"
	"journal-transporter/transporter/internal/nested"
	"journal-transporter/transporter/internal/transport"

	"github.com/go-chi/chi/v5"
)

// ResourceHandler serves one importable entity as a nested collection.
type ResourceHandler struct {
	endpoint transport.Endpoint
}

func NewResourceHandler(endpoint transport.Endpoint) *ResourceHandler {
	return &ResourceHandler{endpoint: endpoint}
}

// List handles GET on a collection.
func (h *ResourceHandler) List(w http.ResponseWriter, r *http.Request) {
	initTime := time.Now()

	rows, err := h.endpoint.ListRecords(r.Context(), nested.FromRequest(r))
	if err != nil {
		respondImportError(w, r, initTime, h.endpoint.Name(), err)
		return
	}

	common.RespondSuccess(w, initTime, "", dtos.ListResponse{Count: len(rows), Results: rows})
}

// Create handles POST on a collection. A record that already existed is
// returned with 200 instead of 201.
func (h *ResourceHandler) Create(w http.ResponseWriter, r *http.Request) {
	initTime := time.Now()

	payload, files, err := transport.DecodeRequest(r)
	if err != nil {
		respondImportError(w, r, initTime, h.endpoint.Name(), err)
		return
	}

	out, created, err := h.endpoint.ImportRecord(r.Context(), transport.Request{
		Payload: payload,
		Lookups: nested.FromRequest(r),
		Files:   files,
	})
	if err != nil {
		respondImportError(w, r, initTime, h.endpoint.Name(), err)
		return
	}

	if created {
		common.RespondSuccess(w, initTime, constants.MsgRecordCreated, out, http.StatusCreated)
		return
	}
	common.RespondSuccess(w, initTime, constants.MsgRecordExists, out)
}

// Retrieve handles GET on a single record.
func (h *ResourceHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	initTime := time.Now()

	id, ok := itemID(r)
	if !ok {
		common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
		return
	}

	out, err := h.endpoint.RetrieveRecord(r.Context(), nested.FromRequest(r), id)
	if err != nil {
		respondImportError(w, r, initTime, h.endpoint.Name(), err)
		return
	}
	common.RespondSuccess(w, initTime, "", out)
}

// MethodNotAllowed answers every DELETE.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", "GET, POST")
	common.RespondError(w, time.Now(), nil, constants.MsgMethodNotAllowed, http.StatusMethodNotAllowed)
}

func itemID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, nested.ItemParam), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func respondImportError(w http.ResponseWriter, r *http.Request, initTime time.Time, entity string, err error) {
	var verr *transport.ValidationError
	switch {
	case errors.As(err, &verr):
		common.RespondValidation(w, initTime, verr.Fields)
	case errors.Is(err, transport.ErrNotFound):
		common.RespondError(w, initTime, nil, constants.MsgNotFound, http.StatusNotFound)
	case errors.Is(err, transport.ErrInvalidBody):
		common.RespondError(w, initTime, err, constants.MsgInvalidBody, http.StatusBadRequest)
	default:
		clientID := ""
		if claims := auth.GetClientClaims(r.Context()); claims != nil {
			clientID = claims.ClientID()
		}
		logging.WithRequest(middleware.RequestIDFromContext(r.Context()), clientID, r.URL.Path).
			Errorw("Import request failed", "entity", entity, "error", err.Error())
		common.RespondError(w, initTime, nil, constants.MsgImportFailed, http.StatusInternalServerError)
	}
}
