package handlers

import (
	"ShareIt/internal/config"
	"ShareIt/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// RequestHandler: запросы на вещи.
type RequestHandler struct {
	RequestService *service.RequestService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewRequestHandler(requestService *service.RequestService, logger *zap.SugaredLogger, cfg *config.Config) *RequestHandler {
	return &RequestHandler{RequestService: requestService, Logger: logger, Config: cfg}
}

type createRequestRequest struct {
	Description string `json:"description" validate:"required"`
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req createRequestRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	v, err := h.RequestService.Create(r.Context(), uid, req.Description)
	if err != nil {
		writeError(w, h.Logger, "Create request", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *RequestHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	list, err := h.RequestService.ListOwn(r.Context(), uid, page)
	if err != nil {
		writeError(w, h.Logger, "List own requests", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListAll: запросы остальных пользователей
func (h *RequestHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	list, err := h.RequestService.ListOthers(r.Context(), uid, page)
	if err != nil {
		writeError(w, h.Logger, "List requests", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *RequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "requestId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	v, err := h.RequestService.GetByID(r.Context(), uid, id)
	if err != nil {
		writeError(w, h.Logger, "Get request", err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}
