package handlers

import (
	"ShareIt/internal/config"
	"ShareIt/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// ItemHandler: вещи, поиск и отзывы.
type ItemHandler struct {
	ItemService *service.ItemService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewItemHandler создаёт хендлер items
func NewItemHandler(itemService *service.ItemService, logger *zap.SugaredLogger, cfg *config.Config) *ItemHandler {
	return &ItemHandler{ItemService: itemService, Logger: logger, Config: cfg}
}

type createItemRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Available   *bool  `json:"available" validate:"required"`
	RequestID   *int64 `json:"requestId" validate:"omitempty,gt=0"`
}

type updateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type commentRequest struct {
	Text string `json:"text" validate:"required"`
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req createItemRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	it, err := h.ItemService.Create(r.Context(), uid, service.NewItem{
		Name:        req.Name,
		Description: req.Description,
		Available:   *req.Available,
		RequestID:   req.RequestID,
	})
	if err != nil {
		writeError(w, h.Logger, "Create item", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateItemRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	it, err := h.ItemService.Update(r.Context(), itemID, uid, service.ItemPatch{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	})
	if err != nil {
		writeError(w, h.Logger, "Update item", err)
		return
	}
	writeJSON(w, http.StatusOK, it)
}

// Get: карточка вещи; бронирования видны только владельцу
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	view, err := h.ItemService.GetByID(r.Context(), itemID, uid)
	if err != nil {
		writeError(w, h.Logger, "Get item", err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ListOwn: вещи вызывающего с последним и следующим бронированием
func (h *ItemHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	views, err := h.ItemService.ListOwnerItems(r.Context(), uid, page)
	if err != nil {
		writeError(w, h.Logger, "List items", err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	items, err := h.ItemService.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		writeError(w, h.Logger, "Search items", err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ItemHandler) Comment(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req commentRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	c, err := h.ItemService.CreateComment(r.Context(), uid, itemID, req.Text)
	if err != nil {
		writeError(w, h.Logger, "Comment item", err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}
