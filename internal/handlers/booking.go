package handlers

import (
	"ShareIt/internal/config"
	"ShareIt/internal/service"
	"net/http"
	"strconv"

	"go.uber.org/zap"
)

// BookingHandler: бронирования и их подтверждение.
type BookingHandler struct {
	BookingService *service.BookingService
	Logger         *zap.SugaredLogger
	Config         *config.Config
}

func NewBookingHandler(bookingService *service.BookingService, logger *zap.SugaredLogger, cfg *config.Config) *BookingHandler {
	return &BookingHandler{BookingService: bookingService, Logger: logger, Config: cfg}
}

type createBookingRequest struct {
	ItemID int64     `json:"itemId" validate:"required,gt=0"`
	Start  Timestamp `json:"start"`
	End    Timestamp `json:"end"`
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	var req createBookingRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	b, err := h.BookingService.Create(r.Context(), uid, service.NewBooking{
		ItemID: req.ItemID,
		Start:  req.Start.Time,
		End:    req.End.Time,
	})
	if err != nil {
		writeError(w, h.Logger, "Create booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// Approve: PATCH /bookings/{id}?approved=true|false
func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "bookingId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		badRequest(w, "query parameter approved must be true or false")
		return
	}

	b, err := h.BookingService.Approve(r.Context(), id, approved, uid)
	if err != nil {
		writeError(w, h.Logger, "Approve booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "bookingId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	b, err := h.BookingService.FindByID(r.Context(), id, uid)
	if err != nil {
		writeError(w, h.Logger, "Get booking", err)
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// ListBooker: бронирования, сделанные вызывающим
func (h *BookingHandler) ListBooker(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	list, err := h.BookingService.FindUserBookings(r.Context(), uid, r.URL.Query().Get("state"), page)
	if err != nil {
		writeError(w, h.Logger, "List bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// ListOwner: бронирования вещей вызывающего
func (h *BookingHandler) ListOwner(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	list, err := h.BookingService.FindUserItemsBookings(r.Context(), uid, r.URL.Query().Get("state"), page)
	if err != nil {
		writeError(w, h.Logger, "List owner bookings", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
