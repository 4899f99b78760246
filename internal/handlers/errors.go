package handlers

import (
	"ShareIt/internal/service"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// ErrorResponse: тело ответа с ошибкой
type ErrorResponse struct {
	Error string `json:"error"`
}

// statusOf сопоставляет ошибку сервиса с HTTP-статусом
func statusOf(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrConditionsNotMet):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, service.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError отдаёт причину клиенту; внутренние ошибки логируются и скрываются.
func writeError(w http.ResponseWriter, logger *zap.SugaredLogger, op string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		logger.Errorw(op+": service error", "error", err)
		writeJSON(w, status, ErrorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: msg})
}
