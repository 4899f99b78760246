package handlers

import (
	"ShareIt/internal/config"
	"ShareIt/internal/middleware"
	"ShareIt/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// UserHandler: регистрация и управление пользователями.
type UserHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

func NewUserHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *UserHandler {
	return &UserHandler{UserService: userService, Logger: logger, Config: cfg}
}

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type updateUserRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email" validate:"omitempty,email"`
}

// Create регистрирует пользователя и выставляет cookie авторизации
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeBody(r, &req); err != nil {
		h.Logger.Debugw("Create user: invalid body", "error", err)
		badRequest(w, err.Error())
		return
	}

	user, err := h.UserService.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		writeError(w, h.Logger, "Create user", err)
		return
	}

	if err := middleware.SetLoginCookie(w, user.ID, h.Config.AuthSecret); err != nil {
		h.Logger.Errorw("Create user: failed to set cookie", "user_id", user.ID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	page, err := parsePage(r, h.Config.DefaultPageSize)
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	users, err := h.UserService.List(r.Context(), page)
	if err != nil {
		writeError(w, h.Logger, "List users", err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// Me возвращает текущего пользователя
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, ok := callerID(w, r)
	if !ok {
		return
	}
	user, err := h.UserService.GetByID(r.Context(), uid)
	if err != nil {
		writeError(w, h.Logger, "Me", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	user, err := h.UserService.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Get user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var req updateUserRequest
	if err := decodeBody(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}

	user, err := h.UserService.Update(r.Context(), id, service.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		writeError(w, h.Logger, "Update user", err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// Delete: 204 при удалении, 404 если пользователя не было
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "userId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	deleted, err := h.UserService.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.Logger, "Delete user", err)
		return
	}
	if !deleted {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
