package handlers

import (
	"ShareIt/internal/middleware"
	"ShareIt/internal/model"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeBody читает JSON и проверяет теги validate
func decodeBody(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("field %s failed on %q", fe.Field(), fe.Tag())
		}
		return err
	}
	return nil
}

// callerID: id пользователя из cookie или X-Sharer-User-Id; без него 401
func callerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	uid, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "missing " + middleware.UserIDHeader + " header"})
		return 0, false
	}
	return uid, true
}

func pathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

// pageQuery: параметры from/size
type pageQuery struct {
	From int `validate:"min=0"`
	Size int `validate:"gt=0"`
}

// parsePage разбирает from (смещение) и size; size по умолчанию из конфигурации
func parsePage(r *http.Request, defaultSize int) (model.Page, error) {
	q := pageQuery{From: 0, Size: defaultSize}
	var err error
	if v := r.URL.Query().Get("from"); v != "" {
		if q.From, err = strconv.Atoi(v); err != nil {
			return model.Page{}, fmt.Errorf("invalid from: %q", v)
		}
	}
	if v := r.URL.Query().Get("size"); v != "" {
		if q.Size, err = strconv.Atoi(v); err != nil {
			return model.Page{}, fmt.Errorf("invalid size: %q", v)
		}
	}
	if err := validate.Struct(q); err != nil {
		return model.Page{}, fmt.Errorf("from must be >= 0 and size must be > 0")
	}
	return model.Page{Offset: q.From, Limit: q.Size}, nil
}

// Timestamp принимает RFC3339 и локальный формат без зоны (считается UTC)
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02T15:04"}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		ts.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q", s)
}
