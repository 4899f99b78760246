package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type ctxKey string

const (
	userIDKey ctxKey = "user_id"

	// AuthCookieName: cookie с подписанным JWT
	AuthCookieName = "auth_token"
	// UserIDHeader: доверенный заголовок с id пользователя (ставит шлюз)
	UserIDHeader = "X-Sharer-User-Id"

	tokenTTL = 30 * 24 * time.Hour
)

// Claims: полезная нагрузка токена.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// BuildToken подписывает токен с id пользователя.
func BuildToken(userID int64, secret string) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// SetLoginCookie выставляет cookie авторизации.
func SetLoginCookie(w http.ResponseWriter, userID int64, secret string) error {
	token, err := BuildToken(userID, secret)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Expires:  time.Now().Add(tokenTTL),
	})
	return nil
}

func parseToken(token, secret string) (int64, bool) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.UserID <= 0 {
		return 0, false
	}
	return claims.UserID, true
}

// WithAuth кладёт id пользователя в контекст: сначала из cookie, затем из заголовка X-Sharer-User-Id.
// Анонимный запрос пропускается дальше, решение принимает хендлер.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c, err := r.Cookie(AuthCookieName); err == nil {
				if uid, ok := parseToken(c.Value, secret); ok {
					next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
					return
				}
			}

			if raw := strings.TrimSpace(r.Header.Get(UserIDHeader)); raw != "" {
				uid, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || uid <= 0 {
					http.Error(w, `{"error":"invalid `+UserIDHeader+` header"}`, http.StatusBadRequest)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), uid)))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// WithUserID возвращает контекст с id пользователя.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserIDFromContext достаёт id пользователя, положенный WithAuth.
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDKey).(int64)
	return uid, ok
}
