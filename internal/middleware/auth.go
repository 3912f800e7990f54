package middleware

import (
	"InvKeeper/internal/session"
	"context"
	"net/http"
)

type ctxKey int

const userIDKey ctxKey = iota

// WithSession читает капсулу сессии из cookie. Живая капсула продлевается
// (скользящее окно TTL), а id пользователя кладётся в контекст запроса.
// Отсутствующая или просроченная капсула оставляет запрос анонимным.
func WithSession(m *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, err := r.Cookie(session.CookieName)
			if err != nil || c.Value == "" {
				next.ServeHTTP(w, r)
				return
			}
			h, err := m.Renew(c.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			SetSessionCookie(w, h)
			ctx := context.WithValue(r.Context(), userIDKey, h.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext возвращает id пользователя живой сессии.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// SessionToken возвращает капсулу, присланную клиентом, или пустую строку.
func SessionToken(r *http.Request) string {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SetSessionCookie выставляет cookie с капсулой сессии.
func SetSessionCookie(w http.ResponseWriter, h session.Handle) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    h.Token,
		Path:     "/",
		Expires:  h.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie удаляет cookie сессии на клиенте.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
