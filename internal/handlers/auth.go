package handlers

import (
	"InvKeeper/internal/config"
	"InvKeeper/internal/middleware"
	"InvKeeper/internal/service"
	"InvKeeper/internal/session"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AuthHandler - вход по бейджу и пасскоду, выдача бейджа для QR.
type AuthHandler struct {
	AuthService *service.AuthService
	Sessions    *session.Manager
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер авторизации
func NewAuthHandler(authService *service.AuthService, sessions *session.Manager, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{AuthService: authService, Sessions: sessions, Logger: logger, Config: cfg}
}

// LoginRequest - тело запроса /login
type LoginRequest struct {
	Pass    string `json:"pass"`
	IDToken string `json:"id_token"`
	UserID  string `json:"user_id"`
}

// MeResponse - ответ /me
type MeResponse struct {
	UserID string `json:"user_id"`
}

func (h *AuthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
	_, _ = w.Write([]byte("Pong!"))
}

// Login проверяет учётные данные и выдаёт или продлевает сессию.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		h.Logger.Warnw("Login: invalid request body")
		return
	}

	userID, err := h.AuthService.Verify(r.Context(), req.UserID, req.Pass, req.IDToken)
	if err != nil {
		h.Logger.Infow("Login: rejected", "user_id", req.UserID, "reason", err)
		writeServiceError(w, h.Logger, "Login", err)
		return
	}

	hnd, err := h.Sessions.BeginOrRenew(middleware.SessionToken(r), userID)
	if err != nil {
		h.Logger.Errorw("Login: failed to issue session", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	middleware.SetSessionCookie(w, hnd)
	h.Logger.Infow("Login: ok", "user_id", userID, "renewed", hnd.Renewed)
	w.WriteHeader(http.StatusOK)
}

// Logout удаляет cookie сессии. Капсула не хранится на сервере, поэтому больше ничего не нужно.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusOK)
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	writeJSON(w, h.Logger, MeResponse{UserID: userID})
}

// UserQR отдаёт сохранённый бейдж-токен пользователя строкой.
func (h *AuthHandler) UserQR(w http.ResponseWriter, r *http.Request) {
	token, err := h.AuthService.BadgeToken(r.Context(), chi.URLParam(r, "user_id"))
	if err != nil {
		writeServiceError(w, h.Logger, "UserQR", err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(token))
}
