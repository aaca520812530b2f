package handlers

import (
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/service"
	"MachineCatalog/internal/views"
	"errors"
	"net/http"

	"go.uber.org/zap"
)

const (
	msgLoginFailed = "Invalid username or password"
	msgLoggedOut   = "You have left the admin area"
)

// SessionHandler вход и выход администратора.
type SessionHandler struct {
	UserService *service.UserService
	Sessions    *middleware.Sessions
	Logger      *zap.SugaredLogger
	pages       *pages
}

func NewSessionHandler(userService *service.UserService, sessions *middleware.Sessions, pg *pages, logger *zap.SugaredLogger) *SessionHandler {
	return &SessionHandler{UserService: userService, Sessions: sessions, Logger: logger, pages: pg}
}

// LoginForm форма входа
func (h *SessionHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, r, http.StatusOK, views.PageLogin, views.Page{Title: "Login"})
}

// Login проверка логина/пароля. Неизвестный пользователь и неверный пароль
// неразличимы для клиента.
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.Logger.Warnw("Login: invalid form", "error", err)
		redirectWithFlash(w, r, middleware.FlashError, msgLoginFailed, "/login")
		return
	}
	username := r.PostFormValue("username")

	user, err := h.UserService.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.Logger.Infow("Login: invalid credentials", "username", username)
		} else {
			h.Logger.Errorw("Login: service error", "username", username, "error", err)
		}
		redirectWithFlash(w, r, middleware.FlashError, msgLoginFailed, "/login")
		return
	}

	if err := h.Sessions.Login(w, middleware.Session{UserID: user.ID, Username: user.Username}); err != nil {
		h.Logger.Errorw("Login: failed to issue session", "user_id", user.ID, "error", err)
		redirectWithFlash(w, r, middleware.FlashError, msgSomethingWrong, "/login")
		return
	}

	redirectWithFlash(w, r, middleware.FlashSuccess, "Welcome, "+user.Username, "/machines")
}

// Logout выход
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Logout(w)
	redirectWithFlash(w, r, middleware.FlashLogout, msgLoggedOut, "/machines")
}
