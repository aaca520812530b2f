package handlers

import (
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/views"
	"bytes"
	"net/http"

	"go.uber.org/zap"
)

// pages дорисовывает к странице общие данные (пользователь, flash) и пишет ответ.
type pages struct {
	views  *views.Renderer
	logger *zap.SugaredLogger
}

func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	if sess, ok := middleware.SessionFromContext(r.Context()); ok {
		page.User = sess.Username
	}
	page.Flash = middleware.PopFlashes(w, r)

	var buf bytes.Buffer
	if err := p.views.Render(&buf, name, page); err != nil {
		p.logger.Errorw("render failed", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (p *pages) errorPage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	p.render(w, r, status, views.PageError, views.Page{
		Title:   http.StatusText(status),
		Status:  status,
		Message: msg,
	})
}

// redirect с flash-сообщением
func redirectWithFlash(w http.ResponseWriter, r *http.Request, kind, msg, to string) {
	middleware.AddFlash(w, r, kind, msg)
	http.Redirect(w, r, to, http.StatusFound)
}
