package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// Категории flash-сообщений.
const (
	FlashError   = "error"
	FlashAddEdit = "addedit"
	FlashSuccess = "success"
	FlashLogout  = "logout"
	FlashRemove  = "remove"
)

const flashCookieName = "flash"

// Flashes сообщения по категориям.
type Flashes map[string][]string

func readFlashes(r *http.Request) Flashes {
	c, err := r.Cookie(flashCookieName)
	if err != nil || c.Value == "" {
		return Flashes{}
	}
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return Flashes{}
	}
	f := Flashes{}
	if err := json.Unmarshal(raw, &f); err != nil {
		return Flashes{}
	}
	return f
}

// AddFlash добавляет сообщение к ещё не показанным и сохраняет их в cookie.
func AddFlash(w http.ResponseWriter, r *http.Request, kind, msg string) {
	f := readFlashes(r)
	f[kind] = append(f[kind], msg)

	raw, err := json.Marshal(f)
	if err != nil {
		sugar.Errorw("flash encode failed", "error", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(raw),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlashes читает сообщения и сразу удаляет cookie: каждое показывается один раз.
func PopFlashes(w http.ResponseWriter, r *http.Request) Flashes {
	f := readFlashes(r)
	if _, err := r.Cookie(flashCookieName); err == nil {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			MaxAge:   -1,
		})
	}
	return f
}
