package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName имя cookie с подписанным JWT сессии.
const SessionCookieName = "session"

type ctxKey int

const sessionKey ctxKey = iota

// Session — залогиненный пользователь текущего запроса.
type Session struct {
	UserID   int64
	Username string
}

type sessionClaims struct {
	Username string `json:"name"`
	jwt.RegisteredClaims
}

// Sessions выдаёт и проверяет cookie сессии.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Login подписывает JWT и кладёт его в HttpOnly cookie.
func (s *Sessions) Login(w http.ResponseWriter, sess Session) error {
	now := time.Now()
	claims := sessionClaims{
		Username: sess.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(sess.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  now.Add(s.ttl),
	})
	return nil
}

// Logout стирает cookie сессии.
func (s *Sessions) Logout(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// Parse достаёт сессию из cookie запроса.
func (s *Sessions) Parse(r *http.Request) (Session, error) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Session{}, err
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(c.Value, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Session{}, err
	}
	if !token.Valid {
		return Session{}, errors.New("invalid session token")
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Session{}, err
	}
	return Session{UserID: id, Username: claims.Username}, nil
}

// WithSession кладёт Session в контекст, если cookie валидна. Без cookie
// запрос идёт дальше анонимным.
func (s *Sessions) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.Parse(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSessionContext(r.Context(), sess)))
	})
}

// WithSessionContext возвращает контекст с сессией.
func WithSessionContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// SessionFromContext сессия текущего запроса, если пользователь залогинен.
func SessionFromContext(ctx context.Context) (Session, bool) {
	sess, ok := ctx.Value(sessionKey).(Session)
	return sess, ok
}

// NotAuthenticatedMessage текст flash при попытке зайти на закрытый маршрут.
const NotAuthenticatedMessage = "You must be logged in to do that"

// RequireAuth пропускает только залогиненных; остальным flash + редирект на /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFromContext(r.Context()); !ok {
			AddFlash(w, r, FlashError, NotAuthenticatedMessage)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}
