package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride позволяет HTML-форме (только POST) вызвать PUT/PATCH/DELETE
// через параметр ?_method=.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch m := strings.ToUpper(r.URL.Query().Get("_method")); m {
			case http.MethodPut, http.MethodPatch, http.MethodDelete:
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
