package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMethodOverride(t *testing.T) {
	var seen string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Method
	}))

	cases := []struct {
		method, target, want string
	}{
		{http.MethodPost, "/machines/1?_method=DELETE", http.MethodDelete},
		{http.MethodPost, "/machines/1?_method=put", http.MethodPut},
		{http.MethodPost, "/machines/1?_method=GET", http.MethodPost},
		{http.MethodPost, "/machines", http.MethodPost},
		{http.MethodGet, "/machines/1?_method=DELETE", http.MethodGet},
	}
	for _, tc := range cases {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tc.method, tc.target, nil))
		assert.Equal(t, tc.want, seen, tc.target)
	}
}
