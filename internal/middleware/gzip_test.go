package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listPage = `<ul class="machines"><li><h2><a href="/machines/m1">Lathe X</a></h2></li></ul>`

func listHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		// длина несжатой страницы; мидлварь должна её убрать
		w.Header().Set("Content-Length", "86")
		_, _ = io.WriteString(w, listPage)
	})
}

func TestWithGzip_PlainPageWithoutAcceptEncoding(t *testing.T) {
	rr := httptest.NewRecorder()
	WithGzip(listHandler()).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/machines", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Equal(t, listPage, rr.Body.String())
}

func TestWithGzip_CompressesRenderedPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/machines", nil)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	rr := httptest.NewRecorder()
	WithGzip(listHandler()).ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "Accept-Encoding", rr.Header().Get("Vary"))
	assert.Empty(t, rr.Header().Get("Content-Length"))
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))

	gr, err := gzip.NewReader(rr.Body)
	require.NoError(t, err)
	defer gr.Close()
	data, err := io.ReadAll(gr)
	require.NoError(t, err)
	assert.Equal(t, listPage, string(data))
}

// Редирект с flash после создания станка проходит через сжатие без потерь.
func TestWithGzip_KeepsRedirectAndFlash(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		AddFlash(w, r, FlashAddEdit, "Machine added successfully")
		http.Redirect(w, r, "/machines", http.StatusFound)
	})
	req := httptest.NewRequest(http.MethodPost, "/machines", strings.NewReader(""))
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	WithGzip(next).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/machines", rr.Header().Get("Location"))

	follow := httptest.NewRequest(http.MethodGet, "/machines", nil)
	for _, c := range rr.Result().Cookies() {
		follow.AddCookie(c)
	}
	assert.Equal(t, []string{"Machine added successfully"}, PopFlashes(httptest.NewRecorder(), follow)[FlashAddEdit])
}
