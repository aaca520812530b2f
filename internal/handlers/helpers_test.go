package handlers_test

import (
	"MachineCatalog/internal/blob"
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/handlers"
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/model"
	"MachineCatalog/internal/repo"
	"MachineCatalog/internal/service"
	"MachineCatalog/internal/views"
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Local light mocks
type mockMachineRepo struct{ mock.Mock }

func (m *mockMachineRepo) ListAll(ctx context.Context) ([]model.Machine, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).([]model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMachineRepo) GetByID(ctx context.Context, id string) (*model.Machine, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMachineRepo) Create(ctx context.Context, mc *model.Machine) error {
	return m.Called(ctx, mc).Error(0)
}
func (m *mockMachineRepo) UpdateByID(ctx context.Context, id string, fields model.MachineFields) (*model.Machine, error) {
	args := m.Called(ctx, id, fields)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMachineRepo) SetImage(ctx context.Context, id string, url, assetID *string) error {
	return m.Called(ctx, id, url, assetID).Error(0)
}
func (m *mockMachineRepo) DeleteByID(ctx context.Context, id string) (*model.Machine, error) {
	args := m.Called(ctx, id)
	if v, ok := args.Get(0).(*model.Machine); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.MachineRepository = (*mockMachineRepo)(nil)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockUserRepo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

type mockBlobs struct{ mock.Mock }

func (m *mockBlobs) Upload(ctx context.Context, obj blob.Object) (blob.Asset, error) {
	args := m.Called(ctx, obj)
	return args.Get(0).(blob.Asset), args.Error(1)
}
func (m *mockBlobs) Delete(ctx context.Context, assetID string) error {
	return m.Called(ctx, assetID).Error(0)
}

var _ blob.Storage = (*mockBlobs)(nil)

type testEnv struct {
	router   http.Handler
	sessions *middleware.Sessions
	machines *mockMachineRepo
	users    *mockUserRepo
	blobs    *mockBlobs
}

func newTestCfg() *config.Config {
	return &config.Config{SessionSecret: "test-secret", SessionTTL: time.Hour, UploadMaxMB: 1, RequestTimeout: 5 * time.Second}
}

// --- Helpers ---
func buildRouter(t *testing.T, mr repo.MachineRepository, ur repo.UserRepository, bs blob.Storage) (http.Handler, *middleware.Sessions) {
	t.Helper()
	cfg := newTestCfg()
	logger := zap.NewNop().Sugar()

	renderer, err := views.New()
	require.NoError(t, err)
	sessions := middleware.NewSessions(cfg.SessionSecret, cfg.SessionTTL, false)

	userSvc := service.NewUserService(ur)
	machineSvc := service.NewMachineService(mr, bs, logger, cfg.UploadMaxBytes())
	h := handlers.NewHandler(userSvc, machineSvc, sessions, renderer, middleware.NewMetrics(), logger, cfg)
	return h.Router, sessions
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{machines: &mockMachineRepo{}, users: &mockUserRepo{}, blobs: &mockBlobs{}}
	env.router, env.sessions = buildRouter(t, env.machines, env.users, env.blobs)
	return env
}

func addSession(t *testing.T, s *middleware.Sessions, req *http.Request) {
	t.Helper()
	rr := httptest.NewRecorder()
	require.NoError(t, s.Login(rr, middleware.Session{UserID: 1, Username: "admin"}))
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
}

func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// flashes читает flash-cookie, выставленную ответом.
func flashes(rr *httptest.ResponseRecorder) middleware.Flashes {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rr.Result().Cookies() {
		req.AddCookie(c)
	}
	return middleware.PopFlashes(httptest.NewRecorder(), req)
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// machineForm собирает multipart-форму станка; fileName пустой — без файла.
func machineForm(t *testing.T, title, description, fileName string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	require.NoError(t, mw.WriteField("machine[title]", title))
	require.NoError(t, mw.WriteField("machine[description]", description))
	if fileName != "" {
		fw, err := mw.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func strPtr(s string) *string { return &s }
