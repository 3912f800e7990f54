package handlers_test

import (
	"InvKeeper/internal/badge"
	"InvKeeper/internal/config"
	"InvKeeper/internal/handlers"
	"InvKeeper/internal/model"
	"InvKeeper/internal/passcode"
	"InvKeeper/internal/repo"
	"InvKeeper/internal/service"
	"InvKeeper/internal/session"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testEnv struct {
	router   http.Handler
	auth     *service.AuthService
	sessions *session.Manager
	alice    *model.User
	admin    *model.User
}

// newTestEnv собирает роутер поверх отдельной in-memory SQLite и заводит двух пользователей:
// alice (User, пасскод 123456) и root (Admin, пасскод 999999).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repo.InitDB("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	cfg := &config.Config{AuthSecret: "test-secret", TokenKey: "test-badge-key", SessionTTL: time.Minute}
	logger := zap.NewNop().Sugar()

	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	locations := repo.NewLocationRepository(db)

	codec, err := badge.NewCodec([]byte(cfg.TokenKey), 0)
	require.NoError(t, err)
	sessions, err := session.NewManager(cfg.AuthSecret, cfg.SessionTTL)
	require.NoError(t, err)

	authSvc := service.NewAuthService(users, codec, passcode.Bcrypt{Cost: 4}, logger)
	itemSvc := service.NewItemService(items, locations, users, logger)
	locationSvc := service.NewLocationService(locations, items, logger)

	alice, err := authSvc.Provision(context.Background(), service.ProvisionInput{FullName: "Alice", Username: "alice", Passcode: "123456"})
	require.NoError(t, err)
	admin, err := authSvc.Provision(context.Background(), service.ProvisionInput{FullName: "Root", Username: "root", Passcode: "999999", Role: model.RoleAdmin})
	require.NoError(t, err)

	h := handlers.NewHandler(authSvc, sessions, itemSvc, locationSvc, logger, cfg)
	return &testEnv{router: h.Router, auth: authSvc, sessions: sessions, alice: alice, admin: admin}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

// login выполняет /login и возвращает cookie сессии.
func (e *testEnv) login(t *testing.T, u *model.User, pass string) *http.Cookie {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/login", map[string]string{
		"pass": pass, "id_token": u.PhysicalToken, "user_id": u.ID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	c := sessionCookie(rr)
	require.NotNil(t, c)
	return c
}

func sessionCookie(rr *httptest.ResponseRecorder) *http.Cookie {
	var found *http.Cookie
	for _, c := range rr.Result().Cookies() {
		if c.Name == session.CookieName {
			found = c
		}
	}
	return found
}

func (e *testEnv) createLocation(t *testing.T, identifier string, minRole model.Role) model.Location {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/locations/create", map[string]any{
		"location_identifier": identifier,
		"location_type":       model.LocationShelf,
		"rbac_min_level":      minRole,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var loc model.Location
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &loc))
	return loc
}

func (e *testEnv) createItem(t *testing.T, name, locationID string) model.Item {
	t.Helper()
	rr := e.do(t, http.MethodPost, "/items/create", map[string]any{
		"name": name, "quantity": 1, "location_id": locationID,
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var it model.Item
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &it))
	return it
}
