package api_test

import (
	"Inkpost/internal/api/config"
	"Inkpost/internal/pkg/database"
	"Inkpost/internal/pkg/security"
	"Inkpost/internal/wire"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	security.PasswordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
}

type apiClient struct {
	t      *testing.T
	router http.Handler
}

func newClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewGormDB(&config.DBConfig{
		Driver:   database.DriverSQLite,
		DSN:      fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpen:  1,
		LogLevel: "silent",
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	app, err := wire.BuildApplication(db, security.NewMemoryBlacklist(), &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpirationHours: 1, Issuer: "Inkpost"},
	})
	require.NoError(t, err)
	return &apiClient{t: t, router: app.Router}
}

func (a *apiClient) do(method, path, token string, body any) (int, envelope) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (a *apiClient) register(name string) string {
	a.t.Helper()
	code, env := a.do(http.MethodPost, "/register", "", map[string]string{
		"name":     name,
		"email":    name + "@example.com",
		"password": "Secret1!",
	})
	require.Equal(a.t, http.StatusCreated, code)
	require.NotEmpty(a.t, env.Token)
	return env.Token
}

type idOnly struct {
	ID uint64 `json:"id"`
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

func TestRegisterLoginLogout(t *testing.T) {
	api := newClient(t)
	api.register("alice")

	code, env := api.do(http.MethodPost, "/register", "", map[string]string{
		"name":     "alice",
		"email":    "alice@example.com",
		"password": "weak",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.False(t, env.Success)
	fields := decode[map[string][]string](t, env.Message)
	assert.Contains(t, fields, "password")
	assert.NotContains(t, fields, "name")

	code, _ = api.do(http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "Wrong1!x",
	})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = api.do(http.MethodPost, "/login", "", map[string]string{
		"email": "alice@example.com", "password": "Secret1!",
	})
	require.Equal(t, http.StatusOK, code)
	token := env.Token
	require.NotEmpty(t, token)

	code, _ = api.do(http.MethodGet, "/posts?limit=10", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodPost, "/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, "/posts?limit=10", token, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestProtectedRoutes(t *testing.T) {
	api := newClient(t)

	code, env := api.do(http.MethodGet, "/posts?limit=10", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)

	token := api.register("carol")
	code, _ = api.do(http.MethodPost, "/tag/create", token, map[string]string{"name": "golang"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodGet, "/tags?limit=10", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, "/posts", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestPostCommentPinFlow(t *testing.T) {
	api := newClient(t)
	owner := api.register("alice")
	reader := api.register("bob")

	code, env := api.do(http.MethodPost, "/post/create", owner, map[string]any{
		"title":   "Hello",
		"body":    "World",
		"tags":    "go, go, db",
		"tag_ids": []uint64{},
	})
	require.Equal(t, http.StatusCreated, code, string(env.Message))
	post := decode[struct {
		ID   uint64   `json:"id"`
		Tags []idOnly `json:"tags"`
	}](t, env.Data)
	assert.Len(t, post.Tags, 2)

	var commentIDs []uint64
	for i := 0; i < 2; i++ {
		code, env = api.do(http.MethodPost, "/comment/create", reader, map[string]any{
			"post_id": post.ID,
			"comment": fmt.Sprintf("comment %d", i),
		})
		require.Equal(t, http.StatusCreated, code)
		commentIDs = append(commentIDs, decode[idOnly](t, env.Data).ID)
	}

	// 评论作者不是文章作者，不能置顶
	code, _ = api.do(http.MethodPost, "/comment/changePinStatus", reader, map[string]any{
		"comment_id": commentIDs[0], "pin_status": 1,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
		"comment_id": commentIDs[0], "pin_status": 2,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, code)

	for _, id := range commentIDs {
		code, env = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
			"comment_id": id, "pin_status": 1,
		})
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, `"Comment pinned successfully."`, string(env.Message))
	}

	code, env = api.do(http.MethodGet, fmt.Sprintf("/post/details?post_id=%d", post.ID), reader, nil)
	require.Equal(t, http.StatusOK, code)
	details := decode[struct {
		Comments []struct {
			ID       uint64 `json:"id"`
			IsPinned bool   `json:"is_pinned"`
		} `json:"comments"`
	}](t, env.Data)
	require.Len(t, details.Comments, 2)
	assert.Equal(t, commentIDs[1], details.Comments[0].ID)
	assert.True(t, details.Comments[0].IsPinned)
	assert.False(t, details.Comments[1].IsPinned)

	code, env = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
		"comment_id": commentIDs[1], "pin_status": 0,
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, `"Comment unpinned successfully."`, string(env.Message))

	accepted := []struct {
		value  any
		pinned bool
	}{
		{"1", true},
		{false, false},
		{true, true},
		{"0", false},
		{1.0, true},
		{0, false},
	}
	for _, tc := range accepted {
		code, env = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
			"comment_id": commentIDs[0], "pin_status": tc.value,
		})
		require.Equal(t, http.StatusOK, code, "pin_status=%v", tc.value)
		comment := decode[struct {
			IsPinned bool `json:"is_pinned"`
		}](t, env.Data)
		assert.Equal(t, tc.pinned, comment.IsPinned, "pin_status=%v", tc.value)
	}

	rejected := []any{"2", 2, "yes", "true", []int{1}, map[string]int{"v": 1}, nil}
	for _, value := range rejected {
		code, env = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
			"comment_id": commentIDs[0], "pin_status": value,
		})
		require.Equal(t, http.StatusUnprocessableEntity, code, "pin_status=%v", value)
		assert.Contains(t, decode[map[string][]string](t, env.Message), "pin_status", "pin_status=%v", value)
	}

	code, env = api.do(http.MethodPost, "/comment/changePinStatus", owner, map[string]any{
		"comment_id": commentIDs[0],
	})
	require.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Contains(t, decode[map[string][]string](t, env.Message), "pin_status")

	code, _ = api.do(http.MethodPost, "/post/update", reader, map[string]any{
		"post_id": post.ID, "title": "x", "body": "y", "tags": []string{}, "tag_ids": []uint64{},
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = api.do(http.MethodPost, "/post/destroy", owner, map[string]any{"post_id": post.ID})
	assert.Equal(t, http.StatusOK, code)

	code, _ = api.do(http.MethodGet, fmt.Sprintf("/comment/details?comment_id=%d", commentIDs[0]), owner, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
