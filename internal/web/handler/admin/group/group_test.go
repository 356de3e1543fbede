package group

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/dbtest"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/web/handler"
)

type testEnv struct {
	app         *fiber.App
	db          *gorm.DB
	invalidated int
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{app: fiber.New(), db: dbtest.Open(t)}
	deps := &handler.Deps{
		DB: env.db,
		Invalidate: func(context.Context) error {
			env.invalidated++
			return nil
		},
	}

	s := &Service{}
	require.NoError(t, s.Init(env.app, deps))

	return env
}

func (env *testEnv) do(t *testing.T, method, target, body string) (int, []byte) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := env.app.Test(req)
	require.NoError(t, err)

	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, out
}

func TestCreateAndGet(t *testing.T) {
	env := setup(t)

	status, body := env.do(t, http.MethodPost, "/groups", `{"name":"Promo","code":"promo","version":"1.2.0"}`)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	var created models.Group
	require.NoError(t, json.Unmarshal(body, &created))
	assert.NotZero(t, created.ID)
	assert.True(t, created.IsActive)
	assert.Equal(t, 1, env.invalidated)

	status, body = env.do(t, http.MethodGet, "/groups/1", "")
	require.Equal(t, fiber.StatusOK, status)

	var got models.Group
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, "promo", got.Code)
	assert.Equal(t, "1.2.0", got.Version)
}

func TestCreateValidation(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing code", body: `{"name":"Promo"}`, want: fiber.StatusBadRequest},
		{name: "blank name", body: `{"name":"  ","code":"promo"}`, want: fiber.StatusBadRequest},
		{name: "malformed body", body: `{"name":`, want: fiber.StatusBadRequest},
		{name: "valid", body: `{"name":"Promo","code":"promo"}`, want: fiber.StatusCreated},
		{name: "duplicate code", body: `{"name":"Other","code":"promo"}`, want: fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/groups", tt.body)
			assert.Equal(t, tt.want, status, string(body))
		})
	}

	assert.Equal(t, 1, env.invalidated)
}

func TestUpdate(t *testing.T) {
	env := setup(t)

	status, _ := env.do(t, http.MethodPost, "/groups", `{"name":"Promo","code":"promo"}`)
	require.Equal(t, fiber.StatusCreated, status)

	status, body := env.do(t, http.MethodPut, "/groups/1", `{"name":"Summer","code":"summer","is_active":false}`)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var g models.Group
	require.NoError(t, env.db.First(&g, 1).Error)
	assert.Equal(t, "Summer", g.Name)
	assert.Equal(t, "summer", g.Code)
	assert.False(t, g.IsActive)

	status, _ = env.do(t, http.MethodPut, "/groups/42", `{"name":"X","code":"x"}`)
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, http.MethodPut, "/groups/abc", `{"name":"X","code":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestDelete(t *testing.T) {
	env := setup(t)

	status, _ := env.do(t, http.MethodPost, "/groups", `{"name":"Promo","code":"promo"}`)
	require.Equal(t, fiber.StatusCreated, status)

	groupID := uint(1)
	require.NoError(t, env.db.Create(&models.Entry{KeyName: "banner", GroupID: &groupID, IsActive: true, TextValue: "x"}).Error)

	status, body := env.do(t, http.MethodDelete, "/groups/1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"deleted":true,"deleted_entries":1}`, string(body))

	status, _ = env.do(t, http.MethodDelete, "/groups/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestStatusAndList(t *testing.T) {
	env := setup(t)

	for _, code := range []string{"a", "b"} {
		status, _ := env.do(t, http.MethodPost, "/groups", `{"name":"`+code+`","code":"`+code+`"}`)
		require.Equal(t, fiber.StatusCreated, status)
	}

	status, body := env.do(t, http.MethodPost, "/groups/status", `{"ids":[1,2],"is_active":false}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.JSONEq(t, `{"updated":2}`, string(body))

	status, _ = env.do(t, http.MethodPost, "/groups/status", `{"ids":[],"is_active":true}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, http.MethodPost, "/groups/status", `{"ids":[1]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = env.do(t, http.MethodGet, "/groups", "")
	require.Equal(t, fiber.StatusOK, status)

	var groups []models.Group
	require.NoError(t, json.Unmarshal(body, &groups))
	require.Len(t, groups, 2)

	for _, g := range groups {
		assert.False(t, g.IsActive)
	}
}
