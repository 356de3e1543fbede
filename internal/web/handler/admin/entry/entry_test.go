package entry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/orkank/AppConfig/internal/db/dbtest"
	"github.com/orkank/AppConfig/internal/db/models"
	"github.com/orkank/AppConfig/internal/value"
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

	require.NoError(t, env.db.Create(&models.Group{Name: "Promo", Code: "promo", IsActive: true}).Error)

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

func (env *testEnv) create(t *testing.T, body string) models.Entry {
	t.Helper()

	status, out := env.do(t, http.MethodPost, "/entries", body)
	require.Equal(t, fiber.StatusCreated, status, string(out))

	var e models.Entry
	require.NoError(t, json.Unmarshal(out, &e))

	return e
}

func TestCreateInfersType(t *testing.T) {
	env := setup(t)

	tests := []struct {
		name string
		body string
		want value.Type
	}{
		{name: "text", body: `{"key_name":"greeting","text_value":"hi"}`, want: value.TypeText},
		{name: "json", body: `{"key_name":"flags","json_value":"{\"a\":1}"}`, want: value.TypeJSON},
		{name: "products", body: `{"key_name":"featured","group_id":1,"products_value":"[1,2]"}`, want: value.TypeProducts},
		{name: "empty products list", body: `{"key_name":"empty","value_type":"products","products_value":"[]","text_value":"x"}`, want: value.TypeText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := env.create(t, tt.body)
			assert.Equal(t, tt.want, e.ValueType)
			assert.True(t, e.IsActive)
		})
	}

	assert.Equal(t, len(tests), env.invalidated)
}

func TestCreateRejects(t *testing.T) {
	env := setup(t)
	env.create(t, `{"key_name":"greeting","text_value":"hi"}`)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "missing key", body: `{"text_value":"hi"}`, want: fiber.StatusBadRequest},
		{name: "unknown type", body: `{"key_name":"x","value_type":"video"}`, want: fiber.StatusBadRequest},
		{name: "unknown group", body: `{"key_name":"x","group_id":99}`, want: fiber.StatusBadRequest},
		{name: "duplicate ungrouped key", body: `{"key_name":"greeting"}`, want: fiber.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := env.do(t, http.MethodPost, "/entries", tt.body)
			assert.Equal(t, tt.want, status, string(body))
		})
	}

	// same key inside a group is allowed
	e := env.create(t, `{"key_name":"greeting","group_id":1,"text_value":"hello"}`)
	require.NotNil(t, e.GroupID)
	assert.Equal(t, uint(1), *e.GroupID)
}

func TestList(t *testing.T) {
	env := setup(t)
	env.create(t, `{"key_name":"a","text_value":"1"}`)
	env.create(t, `{"key_name":"b","group_id":1,"text_value":"2"}`)
	env.create(t, `{"key_name":"c","group_id":0,"json_value":"[1]"}`)

	tests := []struct {
		target string
		want   []string
		status int
	}{
		{target: "/entries", want: []string{"a", "b", "c"}, status: fiber.StatusOK},
		{target: "/entries?group_id=none", want: []string{"a", "c"}, status: fiber.StatusOK},
		{target: "/entries?group_id=1", want: []string{"b"}, status: fiber.StatusOK},
		{target: "/entries?value_type=json", want: []string{"c"}, status: fiber.StatusOK},
		{target: "/entries?key_name=b", want: []string{"b"}, status: fiber.StatusOK},
		{target: "/entries?group_id=x", status: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			status, body := env.do(t, http.MethodGet, tt.target, "")
			require.Equal(t, tt.status, status)

			if tt.status != fiber.StatusOK {
				return
			}

			var entries []models.Entry
			require.NoError(t, json.Unmarshal(body, &entries))

			keys := make([]string, 0, len(entries))
			for _, e := range entries {
				keys = append(keys, e.KeyName)
			}

			assert.Equal(t, tt.want, keys)
		})
	}
}

func TestUpdateDeleteStatus(t *testing.T) {
	env := setup(t)
	created := env.create(t, `{"key_name":"greeting","text_value":"hi"}`)

	status, body := env.do(t, http.MethodPut, "/entries/1", `{"key_name":"greeting","file_path":"/banners/a.png","is_active":false}`)
	require.Equal(t, fiber.StatusOK, status, string(body))

	var stored models.Entry
	require.NoError(t, env.db.First(&stored, 1).Error)
	assert.Equal(t, value.TypeFile, stored.ValueType)
	assert.False(t, stored.IsActive)
	assert.WithinDuration(t, created.CreatedAt, stored.CreatedAt, time.Second)

	status, body = env.do(t, http.MethodPost, "/entries/status", `{"ids":[1],"is_active":true}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"updated":1}`, string(body))

	status, _ = env.do(t, http.MethodGet, "/entries/1", "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = env.do(t, http.MethodDelete, "/entries/1", "")
	assert.Equal(t, fiber.StatusNoContent, status)

	status, _ = env.do(t, http.MethodDelete, "/entries/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)

	status, _ = env.do(t, http.MethodGet, "/entries/1", "")
	assert.Equal(t, fiber.StatusNotFound, status)
}
