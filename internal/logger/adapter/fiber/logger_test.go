package fiber_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orkank/AppConfig/internal/logger"
	adapter "github.com/orkank/AppConfig/internal/logger/adapter/fiber"
)

// accessLine implements the access log json format.
type accessLine struct {
	IP         string `json:"IP"`
	Status     int    `json:"status"`
	URI        string `json:"URI"`
	Method     string `json:"method"`
	Host       string `json:"host"`
	RequestID  string `json:"request_id"`
	AppVersion string `json:"app_version"`
}

func consoleConfig() adapter.Config {
	return adapter.Config{
		Config: logger.Log{
			EnableAccessLogToConsole: true,
			DisableCheckAlive:        true,
			Console:                  logger.Console{Enabled: true},
		},
		CheckAliveURI: "/checkalive",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name       string
		config     adapter.Config
		targetPath string
		want       *accessLine
	}{
		{
			name:       "empty no output at all",
			targetPath: "/",
		},
		{
			name:       "get / log to console json",
			config:     consoleConfig(),
			targetPath: "/",
			want:       &accessLine{IP: "0.0.0.0", Status: 200, URI: "/", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "unknown path",
			config:     consoleConfig(),
			targetPath: "//test",
			want:       &accessLine{IP: "0.0.0.0", Status: 404, URI: "//test", Method: fiber.MethodGet, Host: "example.com"},
		},
		{
			name:       "query string and app version",
			config:     consoleConfig(),
			targetPath: "/?appVersion=4.0.10%2B80",
			want: &accessLine{
				IP: "0.0.0.0", Status: 200, URI: "/?appVersion=4.0.10%2B80", Method: fiber.MethodGet,
				Host: "example.com", AppVersion: "4.0.10+80",
			},
		},
		{
			name:       "check alive is not logged",
			config:     consoleConfig(),
			targetPath: "/checkalive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := testMiddlewareHelper(t, tt.targetPath, tt.config)
			require.NoError(t, err)

			if tt.want == nil {
				assert.Empty(t, output)
				return
			}

			require.NotEmpty(t, output)

			var decoded accessLine
			require.NoError(t, json.Unmarshal([]byte(output), &decoded))

			assert.Equal(t, tt.want.Host, decoded.Host)
			assert.Equal(t, tt.want.Method, decoded.Method)
			assert.Equal(t, tt.want.Status, decoded.Status)
			assert.Equal(t, tt.want.IP, decoded.IP)
			assert.Equal(t, tt.want.URI, decoded.URI)
			assert.Equal(t, tt.want.AppVersion, decoded.AppVersion)
			assert.Equal(t, "rid-1", decoded.RequestID)
		})
	}
}

func testMiddlewareHelper(t *testing.T, targetPath string, adapterConfig adapter.Config) (string, error) {
	t.Helper()

	stdout := os.Stdout

	// capture stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	app := fiber.New(fiber.Config{
		CaseSensitive: true,
		Immutable:     true,
	})

	app.Use(func(c *fiber.Ctx) error {
		c.Locals(adapter.LocalsRequestID, "rid-1")
		return c.Next()
	})
	app.Use(adapter.New(adapterConfig))

	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.SendString("hello test")
	})
	app.Get("/checkalive", func(ctx *fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	_, err := app.Test(httptest.NewRequest(fiber.MethodGet, targetPath, nil), 100000)

	outC := make(chan string)
	// copy the output in a separate goroutine so printing can't block indefinitely
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout = stdout // restoring the real stdout

	return <-outC, err
}
