// nolint: funlen
package httpserver_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smdb/errs"
	"smdb/httpserver"
)

func TestDefault(t *testing.T) {
	t.Run("uses fallbacks for empty config", func(t *testing.T) {
		server := httpserver.Default(testConfig())

		assert.NotNil(t, server.Router, "Router should be initialized")
		assert.Equal(t, ":8080", server.Addr, "Default address should be :8080")
		assert.Equal(t, []string{"*"}, server.AllowOrigins, "Default CORS should allow all origins")
	})

	t.Run("reads port and origins from config", func(t *testing.T) {
		cfg := testConfig()
		cfg.Port = 9000
		cfg.AllowOrigins = "https://a.example,https://b.example"

		server := httpserver.Default(cfg)

		assert.Equal(t, ":9000", server.Addr)
		assert.Equal(t, []string{"https://a.example", "https://b.example"}, server.AllowOrigins)
		assert.Equal(t, 1000, server.RateLimit)
	})
}

func TestServerStartAndShutdown(t *testing.T) {
	server := newTestServer()
	port := allocateRandomPort(t)
	server.Addr = fmt.Sprintf("127.0.0.1:%d", port)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()
	waitForServerReady(t, port)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx), "Shutdown should complete without error")

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.Errorf("Unexpected error during shutdown: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Server did not stop within timeout")
	}
}

func TestRegisterGlobalMiddlewares(t *testing.T) {
	server := newTestServer()
	addRoute(server, "/test", func(c echo.Context) error {
		return c.String(http.StatusOK, "test")
	})

	response := makeRequest(server, http.MethodGet, "/test", map[string]string{"Origin": "https://example.com"})

	assert.Equal(t, http.StatusOK, response.Code)
	assert.NotEmpty(t, response.Header().Get(echo.HeaderXRequestID), "Request ID middleware should add header")
	assert.NotEmpty(t, response.Header().Get("X-Content-Type-Options"), "Secure middleware should add headers")
	assert.NotEmpty(t, response.Header().Get("Access-Control-Allow-Origin"), "CORS header should be present")
}

func TestRateLimiter(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 1
	server := httpserver.Default(cfg)

	codes := map[int]int{}
	for i := 0; i < 5; i++ {
		codes[makeRequest(server, http.MethodGet, "/healthcheck", nil).Code]++
	}

	assert.Positive(t, codes[http.StatusOK])
	assert.Positive(t, codes[http.StatusTooManyRequests])
}

func TestMiddlewareRecoveryBehavior(t *testing.T) {
	server := newTestServer()
	addRoute(server, "/panic", func(c echo.Context) error {
		panic("test panic")
	})

	response := makeRequest(server, http.MethodGet, "/panic", nil)

	assert.Equal(t, http.StatusInternalServerError, response.Code, "Should return 500 on panic")
	resp := decodeAPIResponse(t, response)
	assert.Equal(t, "Internal server error", resp.Message)
}

func TestCustomErrorHandler(t *testing.T) {
	tests := []struct {
		name               string
		error              error
		expectedStatusCode int
		expectedCode       string
		expectedMessage    string
	}{
		{
			name:               "invalid error returns 400",
			error:              errs.Errorf(errs.EINVALID, "invalid input"),
			expectedStatusCode: http.StatusBadRequest,
			expectedCode:       "100010",
			expectedMessage:    "invalid input",
		},
		{
			name:               "not found error returns 404",
			error:              errs.Errorf(errs.ENOTFOUND, "resource not found"),
			expectedStatusCode: http.StatusNotFound,
			expectedCode:       "100404",
			expectedMessage:    "resource not found",
		},
		{
			name:               "conflict error returns 409",
			error:              errs.Errorf(errs.ECONFLICT, "resource already exists"),
			expectedStatusCode: http.StatusConflict,
			expectedCode:       "100409",
			expectedMessage:    "resource already exists",
		},
		{
			name:               "not implemented error returns 501",
			error:              errs.Errorf(errs.ENOTIMPLEMENTED, "feature not implemented"),
			expectedStatusCode: http.StatusNotImplemented,
			expectedCode:       "100501",
			expectedMessage:    "feature not implemented",
		},
		{
			name:               "internal error hides details",
			error:              errs.Errorf(errs.EINTERNAL, "database connection failed"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "unknown error returns 500",
			error:              errors.New("some random error"),
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "context error returns 500",
			error:              context.DeadlineExceeded,
			expectedStatusCode: http.StatusInternalServerError,
			expectedCode:       "100500",
			expectedMessage:    "Internal server error",
		},
		{
			name:               "echo http error preserves status code",
			error:              echo.NewHTTPError(http.StatusForbidden, "forbidden"),
			expectedStatusCode: http.StatusForbidden,
			expectedCode:       "100403",
			expectedMessage:    "forbidden",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer()
			addRoute(server, "/error", func(c echo.Context) error {
				return tt.error
			})

			response := makeRequest(server, http.MethodGet, "/error", nil)

			assert.Equal(t, tt.expectedStatusCode, response.Code)
			resp := decodeAPIResponse(t, response)
			assert.Equal(t, tt.expectedCode, resp.Code)
			assert.Equal(t, tt.expectedMessage, resp.Message)
		})
	}

	t.Run("unknown route returns 404 envelope", func(t *testing.T) {
		response := makeRequest(newTestServer(), http.MethodGet, "/nowhere", nil)

		assert.Equal(t, http.StatusNotFound, response.Code)
		assert.Equal(t, "100404", decodeAPIResponse(t, response).Code)
	})
}

// Helper functions for test setup and assertions

func allocateRandomPort(t *testing.T) int {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()
	return port
}

func waitForServerReady(t *testing.T, port int) {
	t.Helper()
	url := fmt.Sprintf("http://127.0.0.1:%d/healthcheck", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) // nolint: noctx
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)
}

func makeRequest(server *httpserver.Server, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func addRoute(server *httpserver.Server, path string, h echo.HandlerFunc) {
	server.Router.GET(path, h)
}
