package httpserver_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"smdb/httpserver"
	"smdb/pkg/config"
)

type apiResponse struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
	Info    string          `json:"info"`
}

type pagedResult[T any] struct {
	Data  []T `json:"data"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Storage = config.StorageMemory
	cfg.RateLimit = 1000
	return cfg
}

func newTestServer() *httpserver.Server {
	server := httpserver.Default(testConfig())
	server.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	return server
}

func decodeAPIResponse(t *testing.T, recorder *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp), "body: %s", recorder.Body.String())
	return resp
}

func decodeAPIResult(t *testing.T, raw json.RawMessage, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), "result: %s", string(raw))
}
