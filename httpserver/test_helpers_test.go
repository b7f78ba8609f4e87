package httpserver_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"contactbook/pkg/config"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{}
}

// apiResponse mirrors the envelope with the data left raw so each test can
// decode it into whatever shape it expects.
type apiResponse struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
}

func decodeAPIResponse(t *testing.T, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), "failed to decode response envelope")
	return resp
}

func decodeData(t *testing.T, raw json.RawMessage, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, v), "failed to decode envelope data")
}

func strPtr(s string) *string {
	return &s
}
