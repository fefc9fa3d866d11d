package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sequentlabs/sequent/internal/metrics"
	httpadapter "github.com/sequentlabs/sequent/pkg/adapters/http"
	"github.com/sequentlabs/sequent/pkg/adapters/sandbox"
	"github.com/sequentlabs/sequent/pkg/protocol"
	"github.com/sequentlabs/sequent/pkg/session"
)

func newTestServer(t *testing.T, opts ...httpadapter.Option) *httptest.Server {
	t.Helper()
	disp := protocol.NewDispatcher(session.NewService(sandbox.New()))
	srv := httptest.NewServer(httpadapter.NewHandler(disp, opts...))
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, body string) protocol.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+"/rpc", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out protocol.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestHandler_RPC(t *testing.T) {
	srv := newTestServer(t)

	out := post(t, srv, `{"id": 1, "method": "newState", "params": {"goals": [{"name": "h", "type": "Nat"}]}}`)
	require.Nil(t, out.Error)
	result, ok := out.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(1), result["stateId"])

	out = post(t, srv, `{"id": 2, "method": "queryState", "params": {"stateId": 1}}`)
	require.Nil(t, out.Error)
}

func TestHandler_ProtocolErrorsKeepStatus200(t *testing.T) {
	srv := newTestServer(t)

	out := post(t, srv, `not json`)
	require.NotNil(t, out.Error)
	assert.Equal(t, -32700, out.Error.Code)

	out = post(t, srv, `{"id": 1, "method": "nope", "params": {}}`)
	require.NotNil(t, out.Error)
	assert.Equal(t, -32601, out.Error.Code)
}

func TestHandler_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

func TestHandler_MetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics.New(reg)
	srv := newTestServer(t, httpadapter.WithGatherer(reg))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHandler_MetricsAbsentWithoutGatherer(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
