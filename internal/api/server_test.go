package api_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/othello/internal/api"
	"github.com/mcoot/othello/internal/testutil"
)

func TestServerStartAndShutdown(t *testing.T) {
	ts := newTestServer(t)

	cfg := api.DefaultServerConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(ts.handler, cfg, testutil.NopLogger())

	require.NoError(t, server.Listen())
	assert.NotEqual(t, "127.0.0.1:0", server.Addr())

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	resp, err := http.Get("http://" + server.Addr() + "/api/v1/health")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")

	require.NoError(t, server.Shutdown(context.Background()))
	assert.NoError(t, <-errCh)
}

func TestServerAddrBeforeListen(t *testing.T) {
	cfg := api.DefaultServerConfig()
	server := api.NewServer(http.NotFoundHandler(), cfg, testutil.NopLogger())

	assert.Equal(t, ":8080", server.Addr())
}
