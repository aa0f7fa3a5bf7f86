package engine

import (
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/mockserver/pkg/metrics"
)

func startServer(t *testing.T, root string, cfg ServerConfig, opts ...ServerOption) *Server {
	t.Helper()
	srv := NewServer(cfg, newTestHandler(root), opts...)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })
	return srv
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServerStartStop(t *testing.T) {
	root := writeMocks(t, map[string]string{"hello/GET.mock": "HTTP/1.1 200 OK\n\nworld"})
	srv := startServer(t, root, ServerConfig{Host: "127.0.0.1"})

	assert.True(t, srv.IsRunning())
	assert.NotEmpty(t, srv.Addr())
	assert.Empty(t, srv.MetricsAddr())

	status, body := get(t, "http://"+srv.Addr()+"/hello")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "world", body)

	status, body = get(t, "http://"+srv.Addr()+"/missing")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Mocked", body)

	require.Error(t, srv.Start())

	require.NoError(t, srv.Stop())
	assert.False(t, srv.IsRunning())
	assert.Equal(t, time.Duration(0), srv.Uptime())
	require.NoError(t, srv.Stop())
}

func TestServerMetricsListener(t *testing.T) {
	root := writeMocks(t, map[string]string{"m/GET.mock": "HTTP/1.1 200 OK\n\nok"})
	m := metrics.New()

	srv := NewServer(
		ServerConfig{Host: "127.0.0.1"},
		newTestHandler(root, WithHandlerMetrics(m)),
		WithMetrics(m),
	)
	// A metrics port of 0 disables the listener, so bind one explicitly.
	srv.cfg.MetricsPort = freePort(t)
	require.NoError(t, srv.Start())
	t.Cleanup(func() { _ = srv.Stop() })

	get(t, "http://"+srv.Addr()+"/m")

	status, body := get(t, "http://"+srv.MetricsAddr()+"/metrics")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, `mockserver_requests_total{method="GET",status="200"} 1`)

	status, body = get(t, "http://"+srv.MetricsAddr()+"/health")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body)
}

func TestServerDelayedResponsesCompleteOnStop(t *testing.T) {
	root := writeMocks(t, map[string]string{"slow/GET.mock": "HTTP/1.1 200 OK\nResponse-Delay: 300\n\ndone"})
	srv := startServer(t, root, ServerConfig{Host: "127.0.0.1"})

	var (
		wg     sync.WaitGroup
		status int
		body   string
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		resp, err := http.Get("http://" + srv.Addr() + "/slow")
		if err != nil {
			return
		}
		defer resp.Body.Close()
		b, _ := io.ReadAll(resp.Body)
		status, body = resp.StatusCode, string(b)
	}()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, srv.Stop())
	wg.Wait()

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "done", body)
}

func TestServerPortInUse(t *testing.T) {
	root := t.TempDir()
	first := startServer(t, root, ServerConfig{Host: "127.0.0.1"})

	_, port := splitPort(t, first.Addr())
	second := NewServer(ServerConfig{Host: "127.0.0.1", Port: port}, newTestHandler(root))
	err := second.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
	assert.False(t, second.IsRunning())
}
