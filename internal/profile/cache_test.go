package profile

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evalgo.org/hostreg/internal/config"
)

func testLogger(buf *bytes.Buffer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(buf)
	l.SetLevel(logrus.DebugLevel)
	return l
}

func profileServer(t *testing.T, status *atomic.Int32, body *atomic.Value) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users" {
			http.NotFound(w, r)
			return
		}
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "hostreg/") {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("Authorization") != "Bearer svc-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(int(status.Load()))
		_, _ = w.Write([]byte(body.Load().(string)))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRefreshAndLoadAdmins(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	var body atomic.Value
	body.Store(`[
		{"sub": 42, "public": {"fullname": "Jane Doe", "email": "jane@example.edu"}},
		{"sub": "7", "public": {"fullname": "John Roe"}},
		{"public": {"fullname": "nobody"}}
	]`)
	srv := profileServer(t, &status, &body)

	var logs bytes.Buffer
	cache := New(config.ProfileConfig{URL: srv.URL, Token: "svc-token", Timeout: 5 * time.Second}, testLogger(&logs))

	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, 2, cache.Len())
	assert.False(t, cache.LastRefresh().IsZero())

	admins := cache.LoadAdmins([]string{"7", "missing", "42"})
	require.Len(t, admins, 2)
	assert.Equal(t, "John Roe", admins[0].Public.Fullname)
	assert.Equal(t, "42", admins[1].Sub)
	assert.Equal(t, "jane@example.edu", admins[1].Public.Email)
	assert.Contains(t, logs.String(), "Profile not found in cache")
	assert.Contains(t, logs.String(), "missing")
}

func TestRefreshFailureKeepsCache(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	var body atomic.Value
	body.Store(`[{"sub": "1", "public": {"fullname": "First"}}]`)
	srv := profileServer(t, &status, &body)

	cache := New(config.ProfileConfig{URL: srv.URL, Token: "svc-token"}, testLogger(&bytes.Buffer{}))
	require.NoError(t, cache.Refresh(context.Background()))

	status.Store(http.StatusInternalServerError)
	body.Store(`{"message": "boom"}`)
	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")

	p, ok := cache.Get("1")
	require.True(t, ok)
	assert.Equal(t, "First", p.Public.Fullname)

	// merge, never clear
	status.Store(http.StatusOK)
	body.Store(`[{"sub": "2", "public": {"fullname": "Second"}}]`)
	require.NoError(t, cache.Refresh(context.Background()))
	assert.Equal(t, 2, cache.Len())
}

func TestRefreshUnauthorized(t *testing.T) {
	var status atomic.Int32
	status.Store(http.StatusOK)
	var body atomic.Value
	body.Store(`[]`)
	srv := profileServer(t, &status, &body)

	cache := New(config.ProfileConfig{URL: srv.URL, Token: "wrong"}, testLogger(&bytes.Buffer{}))
	err := cache.Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Zero(t, cache.Len())
}

func TestStartRefreshesImmediatelyAndPeriodically(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"sub": "1"}]`))
	}))
	defer srv.Close()

	cache := New(config.ProfileConfig{URL: srv.URL, RefreshInterval: 20 * time.Millisecond}, testLogger(&bytes.Buffer{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		cache.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return hits.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, cache.Len())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

func TestLoadAdminsBeforeRefresh(t *testing.T) {
	cache := New(config.ProfileConfig{URL: "http://127.0.0.1:1"}, testLogger(&bytes.Buffer{}))
	assert.Empty(t, cache.LoadAdmins([]string{"1", "2"}))
	assert.NotNil(t, cache.LoadAdmins(nil))
}
