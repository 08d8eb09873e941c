package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

func TestAuthGate_Authenticate(t *testing.T) {
	ctx := context.Background()
	store := session.NewMemoryStore()
	gate := NewAuthGate(auth.NewManager(store, nil), "login")

	// Logged out
	t.Run("blocks protected command", func(t *testing.T) {
		handlerCalled := false
		cmd := gate.Authenticate("trucks", func(ctx context.Context, args []string) error {
			handlerCalled = true
			return nil
		})

		err := cmd(ctx, nil)
		assert.ErrorIs(t, err, ErrLoginRequired)
		assert.False(t, handlerCalled)
	})

	t.Run("public command passes", func(t *testing.T) {
		handlerCalled := false
		cmd := gate.Authenticate("login", func(ctx context.Context, args []string) error {
			handlerCalled = true
			return nil
		})

		require.NoError(t, cmd(ctx, nil))
		assert.True(t, handlerCalled)
	})

	// Logged in
	t.Run("allows protected command with session", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &session.Session{Token: "tok"}))
		defer store.Clear(ctx)

		var gotArgs []string
		cmd := gate.Authenticate("trucks", func(ctx context.Context, args []string) error {
			gotArgs = args
			return nil
		})

		require.NoError(t, cmd(ctx, []string{"list"}))
		assert.Equal(t, []string{"list"}, gotArgs)
	})

	t.Run("passes command errors through", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &session.Session{Token: "tok"}))
		defer store.Clear(ctx)

		boom := errors.New("boom")
		cmd := gate.Authenticate("trucks", func(ctx context.Context, args []string) error {
			return boom
		})

		assert.ErrorIs(t, cmd(ctx, nil), boom)
	})

	t.Run("empty token is logged out", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, &session.Session{Token: ""}))
		defer store.Clear(ctx)

		cmd := gate.Authenticate("dashboard", func(ctx context.Context, args []string) error { return nil })
		assert.ErrorIs(t, cmd(ctx, nil), ErrLoginRequired)
	})
}

func TestUnauthorizedInterceptor(t *testing.T) {
	var out bytes.Buffer
	interceptor := NewUnauthorizedInterceptor(&out)
	assert.False(t, interceptor.Fired())

	handler := interceptor.Handler()
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			handler(context.Background())
		}()
	}
	wg.Wait()

	assert.True(t, interceptor.Fired())
	assert.Equal(t, 1, strings.Count(out.String(), "fleetctl login"))
}

func TestUnauthorizedInterceptor_WithClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ctx := context.Background()
	store := session.NewMemoryStore()
	require.NoError(t, store.Save(ctx, &session.Session{Token: "stale"}))

	var out bytes.Buffer
	interceptor := NewUnauthorizedInterceptor(&out)
	client := api.NewClient(server.URL, store, api.WithUnauthorizedHandler(interceptor.Handler()))
	gate := NewAuthGate(auth.NewManager(store, nil))

	cmd := gate.Authenticate("dashboard", func(ctx context.Context, args []string) error {
		return client.Do(ctx, http.MethodGet, "/dashboard/stats", nil, nil)
	})

	assert.ErrorIs(t, cmd(ctx, nil), api.ErrUnauthorized)
	assert.True(t, interceptor.Fired())

	// The session is gone, so the next run is stopped at the gate.
	assert.ErrorIs(t, cmd(ctx, nil), ErrLoginRequired)
}
