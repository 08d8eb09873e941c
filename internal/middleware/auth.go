package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/api"
)

// ErrLoginRequired is returned when a protected command runs without a session.
var ErrLoginRequired = errors.New("login required: run 'fleetctl login'")

// Command is one CLI action.
type Command func(ctx context.Context, args []string) error

// SessionChecker reports whether a session is persisted.
type SessionChecker interface {
	IsAuthenticated(ctx context.Context) bool
}

// AuthGate keeps protected commands from running while logged out.
type AuthGate struct {
	sessions SessionChecker
	public   map[string]bool
}

// NewAuthGate creates a gate. Commands named in public skip the check.
func NewAuthGate(sessions SessionChecker, public ...string) *AuthGate {
	g := &AuthGate{sessions: sessions, public: make(map[string]bool)}
	for _, name := range public {
		g.public[name] = true
	}
	return g
}

// Authenticate wraps next so it only runs with a persisted session.
func (g *AuthGate) Authenticate(name string, next Command) Command {
	return func(ctx context.Context, args []string) error {
		if g.public[name] {
			return next(ctx, args)
		}
		if !g.sessions.IsAuthenticated(ctx) {
			log.WithField("command", name).Debug("Blocked command without session")
			return ErrLoginRequired
		}
		return next(ctx, args)
	}
}

// UnauthorizedInterceptor tells the user to log in again once the API client
// has cleared a rejected session.
type UnauthorizedInterceptor struct {
	out   io.Writer
	mu    sync.Mutex
	fired bool
}

// NewUnauthorizedInterceptor creates an interceptor writing its notice to out.
func NewUnauthorizedInterceptor(out io.Writer) *UnauthorizedInterceptor {
	return &UnauthorizedInterceptor{out: out}
}

// Handler is registered on the API client with api.WithUnauthorizedHandler.
// Concurrent 401s from one batch print a single notice.
func (i *UnauthorizedInterceptor) Handler() api.UnauthorizedHandler {
	return func(ctx context.Context) {
		i.mu.Lock()
		defer i.mu.Unlock()
		if i.fired {
			return
		}
		i.fired = true
		log.Warn("Session rejected by server")
		fmt.Fprintln(i.out, "Your session has expired. Run 'fleetctl login' to sign in again.")
	}
}

// Fired reports whether a 401 has been intercepted.
func (i *UnauthorizedInterceptor) Fired() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.fired
}
