package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/ukydev/fleet-maintenance/internal/api"
	"github.com/ukydev/fleet-maintenance/internal/auth"
	"github.com/ukydev/fleet-maintenance/internal/config"
	"github.com/ukydev/fleet-maintenance/internal/loader"
	"github.com/ukydev/fleet-maintenance/internal/middleware"
	"github.com/ukydev/fleet-maintenance/internal/models"
	"github.com/ukydev/fleet-maintenance/internal/resources"
	"github.com/ukydev/fleet-maintenance/internal/session"
)

const usage = `Usage: fleetctl <command> [arguments]

Commands:
  login         sign in and store the session
  logout        forget the stored session
  whoami        show the signed-in user
  dashboard     show fleet totals and recent services
  trucks        list | show | create | update | delete
  services      list | show | create | update | delete
  materials     list | add | update | delete
  measurements  list | add
  report        aggregate services by truck

Run 'fleetctl <command> -h' for the flags of a command.
`

// App wires the API client, resources and session manager behind the CLI
// commands.
type App struct {
	cfg    *config.Config
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	auth         *auth.Manager
	trucks       *resources.Trucks
	services     *resources.Services
	measurements *resources.Measurements
	dashboard    *resources.Dashboard
	loader       *loader.Loader
	interceptor  *middleware.UnauthorizedInterceptor

	commands map[string]middleware.Command
}

// NewApp builds an App on top of store.
func NewApp(cfg *config.Config, store session.Store, in io.Reader, out io.Writer, logger *log.Logger) *App {
	a := &App{cfg: cfg, in: in, out: out, logger: logger}
	a.interceptor = middleware.NewUnauthorizedInterceptor(out)

	client := api.NewClient(cfg.APIURL, store,
		api.WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}),
		api.WithLogger(logger),
		api.WithUnauthorizedHandler(a.interceptor.Handler()),
	)

	a.auth = auth.NewManager(store, resources.NewAuth(client))
	a.trucks = resources.NewTrucks(client)
	a.services = resources.NewServices(client)
	a.measurements = resources.NewMeasurements(client)
	a.dashboard = resources.NewDashboard(client)
	a.loader = loader.New(a.trucks, a.services, a.measurements)

	gate := middleware.NewAuthGate(a.auth, "login", "logout")
	a.commands = map[string]middleware.Command{}
	for name, cmd := range map[string]middleware.Command{
		"login":        a.login,
		"logout":       a.logout,
		"whoami":       a.whoami,
		"dashboard":    a.showDashboard,
		"trucks":       a.trucksCmd,
		"services":     a.servicesCmd,
		"materials":    a.materialsCmd,
		"measurements": a.measurementsCmd,
		"report":       a.reportCmd,
	} {
		a.commands[name] = gate.Authenticate(name, cmd)
	}
	return a
}

// Run dispatches args to a command.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprint(a.out, usage)
		return nil
	}
	cmd, ok := a.commands[args[0]]
	if !ok {
		fmt.Fprint(a.out, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
	a.logger.WithField("command", args[0]).Debug("Running command")
	return cmd(ctx, args[1:])
}

// dispatch runs the handler named by the first arg.
func dispatch(ctx context.Context, group string, args []string, handlers map[string]middleware.Command) error {
	names := make([]string, 0, len(handlers))
	for name := range handlers {
		names = append(names, name)
	}
	sort.Strings(names)

	if len(args) == 0 {
		return fmt.Errorf("usage: fleetctl %s %s", group, strings.Join(names, "|"))
	}
	h, ok := handlers[args[0]]
	if !ok {
		return fmt.Errorf("unknown %s command %q (want %s)", group, args[0], strings.Join(names, "|"))
	}
	return h(ctx, args[1:])
}

// describeError turns client errors into a message for the terminal.
func describeError(err error) string {
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		lines := []string{"invalid input:"}
		for _, f := range verr.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", f.Field, f.Message))
		}
		return strings.Join(lines, "\n")
	}
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	switch {
	case errors.Is(err, api.ErrUnauthorized):
		return "session expired, please log in again"
	case errors.Is(err, api.ErrConnection):
		return api.ErrConnection.Error()
	case errors.Is(err, context.Canceled):
		return "interrupted"
	}
	return err.Error()
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

// parseArgs parses flags that may appear before, between or after positional
// arguments and returns the positionals.
func parseArgs(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if terminated(fs, args[:len(args)-len(rest)]) {
			return append(positional, rest...), nil
		}
		if len(rest) == 0 {
			return positional, nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

// terminated reports whether the arguments consumed by the last Parse
// ended with a "--" terminator rather than a flag value spelled "--".
func terminated(fs *flag.FlagSet, parsed []string) bool {
	for i := 0; i < len(parsed); i++ {
		arg := parsed[i]
		if arg == "--" {
			return i == len(parsed)-1
		}
		name := strings.TrimPrefix(strings.TrimPrefix(arg, "-"), "-")
		if strings.Contains(name, "=") {
			continue
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		i++
	}
	return false
}

// visited returns the names of the flags set on the command line.
func visited(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

func expectArgs(positional []string, n int, usage string) error {
	if len(positional) != n {
		return fmt.Errorf("usage: fleetctl %s", usage)
	}
	return nil
}
