package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"

	"github.com/equiply/equiply-cli/internal/client/api"
	"github.com/equiply/equiply-cli/internal/client/config"
	"github.com/equiply/equiply-cli/internal/client/session"
	"github.com/equiply/equiply-cli/internal/client/store"
	"github.com/equiply/equiply-cli/internal/logging"
)

// App wires the session machinery together and drives the interactive
// command loop. It implements session.Navigator: route changes from the
// controller land in showRoute and are reflected in the prompt.
type App struct {
	config *config.Config
	log    logging.Logger

	kv         *store.Store
	clientType session.ClientType
	tokens     *session.TokenStore
	state      *session.State
	bus        *session.Bus
	controller *session.Controller
	watcher    *session.StoreWatcher
	api        *api.Client
	throttle   *loginThrottle

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	base, err := url.Parse(c.ServerBaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server base URL: %w", err)
	}

	// The key-value store is always opened: mobile clients keep tokens in
	// it, and both client types use it for login throttling state.
	kv, err := store.Open(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	clientType := session.ClassifyUserAgent(c.UserAgent)
	log.Info(ctx, "classified client", "client_type", clientType)

	var backend session.Backend
	if clientType.UseCookies() {
		backend = session.NewCookieBackend(jar, base)
	} else {
		backend = session.NewStorageBackend(kv)
	}

	tokens := session.NewTokenStore(backend)
	state := session.NewState(tokens)
	bus := session.NewBus()

	refreshClient := &http.Client{Jar: jar, Timeout: c.RequestTimeout}
	coordinator := session.NewRefreshCoordinator(tokens, refreshClient, base,
		clientType, c.RefreshTimeout, log)

	app := &App{
		config:     c,
		log:        log,
		kv:         kv,
		clientType: clientType,
		tokens:     tokens,
		state:      state,
		bus:        bus,
		throttle:   newLoginThrottle(kv),
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
	}

	app.controller = session.NewController(state, bus, app, log)

	transport := api.NewAuthTransport(nil, tokens, coordinator, bus,
		app.controller.CurrentRoute, log)
	httpClient := &http.Client{Transport: transport, Jar: jar, Timeout: c.RequestTimeout}
	app.api = api.NewClient(base, httpClient, tokens, bus, clientType, log)

	if watcher, werr := session.NewStoreWatcher(c.DatabasePath, bus, log); werr != nil {
		// Cross-process change detection is best effort.
		log.Warn(ctx, "store watcher unavailable", "error", werr)
	} else {
		app.watcher = watcher
	}

	return app, nil
}

// Navigate implements session.Navigator.
func (a *App) Navigate(route string) {
	a.showRoute(route)
}

func (a *App) showRoute(route string) {
	switch route {
	case session.RouteSignIn:
		fmt.Fprintln(a.out, "You are signed out. Use 'login' or 'register'.")
	case session.RouteWorkspaces:
		fmt.Fprintln(a.out, "Signed in. Type 'help' for commands.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.controller.Status() == session.StatusAuthenticated
}

func (a *App) Run(ctx context.Context) {
	a.controller.Start(ctx)
	defer a.controller.Stop()

	if a.watcher != nil {
		go a.watcher.Run(ctx)
		defer a.watcher.Close()
	}
	defer a.kv.Close()

	a.Root(ctx)
}
