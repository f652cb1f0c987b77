package session

import (
	"context"
	"sync"

	"github.com/equiply/equiply-cli/internal/logging"
)

// Routes the controller navigates between. They mirror the web client's
// paths so navigation targets stay recognizable across both clients.
const (
	RouteSignIn         = "/login"
	RouteSignUp         = "/register"
	RouteForgotPassword = "/forgot-password"
	RouteLanding        = "/"
	RouteWorkspaces     = "/workspaces"
)

// Status is the controller's view of the session.
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "loading"
	}
}

// Navigator performs the navigation side effects of an auth transition.
type Navigator interface {
	Navigate(route string)
}

// Controller keeps the UI in sync with the session. It re-derives the
// session state on every auth signal and performs redirects on
// transitions. Repeated navigation to the same target is suppressed to
// break potential event/navigation loops; the fatal signal bypasses that
// guard.
type Controller struct {
	state *State
	bus   *Bus
	nav   Navigator
	log   logging.Logger

	mu            sync.Mutex
	status        Status
	route         string
	lastNavigated string
	cancels       []func()
}

func NewController(state *State, bus *Bus, nav Navigator, log logging.Logger) *Controller {
	return &Controller{
		state:  state,
		bus:    bus,
		nav:    nav,
		log:    log.With("component", "controller"),
		status: StatusLoading,
		route:  RouteLanding,
	}
}

// Start performs the initial synchronous evaluation, so callers never render
// protected content before the first status is known, then subscribes to the
// auth signals.
func (c *Controller) Start(ctx context.Context) {
	c.evaluate(ctx)

	c.cancels = append(c.cancels,
		c.bus.Subscribe(EventAuthChanged, func(EventKind) { c.evaluate(ctx) }),
		c.bus.Subscribe(EventStorageChanged, func(EventKind) { c.evaluate(ctx) }),
		c.bus.Subscribe(EventAuthFatal, func(EventKind) { c.fatal(ctx) }),
	)
}

// Stop detaches the controller from the bus.
func (c *Controller) Stop() {
	for _, cancel := range c.cancels {
		cancel()
	}
	c.cancels = nil
}

// Status returns the last derived status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// CurrentRoute returns the route the controller believes the UI is on.
func (c *Controller) CurrentRoute() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.route
}

// SetRoute records a navigation that happened outside the controller (the
// user moving around on their own). A manual move re-arms the repeat guard.
func (c *Controller) SetRoute(route string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.route != route {
		c.route = route
		c.lastNavigated = ""
	}
}

func isAuthRoute(route string) bool {
	switch route {
	case RouteSignIn, RouteSignUp, RouteForgotPassword:
		return true
	}
	return false
}

// evaluate re-derives the session state and applies the transition rules.
func (c *Controller) evaluate(ctx context.Context) {
	authenticated := c.state.IsAuthenticated(ctx)

	c.mu.Lock()
	previous := c.status
	if authenticated {
		c.status = StatusAuthenticated
	} else {
		c.status = StatusUnauthenticated
	}

	var target string
	if authenticated && (isAuthRoute(c.route) || c.route == RouteLanding) {
		target = RouteWorkspaces
	} else if !authenticated && !isAuthRoute(c.route) {
		target = RouteSignIn
	}

	if target == "" || target == c.lastNavigated {
		c.mu.Unlock()
		return
	}
	c.lastNavigated = target
	c.route = target
	c.mu.Unlock()

	c.log.Debug(ctx, "auth transition", "from", previous, "to", c.Status(), "target", target)
	c.nav.Navigate(target)
}

// fatal forces the unauthenticated state and redirects to sign-in,
// bypassing the repeat guard.
func (c *Controller) fatal(ctx context.Context) {
	c.mu.Lock()
	c.status = StatusUnauthenticated
	c.route = RouteSignIn
	c.lastNavigated = RouteSignIn
	c.mu.Unlock()

	c.log.Warn(ctx, "fatal auth failure, redirecting to sign-in")
	c.nav.Navigate(RouteSignIn)
}
