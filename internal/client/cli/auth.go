package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/equiply/equiply-cli/internal/client/api"
	"github.com/equiply/equiply-cli/internal/client/session"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the server.
// Consecutive failures are throttled: after five wrong attempts further
// tries are blocked for five minutes, matching the web client.
func (a *App) Login(ctx context.Context) error {
	allowed, wait, err := a.throttle.Allowed(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		fmt.Fprintf(a.out, "Too many failed attempts. Try again in %s.\n", wait.Round(time.Second))
		return nil
	}

	userName, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.controller.SetRoute(session.RouteSignIn)
	if _, err := a.api.Login(ctx, userName, password); err != nil {
		if recordErr := a.throttle.RecordFailure(ctx); recordErr != nil {
			a.log.Error(ctx, "failed to record login attempt", "error", recordErr)
		}
		a.log.Warn(ctx, "login unsuccessful", "error", err)
		fmt.Fprintln(a.out, "Login failed:", loginErrorText(err))
		return err
	}

	if err := a.throttle.Reset(ctx); err != nil {
		a.log.Error(ctx, "failed to reset login throttle", "error", err)
	}
	a.log.Info(ctx, "login successful")
	return nil
}

func loginErrorText(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	if errors.Is(err, api.ErrUnavailable) {
		return "server unavailable"
	}
	return err.Error()
}

// Register prompts for account details and creates a new account. When the
// deployment requires email verification the user is told to check their
// inbox; otherwise the fresh session is active immediately.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}

	a.controller.SetRoute(session.RouteSignUp)
	user, err := a.api.Register(ctx, api.RegisterRequest{
		Username: username, Email: email, Password: password,
	})
	if err != nil {
		a.log.Warn(ctx, "registration unsuccessful", "error", err)
		fmt.Fprintln(a.out, "Registration failed:", loginErrorText(err))
		return err
	}

	if user.RequiresVerification {
		fmt.Fprintln(a.out, "Account created. Check your email to verify it, then log in.")
	} else {
		fmt.Fprintln(a.out, "Account created. You are signed in.")
	}
	return nil
}

// Logout ends the session. Local credentials are cleared even when the
// server round trip fails.
func (a *App) Logout(ctx context.Context) error {
	if err := a.api.Logout(ctx); err != nil {
		a.log.Warn(ctx, "server logout failed, local session cleared", "error", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// ForgotPassword requests a password reset email.
func (a *App) ForgotPassword(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	a.controller.SetRoute(session.RouteForgotPassword)
	if err := a.api.ForgotPassword(ctx, email); err != nil {
		fmt.Fprintln(a.out, "Request failed:", loginErrorText(err))
		return err
	}
	fmt.Fprintln(a.out, "If the account exists, a reset email is on its way.")
	return nil
}

// Whoami prints the identity decoded from the current access token.
func (a *App) Whoami(ctx context.Context) error {
	user := a.state.CurrentUser(ctx)
	if user == nil {
		fmt.Fprintln(a.out, "Not signed in.")
		return nil
	}
	fmt.Fprintf(a.out, "Email: %s\nUser ID: %s\nRole: %s\nVerified: %t\n",
		user.Email, user.UserID, user.Role, user.IsVerified)
	return nil
}
