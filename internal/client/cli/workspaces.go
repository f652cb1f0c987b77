package cli

import (
	"context"
	"fmt"

	"github.com/equiply/equiply-cli/internal/client/api"
	"github.com/equiply/equiply-cli/internal/client/session"
)

const workspacePageSize = 20

// listWorkspaces prints the first page of workspaces, optionally filtered
// by a search term.
func (a *App) listWorkspaces(ctx context.Context, search string) error {
	a.controller.SetRoute(session.RouteWorkspaces)

	page, err := a.api.Workspaces(ctx, api.ListWorkspacesParams{
		Limit:    workspacePageSize,
		SortBy:   "created_at",
		SortDesc: true,
		Search:   search,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Failed to list workspaces:", loginErrorText(err))
		return err
	}

	if len(page.Items) == 0 {
		fmt.Fprintln(a.out, "No workspaces.")
		return nil
	}
	for _, ws := range page.Items {
		visibility := "private"
		if ws.IsPublic {
			visibility = "public"
		}
		fmt.Fprintf(a.out, "%s  %s (%s)\n", ws.ID, ws.Name, visibility)
	}
	fmt.Fprintf(a.out, "Total: %d\n", page.Total)
	return nil
}

// createWorkspace interactively creates a workspace.
func (a *App) createWorkspace(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Workspace name", a.out)
	if err != nil {
		return err
	}
	description, err := getSimpleText(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}

	ws, err := a.api.CreateWorkspace(ctx, api.CreateWorkspaceRequest{
		Name: name, Description: description,
	})
	if err != nil {
		fmt.Fprintln(a.out, "Failed to create workspace:", loginErrorText(err))
		return err
	}
	fmt.Fprintf(a.out, "Created workspace %s (%s)\n", ws.Name, ws.ID)
	return nil
}
