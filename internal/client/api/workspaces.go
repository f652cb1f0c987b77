package api

import (
	"context"
	"net/url"
	"strconv"
)

const pathWorkspaces = "/api/v1/workspaces"

// ListWorkspacesParams filters and paginates a workspace listing.
// Zero values are omitted from the query.
type ListWorkspacesParams struct {
	Skip     int
	Limit    int
	SortBy   string
	SortDesc bool
	Search   string
}

func (p ListWorkspacesParams) query() url.Values {
	q := url.Values{}
	if p.Skip > 0 {
		q.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.SortBy != "" {
		q.Set("sort_by", p.SortBy)
		q.Set("sort_desc", strconv.FormatBool(p.SortDesc))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	return q
}

// Workspaces returns one page of the account's workspaces.
func (c *Client) Workspaces(ctx context.Context, params ListWorkspacesParams) (*WorkspacePage, error) {
	var envelope response[WorkspacePage]
	if err := c.getJSON(ctx, pathWorkspaces, params.query(), &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// CreateWorkspace creates a workspace owned by the current user.
func (c *Client) CreateWorkspace(ctx context.Context, req CreateWorkspaceRequest) (*Workspace, error) {
	var envelope response[Workspace]
	if err := c.postJSON(ctx, pathWorkspaces, nil, req, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}
