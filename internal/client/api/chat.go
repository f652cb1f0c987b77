package api

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
)

const pathChats = "/api/v1/ai/chats"

// Chats lists the account's AI chat sessions.
func (c *Client) Chats(ctx context.Context) ([]Chat, error) {
	var envelope response[[]Chat]
	if err := c.getJSON(ctx, pathChats, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// SearchChats lists chats whose title or description matches the query.
func (c *Client) SearchChats(ctx context.Context, query string) ([]Chat, error) {
	var envelope response[[]Chat]
	q := url.Values{"search": {query}}
	if err := c.getJSON(ctx, pathChats+"/search", q, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// CreateChat starts a new chat session.
func (c *Client) CreateChat(ctx context.Context, title, description string) (*Chat, error) {
	payload := struct {
		Title       string `json:"title"`
		Description string `json:"description,omitempty"`
	}{Title: title, Description: description}

	var envelope response[Chat]
	if err := c.postJSON(ctx, pathChats, nil, payload, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// GetChat returns one chat by id.
func (c *Client) GetChat(ctx context.Context, id string) (*Chat, error) {
	var envelope response[Chat]
	if err := c.getJSON(ctx, pathChats+"/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// UpdateChat applies a partial update to a chat.
func (c *Client) UpdateChat(ctx context.Context, id string, upd ChatUpdate) (*Chat, error) {
	var envelope response[Chat]
	if err := c.putJSON(ctx, pathChats+"/"+id, upd, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// DeleteChat removes a chat and its history.
func (c *Client) DeleteChat(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, pathChats+"/"+id, nil, nil)
}

// History returns the chat transcript.
func (c *Client) History(ctx context.Context, id string) ([]ChatMessage, error) {
	var envelope response[[]ChatMessage]
	if err := c.getJSON(ctx, pathChats+"/"+id+"/history", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// ClearHistory wipes the chat transcript but keeps the chat itself.
func (c *Client) ClearHistory(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, pathChats+"/"+id+"/history", nil, nil)
}

// Stats returns usage counters across the account's chats.
func (c *Client) Stats(ctx context.Context) (*ChatStats, error) {
	var envelope response[ChatStats]
	if err := c.getJSON(ctx, pathChats+"/stats", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

// Completion sends a user message to the chat and returns the model reply.
// The endpoint accepts multipart form data so attachments can ride along.
func (c *Client) Completion(ctx context.Context, chatID, message string) (*CompletionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("message", message); err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var result CompletionResult
	err := c.do(ctx, http.MethodPost, "/api/v1/ai/completion", url.Values{"chat_id": {chatID}},
		mw.FormDataContentType(), &body, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
