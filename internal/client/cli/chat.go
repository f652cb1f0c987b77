package cli

import (
	"context"
	"fmt"

	"github.com/equiply/equiply-cli/internal/client/api"
)

// listChats prints the account's chat sessions.
func (a *App) listChats(ctx context.Context) error {
	chats, err := a.api.Chats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to list chats:", loginErrorText(err))
		return err
	}
	if len(chats) == 0 {
		fmt.Fprintln(a.out, "No chats.")
		return nil
	}
	for _, chat := range chats {
		fmt.Fprintf(a.out, "%s  %s\n", chat.ID, chat.Title)
	}
	return nil
}

// createChat interactively starts a new chat session.
func (a *App) createChat(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Chat title", a.out)
	if err != nil {
		return err
	}
	chat, err := a.api.CreateChat(ctx, title, "")
	if err != nil {
		fmt.Fprintln(a.out, "Failed to create chat:", loginErrorText(err))
		return err
	}
	fmt.Fprintf(a.out, "Created chat %s (%s)\n", chat.Title, chat.ID)
	return nil
}

// ask sends one message to a chat and prints the model reply.
func (a *App) ask(ctx context.Context, chatID string) error {
	message, err := GetMultiline(a.reader, "Your message", a.out)
	if err != nil {
		return err
	}
	if message == "" {
		fmt.Fprintln(a.out, "Empty message, nothing sent.")
		return nil
	}

	result, err := a.api.Completion(ctx, chatID, message)
	if err != nil {
		fmt.Fprintln(a.out, "Completion failed:", loginErrorText(err))
		return err
	}
	if text := result.Text(); text != "" {
		fmt.Fprintln(a.out, text)
	} else {
		fmt.Fprintln(a.out, "(empty reply)")
	}
	return nil
}

// showHistory prints a chat transcript.
func (a *App) showHistory(ctx context.Context, chatID string) error {
	history, err := a.api.History(ctx, chatID)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load history:", loginErrorText(err))
		return err
	}
	if len(history) == 0 {
		fmt.Fprintln(a.out, "History is empty.")
		return nil
	}
	for _, msg := range history {
		fmt.Fprintf(a.out, "[%s] %s\n", msg.Role, msg.Text)
	}
	return nil
}

// clearHistory wipes a chat transcript after confirmation.
func (a *App) clearHistory(ctx context.Context, chatID string) error {
	answer, err := getSimpleText(a.reader, "Clear chat history? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	if err := a.api.ClearHistory(ctx, chatID); err != nil {
		fmt.Fprintln(a.out, "Failed to clear history:", loginErrorText(err))
		return err
	}
	fmt.Fprintln(a.out, "History cleared.")
	return nil
}

// deleteChat removes a chat after confirmation.
func (a *App) deleteChat(ctx context.Context, chatID string) error {
	answer, err := getSimpleText(a.reader, "Delete chat? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" {
		return nil
	}
	if err := a.api.DeleteChat(ctx, chatID); err != nil {
		fmt.Fprintln(a.out, "Failed to delete chat:", loginErrorText(err))
		return err
	}
	fmt.Fprintln(a.out, "Chat deleted.")
	return nil
}

// renameChat updates a chat title.
func (a *App) renameChat(ctx context.Context, chatID string) error {
	title, err := getSimpleText(a.reader, "New title", a.out)
	if err != nil {
		return err
	}
	if _, err := a.api.UpdateChat(ctx, chatID, api.ChatUpdate{Title: &title}); err != nil {
		fmt.Fprintln(a.out, "Failed to rename chat:", loginErrorText(err))
		return err
	}
	fmt.Fprintln(a.out, "Renamed.")
	return nil
}

// chatStats prints aggregate usage counters.
func (a *App) chatStats(ctx context.Context) error {
	stats, err := a.api.Stats(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Failed to load stats:", loginErrorText(err))
		return err
	}
	fmt.Fprintf(a.out, "Chats: %d\nMessages: %d\nTokens: %d\n",
		stats.TotalChats, stats.TotalMessages, stats.TotalTokens)
	return nil
}
