package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a
// lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	ForgotPassword(ctx context.Context) error
	Logout(ctx context.Context) error
	Whoami(ctx context.Context) error
	listWorkspaces(ctx context.Context, search string) error
	createWorkspace(ctx context.Context) error
	listChats(ctx context.Context) error
	createChat(ctx context.Context) error
	ask(ctx context.Context, chatID string) error
	showHistory(ctx context.Context, chatID string) error
	clearHistory(ctx context.Context, chatID string) error
	renameChat(ctx context.Context, chatID string) error
	deleteChat(ctx context.Context, chatID string) error
	chatStats(ctx context.Context) error
}

const (
	helpSignedOut = "Available commands: login, register, forgot, exit"
	helpSignedIn  = "Available commands: whoami, (w)orkspaces [search], wsnew, chats, chatnew, " +
		"ask <chat-id>, history <chat-id>, clearhistory <chat-id>, rename <chat-id>, " +
		"delchat <chat-id>, stats, logout, exit"
)

// runREPL starts a simple read-eval-print loop. It reads a line from the
// provided scanner, parses the first token as the command, and dispatches to
// methods on 'a'. Unknown commands are reported back to the user. The loop
// exits on scanner EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	needChatID := func(args []string, usage string) (string, bool) {
		if len(args) == 0 {
			printlnFn("Usage: " + usage)
			return "", false
		}
		return args[0], true
	}

	for {
		printlnFn(fmt.Sprintf("equiply %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpSignedIn)
			} else {
				printlnFn(helpSignedOut)
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "forgot":
			_ = a.ForgotPassword(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "whoami":
			_ = a.Whoami(ctx)

		case "w", "workspaces":
			search := ""
			if len(args) > 0 {
				search = strings.Join(args, " ")
			}
			_ = a.listWorkspaces(ctx, search)

		case "wsnew":
			_ = a.createWorkspace(ctx)

		case "chats":
			_ = a.listChats(ctx)

		case "chatnew":
			_ = a.createChat(ctx)

		case "ask":
			if id, ok := needChatID(args, "ask <chat-id>"); ok {
				_ = a.ask(ctx, id)
			}

		case "history":
			if id, ok := needChatID(args, "history <chat-id>"); ok {
				_ = a.showHistory(ctx, id)
			}

		case "clearhistory":
			if id, ok := needChatID(args, "clearhistory <chat-id>"); ok {
				_ = a.clearHistory(ctx, id)
			}

		case "rename":
			if id, ok := needChatID(args, "rename <chat-id>"); ok {
				_ = a.renameChat(ctx, id)
			}

		case "delchat":
			if id, ok := needChatID(args, "delchat <chat-id>"); ok {
				_ = a.deleteChat(ctx, id)
			}

		case "stats":
			_ = a.chatStats(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
