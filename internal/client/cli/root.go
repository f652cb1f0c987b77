package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/equiply/equiply-cli/internal/client/session"
)

func (a *App) getStatus() string {
	user := a.state.CurrentUser(context.Background())
	if user != nil {
		return fmt.Sprintf("(%s)", user.Email)
	}
	if a.controller.Status() == session.StatusUnauthenticated {
		return "(signed out)"
	}
	return ""
}

// Root runs the interactive loop until EOF or an exit command.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Equiply CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
