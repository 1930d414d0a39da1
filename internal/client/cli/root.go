package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	ctx := context.Background()
	if !a.state.IsAuthenticated(ctx) {
		return "(anonymous)"
	}
	u, err := a.state.User(ctx)
	if err != nil || u == nil {
		return "(signed in)"
	}
	return fmt.Sprintf("(%s %s)", u.Email, u.UserType)
}

// Root prints the banner and runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Println("Welcome to PlanHub CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
