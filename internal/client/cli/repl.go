package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	AcceptInvite(ctx context.Context) error
	Whoami(ctx context.Context) error
	Participants(ctx context.Context) error
	Providers(ctx context.Context) error
	Coordinators(ctx context.Context) error
	Invitations(ctx context.Context) error
	Invoices(ctx context.Context) error
	Invoice(ctx context.Context, id string) error
	Plans(ctx context.Context) error
	Dashboard(ctx context.Context) error
	Watch(ctx context.Context) error
	Upload(ctx context.Context, invoiceID, path string) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
	Prefs(ctx context.Context) error
	SetPref(ctx context.Context, key, value string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Command handlers report their own errors; the loop only relays them so a
// failed command never kills the session.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("planhub> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, participants, providers, coordinators, invitations, invoices, invoice <id>, plans, dashboard, watch, upload <invoice-id> <file>, prefs, set <pref> <value>, refresh, logout, exit")
			} else {
				printlnFn("Available commands: login, register, accept-invite, exit")
			}

		case "login":
			err = a.Login(ctx)

		case "register":
			err = a.Register(ctx)

		case "accept-invite":
			err = a.AcceptInvite(ctx)

		case "whoami":
			err = a.Whoami(ctx)

		case "participants":
			err = a.Participants(ctx)

		case "providers":
			err = a.Providers(ctx)

		case "coordinators":
			err = a.Coordinators(ctx)

		case "invitations":
			err = a.Invitations(ctx)

		case "invoices":
			err = a.Invoices(ctx)

		case "invoice":
			if len(args) == 0 {
				printlnFn("Usage: invoice <id>")
				continue
			}
			err = a.Invoice(ctx, args[0])

		case "plans":
			err = a.Plans(ctx)

		case "dashboard":
			err = a.Dashboard(ctx)

		case "watch":
			err = a.Watch(ctx)

		case "upload":
			if len(args) < 2 {
				printlnFn("Usage: upload <invoice-id> <file>")
				continue
			}
			err = a.Upload(ctx, args[0], args[1])

		case "prefs":
			err = a.Prefs(ctx)

		case "set":
			if len(args) < 2 {
				printlnFn("Usage: set <pref> <value>")
				continue
			}
			err = a.SetPref(ctx, args[0], args[1])

		case "refresh":
			err = a.Refresh(ctx)

		case "logout":
			err = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err.Error())
		}
	}
}
