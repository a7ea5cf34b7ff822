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
	hasProfile() bool
	Register(ctx context.Context, args []string) error
	Use(ctx context.Context, args []string) error
	Show(ctx context.Context) error
	List(ctx context.Context) error
	Menu(ctx context.Context) error
	Order(ctx context.Context, args []string) error
	Delete(ctx context.Context) error
	Clear(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the loyalty CLI.
//
// It reads a line from reader, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	help                 show available commands
//	register [name]      create a profile and make it active
//	use <name|id>        pick the active profile
//	list                 list all profiles
//	menu                 show the catalog with points
//	(s)how | whoami      active profile: points, discounts, history (needs a profile)
//	order [item ...]     place an order for the active profile (needs a profile)
//	delete               delete the active profile (needs a profile)
//	clear                remove every profile
//	exit | quit          leave the program
//
// Any errors returned by command handlers are ignored here; handlers
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
//
// Command handlers share reader for follow-up prompts, so it must not be
// wrapped in a separate buffering scanner.
func runREPL(ctx context.Context, a execIface, promptFn func() string, reader *bufio.Reader) {
	for {
		if p := promptFn(); p != "" {
			printlnFn(p)
		}
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.hasProfile() {
				printlnFn("Available commands: (s)how, order, menu, list, use, register, delete, clear, exit")
			} else {
				printlnFn("Available commands: register, use, list, menu, clear, exit")
			}

		case "register":
			_ = a.Register(ctx, args)

		case "use":
			_ = a.Use(ctx, args)

		case "l", "list":
			_ = a.List(ctx)

		case "menu":
			_ = a.Menu(ctx)

		case "s", "show", "whoami":
			if !requireProfile(a) {
				continue
			}
			_ = a.Show(ctx)

		case "order":
			if !requireProfile(a) {
				continue
			}
			_ = a.Order(ctx, args)

		case "delete":
			if !requireProfile(a) {
				continue
			}
			_ = a.Delete(ctx)

		case "clear":
			_ = a.Clear(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func requireProfile(a execIface) bool {
	if a.hasProfile() {
		return true
	}
	printlnFn("No active profile: use 'register' or 'use <name>' first")
	return false
}
