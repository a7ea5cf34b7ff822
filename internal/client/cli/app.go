package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/pchela/internal/logging"
	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
)

// profileStore is the subset of *profiles.Store the client drives directly.
type profileStore interface {
	Initialize(ctx context.Context, observer profiles.Observer) error
	Clear(ctx context.Context) error
	Recovered() bool
}

type App struct {
	store    profileStore
	loyalty  *loyalty.Service
	logger   logging.Logger
	reader   *bufio.Reader
	out      io.Writer
	prompts  io.Writer
	// interactive is false when input is piped; the REPL prompt is then
	// not printed.
	interactive bool
	activeID    string
}

// NewApp builds a client reading commands from in and writing to out.
// Prompts are suppressed when in is not a terminal.
func NewApp(store profileStore, svc *loyalty.Service, l logging.Logger, in io.Reader, out io.Writer) *App {
	interactive := isInteractive(in)
	prompts := out
	if !interactive {
		prompts = io.Discard
	}
	return &App{
		store:       store,
		loyalty:     svc,
		logger:      l.With("module", "cli"),
		reader:      bufio.NewReader(in),
		out:         out,
		prompts:     prompts,
		interactive: interactive,
	}
}

// NewStdApp is NewApp over os.Stdin and os.Stdout.
func NewStdApp(store profileStore, svc *loyalty.Service, l logging.Logger) *App {
	return NewApp(store, svc, l, os.Stdin, os.Stdout)
}

// Run loads the profile collection and runs the REPL until exit or EOF.
func (a *App) Run(ctx context.Context) error {
	if err := a.store.Initialize(ctx, a.onProfiles); err != nil {
		return err
	}
	if a.store.Recovered() {
		a.printf("Stored profiles were unreadable and have been set aside; starting with an empty list.\n")
	}

	a.printf("Welcome to Pchela loyalty CLI (type 'help' for commands)\n")
	runREPL(ctx, a, a.prompt, a.reader)
	return nil
}

// onProfiles drops a vanished active profile.
func (a *App) onProfiles(list []profiles.Profile) {
	if a.activeID == "" {
		return
	}
	for _, p := range list {
		if p.ID == a.activeID {
			return
		}
	}
	a.activeID = ""
}

func (a *App) hasProfile() bool {
	return a.activeID != ""
}

// prompt is the REPL prompt, or "" when input is not a terminal.
func (a *App) prompt() string {
	if !a.interactive {
		return ""
	}
	return "pchela" + a.getStatus() + "> "
}

func (a *App) getStatus() string {
	if !a.hasProfile() {
		return ""
	}
	p, err := a.loyalty.Profile(a.activeID)
	if err != nil {
		return ""
	}
	return "(" + p.Username + ")"
}
