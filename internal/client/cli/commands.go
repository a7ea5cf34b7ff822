package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/pchela/internal/loyalty"
	"github.com/dmitrijs2005/pchela/internal/profiles"
)

var errCancelled = errors.New("cancelled")

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// fail reports err to the user and returns it.
func (a *App) fail(ctx context.Context, what string, err error) error {
	a.logger.Debug(ctx, what+" failed", "error", err)
	a.printf("%s failed: %s\n", what, describe(err))
	return err
}

func describe(err error) string {
	switch {
	case errors.Is(err, loyalty.ErrProfileLimit):
		return "the maximum number of profiles has been reached"
	case errors.Is(err, profiles.ErrInvalidProfile):
		return "please enter a user name"
	case errors.Is(err, loyalty.ErrEmptyOrder):
		return "choose at least one item"
	case errors.Is(err, profiles.ErrNotFound):
		return "profile not found"
	case errors.Is(err, profiles.ErrPersistence):
		return "could not save changes, nothing was modified"
	default:
		return err.Error()
	}
}

func (a *App) Register(ctx context.Context, args []string) error {
	name := strings.Join(args, " ")
	if name == "" {
		var err error
		name, err = GetSimpleText(a.reader, "Enter user name", a.prompts)
		if err != nil {
			return a.fail(ctx, "Registration", err)
		}
	}

	p, err := a.loyalty.Register(ctx, name)
	if err != nil {
		return a.fail(ctx, "Registration", err)
	}
	a.activeID = p.ID
	a.printf("Profile %q created (id %s)\n", p.Username, p.ID)
	return nil
}

// Use selects the active profile by id or, failing that, by exact user name.
func (a *App) Use(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.printf("Usage: use <name|id>\n")
		return nil
	}
	key := strings.Join(args, " ")

	var matches []profiles.Profile
	for _, p := range a.loyalty.Profiles() {
		if p.ID == key {
			matches = []profiles.Profile{p}
			break
		}
		if p.Username == key {
			matches = append(matches, p)
		}
	}

	switch len(matches) {
	case 0:
		return a.fail(ctx, "Selection", fmt.Errorf("%w: %s", profiles.ErrNotFound, key))
	case 1:
		a.activeID = matches[0].ID
		a.printf("Active profile: %s\n", matches[0].Username)
		return nil
	default:
		a.printf("Several profiles are named %q, use one of the ids:\n", key)
		for _, p := range matches {
			a.printf("  %s\n", p.ID)
		}
		return nil
	}
}

func (a *App) List(ctx context.Context) error {
	list := a.loyalty.Profiles()
	if len(list) == 0 {
		a.printf("No profiles yet\n")
		return nil
	}
	for _, p := range list {
		marker := " "
		if p.ID == a.activeID {
			marker = "*"
		}
		a.printf("%s %-20s %4d points %3d orders  %s\n", marker, p.Username, p.Points, p.TotalOrders, p.ID)
	}
	return nil
}

func (a *App) Menu(ctx context.Context) error {
	for _, it := range a.loyalty.Catalog().Items() {
		a.printf("  %-12s %-20s %d points\n", it.ID, it.Name, it.Points)
	}
	return nil
}

func (a *App) Show(ctx context.Context) error {
	p, err := a.loyalty.Profile(a.activeID)
	if err != nil {
		return a.fail(ctx, "Show", err)
	}
	writeProfile(a.out, p, loyalty.Summarize(p))
	return nil
}

// Order places an order for the active profile. Items come from args or,
// when none are given, from a prompt listing the menu.
func (a *App) Order(ctx context.Context, args []string) error {
	items := args
	if len(items) == 0 {
		_ = a.Menu(ctx)
		line, err := GetSimpleText(a.reader, "Enter item ids (comma or space separated)", a.prompts)
		if err != nil {
			return a.fail(ctx, "Order", err)
		}
		items = splitItems(line)
	} else {
		items = splitItems(strings.Join(args, " "))
	}
	if len(items) == 0 {
		return a.fail(ctx, "Order", loyalty.ErrEmptyOrder)
	}

	details, err := GetSimpleText(a.reader, "Order details (optional)", a.prompts)
	if err != nil {
		details = ""
	}

	res, err := a.loyalty.PlaceOrder(ctx, a.activeID, items, details)
	if err != nil {
		return a.fail(ctx, "Order", err)
	}

	s := loyalty.Summarize(res.Profile)
	a.printf("Order accepted: %s\n", res.Profile.CurrentOrder)
	a.printf("You earned %d points, total %d. %d more to the next discount.\n",
		res.PointsEarned, res.Profile.Points, s.PointsToNext)
	return nil
}

func (a *App) Delete(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Delete the active profile?", a.prompts)
	if err != nil || !ok {
		a.printf("Cancelled\n")
		return errCancelled
	}
	if err := a.loyalty.Unregister(ctx, a.activeID); err != nil {
		return a.fail(ctx, "Delete", err)
	}
	a.printf("Profile deleted\n")
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	ok, err := Confirm(a.reader, "Remove ALL profiles?", a.prompts)
	if err != nil || !ok {
		a.printf("Cancelled\n")
		return errCancelled
	}
	if err := a.store.Clear(ctx); err != nil {
		return a.fail(ctx, "Clear", err)
	}
	a.printf("All profiles removed\n")
	return nil
}
