package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Characters opens the characters screen, loading the list on the first
// visit.
func (a *App) Characters(ctx context.Context, _ []string) error {
	return a.navigate(ctx, ScreenCharacters)
}

// Search filters the list by name. Without arguments the filter is cleared.
// The page always goes back to 1.
func (a *App) Search(ctx context.Context, args []string) error {
	return a.onCharacters(ctx, func() {
		a.browser.SetQuery(strings.Join(args, " "))
	})
}

func (a *App) Page(ctx context.Context, args []string) error {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: page <n>")
		return nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Fprintf(a.out, "Not a page number: %q\n", args[0])
		return nil
	}
	return a.onCharacters(ctx, func() { a.browser.SetPage(n) })
}

func (a *App) Next(ctx context.Context, _ []string) error {
	return a.onCharacters(ctx, func() { a.browser.Next() })
}

func (a *App) Prev(ctx context.Context, _ []string) error {
	return a.onCharacters(ctx, func() { a.browser.Prev() })
}

// Reload drops the loaded list and fetches it again.
func (a *App) Reload(ctx context.Context, _ []string) error {
	a.forgetCharacters()
	return a.navigate(ctx, ScreenCharacters)
}

// Random prints n random characters (three when n is not given).
func (a *App) Random(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		return a.navigate(ctx, ScreenLogin)
	}

	n := 0
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil || v <= 0 {
			fmt.Fprintln(a.out, "Usage: random [n]")
			return nil
		}
		n = v
	}

	fmt.Fprintln(a.out, "Drawing random characters...")
	res, err := a.loader.Random(ctx, n)
	if err != nil {
		return fmt.Errorf("random characters: %w", err)
	}
	for _, ch := range res.Characters {
		RenderCard(a.out, ch)
	}
	if res.Advisory != "" {
		fmt.Fprintf(a.out, "Note: %s\n", res.Advisory)
	}
	return nil
}

// onCharacters moves to the characters screen, applies change to the browser
// and renders the resulting page.
func (a *App) onCharacters(ctx context.Context, change func()) error {
	if resolve(ScreenCharacters, a.isLoggedIn()) != ScreenCharacters {
		return a.navigate(ctx, ScreenCharacters)
	}
	if err := a.ensureLoaded(ctx); err != nil {
		return err
	}
	a.screen = ScreenCharacters
	change()
	RenderView(a.out, a.browser.View(), a.advisory)
	return nil
}

func (a *App) ensureLoaded(ctx context.Context) error {
	if a.loaded {
		return nil
	}

	fmt.Fprintln(a.out, "Loading characters...")
	res, err := a.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("load characters: %w", err)
	}
	a.browser.SetRecords(res.Characters)
	a.advisory = res.Advisory
	a.loaded = true
	return nil
}
