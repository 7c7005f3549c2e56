package cli

import (
	"context"
	"fmt"
)

func (a *App) getStatus() string {
	s := string(a.screen)
	if id, ok := a.session.Current(); ok {
		s = id.Username + " " + s
	}
	return fmt.Sprintf("(%s)", s)
}

// Run restores a previous session, shows the first screen and serves the
// REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to animedex (type 'help' for commands)")

	start := ScreenLogin
	if id, ok := a.session.Restore(ctx); ok {
		a.log.Info(ctx, "resumed session", "username", id.Username)
		start = ScreenHome
	}
	if err := a.navigate(ctx, start); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}
