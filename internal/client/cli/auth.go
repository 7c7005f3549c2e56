package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/animedex/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login asks for credentials and opens a session. The username may be given
// as the first argument. A logged-in user is sent to the home screen instead.
//
// Wrong credentials are reported to the user and are not an error. The
// password is wiped before returning.
func (a *App) Login(ctx context.Context, args []string) error {
	if a.isLoggedIn() {
		fmt.Fprintln(a.out, "Already logged in.")
		return a.navigate(ctx, ScreenHome)
	}

	var username string
	if len(args) > 0 {
		username = args[0]
	} else {
		var err error
		username, err = getSimpleText(a.reader, "Enter username", a.out)
		if err != nil {
			return err
		}
	}

	password, err := getPassword(a.reader, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	ok, err := a.session.Login(ctx, username, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Invalid username or password.")
		return nil
	}

	return a.navigate(ctx, ScreenHome)
}

// Logout ends the session and returns to the login screen.
func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(a.out, "Logged out.")
	return a.navigate(ctx, ScreenLogin)
}

// WhoAmI prints the current user and the time of the last login.
func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	id, ok := a.session.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", id.Username)
	if at, ok := a.session.LastLogin(ctx); ok {
		fmt.Fprintf(a.out, "Last login: %s\n", at.Local().Format(time.DateTime))
	}
	return nil
}

func (a *App) Home(ctx context.Context, _ []string) error {
	return a.navigate(ctx, ScreenHome)
}
