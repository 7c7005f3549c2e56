package cli

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/dmitrijs2005/animedex/internal/client/listing"
	"github.com/dmitrijs2005/animedex/internal/client/models"
	"github.com/dmitrijs2005/animedex/internal/client/services"
	"github.com/dmitrijs2005/animedex/internal/logging"
)

// Screen is one of the places the user can be in the REPL.
type Screen string

const (
	ScreenLogin      Screen = "login"
	ScreenHome       Screen = "home"
	ScreenCharacters Screen = "characters"
)

// SessionStore is the part of services.SessionService the REPL uses.
type SessionStore interface {
	Restore(ctx context.Context) (models.Identity, bool)
	Login(ctx context.Context, username string, password []byte) (bool, error)
	Logout(ctx context.Context) error
	Current() (models.Identity, bool)
	LastLogin(ctx context.Context) (time.Time, bool)
	Subscribe(fn services.SessionListener) (cancel func())
}

type App struct {
	session  SessionStore
	loader   services.CharacterLoader
	log      logging.Logger
	pageSize int

	reader *bufio.Reader
	out    io.Writer

	screen   Screen
	browser  *listing.Browser
	loaded   bool
	advisory string

	unsubscribe func()
}

func NewApp(session SessionStore, loader services.CharacterLoader, log logging.Logger, pageSize int, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		session:  session,
		loader:   loader,
		log:      log,
		pageSize: pageSize,
		reader:   bufio.NewReader(in),
		out:      out,
		screen:   ScreenLogin,
		browser:  listing.NewBrowser(nil, pageSize),
	}
	a.unsubscribe = session.Subscribe(func(_ models.Identity, ok bool) {
		if !ok {
			a.forgetCharacters()
		}
	})
	return a
}

// Close detaches the app from the session store.
func (a *App) Close() {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
}

func (a *App) isLoggedIn() bool {
	_, ok := a.session.Current()
	return ok
}

func (a *App) currentScreen() Screen {
	return a.screen
}

// forgetCharacters drops the loaded list so the next visit loads it again.
func (a *App) forgetCharacters() {
	a.browser = listing.NewBrowser(nil, a.pageSize)
	a.loaded = false
	a.advisory = ""
}

// resolve applies the redirect rules: only the login screen is reachable
// without a session, and the login screen is skipped with one.
func resolve(target Screen, loggedIn bool) Screen {
	switch {
	case !loggedIn:
		return ScreenLogin
	case target == ScreenLogin:
		return ScreenHome
	default:
		return target
	}
}

// navigate moves to target after applying the redirect rules and renders the
// screen the user ends up on.
func (a *App) navigate(ctx context.Context, target Screen) error {
	a.screen = resolve(target, a.isLoggedIn())

	switch a.screen {
	case ScreenLogin:
		renderLogin(a.out)
	case ScreenHome:
		id, _ := a.session.Current()
		renderHome(a.out, id)
	case ScreenCharacters:
		if err := a.ensureLoaded(ctx); err != nil {
			return err
		}
		RenderView(a.out, a.browser.View(), a.advisory)
	}
	return nil
}
