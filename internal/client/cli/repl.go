package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	currentScreen() Screen
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	Home(ctx context.Context, args []string) error
	Characters(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Page(ctx context.Context, args []string) error
	Next(ctx context.Context, args []string) error
	Prev(ctx context.Context, args []string) error
	Reload(ctx context.Context, args []string) error
	Random(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
}

// runREPL starts a simple read–eval–print loop for the animedex CLI.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches to methods on 'a'. Unknown commands are reported back to the
// user. The loop exits on EOF, when ctx is done, or when the user types
// "exit" or "quit".
//
// Commands
//
//	help                  show available commands
//	login [username]      authenticate
//	logout                end the session
//	home                  go to the home screen
//	characters | chars    browse the character list
//	search [text]         filter the list by name
//	page <n>, next, prev  move between pages
//	reload                fetch the list again
//	random [n]            show random characters
//	whoami                show the current user
//	exit | quit           leave the program
//
// Handler errors are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(w, "animedex %s> ", statusFn())

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			fmt.Fprintln(w)
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			printHelp(w, a.isLoggedIn(), a.currentScreen())
		case "login":
			cmdErr = a.Login(ctx, args)
		case "logout":
			cmdErr = a.Logout(ctx, args)
		case "home":
			cmdErr = a.Home(ctx, args)
		case "characters", "chars":
			cmdErr = a.Characters(ctx, args)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "page":
			cmdErr = a.Page(ctx, args)
		case "next", "n":
			cmdErr = a.Next(ctx, args)
		case "prev", "p":
			cmdErr = a.Prev(ctx, args)
		case "reload":
			cmdErr = a.Reload(ctx, args)
		case "random":
			cmdErr = a.Random(ctx, args)
		case "whoami":
			cmdErr = a.WhoAmI(ctx, args)
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		default:
			fmt.Fprintln(w, "Unknown command:", cmd)
		}

		if cmdErr != nil {
			fmt.Fprintln(w, "Error:", cmdErr)
		}
		if errors.Is(err, io.EOF) {
			return
		}
	}
}

func printHelp(w io.Writer, loggedIn bool, screen Screen) {
	if !loggedIn {
		fmt.Fprintln(w, "Available commands: login, whoami, exit")
		return
	}
	fmt.Fprintln(w, "Available commands: home, characters, random, whoami, logout, exit")
	if screen == ScreenCharacters {
		fmt.Fprintln(w, "On this screen: search [text], page <n>, next, prev, reload")
	}
}
