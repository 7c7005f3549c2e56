// Package cli provides the interactive animedex command-line client.
//
// The REPL has three screens: login, home and characters. Only the login
// screen is reachable without a session; with a session the login screen
// redirects to home. A session stored by a previous run is restored on start.
//
// The characters screen loads the character list once per visit of a
// session and then filters (search) and pages (page, next, prev) it locally.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
