package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, db string, stdin string, args ...string) (string, error) {
	t.Helper()
	_, out, err := executeRaw(t, stdin, append([]string{"--db", db, "--log-level", "error"}, args...)...)
	return out, err
}

func executeRaw(t *testing.T, stdin string, args ...string) (*runtime, string, error) {
	t.Helper()
	rt := &runtime{}
	t.Cleanup(rt.close)

	cmd := newRootCmd(rt)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return rt, out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "a.db"), "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Build version: ")
}

func TestLoginWhoAmILogout(t *testing.T) {
	db := filepath.Join(t.TempDir(), "nested", "animedex.db")

	out, err := execute(t, db, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	_, err = execute(t, db, "nope\n", "login", "admin")
	assert.ErrorContains(t, err, "invalid username or password")

	out, err = execute(t, db, "admin\npassword\n", "login")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin")

	out, err = execute(t, db, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged in as admin")
	assert.Contains(t, out, "Last login: ")

	out, err = execute(t, db, "", "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out.")

	out, err = execute(t, db, "", "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")
}

func TestCharactersRequiresLogin(t *testing.T) {
	db := filepath.Join(t.TempDir(), "animedex.db")

	_, err := execute(t, db, "", "characters")
	assert.ErrorIs(t, err, errNotLoggedIn)

	_, err = execute(t, db, "", "random", "2")
	assert.ErrorIs(t, err, errNotLoggedIn)
}

func TestInvalidConfig(t *testing.T) {
	_, err := execute(t, filepath.Join(t.TempDir(), "a.db"), "", "--chunk-size", "0", "whoami")
	assert.ErrorContains(t, err, "chunk size")
}

func TestPersistentFlagsReachConfig(t *testing.T) {
	db := filepath.Join(t.TempDir(), "x.db")

	for _, args := range [][]string{
		{"--db", db, "--page-size", "9", "--max-retries", "0", "--max-in-flight", "2", "--log-level", "error", "whoami"},
		{"whoami", "--db", db, "--page-size", "9", "--max-retries", "0", "--max-in-flight", "2", "--log-level", "error"},
	} {
		rt, _, err := executeRaw(t, "", args...)
		require.NoError(t, err)
		require.NotNil(t, rt.cfg)

		assert.Equal(t, db, rt.cfg.DatabasePath)
		assert.Equal(t, 9, rt.cfg.PageSize)
		assert.Equal(t, 0, rt.cfg.MaxRetries)
		assert.Equal(t, 2, rt.cfg.MaxInFlight)
		assert.Equal(t, "error", rt.cfg.LogLevel)
		assert.FileExists(t, db)
	}
}

func TestREPLExits(t *testing.T) {
	out, err := execute(t, filepath.Join(t.TempDir(), "a.db"), "help\nexit\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to animedex")
	assert.Contains(t, out, "Bye!")
}
