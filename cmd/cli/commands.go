package main

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/animedex/internal/buildinfo"
	"github.com/dmitrijs2005/animedex/internal/client/cli"
	"github.com/dmitrijs2005/animedex/internal/client/config"
	"github.com/dmitrijs2005/animedex/internal/client/httpapi"
	"github.com/dmitrijs2005/animedex/internal/client/listing"
	"github.com/dmitrijs2005/animedex/internal/common"
	"github.com/spf13/cobra"
)

var errNotLoggedIn = errors.New("not logged in, run 'animedex login' first")

func newRootCmd(rt *runtime) *cobra.Command {
	var flags *config.Flags

	root := &cobra.Command{
		Use:          "animedex",
		Short:        "Browse anime characters from the terminal",
		Long:         "animedex lists anime characters from the Jikan API.\nWithout a subcommand it starts an interactive session.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return rt.open(cmd.Context(), flags, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			app := cli.NewApp(rt.session, rt.loader, rt.log, rt.cfg.PageSize, cmd.InOrStdin(), cmd.OutOrStdout())
			defer app.Close()
			app.Run(cmd.Context())
			return nil
		},
	}
	flags = config.BindFlags(root.PersistentFlags())

	root.AddCommand(
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newWhoAmICmd(rt),
		newCharactersCmd(rt),
		newRandomCmd(rt),
		newServeCmd(rt),
		newVersionCmd(),
	)
	return root
}

func newLoginCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and remember the session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reader := bufio.NewReader(cmd.InOrStdin())

			var username string
			if len(args) == 1 {
				username = args[0]
			} else {
				var err error
				if username, err = cli.GetSimpleText(reader, "Enter username", cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			password, err := cli.GetPassword(reader, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			ok, err := rt.session.Login(ctx, username, password)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("invalid username or password")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
			return nil
		},
	}
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := rt.session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoAmICmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, ok := rt.session.Restore(ctx)
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", id.Username)
			if at, ok := rt.session.LastLogin(ctx); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "Last login: %s\n", at.Local().Format(time.DateTime))
			}
			return nil
		},
	}
}

func newCharactersCmd(rt *runtime) *cobra.Command {
	var (
		query string
		page  int
	)
	cmd := &cobra.Command{
		Use:     "characters",
		Aliases: []string{"chars"},
		Short:   "Print one page of the character list",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, ok := rt.session.Restore(ctx); !ok {
				return errNotLoggedIn
			}

			res, err := rt.loader.Load(ctx)
			if err != nil {
				return err
			}
			cli.RenderView(cmd.OutOrStdout(), listing.Build(res.Characters, query, page, rt.cfg.PageSize), res.Advisory)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "only show characters whose name contains this text")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "page to show")
	return cmd
}

func newRandomCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "random [n]",
		Short: "Print random characters",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if _, ok := rt.session.Restore(ctx); !ok {
				return errNotLoggedIn
			}

			n := 0
			if len(args) == 1 {
				v, err := strconv.Atoi(args[0])
				if err != nil || v <= 0 {
					return fmt.Errorf("n must be a positive number, got %q", args[0])
				}
				n = v
			}

			res, err := rt.loader.Random(ctx, n)
			if err != nil {
				return err
			}
			for _, ch := range res.Characters {
				cli.RenderCard(cmd.OutOrStdout(), ch)
			}
			if res.Advisory != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Note: %s\n", res.Advisory)
			}
			return nil
		},
	}
}

func newServeCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the screens as JSON over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt.session.Restore(ctx)

			srv := httpapi.NewServer(rt.cfg.ListenAddr, rt.log, rt.session, rt.loader, rt.cfg.PageSize)
			return srv.Run(ctx)
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			buildinfo.PrintBuildData(cmd.OutOrStdout())
		},
	}
}
