// Package main is the entry point for the dadjoke CLI.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flemzord/dadjoke/pkg/app"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := rootCmd()
	// A nil slice would make cobra fall back to os.Args.
	root.SetArgs(append([]string{}, args...))
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	msg, code := app.Describe(err)
	if msg != "" {
		if code == app.ExitOK {
			fmt.Fprintln(stdout, msg)
		} else {
			fmt.Fprintln(stderr, msg)
		}
	}
	return code
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "dadjoke",
		Short:         "Fetch random dad jokes and keep a leaderboard of the ones you got",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		// Earlier releases took --searchTerm <term> and --leaderboard;
		// both still work.
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetBool("searchTerm")
			board, _ := cmd.Flags().GetBool("leaderboard")
			switch {
			case search:
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					return a.SearchTerm(ctx, strings.Join(args, " "))
				})
			case board:
				return withApp(cmd, func(ctx context.Context, a *app.App) error {
					return a.Leaderboard(ctx, 0)
				})
			default:
				return app.ErrUnknownCommand
			}
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", app.ErrUnknownCommand, err)
	})

	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.PersistentFlags().String("store", "", "Path to the joke record file")
	root.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")

	root.Flags().Bool("searchTerm", false, "Same as the search-term command")
	root.Flags().Bool("leaderboard", false, "Same as the leaderboard command")
	_ = root.Flags().MarkHidden("searchTerm")
	_ = root.Flags().MarkHidden("leaderboard")

	root.AddCommand(searchTermCmd(), leaderboardCmd(), versionCmd(), configCmd())
	return root
}

func searchTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search-term <term>",
		Short: "Print a random joke matching term and record it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.SearchTerm(ctx, strings.Join(args, " "))
			})
		},
	}
}

func leaderboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Print the most frequently recorded joke",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			top, _ := cmd.Flags().GetInt("top")
			return withApp(cmd, func(ctx context.Context, a *app.App) error {
				return a.Leaderboard(ctx, top)
			})
		},
	}
	cmd.Flags().Int("top", 0, "Also list the N most recorded jokes")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "dadjoke %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check [path]",
		Short: "Validate configuration and show the resolved settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params := paramsFrom(cmd)
			if len(args) == 1 {
				params.ConfigPath = args[0]
			}

			cfg, path, err := app.LoadConfig(params)
			if err != nil {
				return err
			}
			if path == "" {
				path = "(defaults)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration OK (%s)\n", path)
			fmt.Fprintf(out, "  api:   %s\n", cfg.BaseURL())
			fmt.Fprintf(out, "  store: %s\n", cfg.StorePath())
			return nil
		},
	})
	return cmd
}

// paramsFrom reads the persistent flags.
func paramsFrom(cmd *cobra.Command) app.Params {
	cfgPath, _ := cmd.Flags().GetString("config")
	store, _ := cmd.Flags().GetString("store")
	verbose, _ := cmd.Flags().GetBool("verbose")
	return app.Params{
		ConfigPath: cfgPath,
		StorePath:  store,
		Verbose:    verbose,
		Version:    version,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
	}
}

// withApp builds an App for cmd, runs fn, and always flushes metrics and
// spans afterwards.
func withApp(cmd *cobra.Command, fn func(context.Context, *app.App) error) error {
	ctx := cmd.Context()
	a, err := app.New(ctx, paramsFrom(cmd))
	if err != nil {
		return err
	}

	runErr := fn(ctx, a)
	closeErr := a.Close(context.WithoutCancel(ctx))
	if runErr != nil {
		return runErr
	}
	return closeErr
}
