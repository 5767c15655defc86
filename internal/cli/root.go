// Package cli implements the skillhub command line client.
//
// Client commands talk to the API given by --api and keep the signed-in session
// in the SQLite file given by --state. The seed command writes straight to the
// database configured through the server's DB_* variables.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/skillhub/backend/internal/client"
	"github.com/skillhub/backend/internal/config"
	"github.com/skillhub/backend/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the flag values and the client objects shared by the commands
type app struct {
	apiURL   string
	state    string
	logLevel string

	out    io.Writer
	errOut io.Writer
	logger *zap.Logger

	api     *client.Client
	session *client.Session
}

// NewRootCmd builds the skillhub command tree
func NewRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop()}

	defaults, err := config.LoadClient()
	if err != nil {
		defaults = &config.ClientConfig{APIURL: "http://localhost:5000", StatePath: "skillhub-state.db"}
	}

	root := &cobra.Command{
		Use:           "skillhub",
		Short:         "SkillHub command line client",
		Long:          "Browse roadmaps and learning items, sign in and track completed steps.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.out = cmd.OutOrStdout()
			a.errOut = cmd.ErrOrStderr()
			if err := logger.Init(a.logLevel); err != nil {
				return err
			}
			a.logger = logger.Logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.apiURL, "api", defaults.APIURL, "API base URL (overrides SKILLHUB_API_URL)")
	root.PersistentFlags().StringVar(&a.state, "state", defaults.StatePath, "Path to the local session database (overrides SKILLHUB_STATE)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "error", "Log level written to stderr")

	root.AddCommand(newSeedCmd(a))
	root.AddCommand(newRegisterCmd(a))
	root.AddCommand(newLoginCmd(a))
	root.AddCommand(newLogoutCmd(a))
	root.AddCommand(newWhoamiCmd(a))
	root.AddCommand(newProfileCmd(a))
	root.AddCommand(newPasswordCmd(a))
	root.AddCommand(newProgressCmd(a))
	root.AddCommand(newToggleCmd(a))
	root.AddCommand(newContentCmd(a, "roadmaps", "List roadmaps"))
	root.AddCommand(newContentCmd(a, "learning", "List learning items"))

	return root
}

// Execute runs the command tree with ctx
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// withSession opens the local store, restores the session and runs fn
func (a *app) withSession(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		store, err := client.OpenLocalStorage(a.state)
		if err != nil {
			return err
		}
		defer store.Close()

		a.api = client.New(a.apiURL, nil)
		a.session = client.NewSession(a.api, store, a.logger)
		if err := a.session.Restore(ctx); err != nil {
			return fmt.Errorf("failed to restore session: %w", err)
		}

		return fn(ctx, cmd, args)
	}
}

// progressController builds a controller whose auth callback drops the stale session
func (a *app) progressController(ctx context.Context) *client.ProgressController {
	return client.NewProgressController(a.api, a.session, a.logger, func() {
		if a.session.Token() != "" {
			if err := a.session.Logout(ctx); err != nil {
				a.logger.Warn("failed to clear session", zap.Error(err))
			}
		}
		fmt.Fprintln(a.errOut, "Please log in: skillhub login --email EMAIL --password PASSWORD")
	})
}

// describe turns client errors into short messages for the terminal
func describe(err error) error {
	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrLoginRequired):
		return errors.New("not signed in; run skillhub login first")
	case errors.Is(err, client.ErrUnreachable):
		return fmt.Errorf("cannot reach the API: %w", err)
	case errors.As(err, &apiErr):
		return errors.New(apiErr.Message)
	}
	return err
}
