package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mcoot/deckbuilder/internal/session"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionWatchCmd())

	return cmd
}

func newSessionWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print login and logout events from other clients until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Feed == nil {
				return errors.New("session watch needs a token file or Redis session, not --token")
			}

			out := output(cmd)
			unsubscribe := app.Session.Subscribe(func(change session.Change) {
				out.Print(SessionInfo{
					Authenticated: change.Authenticated,
					Principal:     app.Session.CurrentPrincipal(),
				})
			})
			defer unsubscribe()

			ctx := cmd.Context()
			if err := app.Session.Follow(ctx, app.Feed); err != nil {
				return err
			}

			<-ctx.Done()
			return nil
		},
	}
}
