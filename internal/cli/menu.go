package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/deckbuilder/internal/navigation"
)

func newMenuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu [path]",
		Short: "Show the navigation menu, or the view a path resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output(cmd)

			if len(args) == 1 {
				out.PrintMessage(navigation.Resolve(args[0], app.Session))
				return nil
			}

			out.Print(navigation.Menu(app.Session.IsAuthenticated()))
			return nil
		},
	}
}
