package cli

import (
	"github.com/spf13/cobra"
)

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check deck service health",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Decks.Health(cmd.Context()); err != nil {
				return err
			}

			output(cmd).Print(HealthResult{Status: "ok"})
			return nil
		},
	}
}
