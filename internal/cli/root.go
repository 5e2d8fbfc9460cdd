package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	cfg *Config
	app *App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()
	app = nil

	rootCmd := &cobra.Command{
		Use:   "deckctl",
		Short: "CLI client for the deck building service",
		Long: `deckctl is a CLI client for the deck building service.

It covers accounts, rules and card lookups, deck creation and editing,
and decklist export. Card name suggestions come from the public card
database.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.profileErr != nil {
				return cfg.profileErr
			}

			a, err := NewApp(cmd.Context(), cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			app = a
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeApp()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Deck service URL (env: DECKCTL_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.CardDBURL, "carddb", cfg.CardDBURL, "Card database URL (env: DECKCTL_CARDDB)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token, kept in memory only (env: DECKCTL_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: DECKCTL_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Share the session through Redis (env: DECKCTL_REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Profile, "profile", cfg.Profile, "Session profile name for Redis (env: DECKCTL_PROFILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newSessionCmd())
	rootCmd.AddCommand(newDefineCmd())
	rootCmd.AddCommand(newWordsCmd())
	rootCmd.AddCommand(newCardCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newDeckCmd())
	rootCmd.AddCommand(newMenuCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := Run(ctx, NewRootCmd())
	stop()
	if err != nil {
		os.Exit(1)
	}
}

// Run executes cmd and releases the app afterwards. Cobra skips
// PersistentPostRunE when RunE fails, so the close happens here too.
func Run(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	return errors.Join(err, closeApp())
}

// closeApp closes the current app at most once
func closeApp() error {
	if app == nil {
		return nil
	}
	a := app
	app = nil
	return a.Close()
}

func output(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout())
}
