package cli

import (
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration commands",
		// The config commands work without a session and must be usable to
		// repair a broken profile file.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigInitCmd())

	return cmd
}

// effectiveConfig is the resolved configuration shown by config show
type effectiveConfig struct {
	ConfigFile string `json:"configFile"`
	Server     string `json:"server"`
	CardDB     string `json:"carddb"`
	TokenFile  string `json:"tokenFile"`
	RedisURL   string `json:"redisUrl,omitempty"`
	Profile    string `json:"profile"`
	Output     string `json:"output"`
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.profileErr != nil {
				return cfg.profileErr
			}

			output(cmd).Print(effectiveConfig{
				ConfigFile: cfg.ConfigFile,
				Server:     cfg.ServerURL,
				CardDB:     cfg.CardDBURL,
				TokenFile:  cfg.TokenFile,
				RedisURL:   cfg.RedisURL,
				Profile:    cfg.Profile,
				Output:     cfg.Output,
			})
			return nil
		},
	}
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write the current settings to the profile file",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := &Profile{
				Server:    cfg.ServerURL,
				CardDB:    cfg.CardDBURL,
				TokenFile: cfg.TokenFile,
				RedisURL:  cfg.RedisURL,
				Profile:   cfg.Profile,
				Output:    cfg.Output,
			}
			if err := p.Save(cfg.ConfigFile); err != nil {
				return err
			}

			output(cmd).PrintMessage("Wrote " + cfg.ConfigFile)
			return nil
		},
	}
}
