package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/mcoot/deckbuilder/internal/remote"
)

const (
	defaultProfile = "default"
	configDirName  = ".deckbuilder"
)

// Config holds CLI configuration
type Config struct {
	ServerURL  string
	CardDBURL  string
	Token      string
	TokenFile  string
	RedisURL   string
	Profile    string
	ConfigFile string
	Output     string
	Verbose    bool

	// profileErr is reported once a command runs so that --help still works
	// with a broken profile file
	profileErr error
}

// Profile is the optional YAML file of per-user defaults
type Profile struct {
	Server    string `yaml:"server"`
	CardDB    string `yaml:"carddb"`
	TokenFile string `yaml:"token_file"`
	RedisURL  string `yaml:"redis_url"`
	Profile   string `yaml:"profile"`
	Output    string `yaml:"output"`
}

// DefaultConfig returns a Config built from built-in defaults, the profile
// file and then the environment, each overriding the last. Flags are applied
// on top by the root command.
func DefaultConfig() *Config {
	c := &Config{
		ServerURL:  remote.DefaultDeckServiceURL,
		CardDBURL:  remote.DefaultCardDatabaseURL,
		TokenFile:  defaultTokenFile(),
		Profile:    defaultProfile,
		ConfigFile: getEnvOrDefault("DECKCTL_CONFIG", defaultConfigFile()),
		Output:     "text",
	}

	if err := c.applyProfileFile(c.ConfigFile); err != nil {
		c.profileErr = err
	}

	c.ServerURL = getEnvOrDefault("DECKCTL_SERVER", c.ServerURL)
	c.CardDBURL = getEnvOrDefault("DECKCTL_CARDDB", c.CardDBURL)
	c.Token = os.Getenv("DECKCTL_TOKEN")
	c.TokenFile = getEnvOrDefault("DECKCTL_TOKEN_FILE", c.TokenFile)
	c.RedisURL = getEnvOrDefault("DECKCTL_REDIS_URL", c.RedisURL)
	c.Profile = getEnvOrDefault("DECKCTL_PROFILE", c.Profile)
	return c
}

// LoadProfile reads a profile file. A missing file yields an empty profile.
func LoadProfile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Profile{}, nil
		}
		return nil, err
	}

	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return &p, nil
}

// Save writes the profile to path, creating the directory if needed
func (p *Profile) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

func (c *Config) applyProfileFile(path string) error {
	p, err := LoadProfile(path)
	if err != nil {
		return err
	}

	if p.Server != "" {
		c.ServerURL = p.Server
	}
	if p.CardDB != "" {
		c.CardDBURL = p.CardDB
	}
	if p.TokenFile != "" {
		c.TokenFile = p.TokenFile
	}
	if p.RedisURL != "" {
		c.RedisURL = p.RedisURL
	}
	if p.Profile != "" {
		c.Profile = p.Profile
	}
	if p.Output != "" {
		c.Output = p.Output
	}
	return nil
}

func defaultTokenFile() string {
	return filepath.Join(configDir(), "token")
}

func defaultConfigFile() string {
	return filepath.Join(configDir(), "config.yaml")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return configDirName
	}
	return filepath.Join(home, configDirName)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
