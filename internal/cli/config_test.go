package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/deckbuilder/internal/remote"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"DECKCTL_SERVER", "DECKCTL_CARDDB", "DECKCTL_TOKEN", "DECKCTL_TOKEN_FILE",
		"DECKCTL_REDIS_URL", "DECKCTL_PROFILE",
	} {
		t.Setenv(key, "")
	}
}

func TestDefaultConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DECKCTL_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	c := DefaultConfig()

	require.NoError(t, c.profileErr)
	assert.Equal(t, remote.DefaultDeckServiceURL, c.ServerURL)
	assert.Equal(t, remote.DefaultCardDatabaseURL, c.CardDBURL)
	assert.Equal(t, defaultProfile, c.Profile)
	assert.Equal(t, "text", c.Output)
	assert.Empty(t, c.Token)
}

func TestDefaultConfig_ProfileThenEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: http://profile:8080\ncarddb: http://cards\noutput: json\n"), 0600))
	t.Setenv("DECKCTL_CONFIG", path)
	t.Setenv("DECKCTL_SERVER", "http://env:9090")

	c := DefaultConfig()

	require.NoError(t, c.profileErr)
	assert.Equal(t, "http://env:9090", c.ServerURL)
	assert.Equal(t, "http://cards", c.CardDBURL)
	assert.Equal(t, "json", c.Output)
}

func TestDefaultConfig_BrokenProfile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated\n"), 0600))
	t.Setenv("DECKCTL_CONFIG", path)

	c := DefaultConfig()

	require.Error(t, c.profileErr)
	assert.Equal(t, remote.DefaultDeckServiceURL, c.ServerURL)
}

func TestProfile_SaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	p := &Profile{Server: "http://s", CardDB: "http://c", TokenFile: "/tmp/tok", Profile: "work", Output: "json"}

	require.NoError(t, p.Save(path))

	loaded, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, p, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadProfile_Missing(t *testing.T) {
	p, err := LoadProfile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Profile{}, p)
}

func TestParseCardEntry(t *testing.T) {
	tests := []struct {
		in      string
		literal bool
		want    cardEntry
		wantErr bool
	}{
		{in: "Sol Ring", want: cardEntry{Name: "Sol Ring", Quantity: 1}},
		{in: "4 Lightning Bolt", want: cardEntry{Name: "Lightning Bolt", Quantity: 4}},
		{in: "  2 Forest ", want: cardEntry{Name: "Forest", Quantity: 2}},
		{in: "1000 Plains", want: cardEntry{Name: "Plains", Quantity: 1000}},
		{in: "0 Island", wantErr: true},
		{in: "1996 World Champion", literal: true, want: cardEntry{Name: "1996 World Champion", Quantity: 1}},
		{in: "1 1996 World Champion", want: cardEntry{Name: "1996 World Champion", Quantity: 1}},
		{in: "  ", literal: true, wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCardEntry(tt.in, tt.literal)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
