package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/mcoot/deckbuilder/internal/api"
	"github.com/mcoot/deckbuilder/internal/cli"
	"github.com/mcoot/deckbuilder/internal/factory"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

// cliRunner runs deckctl commands in process against a test service
type cliRunner struct {
	serverURL string
	tokenFile string
}

func newCLIRunner(t *testing.T, serverURL string) *cliRunner {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("DECKCTL_CONFIG", filepath.Join(dir, "config.yaml"))
	t.Setenv("DECKCTL_TOKEN", "")
	t.Setenv("DECKCTL_REDIS_URL", "")

	return &cliRunner{
		serverURL: serverURL,
		tokenFile: filepath.Join(dir, "token"),
	}
}

// run executes a command and returns its stdout and stderr
func (r *cliRunner) run(stdin string, args ...string) (string, string, error) {
	fullArgs := append([]string{
		"--server", r.serverURL,
		"--carddb", r.serverURL,
		"--token-file", r.tokenFile,
		"--output", "json",
	}, args...)

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetArgs(fullArgs)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cli.Run(context.Background(), cmd)
	return stdout.String(), stderr.String(), err
}

func startTestServer(t *testing.T) string {
	t.Helper()

	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	logger := testutil.TestLogger(t)
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		Catalog:        app.Catalog,
		DeckController: app.DeckController,
	})

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server.URL
}

func decodeJSON[T any](t *testing.T, raw string) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal([]byte(raw), &v), "output: %s", raw)
	return v
}

func TestCLI_Health(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	out, _, err := r.run("", "health")
	require.NoError(t, err)
	assert.Equal(t, "ok", decodeJSON[map[string]string](t, out)["status"])
}

func TestCLI_AccountFlow(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	out, _, err := r.run("", "whoami")
	require.NoError(t, err)
	assert.Equal(t, false, decodeJSON[map[string]any](t, out)["authenticated"])

	out, _, err = r.run("", "signup", "alice", "--password", "secret", "--confirm", "secret")
	require.NoError(t, err)
	info := decodeJSON[map[string]any](t, out)
	assert.Equal(t, true, info["authenticated"])
	assert.Equal(t, "alice", info["principal"])

	data, err := os.ReadFile(r.tokenFile)
	require.NoError(t, err)
	assert.NotEmpty(t, strings.TrimSpace(string(data)))

	_, _, err = r.run("", "logout")
	require.NoError(t, err)
	_, err = os.Stat(r.tokenFile)
	assert.True(t, os.IsNotExist(err))

	// Password from stdin
	out, _, err = r.run("secret\n", "login", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", decodeJSON[map[string]any](t, out)["principal"])
}

func TestCLI_LoginErrors(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	_, _, err := r.run("", "signup", "bob", "--password", "one", "--confirm", "two")
	require.Error(t, err)
	assert.Equal(t, "Passwords do not match", err.Error())

	_, _, err = r.run("", "login", "nobody", "--password", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid")
}

func TestCLI_DeckCommandsRequireLogin(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	_, _, err := r.run("", "deck", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not logged in")
}

func TestCLI_DeckFlow(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	_, _, err := r.run("", "signup", "carol", "--password", "pw", "--confirm", "pw")
	require.NoError(t, err)

	// Create
	out, notes, err := r.run("", "deck", "create", "--name", "Goblins", "--type", "commander", "--commander", "Krenko, Mob Boss")
	require.NoError(t, err)
	assert.Contains(t, notes, "Deck created successfully")
	deck := decodeJSON[model.Deck](t, out)
	require.NotEmpty(t, deck.ID)
	require.NotNil(t, deck.Commander)
	assert.Equal(t, "Krenko, Mob Boss", deck.Commander.Name)
	id := string(deck.ID)

	// Add in one batch
	out, notes, err = r.run("", "deck", "add", id, "2 Mountain", "Goblin Guide")
	require.NoError(t, err)
	assert.Contains(t, notes, "Added 3 card(s) to deck")
	deck = decodeJSON[model.Deck](t, out)
	assert.Len(t, deck.Cards, 3)

	// List
	out, _, err = r.run("", "deck", "list", "--type", "commander")
	require.NoError(t, err)
	decks := decodeJSON[[]model.Deck](t, out)
	require.Len(t, decks, 1)
	assert.Equal(t, "Goblins", decks[0].Name)

	// Grouped creatures exclude the commander
	out, _, err = r.run("", "deck", "show", id, "--type", "Creature")
	require.NoError(t, err)
	groups := decodeJSON[[]model.GroupedCard](t, out)
	require.Len(t, groups, 1)
	assert.Equal(t, "Goblin Guide", groups[0].Name)

	// Remove by name
	out, notes, err = r.run("", "deck", "remove", id, "mountain")
	require.NoError(t, err)
	assert.Contains(t, notes, "Removed Mountain from deck")
	assert.Len(t, decodeJSON[model.Deck](t, out).Cards, 2)

	// Export
	out, _, err = r.run("", "deck", "export", id)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Commander\n1 Krenko, Mob Boss\n\nDeck\n"), out)
	assert.Contains(t, out, "1 Goblin Guide\n")
	assert.Contains(t, out, "1 Mountain\n")

	// Declined delete keeps the deck
	out, _, err = r.run("n\n", "deck", "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Cancelled")

	_, notes, err = r.run("", "deck", "delete", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, notes, "Deck deleted successfully")

	out, _, err = r.run("", "deck", "list")
	require.NoError(t, err)
	assert.Empty(t, decodeJSON[[]model.Deck](t, out))
}

func TestCLI_ExportQR(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	_, _, err := r.run("", "signup", "dave", "--password", "pw", "--confirm", "pw")
	require.NoError(t, err)

	out, _, err := r.run("", "deck", "create", "--name", "Burn", "--type", "standard")
	require.NoError(t, err)
	id := string(decodeJSON[model.Deck](t, out).ID)

	qrFile := filepath.Join(t.TempDir(), "deck.png")
	_, _, err = r.run("", "deck", "export", id, "--qr", qrFile, "--size", "128")
	require.NoError(t, err)

	data, err := os.ReadFile(qrFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestCLI_CreateValidation(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	_, _, err := r.run("", "signup", "erin", "--password", "pw", "--confirm", "pw")
	require.NoError(t, err)

	_, notes, err := r.run("", "deck", "create", "--name", "No Type")
	require.Error(t, err)
	assert.Contains(t, notes, "Please fill out all required fields")
}

func TestCLI_Lookup(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	out, _, err := r.run("", "define", "Flying")
	require.NoError(t, err)
	def := decodeJSON[map[string]string](t, out)
	assert.Equal(t, "Flying", def["word"])
	assert.Contains(t, def["definition"], "can't be blocked")

	out, _, err = r.run("", "card", "Lightning Bolt")
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", decodeJSON[model.Card](t, out).Name)

	out, _, err = r.run("", "card", "Forest", "Island")
	require.NoError(t, err)
	cards := decodeJSON[[]model.Card](t, out)
	require.Len(t, cards, 2)
	assert.Equal(t, "Forest", cards[0].Name)
	assert.Equal(t, "Island", cards[1].Name)

	_, notes, err := r.run("", "card", "No Such Card Anywhere")
	require.Error(t, err)
	assert.Contains(t, notes, "Card Not Found")

	out, _, err = r.run("", "suggest", "sol")
	require.NoError(t, err)
	assert.Contains(t, decodeJSON[[]string](t, out), "Sol Ring")

	out, _, err = r.run("", "words", "strike")
	require.NoError(t, err)
	assert.Equal(t, []string{"Double Strike", "First Strike"}, decodeJSON[[]string](t, out))
}

func TestCLI_Menu(t *testing.T) {
	r := newCLIRunner(t, startTestServer(t))

	out, _, err := r.run("", "menu", "/my-decks")
	require.NoError(t, err)
	assert.Equal(t, "/home", decodeJSON[map[string]string](t, out)["message"])

	_, _, err = r.run("", "signup", "frank", "--password", "pw", "--confirm", "pw")
	require.NoError(t, err)

	out, _, err = r.run("", "menu", "/my-decks")
	require.NoError(t, err)
	assert.Equal(t, "/my-decks", decodeJSON[map[string]string](t, out)["message"])
}
