// Package navigation builds the menu and resolves view paths against the
// session state.
package navigation

import "strings"

// View paths
const (
	PathHome        = "/home"
	PathDeckBuilder = "/deck-builder"
	PathMyDecks     = "/my-decks"
	PathLogin       = "/login"
	PathSignup      = "/signup"
	PathLogout      = "/logout"
)

// Item is a menu entry. Entries with children are headings.
type Item struct {
	Label    string
	Path     string
	Children []Item
}

// Menu returns the menu for the given session state
func Menu(authenticated bool) []Item {
	items := []Item{{Label: "Home", Path: PathHome}}

	if authenticated {
		items = append(items,
			Item{Label: "Decks", Children: []Item{
				{Label: "Create a Deck", Path: PathDeckBuilder},
				{Label: "My Decks", Path: PathMyDecks},
			}},
			Item{Label: "Logout", Path: PathLogout},
		)
		return items
	}

	return append(items,
		Item{Label: "Login", Path: PathLogin},
		Item{Label: "Sign up", Path: PathSignup},
	)
}

// Guard decides whether a protected view may be opened. Implementations
// redirect on refusal.
type Guard interface {
	CanActivate() bool
}

var protected = map[string]bool{
	PathDeckBuilder: true,
	PathMyDecks:     true,
}

var known = map[string]bool{
	PathHome:        true,
	PathDeckBuilder: true,
	PathMyDecks:     true,
	PathLogin:       true,
	PathSignup:      true,
	PathLogout:      true,
}

// Resolve maps a requested path to the view to show. The empty path and
// unknown paths land on home; protected views fall back to home when the
// guard refuses.
func Resolve(path string, guard Guard) string {
	path = "/" + strings.Trim(path, "/")
	if !known[path] {
		return PathHome
	}
	if protected[path] && !guard.CanActivate() {
		return PathHome
	}
	return path
}
