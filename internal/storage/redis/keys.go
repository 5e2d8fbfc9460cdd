package redis

import (
	"fmt"

	"github.com/mcoot/deckbuilder/internal/model"
)

type keys struct {
	prefix string
}

// user returns the Redis key for a User
func (k keys) user(username string) string {
	return fmt.Sprintf("%s:user:%s", k.prefix, username)
}

// deck returns the Redis key for a StoredDeck
func (k keys) deck(id model.DeckID) string {
	return fmt.Sprintf("%s:deck:%s", k.prefix, id)
}

// ownerDecks returns the Redis key for the SET of deck ids an owner holds
func (k keys) ownerDecks(owner string) string {
	return fmt.Sprintf("%s:idx:owner_decks:%s", k.prefix, owner)
}
