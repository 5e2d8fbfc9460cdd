// Package export renders decks into shareable formats.
package export

import (
	"fmt"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/services/deckview"
)

// DefaultQRSize is the side length in pixels of exported QR codes
const DefaultQRSize = 512

// Text renders deck as a plain decklist: an optional Commander section
// followed by the Deck section, one "count name" line per distinct card.
func Text(deck *model.Deck) string {
	var b strings.Builder

	if deck.Commander != nil {
		b.WriteString("Commander\n")
		fmt.Fprintf(&b, "1 %s\n\n", deck.Commander.Name)
	}

	b.WriteString("Deck\n")
	cards := make([]model.Card, 0, len(deck.Cards))
	for _, card := range deck.Cards {
		if deck.IsCommander(card) {
			continue
		}
		cards = append(cards, card)
	}
	for _, group := range deckview.GroupByName(cards) {
		fmt.Fprintf(&b, "%d %s\n", group.Count, group.Name)
	}

	return b.String()
}

// QRPNG encodes the decklist of deck as a QR code PNG of size pixels
func QRPNG(deck *model.Deck, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultQRSize
	}
	png, err := qrcode.Encode(Text(deck), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode decklist %s: %w", deck.ID, err)
	}
	return png, nil
}
