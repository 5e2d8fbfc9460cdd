package export

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/deckbuilder/internal/model"
)

var (
	krenko = model.Card{ID: "c-krenko", Name: "Krenko, Mob Boss", TypeLine: "Legendary Creature — Goblin Warrior"}
	guide  = model.Card{ID: "c-guide", Name: "Goblin Guide", TypeLine: "Creature — Goblin Scout"}
	bolt   = model.Card{ID: "c-bolt", Name: "Lightning Bolt", TypeLine: "Instant"}
)

func TestTextCommanderDeck(t *testing.T) {
	deck := &model.Deck{
		ID:        "d-1",
		Name:      "Goblins",
		Type:      model.DeckTypeCommander,
		Commander: &krenko,
		Cards:     []model.Card{krenko, bolt, guide, bolt, bolt},
	}

	want := "Commander\n" +
		"1 Krenko, Mob Boss\n" +
		"\n" +
		"Deck\n" +
		"3 Lightning Bolt\n" +
		"1 Goblin Guide\n"
	assert.Equal(t, want, Text(deck))
}

func TestTextStandardDeck(t *testing.T) {
	deck := &model.Deck{ID: "d-2", Name: "Burn", Type: model.DeckTypeStandard, Cards: []model.Card{guide, bolt, guide}}

	assert.Equal(t, "Deck\n2 Goblin Guide\n1 Lightning Bolt\n", Text(deck))
}

func TestTextEmptyDeck(t *testing.T) {
	assert.Equal(t, "Deck\n", Text(&model.Deck{ID: "d-3"}))
}

func TestQRPNG(t *testing.T) {
	deck := &model.Deck{ID: "d-2", Name: "Burn", Cards: []model.Card{guide, bolt}}

	data, err := QRPNG(deck, 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestQRPNGDefaultSize(t *testing.T) {
	data, err := QRPNG(&model.Deck{ID: "d-3"}, 0)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, DefaultQRSize, img.Bounds().Dx())
}

func TestQRPNGTooLarge(t *testing.T) {
	cards := make([]model.Card, 0, 1000)
	for i := 0; i < 1000; i++ {
		cards = append(cards, model.Card{Name: fmt.Sprintf("Card %04d", i)})
	}

	_, err := QRPNG(&model.Deck{ID: "huge", Cards: cards}, 256)
	assert.Error(t, err)
}
