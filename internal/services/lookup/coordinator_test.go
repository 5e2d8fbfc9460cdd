package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/remote"
	"github.com/mcoot/deckbuilder/internal/testutil"
)

type fakeService struct {
	mu          sync.Mutex
	definitions map[string]model.Definition
	cards       map[string]model.Card
	searchErr   error
	cardErr     error
	searches    []string
}

func (f *fakeService) GetDefinition(ctx context.Context, word string) (*model.Definition, error) {
	def, ok := f.definitions[word]
	if !ok {
		return nil, &remote.Error{Status: 404, Message: "Definition not found"}
	}
	return &def, nil
}

func (f *fakeService) GetCardsByName(ctx context.Context, name string) ([]model.Card, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches = append(f.searches, name)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	card, ok := f.cards[name]
	if !ok {
		return nil, &remote.Error{Status: 404, Message: "Card not found"}
	}
	return []model.Card{{ID: card.ID, Name: card.Name}}, nil
}

func (f *fakeService) GetCardByID(ctx context.Context, id model.CardID) (*model.Card, error) {
	if f.cardErr != nil {
		return nil, f.cardErr
	}
	for _, card := range f.cards {
		if card.ID == id {
			return &card, nil
		}
	}
	return nil, &remote.Error{Status: 404}
}

type fakeSuggester struct {
	data    []string
	queries []string
}

func (f *fakeSuggester) GetCardNameSuggestions(ctx context.Context, query string) (*remote.Catalog, error) {
	f.queries = append(f.queries, query)
	return &remote.Catalog{Object: "catalog", TotalValues: len(f.data), Data: f.data}, nil
}

var (
	lotus   = model.Card{ID: "c-lotus", Name: "Black Lotus", TypeLine: "Artifact", ManaCost: "{0}"}
	solRing = model.Card{ID: "c-sol", Name: "Sol Ring", TypeLine: "Artifact", ManaCost: "{1}"}
	flying  = model.Definition{Definition: "This creature can't be blocked except by creatures with flying or reach.", Link: "https://example.com/flying"}
)

type CoordinatorSuite struct {
	suite.Suite
	service   *fakeService
	suggester *fakeSuggester
	notes     *notify.Recorder
	lookup    *Coordinator
	ctx       context.Context
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	s.service = &fakeService{
		definitions: map[string]model.Definition{"Flying": flying},
		cards:       map[string]model.Card{"Black Lotus": lotus, "Sol Ring": solRing},
	}
	s.suggester = &fakeSuggester{}
	s.notes = notify.NewRecorder()
	s.lookup = New(s.service, s.suggester, s.notes, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *CoordinatorSuite) lastNote() notify.Notification {
	n, ok := s.notes.Last()
	s.Require().True(ok, "expected a notification")
	return n
}

// Definition tests

func (s *CoordinatorSuite) TestShowDefinition() {
	def, err := s.lookup.ShowDefinition(s.ctx, "Flying")

	s.Require().NoError(err)
	s.Equal(flying, *def)
	dialog := s.lookup.Dialog()
	s.True(dialog.Visible)
	s.Equal("Flying", dialog.Header)
	s.Equal(&flying, dialog.Definition)
	s.Nil(dialog.Card)
}

func (s *CoordinatorSuite) TestShowDefinitionFailure() {
	_, err := s.lookup.ShowDefinition(s.ctx, "Banding")

	s.Error(err)
	s.True(errors.Is(err, remote.ErrNotFound))
	s.Nil(s.lookup.Dialog().Definition)

	n := s.lastNote()
	s.Equal(notify.SeverityError, n.Severity)
	s.Equal("Definition not found", n.Detail)
	s.Equal(notify.LifeLong, n.Life)
}

func (s *CoordinatorSuite) TestShowDefinitionClearsPreviousCard() {
	_, err := s.lookup.ShowCard(s.ctx, "Black Lotus")
	s.Require().NoError(err)

	_, err = s.lookup.ShowDefinition(s.ctx, "Flying")
	s.Require().NoError(err)

	s.Nil(s.lookup.Dialog().Card)
}

// Card tests

func (s *CoordinatorSuite) TestShowCard() {
	card, err := s.lookup.ShowCard(s.ctx, "Black Lotus")

	s.Require().NoError(err)
	s.Equal(lotus, *card)
	dialog := s.lookup.Dialog()
	s.True(dialog.Visible)
	s.Equal("Black Lotus", dialog.Header)
	s.Equal(&lotus, dialog.Card)
	s.Empty(s.notes.All())
}

func (s *CoordinatorSuite) TestShowCardNotFound() {
	_, err := s.lookup.ShowCard(s.ctx, "Not A Real Card")

	s.Error(err)
	s.False(s.lookup.Dialog().Visible)
	note := s.lastNote()
	s.Equal(notify.SeverityError, note.Severity)
	s.Equal("Card Not Found", note.Summary)
	s.Equal("Either more than one card matched your search, or 0 cards matched. Try again.", note.Detail)
	s.Equal(notify.LifeLong, note.Life)
}

func (s *CoordinatorSuite) TestShowCardServerError() {
	s.service.searchErr = &remote.Error{Status: 500, Message: "boom"}

	_, err := s.lookup.ShowCard(s.ctx, "Black Lotus")

	s.Error(err)
	s.False(s.lookup.Dialog().Visible)
	note := s.lastNote()
	s.Equal("Error", note.Summary)
	s.Equal("An error occurred while searching for the card.", note.Detail)
	s.Equal(notify.LifeLong, note.Life)
}

func (s *CoordinatorSuite) TestShowCardDetailFailure() {
	s.service.cardErr = errors.New("connection reset")

	_, err := s.lookup.ShowCard(s.ctx, "Sol Ring")

	s.Error(err)
	s.Equal("An error occurred while searching for the card.", s.lastNote().Detail)
}

// Show dispatch tests

func (s *CoordinatorSuite) TestShowPrefersWord() {
	s.Require().NoError(s.lookup.Show(s.ctx, "Flying", "Black Lotus"))

	s.Equal("Flying", s.lookup.Dialog().Header)
	s.Empty(s.service.searches)
}

func (s *CoordinatorSuite) TestShowFallsBackToCard() {
	s.Require().NoError(s.lookup.Show(s.ctx, "", "Black Lotus"))

	s.Equal("Black Lotus", s.lookup.Dialog().Header)
	s.Equal([]string{"Black Lotus"}, s.service.searches)
}

func (s *CoordinatorSuite) TestShowNothing() {
	s.Require().NoError(s.lookup.Show(s.ctx, "", ""))

	s.False(s.lookup.Dialog().Visible)
}

func (s *CoordinatorSuite) TestClose() {
	_, err := s.lookup.ShowCard(s.ctx, "Black Lotus")
	s.Require().NoError(err)

	s.lookup.Close()

	s.Equal(Dialog{}, s.lookup.Dialog())
}

// ShowCards tests

func (s *CoordinatorSuite) TestShowCardsPreservesOrder() {
	cards, err := s.lookup.ShowCards(s.ctx, "Sol Ring", "Black Lotus", "Sol Ring")

	s.Require().NoError(err)
	s.Require().Len(cards, 3)
	s.Equal("Sol Ring", cards[0].Name)
	s.Equal("Black Lotus", cards[1].Name)
	s.Equal("Sol Ring", cards[2].Name)
	s.False(s.lookup.Dialog().Visible, "panel untouched")
}

func (s *CoordinatorSuite) TestShowCardsFailure() {
	cards, err := s.lookup.ShowCards(s.ctx, "Sol Ring", "Nope")

	s.Error(err)
	s.Nil(cards)
	s.Equal("Card Not Found", s.lastNote().Summary)
}

// Suggestion tests

func (s *CoordinatorSuite) TestSearchCardSuggestions() {
	s.suggester.data = []string{"Black Lotus", "Blacker Lotus", "Blightsteel Colossus"}

	s.lookup.SearchCardSuggestions(s.ctx, "bl")

	s.Equal([]string{"Black Lotus", "Blacker Lotus", "Blightsteel Colossus"}, s.lookup.Suggestions())
}

func (s *CoordinatorSuite) TestSearchCardSuggestionsTruncates() {
	for i := 0; i < 30; i++ {
		s.suggester.data = append(s.suggester.data, "Card")
	}

	s.lookup.SearchCardSuggestions(s.ctx, "card")

	s.Len(s.lookup.Suggestions(), MaxSuggestions)
}

func (s *CoordinatorSuite) TestShortQueryClearsSuggestions() {
	s.suggester.data = []string{"Black Lotus"}
	s.lookup.SearchCardSuggestions(s.ctx, "bl")

	s.lookup.SearchCardSuggestions(s.ctx, "b")

	s.Empty(s.lookup.Suggestions())
	s.Equal([]string{"bl"}, s.suggester.queries)
}

func TestWordSuggestions(t *testing.T) {
	assert.Equal(t, []string{"Double Strike"}, WordSuggestions("double"))
	assert.Equal(t, []string{"Double Strike", "First Strike"}, WordSuggestions("STRIKE"))
	assert.Equal(t, []string{"Flying", "Flash"}, WordSuggestions("fl"))
	assert.Len(t, WordSuggestions(""), len(Glossary))
	assert.Empty(t, WordSuggestions("banding"))
}

func TestGlossary(t *testing.T) {
	assert.Len(t, Glossary, 27)
	assert.Equal(t, "Vigilance", Glossary[0])
	assert.Equal(t, "Token", Glossary[len(Glossary)-1])
}
