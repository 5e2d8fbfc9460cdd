package cli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/deckbuilder/internal/export"
	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/services/deckview"
)

func newDeckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Deck commands",
	}

	cmd.AddCommand(newDeckCreateCmd())
	cmd.AddCommand(newDeckListCmd())
	cmd.AddCommand(newDeckShowCmd())
	cmd.AddCommand(newDeckAddCmd())
	cmd.AddCommand(newDeckRemoveCmd())
	cmd.AddCommand(newDeckDeleteCmd())
	cmd.AddCommand(newDeckExportCmd())

	return cmd
}

func newDeckCreateCmd() *cobra.Command {
	var name, deckType, commander string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new deck",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireAuth(); err != nil {
				return err
			}

			app.Builder.SetName(name)
			if deckType != "" {
				t := model.DeckType(strings.ToUpper(deckType))
				if !t.Valid() {
					return fmt.Errorf("invalid deck type %q: must be standard or commander", deckType)
				}
				app.Builder.SelectType(&t)
			}
			app.Builder.SetCommanderName(commander)

			deck, err := app.Builder.Create(cmd.Context())
			if err != nil {
				return err
			}
			if deck == nil {
				return nil
			}

			output(cmd).Print(deck)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Deck name")
	cmd.Flags().StringVar(&deckType, "type", "", "Deck type: standard, commander")
	cmd.Flags().StringVar(&commander, "commander", "", "Commander card name (commander decks)")

	return cmd
}

func newDeckListCmd() *cobra.Command {
	var deckType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your decks",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.RequireAuth(); err != nil {
				return err
			}

			if err := app.View.LoadDecks(cmd.Context()); err != nil {
				return err
			}

			decks := app.View.Decks()
			if deckType != "" {
				decks = app.View.DecksByType(model.DeckType(strings.ToUpper(deckType)))
			}

			output(cmd).Print(decks)
			return nil
		},
	}

	cmd.Flags().StringVar(&deckType, "type", "", "Only show decks of this type")

	return cmd
}

func newDeckShowCmd() *cobra.Command {
	var cardType string
	var group bool

	cmd := &cobra.Command{
		Use:   "show <deckId>",
		Short: "Show a deck and its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}

			out := output(cmd)
			if cardType == "" && !group {
				out.Print(deck)
				return nil
			}

			cards := deck.Cards
			if cardType != "" {
				cards = app.View.CardsByType(cardType)
			}
			out.Print(deckview.GroupByName(cards))
			return nil
		},
	}

	cmd.Flags().StringVar(&cardType, "type", "", "Only show cards whose type line contains this (e.g. Creature)")
	cmd.Flags().BoolVar(&group, "group", false, "Group cards by name")

	return cmd
}

func newDeckAddCmd() *cobra.Command {
	var literal bool

	cmd := &cobra.Command{
		Use:   "add <deckId> <card>...",
		Short: "Add cards to a deck in one batch",
		Long: `Add cards to a deck in one batch.

Each card is a name, optionally prefixed by a quantity:

  deckctl deck add <deckId> "4 Lightning Bolt" "Sol Ring"

A leading number followed by a space is always read as the quantity. For
card names that start with a number, use --literal to take every argument
as a name (one copy each), or give the quantity explicitly:

  deckctl deck add <deckId> --literal "1996 World Champion"
  deckctl deck add <deckId> "1 1996 World Champion"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]cardEntry, 0, len(args)-1)
			for _, arg := range args[1:] {
				entry, err := parseCardEntry(arg, literal)
				if err != nil {
					return err
				}
				entries = append(entries, entry)
			}

			if _, err := loadDeck(cmd, args[0]); err != nil {
				return err
			}
			for _, entry := range entries {
				app.View.QueueCard(entry.Name, entry.Quantity)
			}

			if err := app.View.AddQueuedCards(cmd.Context()); err != nil {
				return err
			}

			output(cmd).Print(app.View.Deck())
			return nil
		},
	}

	cmd.Flags().BoolVar(&literal, "literal", false, "Treat each argument as a card name with no quantity prefix")

	return cmd
}

func newDeckRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <deckId> <cardId|name>",
		Short: "Remove one copy of a card from a deck",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}

			card, ok := findCard(deck, args[1])
			if !ok {
				return fmt.Errorf("card %q is not in deck %s", args[1], deck.ID)
			}

			if err := app.View.RemoveCard(cmd.Context(), card); err != nil {
				return err
			}

			output(cmd).Print(app.View.Deck())
			return nil
		},
	}
}

func newDeckDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <deckId>",
		Short: "Delete a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}

			in := bufio.NewReader(cmd.InOrStdin())
			confirmer := deckview.ConfirmFunc(func(message string) bool {
				if yes {
					return true
				}
				answer, err := prompt(cmd, in, message+" [y/N]: ")
				if err != nil {
					return false
				}
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			})

			deleted, err := app.View.ConfirmAndDelete(cmd.Context(), *deck, confirmer)
			if err != nil {
				return err
			}
			if !deleted {
				output(cmd).PrintMessage("Cancelled")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking")

	return cmd
}

func newDeckExportCmd() *cobra.Command {
	var qrFile string
	var size int

	cmd := &cobra.Command{
		Use:   "export <deckId>",
		Short: "Print a deck as a plain-text decklist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck, err := loadDeck(cmd, args[0])
			if err != nil {
				return err
			}

			if qrFile != "" {
				png, err := export.QRPNG(deck, size)
				if err != nil {
					return err
				}
				if err := os.WriteFile(qrFile, png, 0644); err != nil {
					return fmt.Errorf("failed to write QR code: %w", err)
				}
			}

			fmt.Fprint(cmd.OutOrStdout(), export.Text(deck))
			return nil
		},
	}

	cmd.Flags().StringVar(&qrFile, "qr", "", "Also write the decklist as a QR code PNG to this file")
	cmd.Flags().IntVar(&size, "size", export.DefaultQRSize, "QR code size in pixels")

	return cmd
}

// loadDeck selects the deck in the view coordinator
func loadDeck(cmd *cobra.Command, id string) (*model.Deck, error) {
	if err := app.RequireAuth(); err != nil {
		return nil, err
	}
	if err := app.View.Load(cmd.Context(), model.DeckID(id)); err != nil {
		return nil, err
	}
	return app.View.Deck(), nil
}

type cardEntry struct {
	Name     string
	Quantity int
}

// parseCardEntry reads "Name" or "N Name". A literal entry is a name only.
func parseCardEntry(s string, literal bool) (cardEntry, error) {
	s = strings.TrimSpace(s)
	entry := cardEntry{Name: s, Quantity: 1}

	if count, rest, ok := strings.Cut(s, " "); ok && !literal {
		if n, err := strconv.Atoi(count); err == nil {
			if n < 1 {
				return cardEntry{}, fmt.Errorf("invalid quantity in %q", s)
			}
			entry = cardEntry{Name: strings.TrimSpace(rest), Quantity: n}
		}
	}

	if entry.Name == "" {
		return cardEntry{}, fmt.Errorf("missing card name in %q", s)
	}
	return entry, nil
}

// findCard matches a card id first, then a case-insensitive name
func findCard(deck *model.Deck, ref string) (model.Card, bool) {
	for _, card := range deck.Cards {
		if string(card.ID) == ref {
			return card, true
		}
	}
	for _, card := range deck.Cards {
		if strings.EqualFold(card.Name, ref) {
			return card, true
		}
	}
	return model.Card{}, false
}
