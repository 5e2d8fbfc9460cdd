package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/deckbuilder/internal/services/lookup"
)

func newDefineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "define <word>",
		Short: "Look up a rules glossary word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

			def, err := app.Lookup.ShowDefinition(cmd.Context(), word)
			if err != nil {
				return err
			}

			output(cmd).Print(DefinitionResult{Word: word, Definition: def.Definition, Link: def.Link})
			return nil
		},
	}
}

func newWordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "words [query]",
		Short: "List glossary words, optionally filtered",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			words := lookup.Glossary
			if len(args) == 1 {
				words = lookup.WordSuggestions(args[0])
			}

			output(cmd).Print(words)
			return nil
		},
	}
}

func newCardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "card <name>...",
		Short: "Look up one or more cards by exact name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := output(cmd)

			if len(args) == 1 {
				card, err := app.Lookup.ShowCard(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				out.Print(card)
				return nil
			}

			cards, err := app.Lookup.ShowCards(cmd.Context(), args...)
			if err != nil {
				return err
			}
			out.Print(cards)
			return nil
		},
	}
}

func newSuggestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggest <query>",
		Short: "Suggest card names from the card database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := args[0]
			if len(query) < 2 {
				return fmt.Errorf("query must be at least 2 characters")
			}

			app.Lookup.SearchCardSuggestions(cmd.Context(), query)
			output(cmd).Print(app.Lookup.Suggestions())
			return nil
		},
	}
}
