package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mcoot/deckbuilder/internal/model"
	"github.com/mcoot/deckbuilder/internal/navigation"
	"github.com/mcoot/deckbuilder/internal/notify"
	"github.com/mcoot/deckbuilder/internal/queue"
	"github.com/mcoot/deckbuilder/internal/services/deckview"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintln(o.w, msg)
	}
}

// PrintNotification outputs a transient notification
func (o *Output) PrintNotification(n notify.Notification) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{
			"severity": string(n.Severity),
			"summary":  n.Summary,
			"detail":   n.Detail,
		})
		fmt.Fprintln(o.w, string(data))
	} else {
		fmt.Fprintf(o.w, "%s: %s\n", n.Summary, n.Detail)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *model.Deck:
		o.printDeck(v)
	case []model.Deck:
		o.printDeckList(v)
	case *model.Card:
		o.printCard(v)
	case []*model.Card:
		for i, card := range v {
			if i > 0 {
				fmt.Fprintln(o.w)
			}
			o.printCard(card)
		}
	case []model.GroupedCard:
		o.printGroups(v)
	case DefinitionResult:
		o.printDefinition(v)
	case []string:
		for _, s := range v {
			fmt.Fprintln(o.w, s)
		}
	case []queue.Entry:
		for _, e := range v {
			fmt.Fprintf(o.w, "%d %s\n", e.Quantity, e.Name)
		}
	case []navigation.Item:
		o.printMenu(v, "")
	case SessionInfo:
		o.printSession(v)
	case HealthResult:
		fmt.Fprintf(o.w, "Status: %s\n", v.Status)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// DefinitionResult pairs a glossary word with its definition
type DefinitionResult struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
	Link       string `json:"link"`
}

// SessionInfo describes the current session
type SessionInfo struct {
	Authenticated bool   `json:"authenticated"`
	Principal     string `json:"principal,omitempty"`
}

// HealthResult is the deck service health
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printDeck(d *model.Deck) {
	fmt.Fprintf(o.w, "Deck: %s (%s)\n", d.Name, d.ID)
	fmt.Fprintf(o.w, "Type: %s\n", d.Type)
	if d.Commander != nil {
		fmt.Fprintf(o.w, "Commander: %s\n", d.Commander.Name)
	}
	fmt.Fprintf(o.w, "Cards (%d/%d):\n", len(d.Cards), d.SizeLimit)
	for _, g := range deckview.GroupByName(d.Cards) {
		fmt.Fprintf(o.w, "  %d %s [%s]\n", g.Count, g.Name, g.Card.ID)
	}
}

func (o *Output) printDeckList(decks []model.Deck) {
	if len(decks) == 0 {
		fmt.Fprintln(o.w, "No decks")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tCARDS")
	for _, d := range decks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\n", d.ID, d.Name, d.Type, len(d.Cards), d.SizeLimit)
	}
	_ = tw.Flush()
}

func (o *Output) printCard(c *model.Card) {
	fmt.Fprintf(o.w, "%s", c.Name)
	if c.ManaCost != "" {
		fmt.Fprintf(o.w, " %s", c.ManaCost)
	}
	fmt.Fprintln(o.w)
	if c.TypeLine != "" {
		fmt.Fprintln(o.w, c.TypeLine)
	}
	if c.OracleText != "" {
		fmt.Fprintln(o.w, c.OracleText)
	}
	switch {
	case c.Power != "" || c.Toughness != "":
		fmt.Fprintf(o.w, "%s/%s\n", c.Power, c.Toughness)
	case c.Loyalty != "":
		fmt.Fprintf(o.w, "Loyalty: %s\n", c.Loyalty)
	}
	if c.SetName != "" {
		fmt.Fprintf(o.w, "Set: %s\n", c.SetName)
	}
}

func (o *Output) printGroups(groups []model.GroupedCard) {
	for _, g := range groups {
		fmt.Fprintf(o.w, "%d %s [%s]\n", g.Count, g.Name, g.Card.ID)
	}
}

func (o *Output) printDefinition(d DefinitionResult) {
	fmt.Fprintf(o.w, "%s: %s\n", d.Word, d.Definition)
	if d.Link != "" {
		fmt.Fprintf(o.w, "More: %s\n", d.Link)
	}
}

func (o *Output) printMenu(items []navigation.Item, indent string) {
	for _, item := range items {
		if item.Path != "" {
			fmt.Fprintf(o.w, "%s%s (%s)\n", indent, item.Label, item.Path)
		} else {
			fmt.Fprintf(o.w, "%s%s\n", indent, item.Label)
		}
		o.printMenu(item.Children, indent+"  ")
	}
}

func (o *Output) printSession(s SessionInfo) {
	if !s.Authenticated {
		fmt.Fprintln(o.w, "Not logged in")
		return
	}
	if s.Principal == "" {
		fmt.Fprintln(o.w, "Logged in")
		return
	}
	fmt.Fprintf(o.w, "Logged in as %s\n", s.Principal)
}

// printNotifier shows coordinator notifications on the terminal
type printNotifier struct {
	out *Output
}

func (p *printNotifier) Notify(n notify.Notification) {
	p.out.PrintNotification(n)
}
