package model

// CardID identifies a card printing in the card database
type CardID string

// ImageURIs holds the image variants published for a card
type ImageURIs struct {
	Small  string `json:"small,omitempty"`
	Normal string `json:"normal,omitempty"`
	Large  string `json:"large,omitempty"`
	PNG    string `json:"png,omitempty"`
}

// Card is a card record as served by the card database.
// Attributes are sourced externally and never modified client side.
type Card struct {
	ID            CardID     `json:"id"`
	Name          string     `json:"name"`
	TypeLine      string     `json:"type_line,omitempty"`
	ManaCost      string     `json:"mana_cost,omitempty"`
	CMC           float64    `json:"cmc,omitempty"`
	OracleText    string     `json:"oracle_text,omitempty"`
	Power         string     `json:"power,omitempty"`
	Toughness     string     `json:"toughness,omitempty"`
	Loyalty       string     `json:"loyalty,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	ColorIdentity []string   `json:"color_identity,omitempty"`
	Rarity        string     `json:"rarity,omitempty"`
	SetName       string     `json:"set_name,omitempty"`
	ImageURIs     *ImageURIs `json:"image_uris,omitempty"`
}

// GroupedCard is a deduplicated view of a card list entry
type GroupedCard struct {
	Name  string
	Count int
	Card  Card // first card seen with this name
}

// Definition is a rules glossary entry
type Definition struct {
	Definition string `json:"definition"`
	Link       string `json:"link"`
}
