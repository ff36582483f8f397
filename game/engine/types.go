package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Rank is a card rank ordinal, Ace=1 through King=13
type Rank int

const (
	Ace   Rank = 1
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
)

// Suit identifies one of the four suits. The value doubles as the foundation index.
type Suit int

const (
	Spade Suit = iota
	Heart
	Club
	Diamond
)

// Color partitions suits into black and red
type Color int

const (
	Black Color = iota
	Red
)

// PileKind names a family of piles on the table
type PileKind string

const (
	Tableau     PileKind = "tableau"
	Foundation  PileKind = "foundation"
	StockClosed PileKind = "stock_closed"
	StockOpen   PileKind = "stock_open"

	// Table constants
	DeckSize         = 52
	RanksPerSuit     = 13
	TableauCount     = 7
	FoundationCount  = 4
	TableauCardCount = 28
	StockCardCount   = DeckSize - TableauCardCount
	MaxUndoLimit     = 1000
)

// Suits lists the suits in foundation order
var Suits = []Suit{Spade, Heart, Club, Diamond}

// Valid reports whether r is within Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

func (r Rank) String() string {
	switch r {
	case Ace:
		return "A"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	}
	if r.Valid() {
		return strconv.Itoa(int(r))
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Spade && s <= Diamond
}

// Color returns the suit's color
func (s Suit) Color() Color {
	if s == Heart || s == Diamond {
		return Red
	}
	return Black
}

// Letter returns the one-letter code used in card codes
func (s Suit) Letter() string {
	switch s {
	case Spade:
		return "S"
	case Heart:
		return "H"
	case Club:
		return "C"
	case Diamond:
		return "D"
	}
	return "?"
}

// Symbol returns the unicode glyph for the suit
func (s Suit) Symbol() string {
	switch s {
	case Spade:
		return "♠"
	case Heart:
		return "♥"
	case Club:
		return "♣"
	case Diamond:
		return "♦"
	}
	return "?"
}

func (s Suit) String() string {
	switch s {
	case Spade:
		return "spade"
	case Heart:
		return "heart"
	case Club:
		return "club"
	case Diamond:
		return "diamond"
	}
	return fmt.Sprintf("Suit(%d)", int(s))
}

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Card is an immutable (rank, suit) pair. Orientation belongs to its placement.
type Card struct {
	Rank Rank
	Suit Suit
}

// Valid reports whether both rank and suit are in range
func (c Card) Valid() bool {
	return c.Rank.Valid() && c.Suit.Valid()
}

// Color returns the card's suit color
func (c Card) Color() Color {
	return c.Suit.Color()
}

// Code returns the short code of the card, e.g. "AS", "10H", "QD"
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Letter()
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.Symbol()
}

// MarshalText encodes the card as its code
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d/%d", ErrInvalidCard, c.Rank, c.Suit)
	}
	return []byte(c.Code()), nil
}

// UnmarshalText decodes a card code
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a card code such as "AS", "10h", "qd" or "T♣"
func ParseCard(code string) (Card, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return Card{}, fmt.Errorf("%w: empty code", ErrInvalidCard)
	}

	var suit Suit
	var rankPart string
	switch {
	case strings.HasSuffix(code, "S"), strings.HasSuffix(code, "♠"):
		suit = Spade
	case strings.HasSuffix(code, "H"), strings.HasSuffix(code, "♥"):
		suit = Heart
	case strings.HasSuffix(code, "C"), strings.HasSuffix(code, "♣"):
		suit = Club
	case strings.HasSuffix(code, "D"), strings.HasSuffix(code, "♦"):
		suit = Diamond
	default:
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, code)
	}
	_, size := lastRune(code)
	rankPart = code[:len(code)-size]

	var rank Rank
	switch rankPart {
	case "A":
		rank = Ace
	case "J":
		rank = Jack
	case "Q":
		rank = Queen
	case "K":
		rank = King
	case "T":
		rank = 10
	case "2", "3", "4", "5", "6", "7", "8", "9", "10":
		n, _ := strconv.Atoi(rankPart)
		rank = Rank(n)
	default:
		return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrInvalidCard, code)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

func lastRune(s string) (rune, int) {
	r := []rune(s)
	last := r[len(r)-1]
	return last, len(string(last))
}

// Position locates a placement. Index is the column for Tableau and
// Foundation piles and always 0 for the stock piles.
type Position struct {
	Kind  PileKind `json:"kind"`
	Index int      `json:"index"`
}

func (p Position) String() string {
	switch p.Kind {
	case Tableau, Foundation:
		return fmt.Sprintf("%s[%d]", p.Kind, p.Index)
	}
	return string(p.Kind)
}

// CardPlacement binds a card to its pile and orientation
type CardPlacement struct {
	ID       string   `json:"id"`
	Card     Card     `json:"card"`
	Position Position `json:"position"`
	FaceUp   bool     `json:"face_up"`
}

// GameState is an immutable snapshot of the table. Placements keep insertion
// order; within a pile the last placement is the topmost card.
type GameState struct {
	Placements []CardPlacement `json:"placements"`

	// HoveredPile is keyboard-assist UI state, nil when no tableau pile is hovered
	HoveredPile *int `json:"hovered_pile,omitempty"`
}

// Board groups placements by pile for rendering
type Board struct {
	Tableau     [][]CardPlacement `json:"tableau"`
	Foundations [][]CardPlacement `json:"foundations"`
	StockClosed []CardPlacement   `json:"stock_closed"`
	StockOpen   []CardPlacement   `json:"stock_open"`
	HoveredPile *int              `json:"hovered_pile,omitempty"`
}

// Status is the externally observable session state
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusWon        Status = "won"
)

// MoveHistoryEntry represents a single applied or rejected intent
type MoveHistoryEntry struct {
	Action     string    `json:"action"`
	Card       *Card     `json:"card,omitempty"`
	From       *Position `json:"from,omitempty"`
	To         *Position `json:"to,omitempty"`
	Timestamp  int64     `json:"timestamp"`
	Success    bool      `json:"success"`
	MoveNumber int       `json:"move_number"`
}
