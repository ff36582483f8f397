package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestPileKindConstants(t *testing.T) {
	tests := []struct {
		kind     PileKind
		expected string
	}{
		{Tableau, "tableau"},
		{Foundation, "foundation"},
		{StockClosed, "stock_closed"},
		{StockOpen, "stock_open"},
	}

	for _, test := range tests {
		if string(test.kind) != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, string(test.kind))
		}
	}
}

func TestTableConstants(t *testing.T) {
	tests := []struct {
		name     string
		actual   int
		expected int
	}{
		{"DeckSize", DeckSize, 52},
		{"TableauCount", TableauCount, 7},
		{"FoundationCount", FoundationCount, 4},
		{"TableauCardCount", TableauCardCount, 28},
		{"StockCardCount", StockCardCount, 24},
	}

	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("%s: expected %d, got %d", test.name, test.expected, test.actual)
		}
	}
}

func TestSuitOrderAndColor(t *testing.T) {
	// Foundation indices follow spade, heart, club, diamond
	expected := []struct {
		suit  Suit
		index int
		color Color
	}{
		{Spade, 0, Black},
		{Heart, 1, Red},
		{Club, 2, Black},
		{Diamond, 3, Red},
	}

	for i, test := range expected {
		if Suits[i] != test.suit {
			t.Errorf("Suits[%d]: expected %s, got %s", i, test.suit, Suits[i])
		}
		if int(test.suit) != test.index {
			t.Errorf("%s: expected index %d, got %d", test.suit, test.index, int(test.suit))
		}
		if test.suit.Color() != test.color {
			t.Errorf("%s: expected %s, got %s", test.suit, test.color, test.suit.Color())
		}
	}
}

func TestCardCode(t *testing.T) {
	tests := []struct {
		card Card
		code string
		text string
	}{
		{Card{Rank: Ace, Suit: Spade}, "AS", "A♠"},
		{Card{Rank: 10, Suit: Heart}, "10H", "10♥"},
		{Card{Rank: Queen, Suit: Diamond}, "QD", "Q♦"},
		{Card{Rank: King, Suit: Club}, "KC", "K♣"},
		{Card{Rank: 7, Suit: Club}, "7C", "7♣"},
	}

	for _, test := range tests {
		if got := test.card.Code(); got != test.code {
			t.Errorf("Code: expected %s, got %s", test.code, got)
		}
		if got := test.card.String(); got != test.text {
			t.Errorf("String: expected %s, got %s", test.text, got)
		}
	}
}

func TestParseCard(t *testing.T) {
	t.Run("valid codes", func(t *testing.T) {
		tests := []struct {
			code     string
			expected Card
		}{
			{"AS", Card{Rank: Ace, Suit: Spade}},
			{"as", Card{Rank: Ace, Suit: Spade}},
			{"10H", Card{Rank: 10, Suit: Heart}},
			{"TH", Card{Rank: 10, Suit: Heart}},
			{" qd ", Card{Rank: Queen, Suit: Diamond}},
			{"K♣", Card{Rank: King, Suit: Club}},
			{"2c", Card{Rank: 2, Suit: Club}},
		}
		for _, test := range tests {
			got, err := ParseCard(test.code)
			if err != nil {
				t.Errorf("ParseCard(%q): unexpected error %v", test.code, err)
				continue
			}
			if got != test.expected {
				t.Errorf("ParseCard(%q): expected %s, got %s", test.code, test.expected.Code(), got.Code())
			}
		}
	})

	t.Run("invalid codes", func(t *testing.T) {
		for _, code := range []string{"", "S", "14H", "KX", "ZZ", "0D", "01S", "+5S", "1S", "05H", "-2C", "1 0H"} {
			_, err := ParseCard(code)
			if !errors.Is(err, ErrInvalidCard) {
				t.Errorf("ParseCard(%q): expected ErrInvalidCard, got %v", code, err)
			}
		}
	})
}

func TestCardPlacementJSON(t *testing.T) {
	p := at("QH", Tableau, 3, true)
	p.ID = "abc"

	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Failed to marshal placement: %v", err)
	}

	s := string(data)
	for _, fragment := range []string{`"card":"QH"`, `"kind":"tableau"`, `"index":3`, `"face_up":true`, `"id":"abc"`} {
		if !strings.Contains(s, fragment) {
			t.Errorf("Expected %s in %s", fragment, s)
		}
	}

	var decoded CardPlacement
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal placement: %v", err)
	}
	if decoded != p {
		t.Errorf("Expected %+v, got %+v", p, decoded)
	}
}

func TestInvalidCardDoesNotMarshal(t *testing.T) {
	if _, err := json.Marshal(Card{}); err == nil {
		t.Error("Expected marshaling the zero card to fail")
	}
}

func TestPositionString(t *testing.T) {
	if got := (Position{Kind: Tableau, Index: 2}).String(); got != "tableau[2]" {
		t.Errorf("Expected tableau[2], got %s", got)
	}
	if got := (Position{Kind: StockOpen}).String(); got != "stock_open" {
		t.Errorf("Expected stock_open, got %s", got)
	}
}
