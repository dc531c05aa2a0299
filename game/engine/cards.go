package engine

import (
	"fmt"
	"time"
)

// CardKind discriminates the card catalog.
type CardKind string

const (
	CardNumber   CardKind = "number"
	CardSix      CardKind = "six"
	CardExpress  CardKind = "express"
	CardTransfer CardKind = "transfer"
	CardFreeRide CardKind = "free_ride"
)

// Card is an immutable card value. Value is only meaningful for Number and
// Express cards.
type Card struct {
	Kind  CardKind `json:"kind"`
	Value int      `json:"value,omitempty"`
}

// Deck is an ordered pile of cards, drawn from the end.
type Deck []Card

// DeckSize is the fixed number of cards in a fresh deck. The sum of deck,
// discard pile, and the revealed card stays at this count for the lifetime
// of a game.
const DeckSize = 16

// NewDeck returns the full card catalog in pre-shuffle order:
// two each of numbers 1-5, one six, one express each of 2/3/4, one
// transfer, and one free ride.
func NewDeck() Deck {
	deck := make(Deck, 0, DeckSize)

	for num := 1; num <= 5; num++ {
		deck = append(deck, Card{Kind: CardNumber, Value: num})
		deck = append(deck, Card{Kind: CardNumber, Value: num})
	}

	deck = append(deck, Card{Kind: CardSix})
	deck = append(deck, Card{Kind: CardExpress, Value: 2})
	deck = append(deck, Card{Kind: CardExpress, Value: 3})
	deck = append(deck, Card{Kind: CardExpress, Value: 4})
	deck = append(deck, Card{Kind: CardTransfer})
	deck = append(deck, Card{Kind: CardFreeRide})

	return deck
}

// ShuffleDeck permutes cards in place with a Fisher-Yates pass driven by a
// linear congruential generator. The same seed always produces the same
// permutation.
func ShuffleDeck(cards []Card, seed uint64) {
	state := seed
	for i := len(cards) - 1; i >= 1; i-- {
		state = state*1103515245 + 12345
		j := int(state % uint64(i+1))
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// NewShuffleSeed returns a time-derived seed for non-deterministic shuffles.
func NewShuffleSeed() uint64 {
	return uint64(time.Now().UnixNano())
}

// PipValue returns the number of station marks the card grants. Transfer
// and free-ride cards carry no pip value.
func (c Card) PipValue() (int, bool) {
	switch c.Kind {
	case CardNumber, CardExpress:
		return c.Value, true
	case CardSix:
		return 6, true
	default:
		return 0, false
	}
}

// WindowValue returns the string recorded in a train-car window when the
// card is applied to a line: "+" for a transfer, the numeral otherwise.
func (c Card) WindowValue() string {
	if c.Kind == CardTransfer {
		return "+"
	}
	if v, ok := c.PipValue(); ok {
		return fmt.Sprintf("%d", v)
	}
	return "0"
}

func (c Card) String() string {
	switch c.Kind {
	case CardNumber:
		return fmt.Sprintf("number %d", c.Value)
	case CardSix:
		return "six"
	case CardExpress:
		return fmt.Sprintf("express %d", c.Value)
	case CardTransfer:
		return "transfer"
	case CardFreeRide:
		return "free ride"
	}
	return string(c.Kind)
}
