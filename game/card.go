package game

import (
	"fmt"
	"strconv"
	"strings"
)

type CardKind int

const (
	TransferCard CardKind = iota // 0
	FreeCard                     // 1
	SkipCard                     // 2
	NumberCard                   // 3
	ReshuffleCard                // 4
)

var cardKindNames = [...]string{
	TransferCard:  "transfer",
	FreeCard:      "free",
	SkipCard:      "skip",
	NumberCard:    "n",
	ReshuffleCard: "reshuffle",
}

func (k CardKind) String() string {
	if k < 0 || int(k) >= len(cardKindNames) {
		return "CardKind(" + strconv.Itoa(int(k)) + ")"
	}
	return cardKindNames[k]
}

// Card is an immutable value. Number is the count of nodes the card may mark;
// it is zero for transfer cards and one for free cards.
type Card struct {
	Kind   CardKind
	Number int
}

func NewTransferCard() Card       { return Card{Kind: TransferCard} }
func NewFreeCard() Card           { return Card{Kind: FreeCard, Number: 1} }
func NewSkipCard(n int) Card      { return Card{Kind: SkipCard, Number: n} }
func NewNumberCard(n int) Card    { return Card{Kind: NumberCard, Number: n} }
func NewReshuffleCard(n int) Card { return Card{Kind: ReshuffleCard, Number: n} }
func (c Card) Reshuffle() bool    { return c.Kind == ReshuffleCard }

// String renders the card with the same identifier ParseCard accepts.
func (c Card) String() string {
	switch c.Kind {
	case TransferCard, FreeCard:
		return c.Kind.String()
	default:
		return c.Kind.String() + strconv.Itoa(c.Number)
	}
}

// ParseCard builds a card from an identifier such as "transfer", "free",
// "skip2", "n4" or "reshuffle6".
func ParseCard(id string) (Card, error) {
	switch id {
	case "transfer":
		return NewTransferCard(), nil
	case "free":
		return NewFreeCard(), nil
	}

	for _, kind := range []CardKind{ReshuffleCard, SkipCard, NumberCard} {
		prefix := kind.String()
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
		if err != nil || n <= 0 {
			return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
		}
		return Card{Kind: kind, Number: n}, nil
	}
	return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, id)
}

// CardCount is one entry of a card supply: how many copies of a card go in the deck.
type CardCount struct {
	Card  string `yaml:"card"`
	Count int    `yaml:"count"`
}

// CardSupply is the full deck composition. It is ordered so that a
// deterministic deck always deals the same sequence.
type CardSupply []CardCount

// Build expands the supply into individual cards, in supply order.
func (s CardSupply) Build() ([]Card, error) {
	var cards []Card
	for _, cc := range s {
		if cc.Count < 0 {
			return nil, fmt.Errorf("%w: negative count %d for %q", ErrInvalidCards, cc.Count, cc.Card)
		}
		card, err := ParseCard(cc.Card)
		if err != nil {
			return nil, err
		}
		for i := 0; i < cc.Count; i++ {
			cards = append(cards, card)
		}
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("%w: no cards", ErrInvalidCards)
	}
	return cards, nil
}
