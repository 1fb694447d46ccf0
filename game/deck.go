package game

import "golang.org/x/exp/rand"

// Deck is the card supply: a draw pile and a discard pile. Every card is in
// exactly one of the two, except the card currently being played.
type Deck struct {
	cards   []Card
	pile    []Card
	discard []Card
	rng     *rand.Rand
}

// NewDeck creates a deck over the given cards. With a nil rng the draw pile
// keeps the given order, both now and after every reshuffle.
func NewDeck(cards []Card, rng *rand.Rand) *Deck {
	d := &Deck{cards: make([]Card, len(cards)), rng: rng}
	copy(d.cards, cards)
	d.Reshuffle()
	return d
}

// Reshuffle puts every card back into the draw pile and empties the discard pile.
func (d *Deck) Reshuffle() {
	d.pile = make([]Card, len(d.cards))
	copy(d.pile, d.cards)
	if d.rng != nil {
		d.rng.Shuffle(len(d.pile), func(i, j int) {
			d.pile[i], d.pile[j] = d.pile[j], d.pile[i]
		})
	}
	d.discard = d.discard[:0]
}

// Draw takes the top card and hands it to play. Afterwards a reshuffle card
// returns the whole supply to the draw pile; any other card is discarded.
// If play fails the error is returned and the card stays out of both piles.
func (d *Deck) Draw(play func(Card) error) error {
	if len(d.pile) == 0 {
		return ErrEmptyDeck
	}
	drawn := d.pile[0]
	d.pile = d.pile[1:]

	if err := play(drawn); err != nil {
		return err
	}

	if drawn.Reshuffle() {
		d.Reshuffle()
	} else {
		d.discard = append(d.discard, drawn)
	}
	return nil
}

// Cards returns a copy of the draw pile, top first.
func (d *Deck) Cards() []Card {
	return append([]Card(nil), d.pile...)
}

// Discard returns a copy of the discard pile, oldest first.
func (d *Deck) Discard() []Card {
	return append([]Card(nil), d.discard...)
}

// Len is the number of cards left in the draw pile.
func (d *Deck) Len() int {
	return len(d.pile)
}

// Size is the number of cards in the full supply.
func (d *Deck) Size() int {
	return len(d.cards)
}
