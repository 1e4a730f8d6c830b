package domain

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Card is a single trivia question with its three possible answers.
type Card struct {
	Question string `json:"question"`
	AnswerA  string `json:"answer_A"`
	AnswerB  string `json:"answer_B"`
	AnswerC  string `json:"answer_C"`
}

// Deck is an ordered, rotatable sequence of cards. The card at the cursor is
// the one currently in play.
type Deck struct {
	GUID  string
	Name  string
	cards *Carousel[Card]
}

// NewDeck creates a deck from the given cards. A deck must hold at least one
// card.
func NewDeck(name string, cards []Card) (*Deck, error) {
	if len(cards) == 0 {
		return nil, ErrEmptyDeck
	}
	return &Deck{
		GUID:  uuid.NewString(),
		Name:  name,
		cards: NewCarousel(cards),
	}, nil
}

// CurrentCard returns the card at the cursor.
func (d *Deck) CurrentCard() Card {
	return d.cards.Front()
}

// AdvanceCard rotates the cursor by one position.
func (d *Deck) AdvanceCard() {
	d.cards.PopPush()
}

// Shuffle reorders the whole sequence with a uniform random permutation and
// resets the cursor to the front.
func (d *Deck) Shuffle() {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	shuffled := d.cards.Items()
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	d.cards = NewCarousel(shuffled)
}

// Size returns the number of cards in the deck.
func (d *Deck) Size() int {
	return d.cards.Len()
}
