package storage

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"superego/domain"
)

// ErrNotFound is returned when a looked-up record does not exist.
var ErrNotFound = errors.New("record not found")

// Person is a registered participant who can be put into lobbies.
type Person struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	GUID string `gorm:"column:guid;type:varchar(36);uniqueIndex;not null" json:"guid"`
	Name string `gorm:"column:name;type:varchar(64);not null" json:"name"`
}

func (Person) TableName() string {
	return "person"
}

// Card is a stored trivia question with its three answers.
type Card struct {
	ID       int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	GUID     string `gorm:"column:guid;type:varchar(36);uniqueIndex;not null" json:"guid"`
	Question string `gorm:"column:question;type:varchar(2048);not null" json:"question"`
	AnswerA  string `gorm:"column:answer_a;type:varchar(256);not null" json:"answer_A"`
	AnswerB  string `gorm:"column:answer_b;type:varchar(256);not null" json:"answer_B"`
	AnswerC  string `gorm:"column:answer_c;type:varchar(256);not null" json:"answer_C"`
}

func (Card) TableName() string {
	return "card"
}

// Deck names a stored set of cards.
type Deck struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	GUID  string `gorm:"column:guid;type:varchar(36);uniqueIndex;not null" json:"guid"`
	Name  string `gorm:"column:name;type:varchar(128);not null" json:"name"`
	Cards []Card `gorm:"many2many:deck_cards" json:"cards"`
}

func (Deck) TableName() string {
	return "deck"
}

// Storage persists people, cards and decks between sessions. In-flight game
// state is never stored.
type Storage struct {
	db *gorm.DB
}

// Open opens (and migrates) the sqlite database at path. Use ":memory:" for
// an ephemeral database.
func Open(path string) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}
	if err := db.AutoMigrate(&Person{}, &Card{}, &Deck{}); err != nil {
		return nil, fmt.Errorf("migrating database: %w", err)
	}
	return &Storage{db: db}, nil
}

// StorePerson stores a new person under a fresh GUID and returns it.
func (s *Storage) StorePerson(name string) (Person, error) {
	person := Person{GUID: uuid.NewString(), Name: name}
	if err := s.db.Create(&person).Error; err != nil {
		return Person{}, fmt.Errorf("storing person: %w", err)
	}
	return person, nil
}

// PersonGUIDByName resolves a person's GUID from their name.
func (s *Storage) PersonGUIDByName(name string) (string, error) {
	var person Person
	err := s.db.Where("name = ?", name).First(&person).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("looking up person %s: %w", name, err)
	}
	return person.GUID, nil
}

// AllPeople returns every stored person.
func (s *Storage) AllPeople() ([]Person, error) {
	var people []Person
	if err := s.db.Order("id").Find(&people).Error; err != nil {
		return nil, fmt.Errorf("listing people: %w", err)
	}
	return people, nil
}

// PeopleByGUIDs returns the stored people matching the given GUIDs, in the
// order the GUIDs were given. A GUID without a record is an error.
func (s *Storage) PeopleByGUIDs(guids []string) ([]Person, error) {
	var people []Person
	if err := s.db.Where("guid IN ?", guids).Find(&people).Error; err != nil {
		return nil, fmt.Errorf("listing people by guid: %w", err)
	}

	byGUID := make(map[string]Person, len(people))
	for _, person := range people {
		byGUID[person.GUID] = person
	}

	ordered := make([]Person, 0, len(guids))
	for _, guid := range guids {
		person, ok := byGUID[guid]
		if !ok {
			return nil, fmt.Errorf("person %s: %w", guid, ErrNotFound)
		}
		ordered = append(ordered, person)
	}
	return ordered, nil
}

// StoreCard stores a new card under a fresh GUID and returns it.
func (s *Storage) StoreCard(question, answerA, answerB, answerC string) (Card, error) {
	card := Card{
		GUID:     uuid.NewString(),
		Question: question,
		AnswerA:  answerA,
		AnswerB:  answerB,
		AnswerC:  answerC,
	}
	if err := s.db.Create(&card).Error; err != nil {
		return Card{}, fmt.Errorf("storing card: %w", err)
	}
	return card, nil
}

// AllCards returns every stored card.
func (s *Storage) AllCards() ([]Card, error) {
	var cards []Card
	if err := s.db.Order("id").Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	return cards, nil
}

// CreateDeck stores a deck holding the cards with the given GUIDs. An empty
// deck is rejected, matching the domain rule.
func (s *Storage) CreateDeck(name string, cardGUIDs []string) (Deck, error) {
	if len(cardGUIDs) == 0 {
		return Deck{}, domain.ErrEmptyDeck
	}

	var cards []Card
	if err := s.db.Where("guid IN ?", cardGUIDs).Find(&cards).Error; err != nil {
		return Deck{}, fmt.Errorf("resolving deck cards: %w", err)
	}
	if len(cards) != len(cardGUIDs) {
		return Deck{}, fmt.Errorf("deck cards: %w", ErrNotFound)
	}

	deck := Deck{GUID: uuid.NewString(), Name: name, Cards: cards}
	if err := s.db.Create(&deck).Error; err != nil {
		return Deck{}, fmt.Errorf("storing deck: %w", err)
	}
	return deck, nil
}

// DeckByGUID returns the stored deck with its cards.
func (s *Storage) DeckByGUID(guid string) (Deck, error) {
	var deck Deck
	err := s.db.Preload("Cards").Where("guid = ?", guid).First(&deck).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Deck{}, ErrNotFound
	}
	if err != nil {
		return Deck{}, fmt.Errorf("looking up deck %s: %w", guid, err)
	}
	return deck, nil
}

// AllDecks returns every stored deck with its cards.
func (s *Storage) AllDecks() ([]Deck, error) {
	var decks []Deck
	if err := s.db.Preload("Cards").Order("id").Find(&decks).Error; err != nil {
		return nil, fmt.Errorf("listing decks: %w", err)
	}
	return decks, nil
}

// BuildDeck converts a stored deck into a playable domain deck.
func (d Deck) BuildDeck() (*domain.Deck, error) {
	cards := make([]domain.Card, 0, len(d.Cards))
	for _, card := range d.Cards {
		cards = append(cards, domain.Card{
			Question: card.Question,
			AnswerA:  card.AnswerA,
			AnswerB:  card.AnswerB,
			AnswerC:  card.AnswerC,
		})
	}
	return domain.NewDeck(d.Name, cards)
}
