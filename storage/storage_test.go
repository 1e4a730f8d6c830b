package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superego/domain"
)

func openTestStorage(t *testing.T) *Storage {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "superego.db"))
	require.NoError(t, err)
	return store
}

func TestStoreAndRetrievePeople(t *testing.T) {
	store := openTestStorage(t)

	alice, err := store.StorePerson("alice")
	require.NoError(t, err)
	assert.NotEmpty(t, alice.GUID)

	bob, err := store.StorePerson("bob")
	require.NoError(t, err)

	guid, err := store.PersonGUIDByName("alice")
	require.NoError(t, err)
	assert.Equal(t, alice.GUID, guid)

	_, err = store.PersonGUIDByName("nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	people, err := store.AllPeople()
	require.NoError(t, err)
	require.Len(t, people, 2)
	assert.Equal(t, "alice", people[0].Name)
	assert.Equal(t, "bob", people[1].Name)

	// Requested order is preserved regardless of storage order.
	ordered, err := store.PeopleByGUIDs([]string{bob.GUID, alice.GUID})
	require.NoError(t, err)
	require.Len(t, ordered, 2)
	assert.Equal(t, "bob", ordered[0].Name)
	assert.Equal(t, "alice", ordered[1].Name)

	_, err = store.PeopleByGUIDs([]string{alice.GUID, "missing-guid"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreAndListCards(t *testing.T) {
	store := openTestStorage(t)

	card, err := store.StoreCard("q1", "a1", "b1", "c1")
	require.NoError(t, err)
	assert.NotEmpty(t, card.GUID)

	_, err = store.StoreCard("q2", "a2", "b2", "c2")
	require.NoError(t, err)

	cards, err := store.AllCards()
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "q1", cards[0].Question)
	assert.Equal(t, "b2", cards[1].AnswerB)
}

func TestCreateAndRetrieveDecks(t *testing.T) {
	store := openTestStorage(t)

	first, err := store.StoreCard("q1", "a", "b", "c")
	require.NoError(t, err)
	second, err := store.StoreCard("q2", "a", "b", "c")
	require.NoError(t, err)

	deck, err := store.CreateDeck("trivia", []string{first.GUID, second.GUID})
	require.NoError(t, err)

	loaded, err := store.DeckByGUID(deck.GUID)
	require.NoError(t, err)
	assert.Equal(t, "trivia", loaded.Name)
	assert.Len(t, loaded.Cards, 2)

	decks, err := store.AllDecks()
	require.NoError(t, err)
	require.Len(t, decks, 1)
	assert.Len(t, decks[0].Cards, 2)

	_, err = store.DeckByGUID("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateDeckValidation(t *testing.T) {
	store := openTestStorage(t)

	_, err := store.CreateDeck("empty", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyDeck)

	_, err = store.CreateDeck("ghost", []string{"missing-card"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBuildDeckProducesAPlayableDeck(t *testing.T) {
	store := openTestStorage(t)

	card, err := store.StoreCard("q1", "a", "b", "c")
	require.NoError(t, err)
	stored, err := store.CreateDeck("trivia", []string{card.GUID})
	require.NoError(t, err)

	deck, err := stored.BuildDeck()
	require.NoError(t, err)
	assert.Equal(t, 1, deck.Size())
	assert.Equal(t, domain.Card{
		Question: "q1",
		AnswerA:  "a",
		AnswerB:  "b",
		AnswerC:  "c",
	}, deck.CurrentCard())
}
