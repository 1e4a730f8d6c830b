package admin

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superego/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestAPI(t *testing.T) (*httptest.Server, *SessionManager) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "superego.db"))
	require.NoError(t, err)

	sessions := NewSessionManager("127.0.0.1", 0, 0)
	t.Cleanup(sessions.StopAll)

	ts := httptest.NewServer(NewAPI(store, sessions).Router())
	t.Cleanup(ts.Close)
	return ts, sessions
}

func postJSON(t *testing.T, url string, body any) (*http.Response, map[string]any) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(url, "application/json", bytes.NewReader(payload))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func getJSON[T any](t *testing.T, url string) (*http.Response, T) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var decoded T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func addPerson(t *testing.T, baseURL, name string) string {
	t.Helper()
	resp, person := postJSON(t, baseURL+"/api/people", map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return person["guid"].(string)
}

func addCard(t *testing.T, baseURL, question string) string {
	t.Helper()
	resp, card := postJSON(t, baseURL+"/api/cards", map[string]any{
		"question": question,
		"answer_A": "a",
		"answer_B": "b",
		"answer_C": "c",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return card["guid"].(string)
}

func addDeck(t *testing.T, baseURL string, cardGUIDs []string) string {
	t.Helper()
	resp, deck := postJSON(t, baseURL+"/api/decks", map[string]any{
		"name":       "trivia",
		"card_guids": cardGUIDs,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return deck["guid"].(string)
}

func TestPeopleEndpoints(t *testing.T) {
	ts, _ := newTestAPI(t)

	addPerson(t, ts.URL, "alice")
	addPerson(t, ts.URL, "bob")

	resp, people := getJSON[[]map[string]any](t, ts.URL+"/api/people")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, people, 2)
	assert.Equal(t, "alice", people[0]["name"])

	resp, _ = postJSON(t, ts.URL+"/api/people", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCardAndDeckEndpoints(t *testing.T) {
	ts, _ := newTestAPI(t)

	first := addCard(t, ts.URL, "q1")
	second := addCard(t, ts.URL, "q2")

	resp, cards := getJSON[[]map[string]any](t, ts.URL+"/api/cards")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, cards, 2)

	addDeck(t, ts.URL, []string{first, second})

	resp, decks := getJSON[[]map[string]any](t, ts.URL+"/api/decks")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decks, 1)
	assert.Len(t, decks[0]["cards"], 2)

	resp, _ = postJSON(t, ts.URL+"/api/decks", map[string]any{
		"name":       "ghost",
		"card_guids": []string{"missing"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSessionLifecycle(t *testing.T) {
	ts, sessions := newTestAPI(t)

	alice := addPerson(t, ts.URL, "alice")
	bob := addPerson(t, ts.URL, "bob")
	deck := addDeck(t, ts.URL, []string{addCard(t, ts.URL, "q1"), addCard(t, ts.URL, "q2")})

	resp, created := postJSON(t, ts.URL+"/api/sessions", map[string]any{
		"member_guids": []string{alice, bob},
		"deck_guid":    deck,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionGUID := created["session_guid"].(string)
	port := int(created["port"].(float64))
	assert.True(t, created["running"].(bool))
	assert.Equal(t, 1, sessions.Count())

	// The session speaks the game protocol on the advertised address.
	wsURL := fmt.Sprintf("ws://127.0.0.1:%d", port)
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	require.NoError(t, conn.WriteJSON(map[string]any{"action": "READ", "issuer": alice}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var feedback struct {
		Status string `json:"status"`
	}
	require.NoError(t, conn.ReadJSON(&feedback))
	assert.Equal(t, "STAT", feedback.Status)
	conn.Close()

	resp, fetched := getJSON[map[string]any](t, ts.URL+"/api/sessions/"+sessionGUID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, fetched["running"].(bool))
	assert.False(t, fetched["game_over"].(bool))

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/sessions/"+sessionGUID, nil)
	require.NoError(t, err)
	deleteResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	deleteResp.Body.Close()
	assert.Equal(t, http.StatusOK, deleteResp.StatusCode)
	assert.Equal(t, 0, sessions.Count())

	resp, _ = getJSON[map[string]any](t, ts.URL+"/api/sessions/"+sessionGUID)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSessionValidation(t *testing.T) {
	ts, _ := newTestAPI(t)

	alice := addPerson(t, ts.URL, "alice")
	bob := addPerson(t, ts.URL, "bob")
	deck := addDeck(t, ts.URL, []string{addCard(t, ts.URL, "q1")})

	resp, _ := postJSON(t, ts.URL+"/api/sessions", map[string]any{
		"member_guids": []string{alice},
		"deck_guid":    deck,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, ts.URL+"/api/sessions", map[string]any{
		"member_guids": []string{alice, bob},
		"deck_guid":    "missing",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = postJSON(t, ts.URL+"/api/sessions", map[string]any{
		"member_guids": []string{alice, "missing"},
		"deck_guid":    deck,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
