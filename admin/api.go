package admin

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"superego/domain"
	"superego/storage"
)

// API is the HTTP admin surface: people, cards and decks management plus
// session lifecycle. It is a thin collaborator around storage and the
// session manager; game rules live entirely in the sessions it starts.
type API struct {
	storage  *storage.Storage
	sessions *SessionManager
}

// NewAPI wires the admin surface.
func NewAPI(store *storage.Storage, sessions *SessionManager) *API {
	return &API{storage: store, sessions: sessions}
}

// Router builds the gin engine with all admin routes.
func (a *API) Router() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // Allow all origins
		},
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Accept", "Origin"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        86400 * time.Second,
	}
	r.Use(cors.New(corsConfig))

	r.POST("/api/people", a.handleAddPerson)
	r.GET("/api/people", a.handleListPeople)
	r.POST("/api/cards", a.handleAddCard)
	r.GET("/api/cards", a.handleListCards)
	r.POST("/api/decks", a.handleCreateDeck)
	r.GET("/api/decks", a.handleListDecks)
	r.POST("/api/sessions", a.handleStartSession)
	r.GET("/api/sessions/:guid", a.handleGetSession)
	r.DELETE("/api/sessions/:guid", a.handleStopSession)

	return r
}

type addPersonRequest struct {
	Name string `json:"name" binding:"required"`
}

func (a *API) handleAddPerson(c *gin.Context) {
	var req addPersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	person, err := a.storage.StorePerson(req.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, person)
}

func (a *API) handleListPeople(c *gin.Context) {
	people, err := a.storage.AllPeople()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, people)
}

type addCardRequest struct {
	Question string `json:"question" binding:"required"`
	AnswerA  string `json:"answer_A" binding:"required"`
	AnswerB  string `json:"answer_B" binding:"required"`
	AnswerC  string `json:"answer_C" binding:"required"`
}

func (a *API) handleAddCard(c *gin.Context) {
	var req addCardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "question and all three answers are required"})
		return
	}

	card, err := a.storage.StoreCard(req.Question, req.AnswerA, req.AnswerB, req.AnswerC)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, card)
}

func (a *API) handleListCards(c *gin.Context) {
	cards, err := a.storage.AllCards()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cards)
}

type createDeckRequest struct {
	Name      string   `json:"name" binding:"required"`
	CardGUIDs []string `json:"card_guids" binding:"required"`
}

func (a *API) handleCreateDeck(c *gin.Context) {
	var req createDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and card_guids are required"})
		return
	}

	deck, err := a.storage.CreateDeck(req.Name, req.CardGUIDs)
	switch {
	case errors.Is(err, domain.ErrEmptyDeck), errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, deck)
}

func (a *API) handleListDecks(c *gin.Context) {
	decks, err := a.storage.AllDecks()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, decks)
}

type startSessionRequest struct {
	MemberGUIDs     []string `json:"member_guids" binding:"required"`
	DeckGUID        string   `json:"deck_guid" binding:"required"`
	MaxRoundsFactor int      `json:"max_rounds_factor"`
}

type sessionResponse struct {
	SessionGUID string `json:"session_guid"`
	LobbyGUID   string `json:"lobby_guid"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Running     bool   `json:"running"`
	GameOver    bool   `json:"game_over"`
}

func newSessionResponse(session *Session) sessionResponse {
	return sessionResponse{
		SessionGUID: session.GUID,
		LobbyGUID:   session.LobbyGUID,
		Host:        session.Host,
		Port:        session.Port,
		Running:     session.Running(),
		GameOver:    session.GameOver(),
	}
}

// handleStartSession builds a lobby from stored people and a stored deck,
// then starts a game session for it. The first member is the host and the
// first answerer.
func (a *API) handleStartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "member_guids and deck_guid are required"})
		return
	}
	if len(req.MemberGUIDs) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a session needs at least two members"})
		return
	}
	if req.MaxRoundsFactor <= 0 {
		req.MaxRoundsFactor = 1
	}

	people, err := a.storage.PeopleByGUIDs(req.MemberGUIDs)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	storedDeck, err := a.storage.DeckByGUID(req.DeckGUID)
	if errors.Is(err, storage.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "deck not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	deck, err := storedDeck.BuildDeck()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	host := domain.LobbyMember{GUID: people[0].GUID, Name: people[0].Name}
	lobby := domain.NewLobby(host, domain.GameSettings{
		Deck:            deck,
		MaxRoundsFactor: req.MaxRoundsFactor,
	})
	for _, person := range people[1:] {
		lobby.AddMember(domain.LobbyMember{GUID: person.GUID, Name: person.Name})
	}

	session, err := a.sessions.Start(lobby)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, newSessionResponse(session))
}

func (a *API) handleGetSession(c *gin.Context) {
	session, err := a.sessions.Get(c.Param("guid"))
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(session))
}

func (a *API) handleStopSession(c *gin.Context) {
	err := a.sessions.Stop(c.Param("guid"))
	if errors.Is(err, ErrSessionNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"stopped": true})
}
