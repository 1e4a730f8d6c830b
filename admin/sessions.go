package admin

import (
	"errors"
	"fmt"
	"log"
	"net"
	"sync"

	"github.com/google/uuid"

	"superego/domain"
	"superego/server"
)

// ErrNoPortAvailable is returned when every port in the configured session
// range is taken.
var ErrNoPortAvailable = errors.New("no session port available")

// ErrSessionNotFound is returned when a session GUID is unknown.
var ErrSessionNotFound = errors.New("session not found")

// Session is one running game session and the address clients reach it on.
type Session struct {
	GUID      string
	LobbyGUID string
	Host      string
	Port      int
	server    *server.Server
}

// Running reports whether the session is still serving.
func (s *Session) Running() bool {
	return !s.server.Stopped()
}

// GameOver reports whether the session's game finished.
func (s *Session) GameOver() bool {
	return s.server.GameOver()
}

// SessionManager starts and stops game sessions, allocating each one a port
// from a configured range.
type SessionManager struct {
	host    string
	portMin int
	portMax int

	mu       sync.Mutex
	sessions map[string]*Session
	used     map[int]bool
}

// NewSessionManager creates a manager serving sessions on host with ports in
// [portMin, portMax].
func NewSessionManager(host string, portMin, portMax int) *SessionManager {
	return &SessionManager{
		host:     host,
		portMin:  portMin,
		portMax:  portMax,
		sessions: make(map[string]*Session),
		used:     make(map[int]bool),
	}
}

// Start freezes the lobby into a game and serves it on the first free port of
// the range. The returned session carries the address to hand to clients.
func (m *SessionManager) Start(lobby *domain.Lobby) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for port := m.portMin; port <= m.portMax; port++ {
		if m.used[port] {
			continue
		}

		srv := server.NewServer(server.Config{Host: m.host, Port: port}, lobby)
		if err := srv.Listen(); err != nil {
			// Another process may hold the port; try the next one.
			log.Printf("session port %d unavailable: %v", port, err)
			continue
		}

		boundPort := srv.Addr().(*net.TCPAddr).Port
		session := &Session{
			GUID:      uuid.NewString(),
			LobbyGUID: lobby.GUID,
			Host:      m.host,
			Port:      boundPort,
			server:    srv,
		}
		m.sessions[session.GUID] = session
		m.used[boundPort] = true

		go func() {
			if err := srv.Serve(); err != nil {
				log.Printf("session %s: serve failed: %v", session.GUID, err)
			}
		}()

		log.Printf("session %s started for lobby %s on %s:%d",
			session.GUID, lobby.GUID, m.host, boundPort)
		return session, nil
	}

	return nil, fmt.Errorf("range %d-%d: %w", m.portMin, m.portMax, ErrNoPortAvailable)
}

// Get returns the session with the given GUID.
func (m *SessionManager) Get(guid string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[guid]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Stop stops the session with the given GUID and frees its port.
func (m *SessionManager) Stop(guid string) error {
	m.mu.Lock()
	session, ok := m.sessions[guid]
	if ok {
		delete(m.sessions, guid)
		delete(m.used, session.Port)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.server.Stop()
	log.Printf("session %s stopped", guid)
	return nil
}

// StopAll stops every running session.
func (m *SessionManager) StopAll() {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		sessions = append(sessions, session)
	}
	m.sessions = make(map[string]*Session)
	m.used = make(map[int]bool)
	m.mu.Unlock()

	for _, session := range sessions {
		session.server.Stop()
	}
}

// Count returns the number of tracked sessions.
func (m *SessionManager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
