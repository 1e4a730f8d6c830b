package server

import (
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/websocket"
	"github.com/sanity-io/litter"

	"superego/domain"
	"superego/server/connection"
	"superego/server/events"
	"superego/server/handlers"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // In production, implement proper origin checks
	},
}

// Config holds the listen address of one game session. Port 0 picks a free
// port.
type Config struct {
	Host string
	Port int
}

// Server runs one game session: it owns the game, the broadcast and every
// client socket of that session.
type Server struct {
	config    Config
	clock     domain.Clock
	useCases  *handlers.UseCases
	router    *handlers.Router
	broadcast *connection.Broadcast
	registry  *connection.Registry

	mu       sync.Mutex
	listener net.Listener
	httpSrv  *http.Server
	stopOnce sync.Once
	done     chan struct{}
}

// NewServer freezes the lobby into a game and wires the session around it.
// The game observer pushes every snapshot onto the broadcast, so listener
// frames carry state changes in the order they happened.
func NewServer(config Config, lobby *domain.Lobby) *Server {
	clock := domain.LocalClock{}
	broadcast := connection.NewBroadcast()

	observer := func(state domain.GameState) {
		broadcast.Send(events.SerializeGameState(state))
		if state.Phase == domain.GameOverPhaseName {
			log.Println("game over:", litter.Sdump(state))
		}
	}

	game := domain.NewGame(lobby, clock, observer)
	useCases := handlers.NewUseCases(game)

	return &Server{
		config:    config,
		clock:     clock,
		useCases:  useCases,
		router:    handlers.NewGameRouter(useCases, broadcast),
		broadcast: broadcast,
		registry:  connection.NewRegistry(),
		done:      make(chan struct{}),
	}
}

// Listen opens the session socket. After Listen returns, Addr reports the
// bound address even when the configured port was 0.
func (s *Server) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpSrv = &http.Server{Handler: http.HandlerFunc(s.handleWebSocket)}
	s.mu.Unlock()
	return nil
}

// Addr returns the bound listen address, nil before Listen.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Serve accepts connections until Stop is called. It returns nil on a clean
// stop.
func (s *Server) Serve() error {
	s.mu.Lock()
	listener, httpSrv := s.listener, s.httpSrv
	s.mu.Unlock()
	if listener == nil {
		return errors.New("server is not listening, call Listen first")
	}

	log.Printf("session listening on %s", listener.Addr())
	err := httpSrv.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Run listens and serves, stopping on SIGINT or SIGTERM. It blocks until the
// session is stopped.
func (s *Server) Run() error {
	if err := s.Listen(); err != nil {
		return err
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	go func() {
		select {
		case sig := <-signals:
			log.Printf("received %s, stopping session", sig)
			s.Stop()
		case <-s.done:
		}
	}()

	return s.Serve()
}

// Stop closes the listener and every open socket. It is idempotent.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)

		s.mu.Lock()
		httpSrv := s.httpSrv
		s.mu.Unlock()

		if httpSrv != nil {
			httpSrv.Close()
		}
		s.registry.CloseAll()
	})
}

// Stopped reports whether Stop has been called.
func (s *Server) Stopped() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// GameOver reports whether the session's game reached its terminal phase.
func (s *Server) GameOver() bool {
	return s.useCases.GameOver()
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("upgrading to websocket: %v", err)
		return
	}

	client := connection.NewClient(conn)
	s.registry.Register(client)
	log.Printf("client connected: %s as %s", r.RemoteAddr, client.ID)

	go client.WritePump()
	s.readPump(client)
}

// readPump processes inbound frames in arrival order. Every processing error
// is surfaced to the originating socket only; nothing here may tear down the
// session.
func (s *Server) readPump(client *connection.Client) {
	defer func() {
		s.registry.Unregister(client)
		s.broadcast.RemoveListener(client)
		client.Close()
	}()

	for {
		_, message, err := client.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("client %s: read failed: %v", client.ID, err)
			}
			return
		}

		if err := s.handleFrame(client, message); err != nil {
			client.Send(events.SerializeError(err))
		}
	}
}

func (s *Server) handleFrame(client *connection.Client, message []byte) error {
	event, err := events.ParseEvent(message, s.clock.Now())
	if err != nil {
		return err
	}
	return s.router.Route(event, client)
}
