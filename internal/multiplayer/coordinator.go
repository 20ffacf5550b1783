package multiplayer

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// CodeLength is the number of characters in a lobby code.
const CodeLength = 6

// Lobby is a duel waiting for its second player.
type Lobby struct {
	Code      string
	Host      SessionHandle
	CreatedAt time.Time
}

// CoordinatorConfig holds configuration for the coordinator.
type CoordinatorConfig struct {
	LobbyTimeout  time.Duration // how long a lobby waits for a joiner
	TickRate      int           // simulation rate of every match
	HoldTicks     int           // key hold window for remote players
	CleanupPeriod time.Duration // how often expired lobbies are swept
}

// DefaultCoordinatorConfig returns sensible defaults.
func DefaultCoordinatorConfig() CoordinatorConfig {
	return CoordinatorConfig{
		LobbyTimeout:  2 * time.Minute,
		TickRate:      core.DefaultConfig().TickRate,
		HoldTicks:     core.DefaultHoldTicks,
		CleanupPeriod: 30 * time.Second,
	}
}

// GameFactory creates the duel for a new match. The returned game must be
// Reset with cfg.
type GameFactory func(cfg core.RuntimeConfig) (DuelGame, error)

// Coordinator owns lobbies and running matches. All state changes happen
// on its message loop; sessions talk to it through Send.
type Coordinator struct {
	config   CoordinatorConfig
	factory  GameFactory
	sessions *SessionRegistry
	logger   *log.Logger

	mu      sync.RWMutex
	lobbies map[string]*Lobby
	matches map[MatchID]*OnlineMatch

	sessionLobby map[SessionID]string
	sessionMatch map[SessionID]MatchID

	msgs chan CoordinatorMessage
	done chan struct{}
	stop sync.Once
}

// NewCoordinator creates a coordinator. A nil logger discards output.
func NewCoordinator(cfg CoordinatorConfig, factory GameFactory, sessions *SessionRegistry, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.CleanupPeriod <= 0 {
		cfg.CleanupPeriod = DefaultCoordinatorConfig().CleanupPeriod
	}
	return &Coordinator{
		config:       cfg,
		factory:      factory,
		sessions:     sessions,
		logger:       logger,
		lobbies:      make(map[string]*Lobby),
		matches:      make(map[MatchID]*OnlineMatch),
		sessionLobby: make(map[SessionID]string),
		sessionMatch: make(map[SessionID]MatchID),
		msgs:         make(chan CoordinatorMessage, 256),
		done:         make(chan struct{}),
	}
}

// Start runs the message and cleanup loops in the background.
func (c *Coordinator) Start() {
	go c.processMessages()
	go c.cleanupLoop()
}

// Stop ends the loops and every running match.
func (c *Coordinator) Stop() {
	c.stop.Do(func() {
		close(c.done)
		c.mu.Lock()
		defer c.mu.Unlock()
		for _, m := range c.matches {
			m.Stop()
		}
	})
}

// Send queues a message for the coordinator.
func (c *Coordinator) Send(msg CoordinatorMessage) {
	select {
	case c.msgs <- msg:
	case <-c.done:
	}
}

func (c *Coordinator) processMessages() {
	for {
		select {
		case msg := <-c.msgs:
			c.handleMessage(msg)
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) handleMessage(msg CoordinatorMessage) {
	switch m := msg.(type) {
	case CreateLobbyMsg:
		c.handleCreateLobby(m)
	case JoinLobbyMsg:
		c.handleJoinLobby(m)
	case LeaveLobbyMsg:
		c.handleLeaveLobby(m)
	case LeaveMatchMsg:
		c.handleLeaveMatch(m)
	case PlayerInputMsg:
		c.handlePlayerInput(m)
	case SessionDisconnectedMsg:
		c.handleSessionDisconnected(m)
	}
}

func (c *Coordinator) handleCreateLobby(msg CreateLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := c.generateUniqueCode()
	c.lobbies[code] = &Lobby{Code: code, Host: session, CreatedAt: time.Now()}
	c.sessionLobby[msg.SessionID] = code
	c.logger.Info("lobby created", "code", code, "host", msg.SessionID)

	session.Send(LobbyCreatedEvent{Code: code})
}

func (c *Coordinator) handleJoinLobby(msg JoinLobbyMsg) {
	session, ok := c.sessions.Get(msg.SessionID)
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.busy(msg.SessionID) {
		session.Send(LobbyErrorEvent{Message: "Already in a lobby"})
		return
	}

	code := strings.ToUpper(strings.TrimSpace(msg.Code))
	lobby, ok := c.lobbies[code]
	switch {
	case !ok:
		session.Send(LobbyErrorEvent{Message: "Lobby not found"})
		return
	case lobby.Host.ID() == msg.SessionID:
		session.Send(LobbyErrorEvent{Message: "Cannot join your own lobby"})
		return
	}

	delete(c.lobbies, code)
	delete(c.sessionLobby, lobby.Host.ID())
	c.startMatch(lobby, session)
}

// busy reports whether a session already waits in a lobby or plays.
// Must be called with the lock held.
func (c *Coordinator) busy(id SessionID) bool {
	_, inLobby := c.sessionLobby[id]
	_, inMatch := c.sessionMatch[id]
	return inLobby || inMatch
}

// startMatch must be called with the lock held.
func (c *Coordinator) startMatch(lobby *Lobby, joiner SessionHandle) {
	matchID := MatchID(fmt.Sprintf("duel-%s-%d", lobby.Code, time.Now().UnixNano()))

	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: c.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	game, err := c.factory(cfg)
	if err != nil {
		c.logger.Error("cannot create duel", "code", lobby.Code, "err", err)
		lobby.Host.Send(LobbyErrorEvent{Message: "Failed to create duel"})
		joiner.Send(LobbyErrorEvent{Message: "Failed to create duel"})
		return
	}

	match := NewOnlineMatch(matchID, lobby.Code, game, lobby.Host, joiner, c.config.TickRate, c.config.HoldTicks)
	c.matches[matchID] = match
	c.sessionMatch[lobby.Host.ID()] = matchID
	c.sessionMatch[joiner.ID()] = matchID
	c.logger.Info("duel started", "match", matchID, "tin", lobby.Host.ID(), "sin", joiner.ID())

	lobby.Host.Send(MatchStartedEvent{Match: match, Side: core.Player1, Code: lobby.Code})
	joiner.Send(MatchStartedEvent{Match: match, Side: core.Player2, Code: lobby.Code})

	go match.Run(func(result MatchResult) {
		c.handleMatchEnded(result)
	})
}

func (c *Coordinator) handleMatchEnded(result MatchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	match, ok := c.matches[result.MatchID]
	if !ok {
		return
	}
	delete(c.matches, result.MatchID)
	delete(c.sessionMatch, match.player1.ID())
	delete(c.sessionMatch, match.player2.ID())

	if result.Err != nil {
		c.logger.Error("duel failed", "match", result.MatchID, "err", result.Err)
	} else {
		c.logger.Info("duel ended", "match", result.MatchID, "reason", result.Reason, "winner", SideName(result.Winner), "ticks", result.Ticks)
	}

	end := MatchEndedEvent{
		MatchID: result.MatchID,
		Reason:  result.Reason,
		Winner:  result.Winner,
		Ticks:   result.Ticks,
	}
	match.player1.Send(end)
	match.player2.Send(end)
}

func (c *Coordinator) handleLeaveLobby(msg LeaveLobbyMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lobby, ok := c.lobbies[msg.Code]
	if !ok || lobby.Host.ID() != msg.SessionID {
		return
	}
	delete(c.lobbies, msg.Code)
	delete(c.sessionLobby, msg.SessionID)
	c.logger.Info("lobby closed", "code", msg.Code)
}

func (c *Coordinator) handleLeaveMatch(msg LeaveMatchMsg) {
	c.mu.RLock()
	match, ok := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if ok {
		match.PlayerDisconnected(msg.SessionID)
	}
}

func (c *Coordinator) handlePlayerInput(msg PlayerInputMsg) {
	c.mu.RLock()
	match, ok := c.matches[msg.MatchID]
	c.mu.RUnlock()

	if ok {
		match.SendInput(msg.Player, msg.Action)
	}
}

func (c *Coordinator) handleSessionDisconnected(msg SessionDisconnectedMsg) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if code, ok := c.sessionLobby[msg.SessionID]; ok {
		delete(c.lobbies, code)
		delete(c.sessionLobby, msg.SessionID)
	}
	if id, ok := c.sessionMatch[msg.SessionID]; ok {
		if match, exists := c.matches[id]; exists {
			match.PlayerDisconnected(msg.SessionID)
		}
	}
}

func (c *Coordinator) cleanupLoop() {
	ticker := time.NewTicker(c.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanupExpiredLobbies(time.Now())
		case <-c.done:
			return
		}
	}
}

func (c *Coordinator) cleanupExpiredLobbies(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for code, lobby := range c.lobbies {
		if now.Sub(lobby.CreatedAt) > c.config.LobbyTimeout {
			lobby.Host.Send(MatchEndedEvent{Reason: MatchEndReasonExpired})
			delete(c.sessionLobby, lobby.Host.ID())
			delete(c.lobbies, code)
		}
	}
}

func (c *Coordinator) generateUniqueCode() string {
	for {
		code := generateJoinCode()
		if _, exists := c.lobbies[code]; !exists {
			return code
		}
	}
}

// generateJoinCode creates an uppercase code from the base32 alphabet
// (A-Z, 2-7).
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return base32.StdEncoding.EncodeToString(b)[:CodeLength]
}

// LobbyCount returns the number of open lobbies.
func (c *Coordinator) LobbyCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.lobbies)
}

// MatchCount returns the number of running matches.
func (c *Coordinator) MatchCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.matches)
}
