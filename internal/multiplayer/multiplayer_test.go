package multiplayer

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// fakeDuel ends after a fixed number of steps with a fixed winner.
type fakeDuel struct {
	mu       sync.Mutex
	steps    int
	length   int
	winner   core.PlayerID
	pressed  []core.Action
	rendered int
}

func (f *fakeDuel) Step(in core.MultiInputFrame) core.StepResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.steps++
	for _, a := range []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionAttack, core.ActionPause} {
		if in.Player(core.Player2).Has(a) {
			f.pressed = append(f.pressed, a)
		}
	}
	return core.StepResult{State: core.GameState{GameOver: f.steps >= f.length}}
}

func (f *fakeDuel) Render(*core.Screen) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rendered++
}

func (f *fakeDuel) Winner() core.PlayerID {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.steps >= f.length {
		return f.winner
	}
	return 0
}

func newTestCoordinator(t *testing.T, game DuelGame) (*Coordinator, *SessionRegistry) {
	t.Helper()
	cfg := DefaultCoordinatorConfig()
	cfg.TickRate = 500
	sessions := NewSessionRegistry()
	c := NewCoordinator(cfg, func(core.RuntimeConfig) (DuelGame, error) {
		if game == nil {
			return nil, errors.New("no game")
		}
		return game, nil
	}, sessions, nil)
	c.Start()
	t.Cleanup(c.Stop)
	return c, sessions
}

func newTestSession(sessions *SessionRegistry, id string) *ChannelSession {
	s := NewChannelSession(SessionID(id), 512)
	sessions.Register(s)
	return s
}

// waitFor reads events until one of type T arrives.
func waitFor[T SessionEvent](t *testing.T, s *ChannelSession) T {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case evt := <-s.Events():
			if e, ok := evt.(T); ok {
				return e
			}
		case <-timeout:
			var zero T
			t.Fatalf("timed out waiting for %T", zero)
			return zero
		}
	}
}

func TestDuelFlow(t *testing.T) {
	game := &fakeDuel{length: 20, winner: core.Player2}
	c, sessions := newTestCoordinator(t, game)
	host := newTestSession(sessions, "host")
	guest := newTestSession(sessions, "guest")

	c.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)
	if len(created.Code) != CodeLength {
		t.Fatalf("Code = %q, expected %d characters", created.Code, CodeLength)
	}

	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: created.Code})
	hostStart := waitFor[MatchStartedEvent](t, host)
	guestStart := waitFor[MatchStartedEvent](t, guest)
	if hostStart.Side != core.Player1 || guestStart.Side != core.Player2 {
		t.Errorf("sides = %v/%v, expected P1/P2", hostStart.Side, guestStart.Side)
	}
	if hostStart.Match != guestStart.Match {
		t.Error("both players should share one match")
	}

	end := waitFor[MatchEndedEvent](t, guest)
	if end.Reason != MatchEndReasonCompleted || end.Winner != core.Player2 {
		t.Errorf("MatchEndedEvent = %+v, expected Sin to win the completed duel", end)
	}
	if end.Ticks != 20 {
		t.Errorf("Ticks = %d, expected 20", end.Ticks)
	}
}

func TestJoinErrors(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeDuel{length: 1000})
	host := newTestSession(sessions, "host")

	c.Send(JoinLobbyMsg{SessionID: host.ID(), Code: "NOPE42"})
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Lobby not found" {
		t.Errorf("Message = %q", e.Message)
	}

	c.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	c.Send(JoinLobbyMsg{SessionID: host.ID(), Code: created.Code})
	if e := waitFor[LobbyErrorEvent](t, host); e.Message != "Already in a lobby" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestJoinIsCaseInsensitive(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeDuel{length: 1000})
	host := newTestSession(sessions, "host")
	guest := newTestSession(sessions, "guest")

	c.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)

	lower := []byte(created.Code)
	for i, b := range lower {
		if b >= 'A' && b <= 'Z' {
			lower[i] = b + 'a' - 'A'
		}
	}
	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: " " + string(lower) + " "})
	waitFor[MatchStartedEvent](t, guest)
}

func TestDisconnectForfeits(t *testing.T) {
	c, sessions := newTestCoordinator(t, &fakeDuel{length: 1 << 30})
	host := newTestSession(sessions, "host")
	guest := newTestSession(sessions, "guest")

	c.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: created.Code})
	waitFor[MatchStartedEvent](t, host)

	c.Send(SessionDisconnectedMsg{SessionID: host.ID()})
	end := waitFor[MatchEndedEvent](t, guest)
	if end.Reason != MatchEndReasonDisconnect || end.Winner != core.Player2 {
		t.Errorf("MatchEndedEvent = %+v, expected Sin to win by disconnect", end)
	}
}

func TestFactoryFailure(t *testing.T) {
	c, sessions := newTestCoordinator(t, nil)
	host := newTestSession(sessions, "host")
	guest := newTestSession(sessions, "guest")

	c.Send(CreateLobbyMsg{SessionID: host.ID()})
	created := waitFor[LobbyCreatedEvent](t, host)
	c.Send(JoinLobbyMsg{SessionID: guest.ID(), Code: created.Code})

	if e := waitFor[LobbyErrorEvent](t, guest); e.Message != "Failed to create duel" {
		t.Errorf("Message = %q", e.Message)
	}
}

func TestExpiredLobbies(t *testing.T) {
	sessions := NewSessionRegistry()
	c := NewCoordinator(DefaultCoordinatorConfig(), nil, sessions, nil)
	host := newTestSession(sessions, "host")

	c.handleCreateLobby(CreateLobbyMsg{SessionID: host.ID()})
	if c.LobbyCount() != 1 {
		t.Fatalf("LobbyCount() = %d, expected 1", c.LobbyCount())
	}

	c.cleanupExpiredLobbies(time.Now().Add(time.Minute))
	if c.LobbyCount() != 1 {
		t.Error("a fresh lobby should not expire")
	}
	c.cleanupExpiredLobbies(time.Now().Add(time.Hour))
	if c.LobbyCount() != 0 {
		t.Errorf("LobbyCount() = %d, expected 0", c.LobbyCount())
	}
	if end := waitFor[MatchEndedEvent](t, host); end.Reason != MatchEndReasonExpired {
		t.Errorf("Reason = %v, expected %v", end.Reason, MatchEndReasonExpired)
	}
}

func TestMatchInput(t *testing.T) {
	game := &fakeDuel{length: 1 << 30}
	p1 := NewChannelSession("p1", 1)
	p2 := NewChannelSession("p2", 1)
	m := NewOnlineMatch("m", "CODE", game, p1, p2, 60, 3)

	m.SendInput(core.Player2, core.ActionRight)
	m.SendInput(core.Player2, core.ActionPause)
	for range 5 {
		if _, over := m.runTick(); over {
			t.Fatal("match should still be running")
		}
	}

	right := 0
	for _, a := range game.pressed {
		switch a {
		case core.ActionRight:
			right++
		case core.ActionPause:
			t.Error("pause should not reach a shared duel")
		}
	}
	if right != 3 {
		t.Errorf("right held for %d ticks, expected 3", right)
	}

	m.Render(core.NewScreen(10, 5))
	if game.rendered != 1 {
		t.Errorf("rendered = %d, expected 1", game.rendered)
	}
}

func TestChannelSessionDropsOldest(t *testing.T) {
	s := NewChannelSession("s", 2)
	for i := range 3 {
		s.Send(FrameEvent{Tick: uint64(i)})
	}

	first := (<-s.Events()).(FrameEvent)
	second := (<-s.Events()).(FrameEvent)
	if first.Tick != 1 || second.Tick != 2 {
		t.Errorf("ticks = %d, %d, expected 1, 2", first.Tick, second.Tick)
	}

	s.Close()
	s.Close()
	s.Send(FrameEvent{})
	if len(s.Events()) != 0 {
		t.Error("Send() after Close() should be ignored")
	}
}
