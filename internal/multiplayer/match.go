package multiplayer

import (
	"sync"
	"time"

	"github.com/vovakirdan/tin-quest/internal/core"
)

// DuelGame is the simulation a match drives. It must already be Reset
// into a two-player level.
type DuelGame interface {
	Step(in core.MultiInputFrame) core.StepResult
	Render(dst *core.Screen)
	Winner() core.PlayerID
}

// MatchResult is the outcome of a finished match.
type MatchResult struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  core.PlayerID
	Ticks   uint64
	Err     error
}

type playerInput struct {
	player core.PlayerID
	action core.Action
}

// OnlineMatch runs one duel between two sessions. Player1 is the host and
// controls Tin; Player2 controls Sin.
type OnlineMatch struct {
	id   MatchID
	code string

	mu   sync.Mutex // guards game
	game DuelGame

	player1 SessionHandle
	player2 SessionHandle

	// Remote terminals only report presses, so holds are emulated the same
	// way as for a local keyboard. Touched only by the Run goroutine.
	held   *core.HeldKeys
	inputs chan playerInput

	tick     uint64
	tickRate int

	done       chan struct{}
	doneOnce   sync.Once
	disconnect chan SessionID
}

// NewOnlineMatch creates a match around game.
func NewOnlineMatch(id MatchID, code string, game DuelGame, p1, p2 SessionHandle, tickRate, holdTicks int) *OnlineMatch {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	if holdTicks <= 0 {
		holdTicks = core.DefaultHoldTicks
	}
	return &OnlineMatch{
		id:         id,
		code:       code,
		game:       game,
		player1:    p1,
		player2:    p2,
		held:       core.NewHeldKeys(holdTicks),
		inputs:     make(chan playerInput, 64),
		tickRate:   tickRate,
		done:       make(chan struct{}),
		disconnect: make(chan SessionID, 2),
	}
}

// ID returns the match identifier.
func (m *OnlineMatch) ID() MatchID {
	return m.id
}

// Code returns the lobby code the match was started from.
func (m *OnlineMatch) Code() string {
	return m.code
}

// SendInput queues a key press. Non-playable actions and presses that do
// not fit the buffer are dropped.
func (m *OnlineMatch) SendInput(player core.PlayerID, a core.Action) {
	if !Playable(a) || (player != core.Player1 && player != core.Player2) {
		return
	}
	select {
	case m.inputs <- playerInput{player: player, action: a}:
	default:
	}
}

// PlayerDisconnected forfeits the match for sessionID.
func (m *OnlineMatch) PlayerDisconnected(sessionID SessionID) {
	select {
	case m.disconnect <- sessionID:
	default:
	}
}

// Render draws the current duel into dst. Safe to call from any goroutine.
func (m *OnlineMatch) Render(dst *core.Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.game.Render(dst)
}

// Run ticks the duel until it is decided, a player leaves, or Stop is
// called. onComplete is not called after Stop.
func (m *OnlineMatch) Run(onComplete func(MatchResult)) {
	defer m.Stop()

	ticker := time.NewTicker(time.Second / time.Duration(m.tickRate))
	defer ticker.Stop()

	go m.watchSessions()

	for {
		select {
		case <-ticker.C:
			if result, over := m.runTick(); over {
				if onComplete != nil {
					onComplete(result)
				}
				return
			}

		case id := <-m.disconnect:
			if onComplete != nil {
				onComplete(m.forfeit(id))
			}
			return

		case <-m.done:
			return
		}
	}
}

func (m *OnlineMatch) runTick() (MatchResult, bool) {
	m.drainInputs()

	m.mu.Lock()
	res := m.game.Step(m.held.Frame())
	winner := m.game.Winner()
	m.mu.Unlock()
	m.tick++

	frame := FrameEvent{MatchID: m.id, Tick: m.tick, State: res.State}
	m.player1.Send(frame)
	m.player2.Send(frame)

	switch {
	case res.Err != nil:
		return MatchResult{MatchID: m.id, Reason: MatchEndReasonError, Ticks: m.tick, Err: res.Err}, true
	case res.State.GameOver:
		return MatchResult{MatchID: m.id, Reason: MatchEndReasonCompleted, Winner: winner, Ticks: m.tick}, true
	}
	return MatchResult{}, false
}

func (m *OnlineMatch) drainInputs() {
	for {
		select {
		case in := <-m.inputs:
			m.held.Press(in.player, in.action)
		default:
			return
		}
	}
}

// forfeit awards the match to whoever did not leave.
func (m *OnlineMatch) forfeit(left SessionID) MatchResult {
	winner := core.Player1
	if left == m.player1.ID() {
		winner = core.Player2
	}
	return MatchResult{
		MatchID: m.id,
		Reason:  MatchEndReasonDisconnect,
		Winner:  winner,
		Ticks:   m.tick,
	}
}

func (m *OnlineMatch) watchSessions() {
	select {
	case <-m.player1.Done():
		m.PlayerDisconnected(m.player1.ID())
	case <-m.player2.Done():
		m.PlayerDisconnected(m.player2.ID())
	case <-m.done:
	}
}

// Stop ends the match loop without reporting a result.
func (m *OnlineMatch) Stop() {
	m.doneOnce.Do(func() {
		close(m.done)
	})
}
