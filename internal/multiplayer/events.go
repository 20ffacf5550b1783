package multiplayer

import "github.com/vovakirdan/tin-quest/internal/core"

// SessionEvent is sent from the coordinator or a match to a session.
type SessionEvent interface {
	sessionEvent()
}

// LobbyCreatedEvent is sent to the host once its lobby exists.
type LobbyCreatedEvent struct {
	Code string
}

func (LobbyCreatedEvent) sessionEvent() {}

// LobbyErrorEvent reports a failed lobby operation.
type LobbyErrorEvent struct {
	Message string
}

func (LobbyErrorEvent) sessionEvent() {}

// MatchStartedEvent is sent to both players when the duel begins.
type MatchStartedEvent struct {
	Match *OnlineMatch
	Side  core.PlayerID
	Code  string
}

func (MatchStartedEvent) sessionEvent() {}

// FrameEvent is sent to both players after every simulated tick.
type FrameEvent struct {
	MatchID MatchID
	Tick    uint64
	State   core.GameState
}

func (FrameEvent) sessionEvent() {}

// MatchEndedEvent is sent when the duel is decided or abandoned.
type MatchEndedEvent struct {
	MatchID MatchID
	Reason  MatchEndReason
	Winner  core.PlayerID // 0 if nobody won
	Ticks   uint64
}

func (MatchEndedEvent) sessionEvent() {}

// MatchEndReason describes why a match ended.
type MatchEndReason int

const (
	MatchEndReasonCompleted  MatchEndReason = iota // One side lost all its health
	MatchEndReasonDisconnect                       // A player left or dropped
	MatchEndReasonExpired                          // Nobody joined in time
	MatchEndReasonError                            // The simulation failed
)

func (r MatchEndReason) String() string {
	switch r {
	case MatchEndReasonCompleted:
		return "Duel completed"
	case MatchEndReasonDisconnect:
		return "Opponent disconnected"
	case MatchEndReasonExpired:
		return "Lobby expired"
	case MatchEndReasonError:
		return "Duel stopped by an error"
	default:
		return "Unknown"
	}
}

// CoordinatorMessage is sent from a session to the coordinator.
type CoordinatorMessage interface {
	coordinatorMessage()
}

// CreateLobbyMsg asks for a new lobby hosted by the session.
type CreateLobbyMsg struct {
	SessionID SessionID
}

func (CreateLobbyMsg) coordinatorMessage() {}

// JoinLobbyMsg asks to join the lobby with the given code.
type JoinLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (JoinLobbyMsg) coordinatorMessage() {}

// LeaveLobbyMsg withdraws from a lobby. A leaving host closes it.
type LeaveLobbyMsg struct {
	SessionID SessionID
	Code      string
}

func (LeaveLobbyMsg) coordinatorMessage() {}

// LeaveMatchMsg forfeits a running match.
type LeaveMatchMsg struct {
	SessionID SessionID
	MatchID   MatchID
}

func (LeaveMatchMsg) coordinatorMessage() {}

// PlayerInputMsg carries one key press into a match.
type PlayerInputMsg struct {
	MatchID MatchID
	Player  core.PlayerID
	Action  core.Action
}

func (PlayerInputMsg) coordinatorMessage() {}

// SessionDisconnectedMsg is sent when a session's connection closes.
type SessionDisconnectedMsg struct {
	SessionID SessionID
}

func (SessionDisconnectedMsg) coordinatorMessage() {}
