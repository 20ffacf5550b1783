package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/multiplayer"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tin/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int

	// DuelMode is the registered mode used for online duels.
	// Empty disables online play.
	DuelMode string
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		DuelMode:    "tin_duel",
	}
}

// SSHServer serves the game to SSH clients, one Bubble Tea program per session.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	deps   registry.Deps
	store  *storage.Store
	logger *log.Logger

	sessions    *multiplayer.SessionRegistry
	coordinator *multiplayer.Coordinator // nil when online play is off
}

// NewSSHServer creates a new SSH server. Sessions share deps; store may
// be nil, in which case the scoreboard stays empty.
func NewSSHServer(cfg SSHServerConfig, deps registry.Deps, store *storage.Store) (*SSHServer, error) {
	logger := deps.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "tin-ssh",
		})
		deps.Logger = logger
	}

	srv := &SSHServer{
		config: cfg,
		deps:   deps,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".tin", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server

	if cfg.DuelMode != "" {
		if !registry.Exists(cfg.DuelMode) {
			return nil, fmt.Errorf("tui: unknown duel mode %q", cfg.DuelMode)
		}
		lobbyCfg := multiplayer.DefaultCoordinatorConfig()
		if cfg.TickRate > 0 {
			lobbyCfg.TickRate = cfg.TickRate
		}
		srv.sessions = multiplayer.NewSessionRegistry()
		srv.coordinator = multiplayer.NewCoordinator(
			lobbyCfg,
			duelFactory(cfg.DuelMode, deps),
			srv.sessions,
			logger.WithPrefix("tin-lobby"),
		)
	}
	return srv, nil
}

// duelFactory creates online duels from a registered mode.
func duelFactory(id string, deps registry.Deps) multiplayer.GameFactory {
	return func(cfg core.RuntimeConfig) (multiplayer.DuelGame, error) {
		game, err := registry.Create(id, deps)
		if err != nil {
			return nil, err
		}
		duel, ok := game.(multiplayer.DuelGame)
		if !ok {
			return nil, fmt.Errorf("tui: mode %q cannot be played online", id)
		}
		game.Reset(cfg)
		return duel, nil
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	deps := s.deps
	deps.Logger = s.logger.With("user", sshSession.User())
	model := NewSessionModel(deps, s.store, cfg)

	if s.coordinator != nil {
		id := multiplayer.SessionID(fmt.Sprintf("%s-%d", sshSession.User(), time.Now().UnixNano()))
		handle := multiplayer.NewChannelSession(id, 256)
		s.sessions.Register(handle)
		go func() {
			<-sshSession.Context().Done()
			s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: id})
			s.sessions.Unregister(id)
			handle.Close()
		}()
		model = model.WithOnline(s.coordinator, handle)
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		if s.coordinator != nil {
			s.logger.Debug("online play", "sessions", s.sessions.Count(), "lobbies", s.coordinator.LobbyCount(), "duels", s.coordinator.MatchCount())
		}
	}
}

// ListenAndServe starts the SSH server and blocks until interrupted.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "online", s.coordinator != nil)
	if s.coordinator != nil {
		s.coordinator.Start()
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	if s.coordinator != nil {
		s.coordinator.Stop()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
