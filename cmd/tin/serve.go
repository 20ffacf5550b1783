package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tin-quest/internal/games/tin"
	"github.com/vovakirdan/tin-quest/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagNoOnline    bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with a mode picker menu.
Scores are stored per-server (all users share the same leaderboard).
The menu also offers online duels: one player hosts and shares a code,
the other joins with it and plays Sin.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tin/host_key

Examples:
  tin serve                           # Listen on :23234 with auto-generated key
  tin serve --ssh :2222               # Listen on port 2222
  tin serve --host-key ./my_host_key  # Use specific host key
  tin serve --difficulty hard         # Every session plays on hard
  tin serve --no-online               # Local modes only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	addGameFlags(serveCmd)
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().BoolVar(&flagNoOnline, "no-online", false, "Disable online duels between SSH users")
}

func runServe(_ *cobra.Command, _ []string) error {
	logger, err := newLogger(os.Stderr, "tin-ssh")
	if err != nil {
		return err
	}

	sess, err := openSession(logger)
	if err != nil {
		return err
	}
	defer sess.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:    flagFPS,
		DuelMode:    tin.DuelID,
	}
	if flagNoOnline {
		cfg.DuelMode = ""
	}

	server, err := tui.NewSSHServer(cfg, sess.deps, sess.store)
	if err != nil {
		return err
	}

	logger.Info("connect with: ssh localhost -p <port>, press Ctrl+C to stop")
	return server.ListenAndServe()
}
