package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/config"
	"github.com/vovakirdan/tin-quest/internal/leveldef"
	"github.com/vovakirdan/tin-quest/internal/registry"
	"github.com/vovakirdan/tin-quest/internal/storage"
)

var (
	flagLevel      string
	flagLevelsDir  string
	flagAssets     string
	flagConfig     string
	flagDifficulty string
)

// addGameFlags registers the flags that shape a game's Deps.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagLevel, "level", leveldef.DefaultLevel, "Level name")
	cmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with .level files (empty = builtin levels)")
	cmd.Flags().StringVar(&flagAssets, "assets", "", "Directory with sprite PNGs (empty = builtin sprites)")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// session holds the opened storage behind a Deps value.
type session struct {
	deps  registry.Deps
	store *storage.Store // nil unless --store sqlite opened successfully
}

func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// openSession loads the level, config, sprites and score storage.
// Storage failures are logged and fall back to memory; the game still works.
func openSession(logger *log.Logger) (*session, error) {
	def, err := leveldef.Open(flagLevelsDir, flagLevel)
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadTin(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return nil, fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyTinPreset(&cfg, preset)
	}

	var catalog assets.Catalog = assets.NewBuiltin()
	if flagAssets != "" {
		catalog = assets.NewDir(flagAssets)
	}

	s := &session{deps: registry.Deps{
		Level:   def,
		Config:  &cfg,
		Catalog: catalog,
		Logger:  logger,
	}}
	s.openStorage(logger)
	logger.Debug("session ready", "level", def.Name, "store", flagStore, "assets", flagAssets)
	return s, nil
}

func (s *session) openStorage(logger *log.Logger) {
	switch flagStore {
	case "sqlite":
		store, err := storage.Open(flagDBPath)
		if err != nil {
			logger.Warn("could not open scores database, scores will not be kept", "path", flagDBPath, "err", err)
			break
		}
		s.store = store
		s.deps.Scores = store
		s.deps.Duels = store
		return
	case "file":
		book, err := storage.OpenFileBook("")
		if err != nil {
			logger.Warn("could not open data directory, scores will not be kept", "err", err)
			break
		}
		s.deps.Scores = book
		s.deps.Duels = book
		return
	case "memory":
	default:
		logger.Warn("unknown --store, keeping scores in memory", "store", flagStore)
	}

	book := storage.NewMemoryBook()
	s.deps.Scores = book
	s.deps.Duels = book
}
