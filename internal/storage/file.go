package storage

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; data lands in the platform's
// per-user data directory.
const AppName = "tin_quest"

const (
	scoresObject   = "scores"
	scoresProperty = "single"
	duelsProperty  = "duels"
)

// FileBook stores scores as YAML documents in the user data directory.
type FileBook struct {
	manager *gdata.Manager
}

type scoresDoc struct {
	Scores []int `yaml:"scores"`
}

type duelsDoc struct {
	Duels []duelDoc `yaml:"duels"`
}

type duelDoc struct {
	Winner string `yaml:"winner"`
	Ticks  int    `yaml:"ticks"`
}

// OpenFileBook opens the data store for appName.
func OpenFileBook(appName string) (*FileBook, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data dir for %s: %w", appName, err)
	}
	return &FileBook{manager: m}, nil
}

// LoadScores implements ScoreBook. A missing file yields an empty list.
func (f *FileBook) LoadScores() ([]int, error) {
	if !f.manager.ObjectPropExists(scoresObject, scoresProperty) {
		return nil, nil
	}
	data, err := f.manager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot read scores: %w", err)
	}
	var doc scoresDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("storage: cannot parse scores: %w", err)
	}
	return Sorted(doc.Scores), nil
}

// SaveScores implements ScoreBook.
func (f *FileBook) SaveScores(scores []int) error {
	data, err := yaml.Marshal(scoresDoc{Scores: Sorted(scores)})
	if err != nil {
		return fmt.Errorf("storage: cannot encode scores: %w", err)
	}
	if err := f.manager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("storage: cannot write scores: %w", err)
	}
	return nil
}

// SaveDuel implements DuelRecorder by appending to the duel log.
func (f *FileBook) SaveDuel(result DuelResult) error {
	var doc duelsDoc
	if f.manager.ObjectPropExists(scoresObject, duelsProperty) {
		data, err := f.manager.LoadObjectProp(scoresObject, duelsProperty)
		if err != nil {
			return fmt.Errorf("storage: cannot read duels: %w", err)
		}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("storage: cannot parse duels: %w", err)
		}
	}
	doc.Duels = append(doc.Duels, duelDoc{Winner: result.Winner, Ticks: result.Ticks})
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("storage: cannot encode duels: %w", err)
	}
	if err := f.manager.SaveObjectProp(scoresObject, duelsProperty, data); err != nil {
		return fmt.Errorf("storage: cannot write duels: %w", err)
	}
	return nil
}

var (
	_ ScoreBook    = (*FileBook)(nil)
	_ DuelRecorder = (*FileBook)(nil)
)
