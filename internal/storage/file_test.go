package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func openTestFileBook(t *testing.T) *FileBook {
	t.Helper()
	appName := fmt.Sprintf("tin_quest_test_%d", time.Now().UnixNano())
	book, err := OpenFileBook(appName)
	if err != nil {
		t.Skipf("cannot open data dir: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return book
}

func TestFileBookScores(t *testing.T) {
	book := openTestFileBook(t)

	scores, err := book.LoadScores()
	if err != nil {
		t.Fatalf("LoadScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("LoadScores() on fresh book = %v", scores)
	}

	if err := book.SaveScores([]int{15, 240, 61}); err != nil {
		t.Fatalf("SaveScores() failed: %v", err)
	}
	scores, err = book.LoadScores()
	if err != nil {
		t.Fatalf("LoadScores() failed: %v", err)
	}
	expected := []int{240, 61, 15}
	if !slices.Equal(scores, expected) {
		t.Errorf("LoadScores() = %v, expected %v", scores, expected)
	}
}

func TestFileBookDuelsAppend(t *testing.T) {
	book := openTestFileBook(t)

	if err := book.SaveDuel(DuelResult{Winner: "tin", Ticks: 40}); err != nil {
		t.Fatalf("SaveDuel() failed: %v", err)
	}
	if err := book.SaveDuel(DuelResult{Winner: "sin", Ticks: 80}); err != nil {
		t.Fatalf("SaveDuel() failed: %v", err)
	}

	data, err := book.manager.LoadObjectProp(scoresObject, duelsProperty)
	if err != nil {
		t.Fatalf("LoadObjectProp() failed: %v", err)
	}
	var doc duelsDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if len(doc.Duels) != 2 || doc.Duels[1].Winner != "sin" {
		t.Errorf("duel log = %+v", doc.Duels)
	}
}
