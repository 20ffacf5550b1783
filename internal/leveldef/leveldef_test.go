package leveldef

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleLevel = `$ test level
10 20 30
Grass
##
$ symbols
A Platform
B Platform-Stone
##
|A....AAAAA|
|  BB A  x |
##
|AAAA this is never read|
`

func TestParseSample(t *testing.T) {
	def, err := Parse(strings.NewReader(sampleLevel))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	if def.Background != (RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("Background = %+v, expected {10 20 30}", def.Background)
	}
	if def.Ground != "Grass" {
		t.Errorf("Ground = %q, expected %q", def.Ground, "Grass")
	}
	if len(def.Platforms) != 2 || def.Platforms['B'] != "Platform-Stone" {
		t.Errorf("Platforms = %v", def.Platforms)
	}

	expected := [][]Run{
		// bottom row, last in the file
		{
			{X: 2, Length: 2, Asset: "Platform-Stone"},
			{X: 5, Length: 1, Asset: "Platform"},
		},
		// top row, first in the file
		{
			{X: 0, Length: 1, Asset: "Platform"},
			{X: 5, Length: 5, Asset: "Platform"},
		},
	}
	if !reflect.DeepEqual(def.Rows, expected) {
		t.Errorf("Rows = %+v, expected %+v", def.Rows, expected)
	}
}

func TestDecodeRow(t *testing.T) {
	symbols := map[byte]string{'A': "a", 'B': "b"}

	tests := []struct {
		name     string
		line     string
		expected []Run
	}{
		{"empty", "", []Run{}},
		{"no symbols", "   ..  ", []Run{}},
		{"run touching end", "  AAA", []Run{{X: 2, Length: 3, Asset: "a"}}},
		{"run at start", "AA  ", []Run{{X: 0, Length: 2, Asset: "a"}}},
		{"adjacent symbols", "AABBB", []Run{{X: 0, Length: 2, Asset: "a"}, {X: 2, Length: 3, Asset: "b"}}},
		{"unknown breaks run", "AA?AA", []Run{{X: 0, Length: 2, Asset: "a"}, {X: 3, Length: 2, Asset: "a"}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeRow(tc.line, symbols)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("decodeRow(%q) = %+v, expected %+v", tc.line, got, tc.expected)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		state State
	}{
		{"two background ints", "1 2\nGround\n", StateBackground},
		{"non numeric background", "1 2 x\nGround\n", StateBackground},
		{"background out of range", "1 2 300\nGround\n", StateBackground},
		{"platform without asset", "1 2 3\nGround\n##\nA\n##\n", StatePlatforms},
		{"platform with extra token", "1 2 3\nGround\n##\nA Platform extra\n##\n", StatePlatforms},
		{"multi character symbol", "1 2 3\nGround\n##\nAB Platform\n##\n", StatePlatforms},
		{"ends before ground", "$ only a comment\n1 2 3\n", StateGround},
		{"empty input", "", StateBackground},
		{"garbage before marker", "1 2 3\nGround\nA Platform\n", StateGround},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("Parse() error = %v, expected *FormatError", err)
			}
			if fe.State != tc.state {
				t.Errorf("FormatError.State = %v, expected %v", fe.State, tc.state)
			}
		})
	}
}

func TestParseStopsAtEOF(t *testing.T) {
	// No platforms and no map is still a usable definition once ground is known.
	def, err := Parse(strings.NewReader("0 0 0\nGround\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(def.Rows) != 0 {
		t.Errorf("len(Rows) = %d, expected 0", len(def.Rows))
	}
}

func TestLoadAndList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"Beta", "Alpha"} {
		if err := os.WriteFile(Path(dir, name), []byte(sampleLevel), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	names, err := List(dir)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if !reflect.DeepEqual(names, []string{"Alpha", "Beta"}) {
		t.Errorf("List() = %v, expected [Alpha Beta]", names)
	}

	def, err := Load(dir, "Alpha")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if def.Name != "Alpha" {
		t.Errorf("Name = %q, expected %q", def.Name, "Alpha")
	}

	if _, err := Load(dir, "Missing"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, expected os.ErrNotExist", err)
	}
}

func TestBuiltinSkyLand(t *testing.T) {
	def, err := Open("", "")
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if def.Name != DefaultLevel {
		t.Errorf("Name = %q, expected %q", def.Name, DefaultLevel)
	}
	if len(def.Rows) != 4 {
		t.Errorf("len(Rows) = %d, expected 4", len(def.Rows))
	}
	for i, row := range def.Rows {
		if len(row) == 0 {
			t.Errorf("row %d has no platforms", i)
		}
	}

	names, err := List("")
	if err != nil || len(names) == 0 || names[0] != DefaultLevel {
		t.Errorf("List(\"\") = %v, %v", names, err)
	}
}
