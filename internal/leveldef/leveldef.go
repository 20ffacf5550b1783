// Package leveldef reads the line-oriented level format that describes a
// stage: its background colour, the ground tile, a platform symbol table and
// the platform rows themselves.
//
// A level file looks like this:
//
//	$ comment lines start with a dollar sign
//	135 206 235
//	Ground
//	##
//	G Platform
//	##
//	|  GGG     GG |
//	|GGGG         |
//	##
//
// Map rows are listed top to bottom in the file but stored bottom to top, so
// Rows[0] is always the lowest row.
package leveldef

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// State is a position in the reader's state machine.
type State int

const (
	StateBackground State = iota
	StateGround
	StatePlatforms
	StateLevel
	StateExit
)

// String returns the section name used in error messages.
func (s State) String() string {
	switch s {
	case StateBackground:
		return "background"
	case StateGround:
		return "ground"
	case StatePlatforms:
		return "platforms"
	case StateLevel:
		return "level"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

const (
	commentPrefix = "$"
	markerPrefix  = "##"
)

// RGB is the level background colour.
type RGB struct {
	R, G, B uint8
}

// Color converts the background to an opaque image colour.
func (c RGB) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Run is a horizontal stretch of identical platform symbols in one row.
// X and Length are counted in slots after the border characters are removed.
type Run struct {
	X      int
	Length int
	Asset  string
}

// Definition is a parsed level. It is never modified after Parse returns.
type Definition struct {
	Name       string
	Background RGB
	Ground     string
	Platforms  map[byte]string
	Rows       [][]Run
}

// FormatError reports a malformed level file.
type FormatError struct {
	Line  int // 1-based line number, 0 when the input ended early
	State State
	Msg   string
}

func (e *FormatError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("leveldef: %s section: %s", e.State, e.Msg)
	}
	return fmt.Sprintf("leveldef: line %d (%s section): %s", e.Line, e.State, e.Msg)
}

// parser holds the state machine while a file is being read.
type parser struct {
	def         *Definition
	state       State
	line        int
	groundRead  bool
	seenMarkers int
}

// Parse reads a level definition from r. Parsing stops at the exit marker or
// at the end of input, whichever comes first.
func Parse(r io.Reader) (*Definition, error) {
	p := &parser{
		def: &Definition{
			Platforms: make(map[byte]string),
		},
	}

	scanner := bufio.NewScanner(r)
	for p.state != StateExit && scanner.Scan() {
		p.line++
		if err := p.feed(strings.TrimRight(scanner.Text(), "\r")); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("leveldef: read failed: %w", err)
	}

	if !p.groundRead {
		return nil, &FormatError{State: p.state, Msg: "unexpected end of input before ground level"}
	}
	return p.def, nil
}

func (p *parser) feed(line string) error {
	if strings.HasPrefix(line, commentPrefix) {
		return nil
	}

	switch p.state {
	case StateBackground:
		rgb, err := parseBackground(line)
		if err != nil {
			return p.errorf("%v", err)
		}
		p.def.Background = rgb
		p.state = StateGround

	case StateGround:
		if !p.groundRead {
			name := strings.TrimSpace(line)
			if name == "" || strings.HasPrefix(name, markerPrefix) {
				return p.errorf("missing ground asset name")
			}
			p.def.Ground = name
			p.groundRead = true
			return nil
		}
		if !strings.HasPrefix(line, markerPrefix) {
			return p.errorf("expected %q before platform symbols, got %q", markerPrefix, line)
		}
		p.state = StatePlatforms

	case StatePlatforms:
		if strings.HasPrefix(line, markerPrefix) {
			p.state = StateLevel
			return nil
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return p.errorf("platform line must be \"<symbol> <asset>\", got %q", line)
		}
		if len(fields[0]) != 1 {
			return p.errorf("platform symbol %q must be a single character", fields[0])
		}
		p.def.Platforms[fields[0][0]] = fields[1]

	case StateLevel:
		if strings.HasPrefix(line, markerPrefix) {
			p.state = StateExit
			return nil
		}
		row := decodeRow(stripBorders(line), p.def.Platforms)
		p.def.Rows = append([][]Run{row}, p.def.Rows...)
	}
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &FormatError{Line: p.line, State: p.state, Msg: fmt.Sprintf(format, args...)}
}

func parseBackground(line string) (RGB, error) {
	fields := strings.Fields(line)
	if len(fields) != 3 {
		return RGB{}, fmt.Errorf("background must be three integers, got %q", line)
	}
	var channels [3]uint8
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return RGB{}, fmt.Errorf("background component %q is not an integer", f)
		}
		if v < 0 || v > 255 {
			return RGB{}, fmt.Errorf("background component %d out of range 0-255", v)
		}
		channels[i] = uint8(v)
	}
	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}

// stripBorders drops the first and last character of a map row.
func stripBorders(line string) string {
	if len(line) < 2 {
		return ""
	}
	return line[1 : len(line)-1]
}

// decodeRow run-length decodes one map row. Characters missing from the
// symbol table end the open run and are otherwise ignored.
func decodeRow(line string, symbols map[byte]string) []Run {
	runs := []Run{}
	start := -1
	var symbol byte

	flush := func(end int) {
		if start >= 0 {
			runs = append(runs, Run{X: start, Length: end - start, Asset: symbols[symbol]})
			start = -1
		}
	}

	for x := 0; x < len(line); x++ {
		c := line[x]
		if _, ok := symbols[c]; !ok {
			flush(x)
			continue
		}
		if start >= 0 && c == symbol {
			continue
		}
		flush(x)
		start = x
		symbol = c
	}
	flush(len(line))

	return runs
}
