package world

import (
	"errors"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/config"
	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/leveldef"
)

func parseLevel(t *testing.T, text string) *leveldef.Definition {
	t.Helper()
	def, err := leveldef.Parse(strings.NewReader(text))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	def.Name = "test"
	return def
}

// oneRow has a single five-slot platform at the left edge.
const oneRow = `0 0 0
Ground
##
P Platform
##
|PPPPP                                    |
##
`

func newTestLevel(t *testing.T, def *leveldef.Definition, multiplayer bool, clock *core.ManualClock) *Level {
	t.Helper()
	l, err := NewLevel(def, Options{
		Multiplayer: multiplayer,
		Config:      config.DefaultTinConfig(),
		Catalog:     assets.NewBuiltin(),
		Clock:       clock,
		Rand:        rand.New(rand.NewSource(42)),
	})
	if err != nil {
		t.Fatalf("NewLevel() error: %v", err)
	}
	return l
}

func skyLand(t *testing.T) *leveldef.Definition {
	t.Helper()
	def, err := leveldef.LoadBuiltin(leveldef.DefaultLevel)
	if err != nil {
		t.Fatal(err)
	}
	return def
}

func TestNewLevelLayout(t *testing.T) {
	l := newTestLevel(t, skyLand(t), false, &core.ManualClock{})

	if l.Viewport().GroundLine() != 448 {
		t.Errorf("GroundLine() = %d, expected 448", l.Viewport().GroundLine())
	}

	tower := l.Tower().Sprite().Rect
	if tower.CenterX() != 500 || tower.Bottom() != 448 {
		t.Errorf("tower rect = %+v, expected centred on the ground", tower)
	}

	if !reflect.DeepEqual(l.SpawnHeights(), []int{448, 384, 320, 256}) {
		t.Errorf("SpawnHeights() = %v, expected [448 384 320 256]", l.SpawnHeights())
	}

	if len(l.Monsters()) != 1 {
		t.Errorf("len(Monsters()) = %d, expected 1", len(l.Monsters()))
	}

	// Characters in insertion order: princess, tower, player, monster.
	chars := l.Layer(LayerCharacters)
	if len(chars) != 4 {
		t.Fatalf("len(characters) = %d, expected 4", len(chars))
	}
	if chars[0].Sprite().Name() != PrincessAsset || chars[1] != Entity(l.Tower()) || chars[2] != Entity(l.Player()) {
		t.Errorf("unexpected character order: %s %s %s", chars[0].Sprite().Name(), chars[1].Sprite().Name(), chars[2].Sprite().Name())
	}
	princess := chars[0].Sprite().Rect
	if princess.CenterX() != 495 || princess.Y != 168 {
		t.Errorf("princess rect = %+v", princess)
	}

	// The bottom row of SkyLand starts at slot 8 and is 7 slots long.
	var first *Sprite
	for _, e := range l.Layer(LayerEnvironment) {
		if e.Sprite().Name() == "Platform-Stone" && e.Sprite().Rect.Y == 384 {
			first = e.Sprite()
			break
		}
	}
	if first == nil {
		t.Fatal("no platform on the bottom row")
	}
	if first.Rect.X != 196 || first.Rect.W != 176 {
		t.Errorf("bottom platform rect = %+v, expected x=196 w=176", first.Rect)
	}

	hud := l.Layer(LayerHUD)
	if len(hud) != 4 {
		t.Fatalf("len(hud) = %d, expected 4", len(hud))
	}
	bar := hud[0].Sprite().Rect
	if bar.Right() != 990 || bar.Y != 10 || bar.W != 160 {
		t.Errorf("tower health rect = %+v", bar)
	}
	if icon := hud[1].Sprite().Rect; icon.Right() != bar.X-5 {
		t.Errorf("tower icon right = %d, expected %d", icon.Right(), bar.X-5)
	}
	text, ok := hud[3].(Texter)
	if !ok || text.Text() != "00:00" {
		t.Errorf("time indicator = %v", hud[3])
	}
	if hud[3].Sprite().Rect.X != 31 {
		t.Errorf("time text x = %d, expected 31", hud[3].Sprite().Rect.X)
	}
}

func TestNewLevelWithoutRowsFails(t *testing.T) {
	def := parseLevel(t, "0 0 0\nGround\n")
	_, err := NewLevel(def, Options{Config: config.DefaultTinConfig(), Rand: rand.New(rand.NewSource(1))})

	var ce *ConfigurationError
	if !errors.As(err, &ce) {
		t.Fatalf("NewLevel() error = %v, expected *ConfigurationError", err)
	}

	// A duel does not need spawn heights.
	if _, err := NewLevel(def, Options{Multiplayer: true, Config: config.DefaultTinConfig()}); err != nil {
		t.Errorf("NewLevel(multiplayer) error: %v", err)
	}
}

func TestNewLevelMissingAsset(t *testing.T) {
	def := parseLevel(t, oneRow)
	_, err := NewLevel(def, Options{
		Config:  config.DefaultTinConfig(),
		Catalog: assets.NewDir(t.TempDir()),
	})
	var le *assets.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("NewLevel() error = %v, expected *assets.LoadError", err)
	}
}

func TestMonsterReplenishment(t *testing.T) {
	clock := &core.ManualClock{}
	l := newTestLevel(t, skyLand(t), false, clock)

	if got := l.RequiredMonsters(); got != 1 {
		t.Errorf("RequiredMonsters() at 0s = %d, expected 1", got)
	}

	clock.Set(5000)
	killed := l.Monsters()[0]
	killed.Health().Set(0)
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	monsters := l.Monsters()
	if len(monsters) != 1 || monsters[0] == killed {
		t.Fatalf("after the kill at 5s monsters = %d, expected exactly one replacement", len(monsters))
	}
	for _, e := range l.Layer(LayerCharacters) {
		if e == Entity(killed) {
			t.Error("dead monster is still in the characters layer")
		}
	}

	clock.Set(39000)
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	if got := l.RequiredMonsters(); got != 2 {
		t.Errorf("RequiredMonsters() at 39s = %d, expected 2", got)
	}

	clock.Set(40000)
	l.Monsters()[0].Health().Set(0)
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	if got := l.RequiredMonsters(); got != 3 {
		t.Errorf("RequiredMonsters() at 40s = %d, expected 3", got)
	}
	if got := len(l.Monsters()); got != 3 {
		t.Errorf("len(Monsters()) at 40s = %d, expected 3", got)
	}
	if l.TimeText() != "00:40" {
		t.Errorf("TimeText() = %q, expected 00:40", l.TimeText())
	}
}

func TestPlayerLandsOnPlatform(t *testing.T) {
	l := newTestLevel(t, parseLevel(t, oneRow), false, &core.ManualClock{})
	const platformTop = 384

	p := l.Player()
	p.sprite.Rect.X = 40
	p.sprite.Rect.SetBottom(platformTop - 30)
	p.jumps = 4

	in := core.NewMultiInputFrame()
	for i := 0; i < 11; i++ {
		if err := l.Update(in); err != nil {
			t.Fatal(err)
		}
	}
	if p.sprite.Rect.Bottom() != platformTop+3 {
		t.Fatalf("Bottom() = %d, expected the player 3px into the platform", p.sprite.Rect.Bottom())
	}

	l.resolveCollisions(p)
	if p.sprite.Rect.Bottom() != platformTop {
		t.Errorf("Bottom() = %d after collision resolution, expected %d", p.sprite.Rect.Bottom(), platformTop)
	}
	if p.Jumps() != 0 {
		t.Errorf("Jumps() = %d, expected 0", p.Jumps())
	}

	// Standing still keeps the player on the platform from tick to tick.
	for i := 0; i < 60; i++ {
		if err := l.Update(in); err != nil {
			t.Fatal(err)
		}
	}
	if b := p.sprite.Rect.Bottom(); b < platformTop || b > platformTop+3 {
		t.Errorf("Bottom() = %d, expected the player to rest on the platform", b)
	}
}

func TestTowerFallEndsGame(t *testing.T) {
	clock := &core.ManualClock{}
	l := newTestLevel(t, skyLand(t), false, clock)

	clock.Set(83000)
	l.Tower().Health().Set(0)
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	if !l.IsOver() || l.Outcome() != OutcomeTowerFallen {
		t.Fatalf("IsOver() = %v, Outcome() = %v", l.IsOver(), l.Outcome())
	}
	if l.ElapsedSeconds() != 83 {
		t.Errorf("ElapsedSeconds() = %d, expected 83", l.ElapsedSeconds())
	}

	ticks := l.Ticks()
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	if l.Ticks() != ticks {
		t.Error("Update() after game over should do nothing")
	}
}

func TestMonstersWearDownTower(t *testing.T) {
	l := newTestLevel(t, skyLand(t), false, &core.ManualClock{})
	m := l.Monsters()[0]
	m.sprite.Rect.SetCenterX(l.Tower().Sprite().Rect.CenterX())

	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	expected := FromInt(100) - FromFloat(0.05)
	if got := l.Tower().Health().Current; got != expected {
		t.Errorf("tower health = %v, expected %v", got, expected)
	}
}

func TestDuel(t *testing.T) {
	l := newTestLevel(t, skyLand(t), true, &core.ManualClock{})

	tin, sin := l.Player(), l.Enemy()
	if sin == nil {
		t.Fatal("Enemy() = nil in a duel")
	}
	if tin.sprite.Rect.X != 800 || sin.sprite.Rect.X != 0 {
		t.Errorf("start x: Tin %d, Sin %d", tin.sprite.Rect.X, sin.sprite.Rect.X)
	}
	if len(l.Monsters()) != 0 {
		t.Error("duels have no monsters")
	}

	sin.sprite.Rect.X = tin.sprite.Rect.X
	in := core.NewMultiInputFrame()
	in.Press(core.Player1, core.ActionAttack)

	// The first tick raises the attack flag, the second lands the hit.
	for i := 0; i < 2; i++ {
		if err := l.Update(in); err != nil {
			t.Fatal(err)
		}
	}
	if got := sin.Health().Current; got != FromInt(30)-FromFloat(0.1) {
		t.Errorf("Sin health = %v, expected 29.900", got)
	}
	if tin.Health().Current != FromInt(30) {
		t.Error("Tin should not be hurt")
	}

	sin.Health().Set(0)
	if err := l.Update(in); err != nil {
		t.Fatal(err)
	}
	if l.Outcome() != OutcomeTinWins {
		t.Errorf("Outcome() = %v, expected %v", l.Outcome(), OutcomeTinWins)
	}
}

func TestDuelSinWins(t *testing.T) {
	l := newTestLevel(t, skyLand(t), true, &core.ManualClock{})
	l.Player().Health().Set(-1)
	if err := l.Update(core.NewMultiInputFrame()); err != nil {
		t.Fatal(err)
	}
	if l.Outcome() != OutcomeSinWins {
		t.Errorf("Outcome() = %v, expected %v", l.Outcome(), OutcomeSinWins)
	}
}

func TestLevelDeterminism(t *testing.T) {
	run := func() uint64 {
		clock := &core.ManualClock{}
		l := newTestLevel(t, skyLand(t), false, clock)
		for i := 0; i < 600; i++ {
			in := core.NewMultiInputFrame()
			switch {
			case i%90 < 30:
				in.Press(core.Player1, core.ActionRight)
			case i%90 < 45:
				in.Press(core.Player1, core.ActionJump)
			default:
				in.Press(core.Player1, core.ActionAttack)
			}
			clock.Advance(16)
			if err := l.Update(in); err != nil {
				t.Fatal(err)
			}
		}
		snap := l.Snapshot()
		return snap.Hash()
	}

	if a, b := run(), run(); a != b {
		t.Errorf("same seed and input gave different hashes: %d vs %d", a, b)
	}
}
