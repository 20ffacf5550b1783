package world

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/config"
	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/leveldef"
	"github.com/vovakirdan/tin-quest/internal/physics"
)

// Layer is a draw and update group. Layers are processed in order.
type Layer int

const (
	LayerEnvironment Layer = iota
	LayerCharacters
	LayerHUD
	layerCount
)

// Layers lists all layers in draw order.
var Layers = []Layer{LayerEnvironment, LayerCharacters, LayerHUD}

// Status is the level's state machine.
type Status int

const (
	StatusRunning Status = iota
	StatusOver
)

// Outcome tells how a finished level ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeTowerFallen
	OutcomeTinWins
	OutcomeSinWins
)

func (o Outcome) String() string {
	switch o {
	case OutcomeTowerFallen:
		return "tower fallen"
	case OutcomeTinWins:
		return "Tin wins"
	case OutcomeSinWins:
		return "Sin wins"
	default:
		return "none"
	}
}

// HUD asset names.
const (
	TimeIcon       = "Time"
	PrincessAsset  = "Olivia"
	iconSuffix     = "-Icon"
	millisInSecond = 1000
)

// Options configures a level.
type Options struct {
	Multiplayer bool
	Config      config.TinConfig
	Catalog     assets.Catalog // defaults to generated placeholders
	Clock       core.Clock     // defaults to a monotonic clock
	Rand        *rand.Rand     // defaults to a time-seeded source
	Logger      *log.Logger    // defaults to discarding
}

// Level owns every entity of one game and advances them tick by tick.
type Level struct {
	def     *leveldef.Definition
	cfg     config.TinConfig
	catalog assets.Catalog
	clock   core.Clock
	logger  *log.Logger

	multiplayer bool
	vp          physics.Viewport
	layers      [layerCount][]Entity

	player   *Player
	enemy    *Player
	tower    *Tower
	princess *Looker
	monsters []*Monster
	timeText *TimeIndicator

	spawner    *Spawner
	difficulty *config.DifficultyManager
	monsterHP  Fixed
	towerHit   Fixed

	start     int64
	elapsedMs int64
	ticks     uint64
	status    Status
	outcome   Outcome
}

// NewLevel builds a playable level from def.
func NewLevel(def *leveldef.Definition, opts Options) (*Level, error) {
	if opts.Catalog == nil {
		opts.Catalog = assets.NewBuiltin()
	}
	if opts.Clock == nil {
		opts.Clock = core.NewMonotonicClock()
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano())) //#nosec G404 -- gameplay randomness
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	cfg := opts.Config
	l := &Level{
		def:         def,
		cfg:         cfg,
		catalog:     opts.Catalog,
		clock:       opts.Clock,
		logger:      opts.Logger,
		multiplayer: opts.Multiplayer,
		difficulty:  config.NewDifficultyManager(cfg.Difficulty),
		monsterHP:   FromFloat(cfg.Monster.Health),
		towerHit:    FromFloat(cfg.Monster.TowerDamage),
	}

	if err := l.build(opts.Rand); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Level) build(rng *rand.Rand) error {
	cfg := l.cfg
	width, height := cfg.Viewport.Width, cfg.Viewport.Height

	ground, err := NewGroundTiles(l.catalog, l.def.Ground, width, height)
	if err != nil {
		return err
	}
	margin := 0
	if len(ground) > 0 {
		margin = ground[0].sprite.Rect.H
	}
	l.vp = physics.Viewport{Width: width, Height: height, GroundMargin: margin}
	groundTop := l.vp.GroundLine()
	for _, tile := range ground {
		l.add(tile, LayerEnvironment)
	}

	l.tower, err = NewTower(l.catalog, FromFloat(cfg.Tower.Health))
	if err != nil {
		return err
	}
	l.tower.sprite.Rect.SetCenterX(width / 2)
	l.tower.sprite.Rect.SetBottom(groundTop)

	params := PlayerParams{
		Health:        FromFloat(cfg.Player.Health),
		Step:          cfg.Player.Step,
		JumpOffset:    cfg.Player.JumpOffset,
		JumpLimit:     cfg.Player.JumpLimit,
		Attack:        FromFloat(cfg.Player.Attack),
		LandTolerance: cfg.Player.LandTolerance,
		SnapThreshold: cfg.Player.SnapThreshold,
		FrameMillis:   cfg.Player.FrameMillis,
		Gravity:       cfg.Physics.Gravity,
	}
	l.player, err = NewPlayer(l.catalog, l.clock, core.Player1, l.vp, params, l.multiplayer)
	if err != nil {
		return err
	}

	l.princess, err = NewLooker(l.catalog, l.player.sprite, PrincessAsset, StateStandingLeft)
	if err != nil {
		return err
	}
	l.princess.sprite.Rect.SetCenterX(l.tower.sprite.Rect.CenterX() + cfg.Princess.OffsetX)
	l.princess.sprite.Rect.Y = cfg.Princess.Y

	l.add(l.princess, LayerCharacters)
	l.add(l.tower, LayerCharacters)
	l.add(l.player, LayerCharacters)

	if l.multiplayer {
		l.enemy, err = NewPlayer(l.catalog, l.clock, core.Player2, l.vp, params, false)
		if err != nil {
			return err
		}
		l.add(l.enemy, LayerCharacters)
		l.player.sprite.Rect.X += cfg.Player.DuelOffset
		l.player.sprite.Rect.SetBottom(groundTop)
		l.enemy.sprite.Rect.SetBottom(groundTop)
	}

	if err := l.buildHUD(); err != nil {
		return err
	}

	heights, err := l.buildPlatforms(groundTop)
	if err != nil {
		return err
	}

	if !l.multiplayer {
		if len(heights) == 0 {
			return &ConfigurationError{Level: l.def.Name, Msg: "no platform rows, monsters have nowhere to spawn"}
		}
		l.spawner = NewSpawner(heights, width, rng)
		if err := l.spawnMonster(); err != nil {
			return err
		}
		l.start = l.clock.Millis()
	}
	return nil
}

// buildHUD lays out the indicators: in single-player the tower's health
// at the top right and the time at the top left, in a duel Tin's health at
// the top right and Sin's at the top left.
func (l *Level) buildHUD() error {
	margin, gap := l.cfg.HUD.Margin, l.cfg.HUD.Gap
	width := l.vp.Width

	rightHealth, rightIcon := l.tower.health, TowerAsset+iconSuffix
	if l.multiplayer {
		rightHealth, rightIcon = l.player.health, TinAsset+iconSuffix
	}

	bar, err := NewHealthIndicator(l.catalog, rightHealth)
	if err != nil {
		return err
	}
	bar.sprite.Rect.Y = margin
	bar.sprite.Rect.SetRight(width - margin)
	l.add(bar, LayerHUD)

	icon, err := NewIcon(l.catalog, rightIcon)
	if err != nil {
		return err
	}
	icon.sprite.Rect.Y = margin
	icon.sprite.Rect.SetRight(bar.sprite.Rect.X - gap)
	l.add(icon, LayerHUD)

	if !l.multiplayer {
		clockIcon, err := NewIcon(l.catalog, TimeIcon)
		if err != nil {
			return err
		}
		clockIcon.sprite.Rect.X = margin
		clockIcon.sprite.Rect.Y = margin
		l.add(clockIcon, LayerHUD)

		l.timeText = NewTimeIndicator()
		l.timeText.sprite.Rect.X = clockIcon.sprite.Rect.Right() + gap
		l.timeText.sprite.Rect.Y = margin
		l.add(l.timeText, LayerHUD)
		return nil
	}

	sinIcon, err := NewIcon(l.catalog, SinAsset+iconSuffix)
	if err != nil {
		return err
	}
	sinIcon.sprite.Rect.X = margin
	sinIcon.sprite.Rect.Y = margin
	l.add(sinIcon, LayerHUD)

	sinBar, err := NewHealthIndicator(l.catalog, l.enemy.health)
	if err != nil {
		return err
	}
	sinBar.sprite.Rect.X = sinIcon.sprite.Rect.Right() + gap
	sinBar.sprite.Rect.Y = margin
	l.add(sinBar, LayerHUD)
	return nil
}

// buildPlatforms places every row one spacing above the previous and
// returns the spawn heights: the ground and every row except the top one.
func (l *Level) buildPlatforms(groundTop int) ([]int, error) {
	spacing := l.cfg.Physics.PlatformSpacing
	slot, border := l.cfg.Physics.SlotWidth, l.cfg.Physics.PlatformBorder

	y := groundTop
	heights := []int{y}
	for _, row := range l.def.Rows {
		y -= spacing
		heights = append(heights, y)
		for _, run := range row {
			platform, err := NewPlatform(l.catalog, run.Asset, run.Length, border)
			if err != nil {
				return nil, err
			}
			platform.sprite.Rect.X = (slot-2*border)*run.X + border
			platform.sprite.Rect.Y = y
			l.add(platform, LayerEnvironment)
		}
	}
	return heights[:len(heights)-1], nil
}

func (l *Level) add(e Entity, layer Layer) {
	l.layers[layer] = append(l.layers[layer], e)
}

func (l *Level) remove(e Entity, layer Layer) {
	entities := l.layers[layer]
	for i, other := range entities {
		if other == e {
			l.layers[layer] = append(entities[:i:i], entities[i+1:]...)
			return
		}
	}
}

func (l *Level) spawnMonster() error {
	m, err := NewMonster(l.catalog, l.tower.sprite, l.monsterHP, l.cfg.Monster.Step)
	if err != nil {
		return err
	}
	l.spawner.Place(&m.sprite.Rect)
	l.monsters = append(l.monsters, m)
	l.add(m, LayerCharacters)
	l.logger.Debug("monster spawned", "x", m.sprite.Rect.X, "bottom", m.sprite.Rect.Bottom(), "active", len(l.monsters))
	return nil
}

// Update advances the level by one tick. It does nothing once the level is over.
func (l *Level) Update(in core.MultiInputFrame) error {
	if l.status == StatusOver {
		return nil
	}
	l.ticks++

	l.resolveCollisions(l.player)
	if l.multiplayer {
		l.resolveCollisions(l.enemy)
	}

	if !l.multiplayer {
		l.elapsedMs = l.clock.Millis() - l.start
		l.timeText.SetText(FormatTime(l.ElapsedSeconds()))
	}

	for _, layer := range Layers {
		for _, e := range l.layers[layer] {
			e.Update(in)
		}
	}

	if !l.multiplayer {
		l.damageTower()
		if err := l.reapMonsters(); err != nil {
			return err
		}
	}

	if err := l.spriteErr(); err != nil {
		return err
	}

	if l.checkOver() {
		l.status = StatusOver
		l.logger.Info("game over", "outcome", l.outcome, "time", FormatTime(l.ElapsedSeconds()), "ticks", l.ticks)
	}
	return nil
}

// resolveCollisions lands p on the first overlapping environment entity in
// insertion order, then lets it hit every overlapping character other
// than itself and the tower.
func (l *Level) resolveCollisions(p *Player) {
	r := p.sprite.Rect
	for _, e := range l.layers[LayerEnvironment] {
		if r.Intersects(e.Sprite().Rect) {
			p.EnvironmentCollision(e.Sprite())
			break
		}
	}

	r = p.sprite.Rect
	for _, e := range l.layers[LayerCharacters] {
		if e == Entity(p) || e == Entity(l.tower) {
			continue
		}
		if r.Intersects(e.Sprite().Rect) {
			p.CharacterCollision(e)
		}
	}
}

// damageTower lets every monster touching the tower wear it down.
func (l *Level) damageTower() {
	if l.towerHit <= 0 {
		return
	}
	for _, m := range l.monsters {
		if m.sprite.Rect.Intersects(l.tower.sprite.Rect) {
			l.tower.health.Damage(l.towerHit)
		}
	}
}

// reapMonsters removes dead monsters and, if any died, spawns new ones
// until the count required at the current time is reached.
func (l *Level) reapMonsters() error {
	alive := l.monsters[:0]
	died := false
	for _, m := range l.monsters {
		if m.health.IsDead() {
			l.remove(m, LayerCharacters)
			died = true
			l.logger.Debug("monster slain", "x", m.sprite.Rect.X, "bottom", m.sprite.Rect.Bottom())
			continue
		}
		alive = append(alive, m)
	}
	clear(l.monsters[len(alive):])
	l.monsters = alive

	if !died {
		return nil
	}
	for len(l.monsters) < l.RequiredMonsters() {
		if err := l.spawnMonster(); err != nil {
			return err
		}
	}
	return nil
}

func (l *Level) spriteErr() error {
	for _, layer := range Layers {
		for _, e := range l.layers[layer] {
			if err := e.Sprite().Err(); err != nil {
				return fmt.Errorf("world: %w", err)
			}
		}
	}
	return nil
}

func (l *Level) checkOver() bool {
	if l.multiplayer {
		switch {
		case l.player.health.IsDead():
			l.outcome = OutcomeSinWins
		case l.enemy.health.IsDead():
			l.outcome = OutcomeTinWins
		default:
			return false
		}
		return true
	}
	if l.tower.health.IsDead() {
		l.outcome = OutcomeTowerFallen
		return true
	}
	return false
}

// RequiredMonsters is the number of monsters that should be alive now.
func (l *Level) RequiredMonsters() int {
	return l.difficulty.MonsterCount(l.ElapsedSeconds())
}

// IsOver reports whether the level reached its terminal state.
func (l *Level) IsOver() bool { return l.status == StatusOver }

// Status returns the state machine's state.
func (l *Level) Status() Status { return l.status }

// Outcome tells how the level ended. It is OutcomeNone while running.
func (l *Level) Outcome() Outcome { return l.outcome }

// ElapsedSeconds is the survival time in whole seconds.
func (l *Level) ElapsedSeconds() int { return int(l.elapsedMs / millisInSecond) }

// TimeText is the survival time as MM:SS.
func (l *Level) TimeText() string { return FormatTime(l.ElapsedSeconds()) }

// Ticks returns the number of updates run so far.
func (l *Level) Ticks() uint64 { return l.ticks }

// Multiplayer reports whether this is a duel.
func (l *Level) Multiplayer() bool { return l.multiplayer }

// Layer returns the entities of one layer in insertion order. The slice
// must not be modified.
func (l *Level) Layer(layer Layer) []Entity { return l.layers[layer] }

// Definition returns the parsed level.
func (l *Level) Definition() *leveldef.Definition { return l.def }

// Viewport returns the playfield geometry.
func (l *Level) Viewport() physics.Viewport { return l.vp }

// Player returns Tin.
func (l *Level) Player() *Player { return l.player }

// Enemy returns Sin, or nil outside a duel.
func (l *Level) Enemy() *Player { return l.enemy }

// Tower returns the defended tower.
func (l *Level) Tower() *Tower { return l.tower }

// Monsters returns the live monsters.
func (l *Level) Monsters() []*Monster { return append([]*Monster(nil), l.monsters...) }

// SpawnHeights returns the heights monsters may appear on.
func (l *Level) SpawnHeights() []int {
	if l.spawner == nil {
		return nil
	}
	return l.spawner.Heights()
}
