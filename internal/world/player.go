package world

import (
	"github.com/vovakirdan/tin-quest/internal/anim"
	"github.com/vovakirdan/tin-quest/internal/assets"
	"github.com/vovakirdan/tin-quest/internal/core"
	"github.com/vovakirdan/tin-quest/internal/physics"
)

// Player asset names.
const (
	TinAsset = "Tin"
	SinAsset = "Sin"
)

// Player motion states beyond standing.
const (
	StateRunningLeft  = "RunningLeft"
	StateRunningRight = "RunningRight"
	StateAttackLeft   = "AttackLeft"
	StateAttackRight  = "AttackRight"
)

// PlayerParams are the tunables of a player character.
type PlayerParams struct {
	Health        Fixed
	Step          int
	JumpOffset    int
	JumpLimit     int
	Attack        Fixed
	LandTolerance int
	SnapThreshold int
	FrameMillis   int64
	Gravity       int
}

// Player is a keyboard-controlled character: Tin, or Sin in a duel.
type Player struct {
	id     core.PlayerID
	sprite *Sprite
	health *Health
	body   *physics.Body
	vp     physics.Viewport
	params PlayerParams

	runLeft     *anim.Animation
	runRight    *anim.Animation
	attackLeft  *anim.Animation
	attackRight *anim.Animation

	facingLeft bool
	attacking  bool
	jumps      int
}

// NewPlayer creates the character controlled by id. Sin is Player2.
func NewPlayer(catalog assets.Catalog, clock core.Clock, id core.PlayerID, vp physics.Viewport, params PlayerParams, facingLeft bool) (*Player, error) {
	name := TinAsset
	if id == core.Player2 {
		name = SinAsset
	}
	initial := StateStandingRight
	if facingLeft {
		initial = StateStandingLeft
	}

	sprite, err := newSprite(catalog, name, initial,
		StateStandingLeft, StateStandingRight,
		StateRunningLeft, StateRunningRight,
		StateAttackLeft, StateAttackRight)
	if err != nil {
		return nil, err
	}

	p := &Player{
		id:         id,
		sprite:     sprite,
		health:     NewHealth(params.Health),
		vp:         vp,
		params:     params,
		facingLeft: facingLeft,
	}
	p.body = physics.NewBody(params.Gravity, p.land)

	frame := params.FrameMillis
	p.runLeft = anim.New(sprite, clock).AddFrame(StateStandingLeft, frame).AddFrame(StateRunningLeft, frame)
	p.runRight = anim.New(sprite, clock).AddFrame(StateStandingRight, frame).AddFrame(StateRunningRight, frame)
	p.attackLeft = anim.New(sprite, clock).AddFrame(StateStandingLeft, frame).AddFrame(StateAttackLeft, frame)
	p.attackRight = anim.New(sprite, clock).AddFrame(StateStandingRight, frame).AddFrame(StateAttackRight, frame)
	return p, nil
}

// Sprite implements Entity.
func (p *Player) Sprite() *Sprite { return p.sprite }

// Health implements Entity.
func (p *Player) Health() *Health { return p.health }

// ID returns the controlling player.
func (p *Player) ID() core.PlayerID { return p.id }

// Jumps returns how many jump ticks were used since the last landing.
func (p *Player) Jumps() int { return p.jumps }

// Attacking reports whether the player attacked during the last update.
func (p *Player) Attacking() bool { return p.attacking }

// FacingLeft reports the current facing.
func (p *Player) FacingLeft() bool { return p.facingLeft }

func (p *Player) land() {
	p.jumps = 0
}

// Update reads this player's input, moves, animates and falls.
// Attack wins over movement; jumping works alongside either.
func (p *Player) Update(in core.MultiInputFrame) {
	frame := in.Player(p.id)
	p.attacking = false

	switch {
	case frame.Has(core.ActionAttack):
		p.runLeft.Stop()
		p.runRight.Stop()
		if p.facingLeft {
			p.attackRight.Stop()
			p.attackLeft.Play()
		} else {
			p.attackLeft.Stop()
			p.attackRight.Play()
		}
		p.attacking = true

	case frame.Has(core.ActionLeft):
		p.attackLeft.Stop()
		p.attackRight.Stop()
		p.runRight.Stop()
		p.facingLeft = true
		p.runLeft.Play()
		p.sprite.Rect.X -= p.params.Step

	case frame.Has(core.ActionRight):
		p.attackLeft.Stop()
		p.attackRight.Stop()
		p.runLeft.Stop()
		p.facingLeft = false
		p.runRight.Play()
		p.sprite.Rect.X += p.params.Step

	default:
		p.runLeft.Stop()
		p.runRight.Stop()
		p.attackLeft.Stop()
		p.attackRight.Stop()
	}

	if frame.Has(core.ActionJump) && p.jumps < p.params.JumpLimit {
		p.sprite.Rect.Y -= p.params.JumpOffset
		p.jumps++
	}

	p.body.Step(&p.sprite.Rect, p.vp)
}

// EnvironmentCollision lands the player on tile when its feet are only
// slightly inside it. Deeper overlaps, like jumping up through a platform
// from below, are ignored.
func (p *Player) EnvironmentCollision(tile *Sprite) {
	depth := p.sprite.Rect.Bottom() - tile.Rect.Y
	if depth <= 0 || depth > p.params.LandTolerance {
		return
	}
	if depth > p.params.SnapThreshold {
		p.sprite.Rect.SetBottom(tile.Rect.Y)
	}
	p.jumps = 0
}

// CharacterCollision hurts other while attacking, if it can be hurt.
func (p *Player) CharacterCollision(other Entity) {
	if !p.attacking {
		return
	}
	if h := other.Health(); h != nil {
		h.Damage(p.params.Attack)
	}
}
