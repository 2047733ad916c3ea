package stage

import (
	"github.com/milk9111/stage2d/common"
	"github.com/milk9111/stage2d/physics"
)

// HeroState carries hero-only fields.
type HeroState struct {
	Strength float64
}

// EnemyState carries enemy-only fields. Damage is dealt to heroes on
// contact; Toughness is worn down by projectiles.
type EnemyState struct {
	Damage    float64
	Toughness float64
}

// ObstacleState carries the optional projectile-collision callback other
// kinds query. Obstacles themselves never react to contacts.
type ObstacleState struct {
	ProjectileCollision func(obstacle, projectile *Actor, c physics.Contact)
}

// DestinationState tracks how many heroes a destination holds and the four
// activation thresholds the score subsystem reads.
type DestinationState struct {
	Capacity   int
	Held       int
	Thresholds [4]int
}

// SetActivationScore stores the four gating thresholds in order.
func (d *DestinationState) SetActivationScore(s1, s2, s3, s4 int) {
	d.Thresholds = [4]int{s1, s2, s3, s4}
}

// SetHeroCount sets how many heroes the destination can hold.
func (d *DestinationState) SetHeroCount(n int) {
	d.Capacity = n
}

// TryAccept admits one hero if there is room.
func (d *DestinationState) TryAccept() bool {
	if d.Held >= d.Capacity {
		return false
	}
	d.Held++
	return true
}

// GoodieState carries the reward granted when a hero collects the goodie.
type GoodieState struct {
	Score         int
	StrengthBoost float64
}

// ProjectileState is described in NewProjectilePool; Origin is fixed at
// throw time and drives the range cull.
type ProjectileState struct {
	Damage             float64
	MaxRange           float64
	DisappearOnCollide bool
	Origin             common.Vec2

	pool *ProjectilePool
}

func shapeFor(round bool) physics.ShapeKind {
	if round {
		return physics.ShapeCircle
	}
	return physics.ShapeBox
}

// NewObstacle places a static obstacle. Obstacles are terminal in the
// collision hierarchy.
func NewObstacle(s *Scene, x, y, w, h float64, round bool, z int) *Actor {
	a := s.addActor(KindObstacle, physics.BodyDef{
		Type:     physics.Static,
		Shape:    shapeFor(round),
		Pos:      common.Vec2{X: x, Y: y},
		Width:    w,
		Height:   h,
		Friction: 0.8,
	}, w, h, z)
	a.Obst = &ObstacleState{}
	return a
}

// NewHero places a dynamic hero with strength 1.
func NewHero(s *Scene, x, y, w, h float64, round bool, z int) *Actor {
	a := s.addActor(KindHero, physics.BodyDef{
		Type:     physics.Dynamic,
		Shape:    shapeFor(round),
		Pos:      common.Vec2{X: x, Y: y},
		Width:    w,
		Height:   h,
		Friction: 0.6,
	}, w, h, z)
	a.Hero = &HeroState{Strength: 1}
	return a
}

// NewEnemy places an enemy dealing the given damage on contact.
func NewEnemy(s *Scene, x, y, w, h float64, round bool, damage float64, z int) *Actor {
	a := s.addActor(KindEnemy, physics.BodyDef{
		Type:     physics.Dynamic,
		Shape:    shapeFor(round),
		Pos:      common.Vec2{X: x, Y: y},
		Width:    w,
		Height:   h,
		Friction: 0.6,
	}, w, h, z)
	a.Enemy = &EnemyState{Damage: damage, Toughness: damage}
	return a
}

// NewGoodie places a static sensor goodie worth one score point.
func NewGoodie(s *Scene, x, y, w, h float64, round bool, z int) *Actor {
	a := s.addActor(KindGoodie, physics.BodyDef{
		Type:   physics.Static,
		Shape:  shapeFor(round),
		Pos:    common.Vec2{X: x, Y: y},
		Width:  w,
		Height: h,
		Sensor: true,
	}, w, h, z)
	a.Goodie = &GoodieState{Score: 1}
	return a
}

// NewDestination places a static sensor destination holding one hero.
func NewDestination(s *Scene, x, y, w, h float64, round bool, z int) *Actor {
	a := s.addActor(KindDestination, physics.BodyDef{
		Type:   physics.Static,
		Shape:  shapeFor(round),
		Pos:    common.Vec2{X: x, Y: y},
		Width:  w,
		Height: h,
		Sensor: true,
	}, w, h, z)
	a.Dest = &DestinationState{Capacity: 1}
	return a
}
