package stage

import "github.com/milk9111/stage2d/physics"

// CollideFunc is the collision response for one actor kind. It runs with
// self's kind behavior; other may be any kind.
type CollideFunc func(s *Scene, self, other *Actor, c physics.Contact)

// collideFor selects the behavior by tag. Obstacle, Destination, Goodie, and
// Enemy are terminal: they never react on their own, so precedence emerges
// from the reacting kinds alone.
func collideFor(k Kind) CollideFunc {
	switch k {
	case KindHero:
		return heroCollide
	case KindProjectile:
		return projectileCollide
	case KindEnemy, KindObstacle, KindDestination, KindGoodie:
		return nil
	}
	return nil
}

// dispatchContact resolves a physics contact to its owning actors and runs
// both behaviors: A with B first, then B with A.
func (s *Scene) dispatchContact(oa, ob any, c physics.Contact) {
	a, _ := oa.(*Actor)
	b, _ := ob.(*Actor)
	if a == nil || b == nil || !a.Enabled || !b.Enabled {
		return
	}
	if fn := collideFor(a.Kind); fn != nil {
		fn(s, a, b, c)
	}
	if fn := collideFor(b.Kind); fn != nil {
		fn(s, b, a, c)
	}
}

// contactAllowed is the pre-solve filter: pass-through pairs and contacts on
// a disallowed side are suppressed before the physics engine resolves them.
func (s *Scene) contactAllowed(oa, ob any, c physics.Contact) bool {
	a, _ := oa.(*Actor)
	b, _ := ob.(*Actor)
	if a == nil || b == nil {
		return true
	}
	if a.passThrough != 0 && a.passThrough == b.passThrough {
		return false
	}
	return sideAllows(a, b) && sideAllows(b, a)
}

// sideAllows reports whether one-sided actor a accepts a contact from b.
// The side names the face of a that accepts: a top-sided platform only
// collides with bodies above it.
func sideAllows(a, b *Actor) bool {
	if a.OneSided == SideNone || a.Body == nil || b.Body == nil {
		return true
	}
	pa := a.Body.Position()
	pb := b.Body.Position()
	switch a.OneSided {
	case SideTop:
		return pb.Y < pa.Y
	case SideBottom:
		return pb.Y > pa.Y
	case SideLeft:
		return pb.X < pa.X
	case SideRight:
		return pb.X > pa.X
	}
	return true
}

func heroCollide(s *Scene, self, other *Actor, c physics.Contact) {
	h := self.Hero
	if h == nil {
		return
	}
	switch other.Kind {
	case KindEnemy:
		e := other.Enemy
		if e == nil {
			return
		}
		if h.Strength > e.Damage {
			h.Strength -= e.Damage
			s.Remove(other, false)
			s.Facts.EnemiesDefeated++
			return
		}
		s.Remove(self, false)
	case KindGoodie:
		g := other.Goodie
		if g == nil {
			return
		}
		s.Remove(other, true)
		s.Facts.GoodiesCollected++
		s.Facts.Score += g.Score
		h.Strength += g.StrengthBoost
	case KindDestination:
		d := other.Dest
		if d == nil || !d.TryAccept() {
			return
		}
		s.Remove(self, true)
		s.Facts.HeroesArrived++
	}
}

func projectileCollide(s *Scene, self, other *Actor, c physics.Contact) {
	p := self.Proj
	if p == nil {
		return
	}
	if other.Kind == KindObstacle {
		if ob := other.Obst; ob != nil && ob.ProjectileCollision != nil {
			ob.ProjectileCollision(other, self, c)
			return
		}
	} else if other.Kind == KindProjectile && !p.DisappearOnCollide {
		return
	}
	// Sensors never consume projectiles.
	if other.Body != nil && other.Body.FirstShapeIsSensor() {
		return
	}
	if other.Kind == KindEnemy && other.Enemy != nil {
		other.Enemy.Toughness -= p.Damage
		if other.Enemy.Toughness <= 0 {
			s.Remove(other, false)
			s.Facts.EnemiesDefeated++
		}
	}
	s.Remove(self, false)
}
