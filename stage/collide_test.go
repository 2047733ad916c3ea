package stage

import (
	"testing"

	"github.com/milk9111/stage2d/physics"
)

func TestHeroDefeatsWeakerEnemy(t *testing.T) {
	s := newTestScene()
	hero := NewHero(s, 0, 0, 32, 32, false, 0)
	hero.Hero.Strength = 5
	enemy := NewEnemy(s, 200, 0, 32, 32, false, 2, 0)

	s.dispatchContact(hero, enemy, physics.Contact{})

	if hero.removed {
		t.Fatalf("hero removed after winning")
	}
	if hero.Hero.Strength != 3 {
		t.Fatalf("strength = %v, want 3", hero.Hero.Strength)
	}
	if enemy.Enabled {
		t.Fatalf("defeated enemy still enabled")
	}
	if s.Facts.EnemiesDefeated != 1 {
		t.Fatalf("EnemiesDefeated = %d, want 1", s.Facts.EnemiesDefeated)
	}
}

func TestEnemyDefeatsEqualOrStrongerHero(t *testing.T) {
	cases := []struct {
		name     string
		strength float64
		damage   float64
	}{
		{"equal", 2, 2},
		{"stronger enemy", 1, 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestScene()
			hero := NewHero(s, 0, 0, 32, 32, false, 0)
			hero.Hero.Strength = c.strength
			enemy := NewEnemy(s, 200, 0, 32, 32, false, c.damage, 0)

			s.dispatchContact(hero, enemy, physics.Contact{})

			if hero.Enabled {
				t.Fatalf("hero survived")
			}
			if !enemy.Enabled {
				t.Fatalf("enemy removed despite winning")
			}
			if s.Facts.EnemiesDefeated != 0 {
				t.Fatalf("EnemiesDefeated = %d, want 0", s.Facts.EnemiesDefeated)
			}
		})
	}
}

func TestHeroCollectsGoodie(t *testing.T) {
	s := newTestScene()
	hero := NewHero(s, 0, 0, 32, 32, false, 0)
	goodie := NewGoodie(s, 200, 0, 16, 16, false, 0)
	goodie.Goodie.Score = 4
	goodie.Goodie.StrengthBoost = 2

	notified := 0
	s.OnRemove = func(*Actor) { notified++ }

	s.dispatchContact(hero, goodie, physics.Contact{})

	if goodie.Enabled {
		t.Fatalf("collected goodie still enabled")
	}
	if notified != 0 {
		t.Fatalf("goodie collection must be a quiet removal")
	}
	if s.Facts.Score != 4 || s.Facts.GoodiesCollected != 1 {
		t.Fatalf("facts = %+v, want score 4 and 1 goodie", s.Facts)
	}
	if hero.Hero.Strength != 3 {
		t.Fatalf("strength = %v, want 1+2", hero.Hero.Strength)
	}
}

func TestDestinationAcceptsUpToCapacity(t *testing.T) {
	s := newTestScene()
	dest := NewDestination(s, 0, 0, 48, 48, false, 0)
	dest.Dest.SetHeroCount(2)

	for i := 0; i < 3; i++ {
		hero := NewHero(s, 200, float64(i)*100, 32, 32, false, 0)
		s.dispatchContact(hero, dest, physics.Contact{})
		wantGone := i < 2
		if hero.Enabled == wantGone {
			t.Fatalf("hero %d enabled = %v, want %v", i, hero.Enabled, !wantGone)
		}
	}

	if s.Facts.HeroesArrived != 2 {
		t.Fatalf("HeroesArrived = %d, want 2", s.Facts.HeroesArrived)
	}
	if dest.Dest.Held != 2 {
		t.Fatalf("Held = %d, want 2", dest.Dest.Held)
	}
}

func TestDispatchOrderIsFirstThenSecond(t *testing.T) {
	// Both ends react: a hero thrown as the second argument must still run
	// its behavior after the first argument's.
	s := newTestScene()
	hero := NewHero(s, 0, 0, 32, 32, false, 0)
	hero.Hero.Strength = 5
	enemy := NewEnemy(s, 200, 0, 32, 32, false, 2, 0)

	s.dispatchContact(enemy, hero, physics.Contact{})

	if enemy.Enabled {
		t.Fatalf("hero behavior did not run from second position")
	}
	if s.Facts.EnemiesDefeated != 1 {
		t.Fatalf("EnemiesDefeated = %d, want 1", s.Facts.EnemiesDefeated)
	}
}

func TestDispatchSkipsDisabledActors(t *testing.T) {
	s := newTestScene()
	hero := NewHero(s, 0, 0, 32, 32, false, 0)
	goodie := NewGoodie(s, 200, 0, 16, 16, false, 0)
	goodie.Enabled = false

	s.dispatchContact(hero, goodie, physics.Contact{})

	if s.Facts.GoodiesCollected != 0 {
		t.Fatalf("disabled goodie was collected")
	}
}

func TestTerminalKindsNeverReact(t *testing.T) {
	for _, k := range []Kind{KindEnemy, KindObstacle, KindDestination, KindGoodie} {
		if collideFor(k) != nil {
			t.Errorf("%s has a collision behavior, want none", k)
		}
	}
	if collideFor(KindHero) == nil || collideFor(KindProjectile) == nil {
		t.Fatalf("reacting kinds missing their behavior")
	}
}

func TestContactAllowedPassThrough(t *testing.T) {
	cases := []struct {
		name  string
		idA   uint
		idB   uint
		allow bool
	}{
		{"both zero", 0, 0, true},
		{"one tagged", 3, 0, true},
		{"different ids", 3, 4, true},
		{"same nonzero id", 3, 3, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestScene()
			a := NewHero(s, 0, 0, 32, 32, false, 0)
			b := NewEnemy(s, 200, 0, 32, 32, false, 1, 0)
			a.SetPassThrough(c.idA)
			b.SetPassThrough(c.idB)

			if got := s.contactAllowed(a, b, physics.Contact{}); got != c.allow {
				t.Fatalf("contactAllowed = %v, want %v", got, c.allow)
			}
		})
	}
}

func TestSideAllowsByRelativePosition(t *testing.T) {
	cases := []struct {
		name   string
		side   Side
		bx, by float64
		allow  bool
	}{
		{"top accepts above", SideTop, 0, -50, true},
		{"top rejects below", SideTop, 0, 50, false},
		{"bottom accepts below", SideBottom, 0, 50, true},
		{"bottom rejects above", SideBottom, 0, -50, false},
		{"left accepts left", SideLeft, -50, 0, true},
		{"left rejects right", SideLeft, 50, 0, false},
		{"right accepts right", SideRight, 50, 0, true},
		{"right rejects left", SideRight, -50, 0, false},
		{"none accepts anything", SideNone, 0, 50, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := newTestScene()
			platform := NewObstacle(s, 0, 0, 100, 20, false, 0)
			platform.SetOneSided(c.side)
			body := NewHero(s, c.bx, c.by, 32, 32, false, 0)

			if got := sideAllows(platform, body); got != c.allow {
				t.Fatalf("sideAllows = %v, want %v", got, c.allow)
			}
			// One-sidedness on one actor never restricts the other's faces.
			if !sideAllows(body, platform) {
				t.Fatalf("plain actor rejected a contact")
			}
		})
	}
}
