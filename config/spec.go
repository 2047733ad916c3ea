// Package config loads level and actor specs from YAML and builds scenes
// from them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/stage2d/common"
	"github.com/milk9111/stage2d/physics"
	"github.com/milk9111/stage2d/render"
	"github.com/milk9111/stage2d/stage"
)

// ActorSpec describes one placed actor.
type ActorSpec struct {
	Kind        string  `yaml:"kind"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	W           float64 `yaml:"w"`
	H           float64 `yaml:"h"`
	Z           int     `yaml:"z"`
	Round       bool    `yaml:"round"`
	PassThrough uint    `yaml:"pass_through"`
	OneSided    string  `yaml:"one_sided"`
	Tilt        bool    `yaml:"tilt"`
	ChaseCamera bool    `yaml:"chase_camera"`

	// Kind-specific knobs.
	Damage          float64 `yaml:"damage"`
	Capacity        int     `yaml:"capacity"`
	ActivationScore []int   `yaml:"activation_score"`
	Score           int     `yaml:"score"`
}

// CameraSpec sizes the viewport.
type CameraSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Zoom   float64 `yaml:"zoom"`
}

// TiltSpec configures tilt handling.
type TiltSpec struct {
	Multiplier float64 `yaml:"multiplier"`
	AsVelocity bool    `yaml:"as_velocity"`
}

// ProjectileSpec configures the level's projectile pool, if any.
type ProjectileSpec struct {
	Size     int     `yaml:"size"`
	W        float64 `yaml:"w"`
	H        float64 `yaml:"h"`
	Round    bool    `yaml:"round"`
	Damage   float64 `yaml:"damage"`
	MaxRange float64 `yaml:"max_range"`
}

// LevelSpec is the root document for one level.
type LevelSpec struct {
	Name       string          `yaml:"name"`
	GravityX   float64         `yaml:"gravity_x"`
	GravityY   float64         `yaml:"gravity_y"`
	Camera     CameraSpec      `yaml:"camera"`
	Tilt       TiltSpec        `yaml:"tilt"`
	Projectile *ProjectileSpec `yaml:"projectiles"`
	Actors     []ActorSpec     `yaml:"actors"`
	Script     string          `yaml:"script"`
}

// LoadSpec reads and unmarshals any YAML spec type from a file.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := os.ReadFile(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

func parseSide(s string) (stage.Side, error) {
	switch s {
	case "", "none":
		return stage.SideNone, nil
	case "top":
		return stage.SideTop, nil
	case "right":
		return stage.SideRight, nil
	case "bottom":
		return stage.SideBottom, nil
	case "left":
		return stage.SideLeft, nil
	}
	return stage.SideNone, fmt.Errorf("config: unknown one_sided value %q", s)
}

// BuildScene realizes a level spec into a scene backed by a fresh Chipmunk
// world. The returned pool is nil when the level declares no projectiles.
func BuildScene(spec LevelSpec) (*stage.Scene, *stage.ProjectilePool, error) {
	camW, camH := spec.Camera.Width, spec.Camera.Height
	if camW <= 0 || camH <= 0 {
		camW, camH = 1280, 720
	}
	camera := render.NewCamera(camW, camH)
	if spec.Camera.Zoom > 0 {
		camera.SetZoom(spec.Camera.Zoom)
	}

	world := physics.NewChipmunkWorld(common.Vec2{X: spec.GravityX, Y: spec.GravityY})
	s := stage.NewScene(world, camera)
	if spec.Tilt.Multiplier != 0 {
		s.Tilt = stage.TiltConfig{Multiplier: spec.Tilt.Multiplier, AsVelocity: spec.Tilt.AsVelocity}
	}

	for i, as := range spec.Actors {
		a, err := buildActor(s, as)
		if err != nil {
			return nil, nil, fmt.Errorf("config: actor %d: %w", i, err)
		}
		if as.ChaseCamera {
			s.SetCameraChase(a)
		}
	}

	var pool *stage.ProjectilePool
	if p := spec.Projectile; p != nil && p.Size > 0 {
		pool = stage.NewProjectilePool(s, p.Size, p.W, p.H, p.Round, 1)
		if p.Damage > 0 {
			pool.Damage = p.Damage
		}
		if p.MaxRange > 0 {
			pool.MaxRange = p.MaxRange
		}
	}

	return s, pool, nil
}

func buildActor(s *stage.Scene, as ActorSpec) (*stage.Actor, error) {
	var a *stage.Actor
	switch as.Kind {
	case "hero":
		a = stage.NewHero(s, as.X, as.Y, as.W, as.H, as.Round, as.Z)
	case "enemy":
		a = stage.NewEnemy(s, as.X, as.Y, as.W, as.H, as.Round, as.Damage, as.Z)
	case "obstacle":
		a = stage.NewObstacle(s, as.X, as.Y, as.W, as.H, as.Round, as.Z)
	case "destination":
		a = stage.NewDestination(s, as.X, as.Y, as.W, as.H, as.Round, as.Z)
		if as.Capacity > 0 {
			a.Dest.SetHeroCount(as.Capacity)
		}
		if n := len(as.ActivationScore); n != 0 {
			if n != 4 {
				return nil, fmt.Errorf("activation_score needs 4 values, got %d", n)
			}
			t := as.ActivationScore
			a.Dest.SetActivationScore(t[0], t[1], t[2], t[3])
		}
	case "goodie":
		a = stage.NewGoodie(s, as.X, as.Y, as.W, as.H, as.Round, as.Z)
		if as.Score > 0 {
			a.Goodie.Score = as.Score
		}
	default:
		return nil, fmt.Errorf("unknown kind %q", as.Kind)
	}

	if as.PassThrough != 0 {
		a.SetPassThrough(as.PassThrough)
	}
	side, err := parseSide(as.OneSided)
	if err != nil {
		return nil, err
	}
	a.SetOneSided(side)
	if as.Tilt {
		a.SetMoveByTilting(s)
	}
	return a, nil
}
