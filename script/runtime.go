// Package script runs tengo level scripts against a scene. A script defines
// setup(engine, state) and update(engine, state, tick); setup runs on the
// first tick after attach, update on every tick after that.
package script

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/milk9111/stage2d/stage"
)

const lifecycleDispatch = `
if __phase == "setup" {
	setup(__engine, __state)
} else if __phase == "update" {
	update(__engine, __state, __tick)
}
`

// Runtime is a compiled level script.
type Runtime struct {
	compiled *tengo.Compiled
	state    *tengo.Map
	started  bool
}

// Load compiles script source. The script must define setup and update.
func Load(src []byte) (*Runtime, error) {
	full := string(src) + "\n" + lifecycleDispatch
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	_ = s.Add("__state", map[string]any{})
	_ = s.Add("__tick", 0)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("script: compile: %w", err)
	}
	return &Runtime{
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Attach installs the script on the scene's repeating queue. A script error
// deactivates the action.
func (rt *Runtime) Attach(s *stage.Scene) *stage.FrameAction {
	if rt == nil || s == nil {
		return nil
	}
	engine := buildEngine(s)
	var fa *stage.FrameAction
	fa = stage.NewFrameAction(func() {
		if !rt.started {
			rt.started = true
			if err := rt.run("setup", engine, s.Tick()); err != nil {
				log.Printf("script: setup error: %v", err)
				fa.Active = false
				return
			}
		}
		if err := rt.run("update", engine, s.Tick()); err != nil {
			log.Printf("script: update error: %v", err)
			fa.Active = false
		}
	})
	s.AddRepeating(fa)
	return fa
}

func (rt *Runtime) run(phase string, engine *tengo.ImmutableMap, tick int64) error {
	if err := rt.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return err
	}
	if err := rt.compiled.Set("__tick", int(tick)); err != nil {
		return err
	}
	return rt.compiled.Run()
}

func buildEngine(s *stage.Scene) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["spawn_obstacle"] = userFunc("spawn_obstacle", func(args []tengo.Object) tengo.Object {
		x, y, w, h, ok := rectArgs(args)
		if !ok {
			return tengo.FalseValue
		}
		stage.NewObstacle(s, x, y, w, h, false, 0)
		return tengo.TrueValue
	})

	values["spawn_goodie"] = userFunc("spawn_goodie", func(args []tengo.Object) tengo.Object {
		x, y, w, h, ok := rectArgs(args)
		if !ok {
			return tengo.FalseValue
		}
		stage.NewGoodie(s, x, y, w, h, false, 0)
		return tengo.TrueValue
	})

	values["spawn_enemy"] = userFunc("spawn_enemy", func(args []tengo.Object) tengo.Object {
		x, y, w, h, ok := rectArgs(args)
		if !ok || len(args) < 5 {
			return tengo.FalseValue
		}
		damage, ok := floatArg(args[4])
		if !ok {
			return tengo.FalseValue
		}
		stage.NewEnemy(s, x, y, w, h, false, damage, 0)
		return tengo.TrueValue
	})

	values["zoom"] = userFunc("zoom", func(args []tengo.Object) tengo.Object {
		if len(args) < 1 {
			return tengo.FalseValue
		}
		z, ok := floatArg(args[0])
		if !ok || s.Camera() == nil {
			return tengo.FalseValue
		}
		s.Camera().SetZoom(z)
		return tengo.TrueValue
	})

	values["zoom_by"] = userFunc("zoom_by", func(args []tengo.Object) tengo.Object {
		if len(args) < 1 {
			return tengo.FalseValue
		}
		z, ok := floatArg(args[0])
		if !ok || s.Camera() == nil {
			return tengo.FalseValue
		}
		s.Camera().ZoomBy(z)
		return tengo.TrueValue
	})

	values["tilt_multiplier"] = userFunc("tilt_multiplier", func(args []tengo.Object) tengo.Object {
		if len(args) < 1 {
			return tengo.FalseValue
		}
		m, ok := floatArg(args[0])
		if !ok {
			return tengo.FalseValue
		}
		s.Tilt.Multiplier = m
		return tengo.TrueValue
	})

	values["score"] = userFunc("score", func([]tengo.Object) tengo.Object {
		return &tengo.Int{Value: int64(s.Facts.Score)}
	})

	values["heroes_arrived"] = userFunc("heroes_arrived", func([]tengo.Object) tengo.Object {
		return &tengo.Int{Value: int64(s.Facts.HeroesArrived)}
	})

	values["enemies_defeated"] = userFunc("enemies_defeated", func([]tengo.Object) tengo.Object {
		return &tengo.Int{Value: int64(s.Facts.EnemiesDefeated)}
	})

	return &tengo.ImmutableMap{Value: values}
}

func userFunc(name string, fn func(args []tengo.Object) tengo.Object) *tengo.UserFunction {
	return &tengo.UserFunction{Name: name, Value: func(args ...tengo.Object) (tengo.Object, error) {
		return fn(args), nil
	}}
}

func floatArg(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	}
	return 0, false
}

func rectArgs(args []tengo.Object) (x, y, w, h float64, ok bool) {
	if len(args) < 4 {
		return 0, 0, 0, 0, false
	}
	vals := make([]float64, 4)
	for i := 0; i < 4; i++ {
		v, good := floatArg(args[i])
		if !good {
			return 0, 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], true
}
