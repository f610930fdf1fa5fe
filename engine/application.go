package engine

import (
	"context"
	"fmt"

	"github.com/spaghettifunk/wireframe/engine/assets"
	"github.com/spaghettifunk/wireframe/engine/components"
	"github.com/spaghettifunk/wireframe/engine/config"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer"
	"github.com/spaghettifunk/wireframe/engine/renderer/raster"
	"github.com/spaghettifunk/wireframe/engine/scene"
)

// AppState is everything a frame needs. It is owned by the frame driver; hooks
// receive it but must not keep it across goroutines.
type AppState struct {
	Scene    *scene.Scene
	Models   *assets.ModelManager
	Pipeline *renderer.Pipeline
	Surface  *raster.Canvas
	Clock    *core.Clock
	Metrics  *core.Metrics
	// Spins holds angular velocities in radians per second, keyed by entity id.
	Spins map[string]math.Vec3
}

// NewAppState loads every model of the config and builds the scene from it.
func NewAppState(ctx context.Context, cfg *config.Config) (*AppState, error) {
	background, err := config.ParseColor(cfg.Application.Background)
	if err != nil {
		return nil, err
	}
	stroke, err := config.ParseColor(cfg.Application.Stroke)
	if err != nil {
		return nil, err
	}

	state := &AppState{
		Models:   assets.NewModelManager(),
		Pipeline: renderer.NewPipeline(),
		Surface: raster.NewCanvas(raster.CanvasConfig{
			Width:       cfg.Application.Width,
			Height:      cfg.Application.Height,
			Supersample: cfg.Application.Supersample,
			Background:  background,
			Stroke:      stroke,
		}),
		Clock:   core.NewClock(),
		Metrics: core.NewMetrics(),
		Spins:   make(map[string]math.Vec3),
	}

	handles, err := state.loadModels(ctx, cfg.Models)
	if err != nil {
		state.Models.Close()
		return nil, err
	}

	objects := make([]components.Object, 0, len(cfg.Entities)+len(cfg.Cameras))
	for _, e := range cfg.Entities {
		entity := components.NewEntity(components.EntityConfig{
			ID:         e.ID,
			Model:      handles[e.Model],
			Position:   config.Vec3(e.Position),
			Rotation:   config.Vec3(e.Rotation),
			Scale:      config.Vec3(e.Scale),
			Reflection: config.BVec3(e.Reflection),
		})
		state.addSpin(entity.ID(), e.Spin)
		objects = append(objects, entity)
	}

	cameraIDs := make([]string, 0, len(cfg.Cameras))
	for _, c := range cfg.Cameras {
		camera := components.NewCamera(components.CameraConfig{
			EntityConfig: components.EntityConfig{
				ID:       c.ID,
				Position: config.Vec3(c.Position),
				Rotation: config.Vec3(c.Rotation),
			},
			FOV:  c.FOV,
			Near: c.Near,
			Far:  c.Far,
		})
		state.addSpin(camera.ID(), c.Spin)
		objects = append(objects, camera)
		cameraIDs = append(cameraIDs, camera.ID())
	}

	state.Scene = scene.New(scene.Config{
		Entities:     objects,
		Cameras:      cameraIDs,
		ActiveCamera: cfg.ActiveCamera,
	})
	if cfg.ActiveCamera != "" && state.Scene.ActiveCamera() != cfg.ActiveCamera {
		core.LogWarn("camera '%s' not found, using '%s'", cfg.ActiveCamera, state.Scene.ActiveCamera())
	}
	return state, nil
}

func (s *AppState) loadModels(ctx context.Context, models []config.Model) (map[string]string, error) {
	handles := make(map[string]string, len(models))
	for _, m := range models {
		var handle string
		var err error
		switch {
		case m.Builtin == config.BUILTIN_CUBE:
			handle, err = s.Models.LoadModelFromObject(assets.CubeModel())
		case m.Path != "":
			handle, err = s.Models.LoadModel(ctx, m.Path)
		default:
			err = fmt.Errorf("model '%s' has no source", m.Name)
		}
		if err != nil {
			return nil, fmt.Errorf("loading model '%s': %w", m.Name, err)
		}
		handles[m.Name] = handle
	}
	return handles, nil
}

func (s *AppState) addSpin(id string, spin []float64) {
	if v := config.Vec3(spin); v != nil && *v != (math.Vec3{}) {
		s.Spins[id] = *v
	}
}

// rotatable is satisfied by Entity and Camera.
type rotatable interface {
	Rotation() math.Vec3
	SetRotation(math.Vec3Patch)
}

// animate advances every spinning object by deltaTime seconds and rebuilds its
// model matrix.
func (s *AppState) animate(deltaTime float64) {
	if len(s.Spins) == 0 || deltaTime <= 0 {
		return
	}
	for _, obj := range s.Scene.Entities() {
		spin, ok := s.Spins[obj.ID()]
		if !ok {
			continue
		}
		r, ok := obj.(rotatable)
		if !ok {
			continue
		}
		r.SetRotation(r.Rotation().Add(spin.MulScalar(deltaTime)).Patch())
		obj.ComputeModelMatrix()
	}
}
