package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine released its resources
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	state        *AppState
	isRunning    atomic.Bool
	// fixed simulation step in seconds
	frameTime float64
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.Config == nil {
		return nil, fmt.Errorf("engine: game has no config: %w", core.ErrNotInitialized)
	}
	if err := g.Config.Validate(); err != nil {
		core.LogError("%s", err)
		return nil, err
	}
	core.SetLogLevel(core.ParseLogLevel(g.Config.Application.LogLevel))

	return &Engine{
		currentStage: EngineStageUninitialized,
		gameInstance: g,
		frameTime:    1.0 / g.Config.Application.FrameRate,
	}, nil
}

func (e *Engine) Initialize(ctx context.Context) error {
	e.currentStage = EngineStageInitializing

	state, err := NewAppState(ctx, e.gameInstance.Config)
	if err != nil {
		return err
	}
	e.state = state

	core.EventRegister(core.EVENT_CODE_APPLICATION_QUIT, e, e.onEvent)
	state.Models.OnReload(func(handle string) {
		data := core.EventContext{}
		data.Data.C[0] = handle
		core.EventFire(core.EVENT_CODE_MODEL_RELOADED, state.Models, data)
	})

	if e.gameInstance.Config.Application.Watch {
		if err := state.Models.Watch(ctx); err != nil {
			return err
		}
		core.LogInfo("watching %d model(s) for changes", len(state.Models.Handles()))
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(state); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	core.LogInfo("%s initialized: %d object(s), %d camera(s), active camera '%s'",
		e.gameInstance.Config.Application.Name, state.Scene.Len(), len(state.Scene.Cameras()), state.Scene.ActiveCamera())
	return nil
}

// State exposes the frame state, nil before Initialize.
func (e *Engine) State() *AppState {
	return e.state
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

// Frame advances the world by deltaTime seconds and draws it on the surface.
// A scene without an active camera yields an empty frame and ErrNoActiveCamera.
func (e *Engine) Frame(deltaTime float64) (renderer.FrameStats, error) {
	if e.state == nil {
		return renderer.FrameStats{}, core.ErrNotInitialized
	}
	s := e.state
	s.Clock.Tick()

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(s, deltaTime); err != nil {
			return renderer.FrameStats{}, err
		}
	}
	s.animate(deltaTime)

	s.Surface.Clear()
	stats, err := s.Pipeline.RenderFrame(s.Scene, s.Models, s.Surface)
	if err != nil && !errors.Is(err, renderer.ErrNoActiveCamera) {
		return stats, err
	}

	if e.gameInstance.FnRender != nil {
		if rerr := e.gameInstance.FnRender(s, stats, deltaTime); rerr != nil {
			return stats, rerr
		}
	}

	s.Metrics.Update(s.Clock.Tick())
	return stats, err
}

// Run renders the configured number of frames, writing each one to the output
// directory. Zero frames means run until ctx is done or Shutdown is called.
func (e *Engine) Run(ctx context.Context) error {
	if e.state == nil {
		return core.ErrNotInitialized
	}
	app := e.gameInstance.Config.Application
	if err := os.MkdirAll(app.OutputDir, 0o755); err != nil {
		return err
	}

	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.state.Clock.Start()
	defer e.state.Clock.Stop()

	format := strings.ToLower(app.Format)
	for frame := 0; e.isRunning.Load() && (app.Frames == 0 || frame < app.Frames); frame++ {
		if err := ctx.Err(); err != nil {
			core.LogInfo("interrupted after %d frame(s)", frame)
			break
		}

		stats, err := e.Frame(e.frameTime)
		if errors.Is(err, renderer.ErrNoActiveCamera) {
			core.LogWarn("frame %d: %s", frame, err)
		} else if err != nil {
			core.LogError("frame %d failed, shutting down: %s", frame, err)
			return err
		}

		path := filepath.Join(app.OutputDir, fmt.Sprintf("frame_%04d.%s", frame, format))
		if err := e.state.Surface.Save(path); err != nil {
			return err
		}
		core.LogDebug("frame %d: %d entities, %d triangles, %d culled -> %s",
			frame, stats.Entities, stats.Triangles, stats.Culled, path)
	}

	e.state.Clock.Update()
	core.LogInfo("rendered %d frame(s) in %s (avg %.2fms/frame)",
		e.state.Metrics.TotalFrames(), e.state.Clock.Elapsed(), e.state.Metrics.FrameTime())
	return nil
}

// Shutdown stops Run after the current frame and releases the model watcher.
// Safe to call from another goroutine and more than once.
func (e *Engine) Shutdown() error {
	if !e.isRunning.Swap(false) && e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	core.EventUnregister(core.EVENT_CODE_APPLICATION_QUIT, e)

	var errs []error
	if e.gameInstance.FnShutdown != nil {
		errs = append(errs, e.gameInstance.FnShutdown())
	}
	if e.state != nil {
		errs = append(errs, e.state.Models.Close())
	}
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT received, stopping after this frame.")
		e.isRunning.Store(false)
	}
	// let other listeners see it too
	return false
}
