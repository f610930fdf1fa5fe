package testbed

import (
	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/config"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/renderer"
)

// TestGame drives the demo scene: it cycles through the cameras every
// CameraInterval seconds and reports frame statistics.
type TestGame struct {
	*engine.Game
}

type gameState struct {
	// seconds spent on the current camera
	onCamera       float64
	cameraInterval float64
	switches       int
}

func NewTestGame(cfg *config.Config, cameraInterval float64) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			Config: cfg,
			State: &gameState{
				cameraInterval: cameraInterval,
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnRender = tg.Render
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize(app *engine.AppState) error {
	core.LogInfo("testbed ready, %d camera(s): %v", len(app.Scene.Cameras()), app.Scene.Cameras())
	core.EventRegister(core.EVENT_CODE_MODEL_RELOADED, g, g.onEvent)
	core.EventRegister(core.EVENT_CODE_CAMERA_SWITCHED, g, g.onEvent)
	return nil
}

func (g *TestGame) Update(app *engine.AppState, deltaTime float64) error {
	state := g.state()
	if state.cameraInterval <= 0 || len(app.Scene.Cameras()) < 2 {
		return nil
	}
	state.onCamera += deltaTime
	if state.onCamera >= state.cameraInterval {
		state.onCamera -= state.cameraInterval
		previous := app.Scene.ActiveCamera()
		app.Scene.SwitchToNextCamera()
		state.switches++

		data := core.EventContext{}
		data.Data.C[0] = previous
		data.Data.C[1] = app.Scene.ActiveCamera()
		core.EventFire(core.EVENT_CODE_CAMERA_SWITCHED, g, data)
	}
	return nil
}

func (g *TestGame) Render(app *engine.AppState, stats renderer.FrameStats, deltaTime float64) error {
	if stats.Culled > 0 {
		core.LogDebug("%d triangle(s) behind camera '%s' were dropped", stats.Culled, app.Scene.ActiveCamera())
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	core.EventUnregister(core.EVENT_CODE_MODEL_RELOADED, g)
	core.EventUnregister(core.EVENT_CODE_CAMERA_SWITCHED, g)
	core.LogInfo("testbed shutting down after %d camera switch(es)", g.state().switches)
	return nil
}

func (g *TestGame) onEvent(code core.SystemEventCode, sender interface{}, listenerInst interface{}, data core.EventContext) bool {
	switch code {
	case core.EVENT_CODE_MODEL_RELOADED:
		core.LogInfo("model %s reloaded, next frame picks it up", data.Data.C[0])
	case core.EVENT_CODE_CAMERA_SWITCHED:
		core.LogDebug("camera '%s' -> '%s'", data.Data.C[0], data.Data.C[1])
	}
	return false
}
