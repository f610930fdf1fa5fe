package engine

import (
	"github.com/spaghettifunk/wireframe/engine/config"
	"github.com/spaghettifunk/wireframe/engine/renderer"
)

// Game plugs application code into the frame loop. Every hook is optional.
type Game struct {
	Config       *config.Config
	State        interface{}
	FnInitialize Initialize
	FnUpdate     Update
	FnRender     Render
	FnShutdown   Shutdown
}

type Initialize func(app *AppState) error
type Update func(app *AppState, deltaTime float64) error
type Render func(app *AppState, stats renderer.FrameStats, deltaTime float64) error
type Shutdown func() error
