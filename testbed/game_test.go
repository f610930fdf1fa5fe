package testbed

import (
	"context"
	"testing"

	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamerasCycle(t *testing.T) {
	cfg := config.Default()
	cfg.Application.Width = 32
	cfg.Application.Height = 32
	cfg.Cameras = append(cfg.Cameras, config.Camera{ID: "side", Position: []float64{3, 0, -3}})

	tg := NewTestGame(cfg, 1.0)
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	defer e.Shutdown()

	sc := e.State().Scene
	assert.Equal(t, "main", sc.ActiveCamera())

	_, err = e.Frame(0.6)
	require.NoError(t, err)
	assert.Equal(t, "main", sc.ActiveCamera())

	_, err = e.Frame(0.6)
	require.NoError(t, err)
	assert.Equal(t, "side", sc.ActiveCamera())

	_, err = e.Frame(1.0)
	require.NoError(t, err)
	assert.Equal(t, "main", sc.ActiveCamera())
	assert.Equal(t, 2, tg.state().switches)
}

func TestSingleCameraNeverSwitches(t *testing.T) {
	tg := NewTestGame(config.Default(), 0.1)
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	defer e.Shutdown()

	for i := 0; i < 5; i++ {
		_, err := e.Frame(1)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, tg.state().switches)
}
