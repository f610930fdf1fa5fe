/*
Renders the scene described by a config file into a sequence of images.
Without -config a spinning cube is rendered.
*/
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/wireframe/engine"
	"github.com/spaghettifunk/wireframe/engine/config"
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/testbed"
)

func main() {
	configPath := flag.String("config", "", "scene description (.toml, .yaml)")
	frames := flag.Int("frames", 0, "number of frames to render, overrides the config")
	outputDir := flag.String("out", "", "output directory, overrides the config")
	format := flag.String("format", "", "image format: webp or png, overrides the config")
	logLevel := flag.String("log-level", "", "debug, info, warn or error, overrides the config")
	cameraInterval := flag.Float64("camera-interval", 2, "seconds between camera switches, 0 disables")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			core.LogFatal("%s", err)
		}
	}
	cfg.Override(config.Flags{
		Frames:    *frames,
		OutputDir: *outputDir,
		Format:    *format,
		LogLevel:  *logLevel,
	})

	tb := testbed.NewTestGame(cfg, *cameraInterval)

	engine, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("%s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := engine.Initialize(ctx); err != nil {
		core.LogFatal("%s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		core.EventFire(core.EVENT_CODE_APPLICATION_QUIT, nil, core.EventContext{})
	}()

	// run engine
	runErr := engine.Run(ctx)
	if err := engine.Shutdown(); err != nil {
		core.LogError("%s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}
