package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"xr-engine/config"
	"xr-engine/core"
	"xr-engine/input"
	"xr-engine/opengl"
	"xr-engine/renderer"
	"xr-engine/scene"
	"xr-engine/xr"
)

const loadTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "", "path to a YAML viewer config")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "xr viewer: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := core.NewDefaultLogger("viewer", cfg.Debug)

	window, err := core.NewWindow(core.WindowConfig{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	glRenderer, err := opengl.NewRenderer(log)
	if err != nil {
		return fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}
	defer glRenderer.Destroy()

	loader := scene.NewExtensionLoader(scene.NewGLTFLoader(glRenderer, log))
	loader.Register("obj", scene.NewOBJLoader(glRenderer, log))

	// ── Scene setup ───────────────────────────────────────────────────────────
	world := scene.NewGLTF2Scene(cfg.Scene.URL, loader)
	world.SkyColor = core.ColorFromArray(cfg.Scene.SkyColor)
	if cfg.Scene.URL != "" {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		err := world.Load(ctx)
		cancel()
		if err != nil {
			log.Warnf("continuing with an empty scene: %v", err)
		} else {
			log.Infof("loaded %s", cfg.Scene.URL)
		}
	}

	if world.GLTFNode == nil {
		grid, err := floorGrid(glRenderer)
		if err != nil {
			return err
		}
		world.AddNode(grid)
	}

	fbWidth, fbHeight := window.GetFramebufferSize()
	camera := scene.NewCamera(mgl32.DegToRad(70), float32(fbWidth)/float32(fbHeight), 0.05, 200)
	camera.Position = mgl32.Vec3{0, 1.6, 0}
	world.SetCamera(camera)

	// ── Input visuals ─────────────────────────────────────────────────────────
	inputRenderer := input.NewInputRenderer(glRenderer, input.Config{
		LaserColor:     cfg.Input.LaserColor,
		CursorColor:    cfg.Input.CursorColor,
		CursorDistance: cfg.Input.CursorDistance,
		CursorSegments: cfg.Input.CursorSegments,
		Logger:         log,
	})
	world.AddNode(inputRenderer.Node)

	var controllerMesh *scene.Node
	if cfg.Input.ControllerMesh != "" {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		controllerMesh, err = loader.LoadFromURL(ctx, cfg.Input.ControllerMesh)
		cancel()
		if err != nil {
			log.Warnf("controller mesh: %v", err)
		}
	}
	if controllerMesh == nil {
		if controllerMesh, err = defaultController(glRenderer); err != nil {
			return err
		}
	}
	inputRenderer.SetControllerMesh(controllerMesh)

	engine := renderer.NewRenderEngine(glRenderer, log)
	engine.SetScene(world.Scene)
	engine.Resize(fbWidth, fbHeight)

	controller := NewCameraController()
	desktop := newDesktopInput()
	stage := xr.NewFrameOfReference("stage")

	var gazeKey, handKey, reloadKey toggle
	lastTime := window.Time()
	lastStats := lastTime
	log.Infof("G toggles gaze, H toggles the hand controller, left mouse points, right drag looks")

	for !window.ShouldClose() {
		window.PollEvents()
		if window.IsKeyPressed(core.KeyEscape) {
			break
		}

		now := window.Time()
		deltaTime := float32(now - lastTime)
		lastTime = now

		if gazeKey.Pressed(window.IsKeyPressed(core.KeyG)) {
			desktop.GazeEnabled = !desktop.GazeEnabled
			log.Infof("gaze %v", desktop.GazeEnabled)
		}
		if handKey.Pressed(window.IsKeyPressed(core.KeyH)) {
			desktop.HandEnabled = !desktop.HandEnabled
			log.Infof("hand %v", desktop.HandEnabled)
		}
		if reloadKey.Pressed(window.IsKeyPressed(core.KeyR)) {
			camera.Position = mgl32.Vec3{0, 1.6, 0}
			camera.Yaw, camera.Pitch = 0, 0
		}

		if w, h := window.GetFramebufferSize(); w != fbWidth || h != fbHeight {
			fbWidth, fbHeight = w, h
			engine.Resize(fbWidth, fbHeight)
		}

		controller.Update(window, camera, deltaTime)

		mouseX, mouseY := window.GetCursorPos()
		desktop.Update(camera, float32(mouseX), float32(mouseY),
			float32(window.Width), float32(window.Height),
			window.IsMouseButtonPressed(core.MouseButtonLeft))

		inputRenderer.Reset()
		if err := inputRenderer.AddInputSources(desktop.Frame(), stage); err != nil {
			return fmt.Errorf("input visuals: %w", err)
		}

		if err := engine.Render(); err != nil {
			return err
		}
		window.SwapBuffers()

		if log.DebugEnabled() && now-lastStats > 5 {
			stats := engine.DrawStats()
			log.Debugf("objects %d, primitives %d, blended %d", stats.Objects, stats.Primitives, stats.Blended)
			lastStats = now
		}
	}
	return nil
}
