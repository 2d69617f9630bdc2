// Command open3dview is an interactive point-cloud viewer with screen
// and depth capture.
//
// Key bindings: S captures the screen, D captures the depth buffer,
// R resets the viewpoint, Esc quits. Captures land in the configured
// capture directory with timestamped names plus a camera JSON sidecar.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/flyaudio/Open3D/visualization"
	"github.com/flyaudio/Open3D/visualization/glview"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	var (
		configPath = flag.String("config", "", "optional TOML config file")
		width      = flag.Int("width", 0, "window width (overrides config)")
		height     = flag.Int("height", 0, "window height (overrides config)")
		verbose    = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *verbose {
		visualization.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
			&slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	win, err := glview.NewWindow("Open3D", cfg.Width, cfg.Height)
	if err != nil {
		// Context initialization failure is fatal to the session.
		log.Fatalf("open window: %v", err)
	}
	defer win.Close()

	// Capture buffers are sized from the drawable, which differs from
	// the window size on high-DPI displays.
	fbWidth, fbHeight := win.FramebufferSize()
	view := visualization.NewViewControl(fbWidth, fbHeight)

	opt := visualization.DefaultRenderOption()
	opt.BackgroundColor = [3]float32{
		float32(cfg.Background[0]),
		float32(cfg.Background[1]),
		float32(cfg.Background[2]),
	}
	vis := visualization.NewVisualizer(win, view,
		visualization.WithRenderOption(opt),
		visualization.WithCaptureDir(cfg.CaptureDir),
	)
	vis.AddRenderable(newDemoPointCloud(cfg.PointCount))

	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			win.SetShouldClose(true)
		case glfw.KeyS:
			if err := vis.CaptureScreenImage("", true); err != nil {
				log.Printf("screen capture: %v", err)
			}
		case glfw.KeyD:
			if err := vis.CaptureDepthImage("", true, cfg.DepthScale); err != nil {
				log.Printf("depth capture: %v", err)
			}
		case glfw.KeyR:
			vis.ResetViewPoint()
		}
	})

	for !win.ShouldClose() {
		w, h := win.FramebufferSize()
		view.SetWindowSize(w, h)
		if err := vis.Render(); err != nil {
			log.Fatalf("render: %v", err)
		}
		win.PollEvents()
	}
}
