package main

import (
	"flag"
	"math"
	"runtime"
	"time"

	"github.com/gekko3d/playercam"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "YAML config file (defaults are used when empty)")
	debug := flag.Bool("debug", false, "Log camera matrices on every change")
	width := flag.Int("width", 1280, "Window width")
	height := flag.Int("height", 720, "Window height")
	flag.Parse()

	logger := playercam.NewDefaultLogger("playercam", *debug)

	cfg := playercam.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = playercam.LoadConfig(*configPath); err != nil {
			logger.Errorf("%v", err)
			return
		}
	}

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	window, err := glfw.CreateWindow(*width, *height, "playercam", nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		sx, _ := monitor.GetContentScale()
		cfg.DPI *= sx
	}

	winWidth, winHeight := window.GetSize()
	host := playercam.NewHostBuilder().
		UseModule(
			playercam.LoggingModule{Logger: logger},
			playercam.TimeModule{},
			playercam.InputModule{Window: window},
			playercam.PlayerCameraModule{
				Config:   cfg,
				Viewport: playercam.Viewport{Width: float64(winWidth), Height: float64(winHeight)},
				Select:   true,
			},
		).
		Build()

	pc, ok := playercam.Resource[playercam.PlayerCamera](host)
	if !ok {
		logger.Errorf("player camera was not installed")
		return
	}
	if err := pc.SetSpherical(-math.Pi/2, float32(math.Pi/8), 10, mgl32.Vec3{}); err != nil {
		logger.Errorf("%v", err)
		return
	}

	host.Scene().OnCameraChange(func(c playercam.SceneCamera) {
		logger.Debugf("%s visible(origin)=%t", pc.Camera(), c.Visible(mgl32.Vec3{}))
	})

	window.SetKeyCallback(chainEscape(window, host))

	for !window.ShouldClose() {
		glfw.WaitEventsTimeout(host.NextWake(100 * time.Millisecond).Seconds())
		host.Step()
	}
}

// chainEscape closes the window on escape and forwards every key to the host
// bus, replacing the bridge's key callback.
func chainEscape(window *glfw.Window, host *playercam.Host) glfw.KeyCallback {
	return func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			window.SetShouldClose(true)
			return
		}
		playercam.PublishGlfwKey(host.Events(), key, action)
	}
}
