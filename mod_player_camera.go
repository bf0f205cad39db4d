package playercam

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// PlayerCamera drives a Camera from keyboard and mouse input. Held direction
// keys move the camera on a self-rescheduling tick while its viewport is
// selected; dragging with the rotate button turns it.
//
// All methods must be called from the host loop.
type PlayerCamera struct {
	id       uuid.UUID
	camera   *Camera
	cfg      Config
	viewport Viewport

	events    *EventBus
	selection *SelectionRegistry
	scheduler Scheduler
	clock     Clock
	frame     *Time
	sink      MatrixSink
	log       Logger
	subs      []Subscription
	focusSub  Subscription

	held     Direction
	dragging bool
	lastX    float64
	lastY    float64

	// lastTick is zero while the timer is idle. tickGen invalidates ticks
	// scheduled before a detach.
	lastTick time.Time
	tickGen  uint64
}

var _ CameraController = &PlayerCamera{}

func NewPlayerCamera(cfg Config, viewport Viewport) (*PlayerCamera, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cam := NewCamera()
	cam.Fov = cfg.Fov
	cam.Near = cfg.Near
	cam.Far = cfg.Far
	cam.Aspect = viewport.Aspect()

	return &PlayerCamera{
		id:       uuid.New(),
		camera:   cam,
		cfg:      cfg,
		viewport: viewport,
		log:      NewNopLogger(),
	}, nil
}

func (pc *PlayerCamera) ID() uuid.UUID       { return pc.id }
func (pc *PlayerCamera) Config() Config      { return pc.cfg }
func (pc *PlayerCamera) Viewport() Viewport  { return pc.viewport }
func (pc *PlayerCamera) Held() Direction     { return pc.held }
func (pc *PlayerCamera) Dragging() bool      { return pc.dragging }
func (pc *PlayerCamera) Attached() bool      { return pc.events != nil }
func (pc *PlayerCamera) TickActive() bool    { return !pc.lastTick.IsZero() }
func (pc *PlayerCamera) LastTick() time.Time { return pc.lastTick }

// Camera returns a copy of the current camera state.
func (pc *PlayerCamera) Camera() Camera {
	return *pc.camera
}

func (pc *PlayerCamera) Selected() bool {
	return pc.selection != nil && pc.selection.IsSelected(pc.id)
}

// Attach subscribes to the host's input events and installs the initial
// matrices on its scene. Ticks measure elapsed time from the host's Time
// resource when TimeModule was installed first, and from its Clock otherwise.
func (pc *PlayerCamera) Attach(host *Host) error {
	if pc.Attached() {
		return fmt.Errorf("camera %s is already attached", pc.id)
	}
	pc.events = host.Events()
	pc.selection = host.Selection()
	pc.scheduler = host.Scheduler()
	pc.clock = host.Clock()
	pc.sink = host.Scene()
	pc.log = host.Logger()
	if t, ok := Resource[Time](host); ok {
		pc.frame = t
	}

	pc.subs = []Subscription{
		pc.events.Subscribe(KeyEventKind, pc.onKey),
		pc.events.Subscribe(MouseButtonEventKind, pc.onMouseButton),
		pc.events.Subscribe(MouseMoveEventKind, pc.onMouseMove),
		pc.events.Subscribe(ResizeEventKind, pc.onResize),
	}
	pc.focusSub = pc.selection.OnChange(pc.onSelectionChange)
	pc.Update()
	return nil
}

func (pc *PlayerCamera) Detach() {
	if !pc.Attached() {
		return
	}
	for _, sub := range pc.subs {
		pc.events.Unsubscribe(sub)
	}
	pc.subs = nil
	pc.selection.Deselect(pc.id)
	pc.selection.RemoveListener(pc.focusSub)
	pc.stopTicking()
	pc.held = DirNone
	pc.dragging = false

	pc.events = nil
	pc.selection = nil
	pc.scheduler = nil
	pc.clock = nil
	pc.frame = nil
	pc.sink = nil
}

// Update recomputes the view and projection matrices and pushes them into
// the scene.
func (pc *PlayerCamera) Update() {
	if pc.sink == nil {
		return
	}
	pc.sink.SetCameraMatrices(pc.camera.ViewMatrix(), pc.camera.ProjectionMatrix())
}

func (pc *PlayerCamera) SetView(eye, lookAt, up mgl32.Vec3) error {
	if err := pc.camera.SetView(eye, lookAt, up); err != nil {
		return err
	}
	pc.Update()
	return nil
}

func (pc *PlayerCamera) SetSpherical(phi, theta, radius float32, center mgl32.Vec3) error {
	if err := pc.camera.SetSpherical(phi, theta, radius, center); err != nil {
		return err
	}
	pc.Update()
	return nil
}

func (pc *PlayerCamera) onKey(ev Event) {
	ke := ev.(KeyEvent)
	dir := pc.cfg.Bindings.Direction(ke.Key)
	if dir == DirNone {
		return
	}

	switch ke.Action {
	case Press:
		if !pc.Selected() {
			return
		}
		pc.held |= dir
		pc.startTicking()
	case Release:
		pc.held &^= dir
	}
}

func (pc *PlayerCamera) onMouseButton(ev Event) {
	me := ev.(MouseButtonEvent)

	switch me.Action {
	case Press:
		if !pc.viewport.Contains(me.X, me.Y) {
			pc.selection.Deselect(pc.id)
			return
		}
		pc.selection.Select(pc.id)
		if me.Button == pc.cfg.Bindings.Rotate {
			pc.dragging = true
			pc.lastX, pc.lastY = me.X, me.Y
		}
	case Release:
		if me.Button == pc.cfg.Bindings.Rotate {
			pc.dragging = false
		}
	}
}

func (pc *PlayerCamera) onMouseMove(ev Event) {
	if !pc.dragging {
		return
	}
	mm := ev.(MouseMoveEvent)
	dx, dy := mm.X-pc.lastX, mm.Y-pc.lastY
	pc.lastX, pc.lastY = mm.X, mm.Y

	pitch, yaw := DragAngles(dx, dy, pc.cfg.DPI, pc.cfg.RotateSpeed)
	if pitch == 0 && yaw == 0 {
		return
	}
	pc.camera.Rotate(pitch, yaw)
	pc.Update()
}

// Losing focus drops held keys and the drag, and idles the timer right away.
func (pc *PlayerCamera) onSelectionChange(prev, next uuid.UUID) {
	if prev != pc.id {
		return
	}
	pc.held = DirNone
	pc.dragging = false
	pc.stopTicking()
}

func (pc *PlayerCamera) onResize(ev Event) {
	re := ev.(ResizeEvent)
	pc.viewport = pc.viewport.Resized(re.Width, re.Height)
	pc.camera.Aspect = pc.viewport.Aspect()
	pc.Update()
}

func (pc *PlayerCamera) startTicking() {
	if pc.TickActive() {
		return
	}
	pc.lastTick = pc.now()
	pc.schedule()
}

func (pc *PlayerCamera) stopTicking() {
	pc.lastTick = time.Time{}
	pc.tickGen++
}

func (pc *PlayerCamera) now() time.Time {
	if pc.frame != nil {
		return pc.frame.Time
	}
	return pc.clock.Now()
}

func (pc *PlayerCamera) schedule() {
	gen := pc.tickGen
	pc.scheduler.CallLater(pc.cfg.TickDelay, func() {
		if gen != pc.tickGen {
			return
		}
		pc.tick()
	})
}

// tick applies one translation step for the time elapsed since the previous
// tick and reschedules itself while movement continues.
func (pc *PlayerCamera) tick() {
	if !pc.TickActive() {
		return
	}
	now := pc.now()
	dt := now.Sub(pc.lastTick)

	pc.camera.Translate(pc.held, dt, pc.cfg.MoveSpeed)
	pc.Update()

	if pc.held != DirNone && pc.Selected() {
		pc.lastTick = now
		pc.schedule()
		return
	}
	pc.log.Debugf("camera %s idle at %s", pc.id, pc.camera)
	pc.stopTicking()
}

// PlayerCameraModule creates a PlayerCamera, installs it on the host and
// registers it as a resource.
type PlayerCameraModule struct {
	Config   Config
	Viewport Viewport
	// Select gives the new camera input focus right away.
	Select bool
}

func (m PlayerCameraModule) Install(host *Host) {
	pc, err := NewPlayerCamera(m.Config, m.Viewport)
	if err != nil {
		host.Logger().Errorf("player camera: %v", err)
		return
	}
	if err := host.InstallCamera(pc); err != nil {
		host.Logger().Errorf("player camera: %v", err)
		return
	}
	host.AddResources(pc)
	if m.Select {
		host.Selection().Select(pc.ID())
	}
}
