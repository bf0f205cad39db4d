package playercam

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPlayerCamera(t *testing.T) (*Host, *manualClock, *PlayerCamera) {
	t.Helper()
	clock := newManualClock()
	host := NewHostBuilder().
		UseClock(clock).
		UseModule(
			TimeModule{},
			PlayerCameraModule{
				Config:   DefaultConfig(),
				Viewport: Viewport{Width: 800, Height: 600},
			},
		).
		Build()

	pc, ok := Resource[PlayerCamera](host)
	require.True(t, ok)
	return host, clock, pc
}

func press(host *Host, k Key) {
	host.Events().Publish(KeyEvent{Key: k, Action: Press})
}

func release(host *Host, k Key) {
	host.Events().Publish(KeyEvent{Key: k, Action: Release})
}

func TestPlayerCameraModule_InstallsAndPushesMatrices(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)

	assert.True(t, pc.Attached())
	assert.Equal(t, []CameraController{pc}, host.Cameras())
	assert.Equal(t, uint64(1), host.Scene().Revision())

	cam := pc.Camera()
	assert.Equal(t, cam.ViewMatrix(), host.Scene().ActiveCamera().View)
	assert.Equal(t, cam.ProjectionMatrix(), host.Scene().ActiveCamera().Projection)
	assert.InDelta(t, 800.0/600.0, cam.Aspect, tolerance)
}

func TestPlayerCameraModule_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickDelay = 0
	host := NewHostBuilder().UseModule(PlayerCameraModule{Config: cfg}).Build()

	assert.Empty(t, host.Cameras())
	_, ok := Resource[PlayerCamera](host)
	assert.False(t, ok)
}

func TestPlayerCamera_KeysIgnoredUntilSelected(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)

	press(host, KeyW)

	assert.Equal(t, DirNone, pc.Held())
	assert.False(t, pc.TickActive())
	assert.Zero(t, host.Scheduler().Pending())
}

func TestPlayerCamera_TickLoop(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	start := pc.Camera()
	delay := pc.Config().TickDelay

	press(host, KeyW)
	assert.Equal(t, DirForward, pc.Held())
	assert.True(t, pc.TickActive())
	assert.Equal(t, 1, host.Scheduler().Pending())

	// A second press while ticking does not schedule another tick.
	press(host, KeyD)
	assert.Equal(t, 1, host.Scheduler().Pending())

	// Nothing is due before the delay has elapsed.
	clock.Advance(delay / 2)
	assert.Zero(t, host.Step())

	clock.Advance(delay / 2)
	assert.Equal(t, 1, host.Step())
	moved := pc.Camera()
	assert.Greater(t, moved.Eye.Y(), start.Eye.Y())
	assert.Greater(t, moved.Eye.X(), start.Eye.X())
	assertVecInDelta(t, start.ViewDirection(), moved.ViewDirection(), tolerance)
	assert.Equal(t, clock.Now(), pc.LastTick())
	assert.Equal(t, 1, host.Scheduler().Pending(), "rescheduled while keys are held")

	revision := host.Scene().Revision()
	release(host, KeyW)
	release(host, KeyD)
	assert.Equal(t, DirNone, pc.Held())

	clock.Advance(delay)
	assert.Equal(t, 1, host.Step())
	assert.Equal(t, moved, pc.Camera(), "final tick has nothing to move")
	assert.False(t, pc.TickActive())
	assert.Zero(t, host.Scheduler().Pending())
	assert.Equal(t, revision+1, host.Scene().Revision())
}

func TestPlayerCamera_TickStepScalesWithElapsedTime(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	start := pc.Camera()
	cfg := pc.Config()

	press(host, KeyS)
	// Ticks only run from Step, so a late frame covers the whole gap.
	clock.Advance(100 * time.Millisecond)
	host.Step()

	expected := cfg.MoveSpeed * 0.1 * start.ViewportSize()
	assert.InDelta(t, start.Eye.Y()-expected, pc.Camera().Eye.Y(), tolerance)
}

func TestPlayerCamera_DeselectStopsTicking(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())

	press(host, KeyA)
	clock.Advance(pc.Config().TickDelay)
	host.Step()
	assert.True(t, pc.TickActive())

	host.Selection().Clear()
	assert.False(t, pc.TickActive(), "focus loss idles the timer immediately")
	assert.Equal(t, DirNone, pc.Held())
	clock.Advance(pc.Config().TickDelay)
	host.Step()

	assert.False(t, pc.TickActive())
	assert.Zero(t, host.Scheduler().Pending())
}

func TestPlayerCamera_CameraSnapshot(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)

	assert.Equal(t, host.Scene().ActiveCamera().View, pc.Camera().ViewMatrix())
	assert.InDelta(t, 10, pc.Camera().ViewDistance(), tolerance)

	snapshot := pc.Camera()
	snapshot.Translate(DirForward, time.Second, 1)
	assert.NotEqual(t, snapshot.Eye, pc.Camera().Eye, "the snapshot is a copy")
}

func TestPlayerCamera_TicksUseFrameTime(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	frame, ok := Resource[Time](host)
	require.True(t, ok)
	start := pc.Camera()

	// The press lands between steps, so the timer starts at the last frame.
	clock.Advance(50 * time.Millisecond)
	press(host, KeyW)
	assert.Equal(t, frame.Time, pc.LastTick())

	clock.Advance(pc.Config().TickDelay)
	require.Equal(t, 1, host.Step())
	assert.Equal(t, frame.Time, pc.LastTick())

	elapsed := float32((50*time.Millisecond + pc.Config().TickDelay).Seconds())
	expected := pc.Config().MoveSpeed * elapsed * start.ViewportSize()
	assert.InDelta(t, start.Eye.Y()+expected, pc.Camera().Eye.Y(), tolerance)
}

func TestPlayerCamera_TicksUseClockWithoutTimeModule(t *testing.T) {
	clock := newManualClock()
	host := NewHostBuilder().
		UseClock(clock).
		UseModule(PlayerCameraModule{Config: DefaultConfig(), Select: true}).
		Build()
	pc, ok := Resource[PlayerCamera](host)
	require.True(t, ok)

	clock.Advance(50 * time.Millisecond)
	press(host, KeyW)

	assert.Equal(t, clock.Now(), pc.LastTick())
}

func TestPlayerCamera_FocusLossReleasesKeys(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	press(host, KeyW)
	bus := host.Events()
	bus.Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Press, X: 10, Y: 10})
	require.True(t, pc.Dragging())

	host.Selection().Select(uuid.New())

	assert.Equal(t, DirNone, pc.Held())
	assert.False(t, pc.Dragging())
	assert.False(t, pc.TickActive())

	// The stale tick is dropped and nothing moves.
	before := pc.Camera()
	clock.Advance(pc.Config().TickDelay)
	assert.Equal(t, 1, host.Step())
	assert.Equal(t, before, pc.Camera())
	assert.Zero(t, host.Scheduler().Pending())

	// Focus returns and a fresh press restarts the timer.
	host.Selection().Select(pc.ID())
	press(host, KeyW)
	assert.Equal(t, DirForward, pc.Held())
	assert.True(t, pc.TickActive())
	assert.Equal(t, 1, host.Scheduler().Pending())
}

func TestPlayerCamera_ClickSelectsAndDragRotates(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	bus := host.Events()

	bus.Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Press, X: 100, Y: 100})
	assert.True(t, pc.Selected())
	assert.True(t, pc.Dragging())

	// One inch to the right at 96 DPI turns right by RotateSpeed radians.
	bus.Publish(MouseMoveEvent{X: 196, Y: 100})
	view := pc.Camera().ViewDirection()
	assertVecInDelta(t, mgl32.Vec3{10 * float32(math.Sin(1)), 10 * float32(math.Cos(1)), 0}, view, 1e-3)

	bus.Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Release, X: 196, Y: 100})
	assert.False(t, pc.Dragging())

	// Moves without a drag do nothing.
	before := pc.Camera()
	bus.Publish(MouseMoveEvent{X: 400, Y: 300})
	assert.Equal(t, before, pc.Camera())
}

func TestPlayerCamera_DragDownLooksDown(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	bus := host.Events()

	bus.Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Press, X: 100, Y: 100})
	bus.Publish(MouseMoveEvent{X: 100, Y: 130})

	assert.Less(t, pc.Camera().ViewDirection().Z(), float32(0))
}

func TestPlayerCamera_OtherButtonSelectsWithoutDrag(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)

	host.Events().Publish(MouseButtonEvent{Button: MouseButtonRight, Action: Press, X: 5, Y: 5})

	assert.True(t, pc.Selected())
	assert.False(t, pc.Dragging())
}

func TestPlayerCamera_ClickOutsideDeselects(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	press(host, KeyW)

	host.Events().Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Press, X: 900, Y: 100})

	assert.False(t, pc.Selected())
	assert.False(t, pc.Dragging())
	assert.Equal(t, DirNone, pc.Held())
}

func TestPlayerCamera_ClickOutsideKeepsOtherSelection(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	other := uuid.New()
	host.Selection().Select(other)

	host.Events().Publish(MouseButtonEvent{Button: MouseButtonLeft, Action: Press, X: 900, Y: 100})

	assert.False(t, pc.Selected())
	assert.Equal(t, other, host.Selection().Selected())
}

func TestPlayerCamera_Resize(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	revision := host.Scene().Revision()

	host.Events().Publish(ResizeEvent{Width: 1000, Height: 500})

	assert.Equal(t, float32(2), pc.Camera().Aspect)
	assert.Equal(t, 1000.0, pc.Viewport().Width)
	assert.Equal(t, revision+1, host.Scene().Revision())
}

func TestPlayerCamera_SetSphericalAndSetView(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)
	revision := host.Scene().Revision()

	require.NoError(t, pc.SetSpherical(0.5, 0.25, 8, mgl32.Vec3{1, 0, 0}))
	eye := pc.Camera().Eye
	assert.InDelta(t, 1+8*math.Cos(0.25)*math.Cos(0.5), eye.X(), 1e-4)
	assert.InDelta(t, 8*math.Cos(0.25)*math.Sin(0.5), eye.Y(), 1e-4)
	assert.InDelta(t, 8*math.Sin(0.25), eye.Z(), 1e-4)
	assert.Equal(t, revision+1, host.Scene().Revision())

	require.NoError(t, pc.SetView(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{5, 0, 1}, WorldUp))
	assert.Equal(t, mgl32.Vec3{5, 0, 1}, pc.Camera().LookAt)

	err := pc.SetView(mgl32.Vec3{}, mgl32.Vec3{}, WorldUp)
	assert.ErrorIs(t, err, ErrDegenerateView)
	assert.Equal(t, revision+2, host.Scene().Revision())
}

func TestPlayerCamera_Uninstall(t *testing.T) {
	host, clock, pc := newTestPlayerCamera(t)
	host.Selection().Select(pc.ID())
	press(host, KeyW)
	before := pc.Camera()

	require.True(t, host.UninstallCamera(pc.ID()))

	assert.False(t, pc.Attached())
	assert.False(t, pc.Selected())
	for _, kind := range []EventKind{KeyEventKind, MouseButtonEventKind, MouseMoveEventKind, ResizeEventKind} {
		assert.Zero(t, host.Events().SubscriberCount(kind), kind.String())
	}

	// The tick scheduled before uninstall runs as a no-op.
	clock.Advance(time.Second)
	assert.Equal(t, 1, host.Step())
	assert.Equal(t, before, pc.Camera())
	assert.Zero(t, host.Scheduler().Pending())

	// Reinstalling works and the stale tick cannot resurrect the old loop.
	require.NoError(t, host.InstallCamera(pc))
	assert.True(t, pc.Attached())
}

func TestPlayerCamera_AttachTwice(t *testing.T) {
	host, _, pc := newTestPlayerCamera(t)

	assert.Error(t, pc.Attach(host))
}
