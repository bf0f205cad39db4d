package playercam

import (
	"fmt"
	"reflect"
	"time"

	"github.com/google/uuid"
)

type Module interface {
	Install(host *Host)
}

// CameraController is the capability the host expects from anything that
// drives its scene camera.
type CameraController interface {
	ID() uuid.UUID
	Attach(host *Host) error
	Detach()
	Update()
}

// Host is the minimal scene host a camera controller plugs into: a resource
// table, an event bus, a selection registry, a deferred-call scheduler and the
// scene whose active camera receives the computed matrices.
type Host struct {
	resources map[reflect.Type]any
	clock     Clock
	scheduler *FrameScheduler
	events    *EventBus
	selection *SelectionRegistry
	scene     *Scene

	cameras     map[uuid.UUID]CameraController
	cameraOrder []uuid.UUID
}

func newHost(clock Clock) *Host {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Host{
		resources: make(map[reflect.Type]any),
		clock:     clock,
		scheduler: NewFrameScheduler(clock),
		events:    NewEventBus(),
		selection: NewSelectionRegistry(),
		scene:     NewScene(),
		cameras:   make(map[uuid.UUID]CameraController),
	}
}

func (host *Host) Clock() Clock                  { return host.clock }
func (host *Host) Scheduler() *FrameScheduler    { return host.scheduler }
func (host *Host) Events() *EventBus             { return host.events }
func (host *Host) Selection() *SelectionRegistry { return host.selection }
func (host *Host) Scene() *Scene                 { return host.scene }

// AddResources registers each resource under its pointed-to type. Resources
// must be pointers; registering a second resource of the same type panics.
func (host *Host) AddResources(resources ...any) *Host {
	for _, resource := range resources {
		resourceType := reflect.TypeOf(resource)
		if resourceType.Kind() != reflect.Pointer {
			panic(fmt.Sprintf("resource %s must be a pointer", resourceType))
		}
		if _, ok := host.resources[resourceType.Elem()]; ok {
			panic(fmt.Sprintf("%s is already in resources", resourceType))
		}

		host.resources[resourceType.Elem()] = resource
	}
	return host
}

// Resource looks up the resource registered for T.
func Resource[T any](host *Host) (*T, bool) {
	r, ok := host.resources[reflect.TypeFor[T]()]
	if !ok {
		return nil, false
	}
	typed, ok := r.(*T)
	return typed, ok
}

// InstallCamera attaches c to the host's services and registers it.
func (host *Host) InstallCamera(c CameraController) error {
	id := c.ID()
	if _, ok := host.cameras[id]; ok {
		return fmt.Errorf("camera %s is already installed", id)
	}
	if err := c.Attach(host); err != nil {
		return fmt.Errorf("install camera %s: %w", id, err)
	}
	host.cameras[id] = c
	host.cameraOrder = append(host.cameraOrder, id)
	host.Logger().Debugf("installed camera %s", id)
	return nil
}

// UninstallCamera detaches the camera registered under id. It reports
// whether such a camera existed.
func (host *Host) UninstallCamera(id uuid.UUID) bool {
	c, ok := host.cameras[id]
	if !ok {
		return false
	}
	c.Detach()
	delete(host.cameras, id)
	for i, other := range host.cameraOrder {
		if other == id {
			host.cameraOrder = append(host.cameraOrder[:i], host.cameraOrder[i+1:]...)
			break
		}
	}
	host.Logger().Debugf("uninstalled camera %s", id)
	return true
}

// Cameras returns the installed cameras in installation order.
func (host *Host) Cameras() []CameraController {
	res := make([]CameraController, 0, len(host.cameraOrder))
	for _, id := range host.cameraOrder {
		res = append(res, host.cameras[id])
	}
	return res
}

// Step advances the frame clock and runs the deferred calls that are due.
// It returns the number of calls run.
func (host *Host) Step() int {
	now := host.clock.Now()
	if t, ok := Resource[Time](host); ok {
		t.advance(now)
	}
	return host.scheduler.RunDue(now)
}

// NextWake returns how long the loop may block before the next deferred call
// is due, capped at max.
func (host *Host) NextWake(max time.Duration) time.Duration {
	next, ok := host.scheduler.NextDue()
	if !ok {
		return max
	}
	wait := next.Sub(host.clock.Now())
	if wait < 0 {
		return 0
	}
	if wait > max {
		return max
	}
	return wait
}
