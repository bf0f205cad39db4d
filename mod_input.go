package playercam

import (
	"fmt"
	"strings"

	"github.com/go-gl/glfw/v3.3/glfw"
	"gopkg.in/yaml.v3"
)

// Key identifies a keyboard key or a mouse button.
type Key int

const (
	KeyUnknown Key = iota
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeySpace
	KeyEnter
	KeyEscape
	KeyTab
	KeyRight
	KeyLeft
	KeyDown
	KeyUp
	KeyPageUp
	KeyPageDown
	KeyShift
	KeyControl
	KeyLeftAlt
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

var keyNames = map[Key]string{
	KeyA: "a", KeyB: "b", KeyC: "c", KeyD: "d", KeyE: "e", KeyF: "f",
	KeyG: "g", KeyH: "h", KeyI: "i", KeyJ: "j", KeyK: "k", KeyL: "l",
	KeyM: "m", KeyN: "n", KeyO: "o", KeyP: "p", KeyQ: "q", KeyR: "r",
	KeyS: "s", KeyT: "t", KeyU: "u", KeyV: "v", KeyW: "w", KeyX: "x",
	KeyY: "y", KeyZ: "z",
	Key0: "0", Key1: "1", Key2: "2", Key3: "3", Key4: "4",
	Key5: "5", Key6: "6", Key7: "7", Key8: "8", Key9: "9",

	KeySpace:          "space",
	KeyEnter:          "enter",
	KeyEscape:         "escape",
	KeyTab:            "tab",
	KeyRight:          "right",
	KeyLeft:           "left",
	KeyDown:           "down",
	KeyUp:             "up",
	KeyPageUp:         "pageup",
	KeyPageDown:       "pagedown",
	KeyShift:          "shift",
	KeyControl:        "control",
	KeyLeftAlt:        "alt",
	MouseButtonLeft:   "mouse-left",
	MouseButtonRight:  "mouse-right",
	MouseButtonMiddle: "mouse-middle",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

func (k Key) IsMouseButton() bool {
	return k >= MouseButtonLeft && k <= MouseButtonMiddle
}

// ParseKey resolves a key or mouse button name, case-insensitively.
func ParseKey(name string) (Key, error) {
	if k, ok := keysByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return k, nil
	}
	return KeyUnknown, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

func (k Key) MarshalYAML() (any, error) {
	return k.String(), nil
}

func (k *Key) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseKey(name)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*k = parsed
	return nil
}

// InputModule forwards a GLFW window's input callbacks onto the host event bus.
type InputModule struct {
	Window *glfw.Window
}

func (mod InputModule) Install(host *Host) {
	if mod.Window == nil {
		host.Logger().Warnf("input module installed without a window")
		return
	}
	BridgeGlfwWindow(mod.Window, host.Events())
}

// BridgeGlfwWindow installs key, mouse and resize callbacks on w that publish
// the corresponding events on bus. Keys without a mapping are dropped. All
// positions and sizes are in screen coordinates.
func BridgeGlfwWindow(w *glfw.Window, bus *EventBus) {
	w.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		PublishGlfwKey(bus, key, action)
	})

	w.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		b, ok := glfwToButton[button]
		if !ok {
			return
		}
		a, ok := fromGlfwAction(action)
		if !ok {
			return
		}
		x, y := w.GetCursorPos()
		bus.Publish(MouseButtonEvent{Button: b, Action: a, X: x, Y: y})
	})

	w.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		bus.Publish(MouseMoveEvent{X: xpos, Y: ypos})
	})

	w.SetSizeCallback(func(w *glfw.Window, width, height int) {
		bus.Publish(ResizeEvent{Width: width, Height: height})
	})
}

// PublishGlfwKey translates a GLFW key callback into a KeyEvent on bus. It
// reports whether an event was published.
func PublishGlfwKey(bus *EventBus, key glfw.Key, action glfw.Action) bool {
	k, ok := glfwToKey[key]
	if !ok {
		return false
	}
	a, ok := fromGlfwAction(action)
	if !ok {
		return false
	}
	bus.Publish(KeyEvent{Key: k, Action: a})
	return true
}

// Key repeats are folded into the original press.
func fromGlfwAction(action glfw.Action) (Action, bool) {
	switch action {
	case glfw.Press:
		return Press, true
	case glfw.Release:
		return Release, true
	}
	return Press, false
}

var glfwToButton = map[glfw.MouseButton]Key{
	glfw.MouseButtonLeft:   MouseButtonLeft,
	glfw.MouseButtonRight:  MouseButtonRight,
	glfw.MouseButtonMiddle: MouseButtonMiddle,
}

var glfwToKey = func() map[glfw.Key]Key {
	m := make(map[glfw.Key]Key, len(keyToGlfw))
	for k, g := range keyToGlfw {
		m[g] = k
	}
	return m
}()

var keyToGlfw = map[Key]glfw.Key{
	KeyA:        glfw.KeyA,
	KeyB:        glfw.KeyB,
	KeyC:        glfw.KeyC,
	KeyD:        glfw.KeyD,
	KeyE:        glfw.KeyE,
	KeyF:        glfw.KeyF,
	KeyG:        glfw.KeyG,
	KeyH:        glfw.KeyH,
	KeyI:        glfw.KeyI,
	KeyJ:        glfw.KeyJ,
	KeyK:        glfw.KeyK,
	KeyL:        glfw.KeyL,
	KeyM:        glfw.KeyM,
	KeyN:        glfw.KeyN,
	KeyO:        glfw.KeyO,
	KeyP:        glfw.KeyP,
	KeyQ:        glfw.KeyQ,
	KeyR:        glfw.KeyR,
	KeyS:        glfw.KeyS,
	KeyT:        glfw.KeyT,
	KeyU:        glfw.KeyU,
	KeyV:        glfw.KeyV,
	KeyW:        glfw.KeyW,
	KeyX:        glfw.KeyX,
	KeyY:        glfw.KeyY,
	KeyZ:        glfw.KeyZ,
	Key0:        glfw.Key0,
	Key1:        glfw.Key1,
	Key2:        glfw.Key2,
	Key3:        glfw.Key3,
	Key4:        glfw.Key4,
	Key5:        glfw.Key5,
	Key6:        glfw.Key6,
	Key7:        glfw.Key7,
	Key8:        glfw.Key8,
	Key9:        glfw.Key9,
	KeySpace:    glfw.KeySpace,
	KeyEnter:    glfw.KeyEnter,
	KeyEscape:   glfw.KeyEscape,
	KeyTab:      glfw.KeyTab,
	KeyRight:    glfw.KeyRight,
	KeyLeft:     glfw.KeyLeft,
	KeyDown:     glfw.KeyDown,
	KeyUp:       glfw.KeyUp,
	KeyPageUp:   glfw.KeyPageUp,
	KeyPageDown: glfw.KeyPageDown,
	KeyShift:    glfw.KeyLeftShift,
	KeyControl:  glfw.KeyLeftControl,
	KeyLeftAlt:  glfw.KeyLeftAlt,
}
