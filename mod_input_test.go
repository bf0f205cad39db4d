package playercam

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKey(t *testing.T) {
	k, err := ParseKey(" W ")
	require.NoError(t, err)
	assert.Equal(t, KeyW, k)

	k, err = ParseKey("mouse-middle")
	require.NoError(t, err)
	assert.Equal(t, MouseButtonMiddle, k)
	assert.True(t, k.IsMouseButton())

	_, err = ParseKey("f13")
	assert.ErrorIs(t, err, ErrUnknownKey)
}

func TestKey_NamesAreUnique(t *testing.T) {
	assert.Len(t, keysByName, len(keyNames))
	for k, name := range keyNames {
		assert.Equal(t, name, k.String())
	}
	assert.Equal(t, "key(1000)", Key(1000).String())
}

func TestKeyToGlfw_IsBijective(t *testing.T) {
	assert.Len(t, glfwToKey, len(keyToGlfw))
	for k, g := range keyToGlfw {
		assert.Equal(t, k, glfwToKey[g])
		assert.False(t, k.IsMouseButton())
	}
}

func TestPublishGlfwKey(t *testing.T) {
	bus := NewEventBus()
	var got []KeyEvent
	bus.Subscribe(KeyEventKind, func(ev Event) { got = append(got, ev.(KeyEvent)) })

	assert.True(t, PublishGlfwKey(bus, glfw.KeyW, glfw.Press))
	assert.False(t, PublishGlfwKey(bus, glfw.KeyW, glfw.Repeat))
	assert.True(t, PublishGlfwKey(bus, glfw.KeyW, glfw.Release))
	assert.False(t, PublishGlfwKey(bus, glfw.KeyF25, glfw.Press))

	assert.Equal(t, []KeyEvent{
		{Key: KeyW, Action: Press},
		{Key: KeyW, Action: Release},
	}, got)
}

func TestInputModule_WithoutWindow(t *testing.T) {
	host := NewHostBuilder().UseModule(InputModule{}).Build()

	assert.Zero(t, host.Events().SubscriberCount(KeyEventKind))
}
