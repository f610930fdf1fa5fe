package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/wireframe/engine/components"
)

func newEntity(id string) *components.Entity {
	return components.NewEntity(components.EntityConfig{ID: id})
}

func newCamera(id string) *components.Camera {
	return components.NewCamera(components.CameraConfig{EntityConfig: components.EntityConfig{ID: id}})
}

func newSceneWithCameras(ids ...string) *Scene {
	var objs []components.Object
	for _, id := range ids {
		objs = append(objs, newCamera(id))
	}
	return New(Config{Entities: objs, Cameras: ids})
}

func TestNewSceneActiveCamera(t *testing.T) {
	a, b := newCamera("a"), newCamera("b")

	s := New(Config{Entities: []components.Object{a, b}, Cameras: []string{"a", "b"}, ActiveCamera: "b"})
	assert.Equal(t, "b", s.ActiveCamera())

	s = New(Config{Entities: []components.Object{a, b}, Cameras: []string{"a", "b"}, ActiveCamera: "missing"})
	assert.Equal(t, "a", s.ActiveCamera())

	s = New(Config{Entities: []components.Object{newEntity("e")}})
	assert.Equal(t, NoCamera, s.ActiveCamera())

	// camera entities register themselves but only supplied cameras can start active
	s = New(Config{Entities: []components.Object{a, b}, ActiveCamera: "b"})
	assert.Equal(t, []string{"a", "b"}, s.Cameras())
	assert.Equal(t, NoCamera, s.ActiveCamera())

	s = New(Config{Entities: []components.Object{a, b}})
	assert.Equal(t, NoCamera, s.ActiveCamera())

	// once registered they can still be selected explicitly
	assert.True(t, s.SetActiveCamera("b"))
	assert.Equal(t, "b", s.ActiveCamera())
}

func TestNewSceneIgnoresUnknownCameraIDs(t *testing.T) {
	s := New(Config{
		Entities:     []components.Object{newEntity("e"), newCamera("c")},
		Cameras:      []string{"ghost", "e", "c"},
		ActiveCamera: "ghost",
	})
	assert.Equal(t, []string{"c"}, s.Cameras())
	assert.Equal(t, "c", s.ActiveCamera())
}

func TestAddEntityIsIdempotent(t *testing.T) {
	s := New(Config{})
	a := newEntity("a")
	s.AddEntity(a)
	s.AddEntity(a)
	assert.Equal(t, 1, s.Len())

	// first insertion wins
	s.AddEntity(components.NewEntity(components.EntityConfig{ID: "a", Model: "other"}))
	got, ok := s.Entity("a")
	require.True(t, ok)
	assert.Same(t, a, got)
}

func TestAddEntityRegistersCameras(t *testing.T) {
	s := New(Config{})
	s.AddEntity(newEntity("e"), newCamera("c"))
	assert.Equal(t, []string{"c"}, s.Cameras())
	assert.Len(t, s.Entities(), 2)

	cam, ok := s.Camera("c")
	require.True(t, ok)
	assert.Equal(t, "c", cam.ID())
}

func TestEntitiesKeepInsertionOrder(t *testing.T) {
	s := New(Config{})
	ids := []string{"z", "a", "m", "b"}
	for _, id := range ids {
		s.AddEntity(newEntity(id))
	}
	var got []string
	for _, e := range s.Entities() {
		got = append(got, e.ID())
	}
	assert.Equal(t, ids, got)
}

func TestAddCameraErrors(t *testing.T) {
	s := New(Config{Entities: []components.Object{newEntity("e"), newCamera("c")}})
	err := s.AddCamera("nope", "e", "c")
	assert.ErrorIs(t, err, ErrEntityNotFound)
	assert.ErrorIs(t, err, ErrNotACamera)
	assert.Equal(t, []string{"c"}, s.Cameras())

	assert.NoError(t, s.AddCamera("c"))
	assert.Equal(t, []string{"c"}, s.Cameras())
}

func TestDeleteActiveCamera(t *testing.T) {
	s := newSceneWithCameras("a", "b")
	require.Equal(t, "a", s.ActiveCamera())

	s.DeleteCamera("a")
	assert.Equal(t, "b", s.ActiveCamera())
	_, ok := s.Entity("a")
	assert.False(t, ok, "deleting a camera removes its entity")

	s.DeleteCamera("b")
	assert.Equal(t, NoCamera, s.ActiveCamera())
	assert.Equal(t, 0, s.Len())
	_, ok = s.ActiveCameraObject()
	assert.False(t, ok)
}

func TestDeleteInactiveCameraKeepsActive(t *testing.T) {
	s := newSceneWithCameras("a", "b", "c")
	s.DeleteCamera("b")
	assert.Equal(t, "a", s.ActiveCamera())
	assert.Equal(t, []string{"a", "c"}, s.Cameras())
}

func TestDeleteEntityCascadesToCamera(t *testing.T) {
	s := New(Config{Entities: []components.Object{newEntity("e"), newCamera("a"), newCamera("b")}, Cameras: []string{"a", "b"}, ActiveCamera: "b"})
	require.Equal(t, "b", s.ActiveCamera())

	s.DeleteEntity("b")
	assert.Equal(t, []string{"a"}, s.Cameras())
	assert.Equal(t, "a", s.ActiveCamera())
	assert.Equal(t, 2, s.Len())

	s.DeleteEntity("e")
	assert.Equal(t, 1, s.Len())

	// unknown ids are a no-op
	s.DeleteEntity("e")
	s.DeleteCamera("e")
	assert.Equal(t, 1, s.Len())
}

func TestSetActiveCamera(t *testing.T) {
	s := newSceneWithCameras("a", "b")
	s.AddEntity(newEntity("e"))

	assert.True(t, s.SetActiveCamera("b"))
	assert.Equal(t, "b", s.ActiveCamera())

	assert.False(t, s.SetActiveCamera("e"))
	assert.False(t, s.SetActiveCamera("missing"))
	assert.Equal(t, "b", s.ActiveCamera())

	cam, ok := s.ActiveCameraObject()
	require.True(t, ok)
	assert.Equal(t, "b", cam.ID())
}

func TestSwitchCamerasCycles(t *testing.T) {
	ids := []string{"a", "b", "c", "d"}
	s := newSceneWithCameras(ids...)
	s.SetActiveCamera("c")

	for i := 0; i < len(ids); i++ {
		s.SwitchToNextCamera()
	}
	assert.Equal(t, "c", s.ActiveCamera())

	s.SwitchToNextCamera()
	assert.Equal(t, "d", s.ActiveCamera())
	s.SwitchToNextCamera()
	assert.Equal(t, "a", s.ActiveCamera())

	s.SwitchToPreviousCamera()
	assert.Equal(t, "d", s.ActiveCamera())

	for i := 0; i < len(ids); i++ {
		s.SwitchToPreviousCamera()
	}
	assert.Equal(t, "d", s.ActiveCamera())
}

func TestSwitchCamerasNeedsTwo(t *testing.T) {
	s := newSceneWithCameras("only")
	s.SwitchToNextCamera()
	assert.Equal(t, "only", s.ActiveCamera())
	s.SwitchToPreviousCamera()
	assert.Equal(t, "only", s.ActiveCamera())

	empty := New(Config{})
	empty.SwitchToNextCamera()
	assert.Equal(t, NoCamera, empty.ActiveCamera())
}

func TestActiveCameraAlwaysRegistered(t *testing.T) {
	s := newSceneWithCameras("a", "b", "c")
	for _, id := range []string{"a", "c", "b"} {
		s.DeleteEntity(id)
		active := s.ActiveCamera()
		if active != NoCamera {
			assert.Contains(t, s.Cameras(), active)
		}
	}
	assert.Equal(t, NoCamera, s.ActiveCamera())
}
