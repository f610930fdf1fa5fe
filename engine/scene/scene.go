// Package scene holds the entities of a world, which of them are cameras and
// which camera is currently active.
//
// A Scene has no internal locking. It expects a single mutator (the frame
// driver); hosts that share a Scene across goroutines must serialize every
// mutation and every ComputeModelMatrix call themselves.
package scene

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spaghettifunk/wireframe/engine/components"
	"github.com/spaghettifunk/wireframe/engine/core"
)

var (
	ErrEntityNotFound = errors.New("entity not found")
	ErrNotACamera     = errors.New("entity is not a camera")
)

// NoCamera is the active camera id when the scene has no camera selected.
const NoCamera = ""

type Config struct {
	Entities []components.Object
	// Cameras lists camera ids, usually the ids of the camera entities above.
	Cameras []string
	// ActiveCamera is used only when it is among Cameras.
	ActiveCamera string
}

type Scene struct {
	entities map[string]components.Object
	// entityOrder and cameraOrder give iteration a stable insertion order.
	entityOrder  []string
	cameras      map[string]components.Projector
	cameraOrder  []string
	activeCamera string
}

// New builds a scene. Invalid input is corrected rather than rejected: an active
// camera that is not among the supplied cameras falls back to the first of them,
// or to NoCamera when none was supplied. Camera entities that register themselves
// through Entities never become active on their own.
func New(cfg Config) *Scene {
	s := &Scene{
		entities: make(map[string]components.Object, len(cfg.Entities)),
		cameras:  make(map[string]components.Projector),
	}
	s.AddEntity(cfg.Entities...)
	if err := s.AddCamera(cfg.Cameras...); err != nil {
		core.LogWarn("scene: some cameras were ignored: %s", err)
	}

	s.activeCamera = NoCamera
	var candidates []string
	for _, id := range cfg.Cameras {
		if s.isCamera(id) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) > 0 {
		if slices.Contains(candidates, cfg.ActiveCamera) {
			s.activeCamera = cfg.ActiveCamera
		} else {
			s.activeCamera = candidates[0]
		}
	}
	return s
}

// Entities returns every object in insertion order, cameras included.
func (s *Scene) Entities() []components.Object {
	out := make([]components.Object, 0, len(s.entityOrder))
	for _, id := range s.entityOrder {
		out = append(out, s.entities[id])
	}
	return out
}

func (s *Scene) Entity(id string) (components.Object, bool) {
	e, ok := s.entities[id]
	return e, ok
}

func (s *Scene) Len() int {
	return len(s.entities)
}

// AddEntity inserts objects by id. Duplicates are ignored, the first insertion wins.
// Objects that can project are registered as cameras under the same id.
func (s *Scene) AddEntity(objs ...components.Object) {
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		id := obj.ID()
		if _, exists := s.entities[id]; exists {
			core.LogDebug("scene: entity '%s' already present, ignoring", id)
			continue
		}
		s.entities[id] = obj
		s.entityOrder = append(s.entityOrder, id)

		if cam, ok := obj.(components.Projector); ok && obj.Kind() == components.KindCamera {
			s.registerCamera(id, cam)
		}
	}
}

// DeleteEntity removes an object. Deleting a camera also drops it from the
// camera set and reassigns the active camera when needed.
func (s *Scene) DeleteEntity(id string) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	if s.isCamera(id) {
		s.DeleteCamera(id)
	}
	s.removeEntity(id)
}

// Cameras returns the camera ids in registration order.
func (s *Scene) Cameras() []string {
	return slices.Clone(s.cameraOrder)
}

func (s *Scene) Camera(id string) (components.Projector, bool) {
	c, ok := s.cameras[id]
	return c, ok
}

// AddCamera registers existing camera entities as cameras. Ids that do not name a
// camera entity are skipped and reported in the returned error; the valid ones
// are still registered.
func (s *Scene) AddCamera(ids ...string) error {
	var errs []error
	for _, id := range ids {
		obj, ok := s.entities[id]
		if !ok {
			errs = append(errs, fmt.Errorf("camera '%s': %w", id, ErrEntityNotFound))
			continue
		}
		cam, ok := obj.(components.Projector)
		if !ok || obj.Kind() != components.KindCamera {
			errs = append(errs, fmt.Errorf("camera '%s': %w", id, ErrNotACamera))
			continue
		}
		s.registerCamera(id, cam)
	}
	return errors.Join(errs...)
}

// DeleteCamera removes a camera and its entity. If it was active, the first
// remaining camera becomes active, or NoCamera when none is left.
func (s *Scene) DeleteCamera(id string) {
	if !s.isCamera(id) {
		return
	}
	delete(s.cameras, id)
	s.cameraOrder = slices.DeleteFunc(s.cameraOrder, func(c string) bool { return c == id })
	s.removeEntity(id)

	if s.activeCamera == id {
		if len(s.cameraOrder) > 0 {
			s.activeCamera = s.cameraOrder[0]
		} else {
			s.activeCamera = NoCamera
		}
		core.LogDebug("scene: active camera deleted, now '%s'", s.activeCamera)
	}
}

func (s *Scene) ActiveCamera() string {
	return s.activeCamera
}

// ActiveCameraObject returns the active camera, if any.
func (s *Scene) ActiveCameraObject() (components.Projector, bool) {
	if s.activeCamera == NoCamera {
		return nil, false
	}
	return s.Camera(s.activeCamera)
}

// SetActiveCamera selects a camera. Unknown ids are ignored and false is returned.
func (s *Scene) SetActiveCamera(id string) bool {
	if !s.isCamera(id) {
		core.LogWarn("scene: '%s' is not a camera, active camera unchanged", id)
		return false
	}
	s.activeCamera = id
	return true
}

// SwitchToNextCamera cycles forward through the cameras. No-op with fewer than 2.
func (s *Scene) SwitchToNextCamera() {
	s.stepCamera(1)
}

// SwitchToPreviousCamera cycles backward through the cameras. No-op with fewer than 2.
func (s *Scene) SwitchToPreviousCamera() {
	s.stepCamera(-1)
}

func (s *Scene) stepCamera(step int) {
	n := len(s.cameraOrder)
	if n < 2 {
		return
	}
	idx := slices.Index(s.cameraOrder, s.activeCamera)
	switch {
	case idx < 0 && step > 0:
		idx = 0
	case idx < 0:
		idx = n - 1
	default:
		idx = ((idx+step)%n + n) % n
	}
	s.activeCamera = s.cameraOrder[idx]
}

func (s *Scene) isCamera(id string) bool {
	_, ok := s.cameras[id]
	return ok
}

func (s *Scene) registerCamera(id string, cam components.Projector) {
	if s.isCamera(id) {
		return
	}
	s.cameras[id] = cam
	s.cameraOrder = append(s.cameraOrder, id)
}

func (s *Scene) removeEntity(id string) {
	if _, ok := s.entities[id]; !ok {
		return
	}
	delete(s.entities, id)
	s.entityOrder = slices.DeleteFunc(s.entityOrder, func(e string) bool { return e == id })
}
