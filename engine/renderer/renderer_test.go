package renderer

import (
	"testing"

	"github.com/spaghettifunk/wireframe/engine/components"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/resources"
	"github.com/spaghettifunk/wireframe/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	width, height int
	cleared       int
	segments      []Segment
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }
func (s *fakeSurface) Clear()            { s.cleared++; s.segments = nil }
func (s *fakeSurface) DrawSegments(segments []Segment) {
	s.segments = append(s.segments, segments...)
}

type modelMap map[string]*resources.ObjFile

func (mm modelMap) GetModel(handle string) (*resources.ObjFile, bool) {
	obj, ok := mm[handle]
	return obj, ok
}

func triangle() *resources.ObjFile {
	return &resources.ObjFile{Models: []resources.ObjModel{{
		Name:     "tri",
		Vertices: []math.Vec4{math.NewPoint(0, 0, 0), math.NewPoint(1, 0, 0), math.NewPoint(0, 1, 0)},
		Faces: []resources.Face{{Vertices: [3]resources.FaceVertex{
			{VertexIndex: 0}, {VertexIndex: 1}, {VertexIndex: 2},
		}}},
	}}}
}

func testCamera() *components.Camera {
	return components.NewCamera(components.CameraConfig{
		EntityConfig: components.EntityConfig{ID: "cam"},
		FOV:          math.Ptr(90.0),
		Near:         math.Ptr(1.0),
		Far:          math.Ptr(1000.0),
	})
}

func assertVec2(t *testing.T, want, got math.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9)
	assert.InDelta(t, want.Y, got.Y, 1e-9)
}

func TestProjectPointInFront(t *testing.T) {
	cam := testCamera()
	entity := components.NewEntity(components.EntityConfig{Position: math.Ptr(math.NewVec3(0, 0, -5))})
	mvp := cam.PerspectiveMatrix().Mul(cam.ViewMatrix()).Mul(entity.ModelMatrix())

	ndc, ok := Project(mvp, math.NewPoint(0, 0, 0))
	require.True(t, ok)
	assert.True(t, ndc.IsFinite())
	assert.InDelta(t, 0.0, ndc.X, 1e-12)
	assert.InDelta(t, 0.0, ndc.Y, 1e-12)
	assert.True(t, ndc.Z > -1 && ndc.Z < 1)

	clip := mvp.MulVec4(math.NewPoint(0, 0, 0))
	assert.Greater(t, clip.W, 0.0)
}

func TestProjectRejectsPointsBehind(t *testing.T) {
	cam := testCamera()
	vp := cam.PerspectiveMatrix().Mul(cam.ViewMatrix())

	_, ok := Project(vp, math.NewPoint(0, 0, 5))
	assert.False(t, ok)
	_, ok = Project(vp, math.NewPoint(0, 0, 0))
	assert.False(t, ok)
}

func TestToScreen(t *testing.T) {
	assertVec2(t, math.NewVec2(100, 50), ToScreen(math.NewVec4(0, 0, 0, 1), 200, 100))
	assertVec2(t, math.NewVec2(150, 0), ToScreen(math.NewVec4(1, 1, 0, 1), 200, 100))
	assertVec2(t, math.NewVec2(50, 100), ToScreen(math.NewVec4(-1, -1, 0, 1), 200, 100))
}

func TestRenderFrame(t *testing.T) {
	cam := testCamera()
	tri := components.NewEntity(components.EntityConfig{
		ID:       "tri",
		Model:    "triangle",
		Position: math.Ptr(math.NewVec3(0, 0, -5)),
	})
	sc := scene.New(scene.Config{Entities: []components.Object{cam, tri}, Cameras: []string{"cam"}})
	surface := &fakeSurface{width: 200, height: 100}

	stats, err := NewPipeline().RenderFrame(sc, modelMap{"triangle": triangle()}, surface)
	require.NoError(t, err)
	assert.Equal(t, FrameStats{Entities: 1, Triangles: 1, Segments: 3}, stats)

	require.Len(t, surface.segments, 3)
	// (0,0,-5) (1,0,-5) (0,1,-5) -> ndc (0,0) (0.2,0) (0,0.2) -> scale 50
	assertVec2(t, math.NewVec2(100, 50), surface.segments[0].From)
	assertVec2(t, math.NewVec2(110, 50), surface.segments[0].To)
	assertVec2(t, math.NewVec2(110, 50), surface.segments[1].From)
	assertVec2(t, math.NewVec2(100, 40), surface.segments[1].To)
	assertVec2(t, math.NewVec2(100, 40), surface.segments[2].From)
	assertVec2(t, math.NewVec2(100, 50), surface.segments[2].To)
}

func TestRenderFrameSkipsCameraAndMissingGeometry(t *testing.T) {
	cam := components.NewCamera(components.CameraConfig{EntityConfig: components.EntityConfig{ID: "cam", Model: "triangle"}})
	ghost := components.NewEntity(components.EntityConfig{ID: "ghost", Model: "missing"})
	bare := components.NewEntity(components.EntityConfig{ID: "bare"})
	sc := scene.New(scene.Config{Entities: []components.Object{cam, ghost, bare}, Cameras: []string{"cam"}})
	surface := &fakeSurface{width: 64, height: 64}

	stats, err := NewPipeline().RenderFrame(sc, modelMap{"triangle": triangle()}, surface)
	require.NoError(t, err)
	assert.Equal(t, FrameStats{}, stats)
	assert.Empty(t, surface.segments)
}

func TestRenderFrameCullsTrianglesBehindCamera(t *testing.T) {
	cam := testCamera()
	behind := components.NewEntity(components.EntityConfig{
		Model:    "triangle",
		Position: math.Ptr(math.NewVec3(0, 0, 5)),
	})
	sc := scene.New(scene.Config{Entities: []components.Object{cam, behind}, Cameras: []string{"cam"}})
	surface := &fakeSurface{width: 64, height: 64}

	stats, err := NewPipeline().RenderFrame(sc, modelMap{"triangle": triangle()}, surface)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Culled)
	assert.Equal(t, 0, stats.Segments)
	assert.Empty(t, surface.segments)
}

func TestRenderFrameUsesActiveCameraPose(t *testing.T) {
	// moving the camera back by 5 is the same as moving the entity forward by 5
	cam := components.NewCamera(components.CameraConfig{
		EntityConfig: components.EntityConfig{ID: "cam", Position: math.Ptr(math.NewVec3(0, 0, 5))},
		FOV:          math.Ptr(90.0),
		Near:         math.Ptr(1.0),
		Far:          math.Ptr(1000.0),
	})
	tri := components.NewEntity(components.EntityConfig{Model: "triangle"})
	sc := scene.New(scene.Config{Entities: []components.Object{cam, tri}, Cameras: []string{"cam"}})
	surface := &fakeSurface{width: 200, height: 100}

	_, err := NewPipeline().RenderFrame(sc, modelMap{"triangle": triangle()}, surface)
	require.NoError(t, err)
	require.Len(t, surface.segments, 3)
	assertVec2(t, math.NewVec2(110, 50), surface.segments[0].To)
}

func TestRenderFrameWithoutCamera(t *testing.T) {
	sc := scene.New(scene.Config{})
	_, err := NewPipeline().RenderFrame(sc, modelMap{}, &fakeSurface{width: 1, height: 1})
	assert.ErrorIs(t, err, ErrNoActiveCamera)
}
