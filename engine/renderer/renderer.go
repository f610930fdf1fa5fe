package renderer

import (
	"errors"
	m "math"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/resources"
	"github.com/spaghettifunk/wireframe/engine/scene"
)

var ErrNoActiveCamera = errors.New("scene has no active camera")

// ModelSource resolves the geometry handles entities carry.
type ModelSource interface {
	GetModel(handle string) (*resources.ObjFile, bool)
}

// FrameStats describes what the last frame drew.
type FrameStats struct {
	Entities int
	// Triangles is the number of triangles turned into segments.
	Triangles int
	// Culled counts triangles dropped because a corner sat on or behind the camera plane.
	Culled   int
	Segments int
}

// Pipeline turns a scene into 2D line segments: model -> view -> projection,
// perspective divide, then viewport mapping. There is no clipping: triangles
// with a corner at w <= epsilon are dropped whole.
type Pipeline struct {
	segments []Segment
}

func NewPipeline() *Pipeline {
	return &Pipeline{}
}

// RenderFrame draws every entity with resolvable geometry through the active
// camera. The active camera itself is never drawn. The surface is not cleared.
func (p *Pipeline) RenderFrame(sc *scene.Scene, models ModelSource, surface Surface) (FrameStats, error) {
	stats := FrameStats{}
	camera, ok := sc.ActiveCameraObject()
	if !ok {
		return stats, ErrNoActiveCamera
	}

	width, height := surface.Size()
	viewProjection := camera.PerspectiveMatrix().Mul(camera.ViewMatrix())
	p.segments = p.segments[:0]

	for _, entity := range sc.Entities() {
		if entity.ID() == camera.ID() || entity.Model() == "" {
			continue
		}
		obj, ok := models.GetModel(entity.Model())
		if !ok {
			core.LogDebug("entity '%s' references unknown model %s, skipping", entity.ID(), entity.Model())
			continue
		}
		stats.Entities++
		mvp := viewProjection.Mul(entity.ModelMatrix())
		p.drawModel(obj, mvp, width, height, &stats)
	}

	stats.Segments = len(p.segments)
	if len(p.segments) > 0 {
		surface.DrawSegments(p.segments)
	}
	return stats, nil
}

func (p *Pipeline) drawModel(obj *resources.ObjFile, mvp math.Mat4, width, height int, stats *FrameStats) {
	for _, model := range obj.Models {
		for _, face := range model.Faces {
			var corners [3]math.Vec2
			visible := true
			for k, fv := range face.Vertices {
				if fv.VertexIndex < 0 || fv.VertexIndex >= len(model.Vertices) {
					visible = false
					break
				}
				ndc, ok := Project(mvp, model.Vertices[fv.VertexIndex])
				if !ok {
					visible = false
					break
				}
				corners[k] = ToScreen(ndc, width, height)
			}
			if !visible {
				stats.Culled++
				continue
			}
			stats.Triangles++
			p.segments = append(p.segments,
				Segment{From: corners[0], To: corners[1]},
				Segment{From: corners[1], To: corners[2]},
				Segment{From: corners[2], To: corners[0]},
			)
		}
	}
}

// Project transforms v to clip space and applies the perspective divide. It
// reports false when the result is not finite or w is not in front of the camera.
func Project(mvp math.Mat4, v math.Vec4) (math.Vec4, bool) {
	clip := mvp.MulVec4(v)
	if !clip.IsFinite() || clip.W <= math.K_FLOAT_EPSILON {
		return clip, false
	}
	return math.NewVec4(clip.X/clip.W, clip.Y/clip.W, clip.Z/clip.W, 1), true
}

// ToScreen maps normalized device coordinates to pixels. Both axes share the
// scale min(width, height)/2 so the aspect ratio is preserved; y points down.
func ToScreen(ndc math.Vec4, width, height int) math.Vec2 {
	scale := m.Min(float64(width), float64(height)) / 2
	return math.NewVec2(
		float64(width)/2+ndc.X*scale,
		float64(height)/2-ndc.Y*scale,
	)
}
