package components

import (
	"github.com/spaghettifunk/wireframe/engine/math"
)

const (
	DEFAULT_CAMERA_FOV  float64 = 75
	DEFAULT_CAMERA_NEAR float64 = 0.1
	DEFAULT_CAMERA_FAR  float64 = 1000
)

// Projector is implemented by scene objects that can act as the active camera.
type Projector interface {
	Object
	PerspectiveMatrix() math.Mat4
	ViewMatrix() math.Mat4
}

// CameraConfig extends EntityConfig with the projection parameters.
type CameraConfig struct {
	EntityConfig
	/** @brief Field of view in degrees. Defaults to 75. */
	FOV *float64
	/** @brief Near clip distance. Defaults to 0.1. */
	Near *float64
	/** @brief Far clip distance. Defaults to 1000. */
	Far *float64
}

/**
 * @brief An entity that also defines a perspective projection.
 * The projection only depends on fov/near/far, never on the pose.
 * NOTE: SetFOV/SetNear/SetFar do not rebuild the perspective matrix,
 * call ComputePerspectiveMatrix() afterwards.
 */
type Camera struct {
	*Entity

	fov  float64
	near float64
	far  float64

	perspectiveMatrix math.Mat4
}

func NewCamera(cfg CameraConfig) *Camera {
	c := &Camera{
		Entity: NewEntity(cfg.EntityConfig),
		fov:    DEFAULT_CAMERA_FOV,
		near:   DEFAULT_CAMERA_NEAR,
		far:    DEFAULT_CAMERA_FAR,
	}
	if cfg.FOV != nil {
		c.fov = *cfg.FOV
	}
	if cfg.Near != nil {
		c.near = *cfg.Near
	}
	if cfg.Far != nil {
		c.far = *cfg.Far
	}
	c.ComputePerspectiveMatrix()
	return c
}

func (c *Camera) Kind() Kind {
	return KindCamera
}

func (c *Camera) FOV() float64 {
	return c.fov
}

func (c *Camera) SetFOV(degrees float64) {
	c.fov = degrees
}

func (c *Camera) Near() float64 {
	return c.near
}

func (c *Camera) SetNear(distance float64) {
	c.near = distance
}

func (c *Camera) Far() float64 {
	return c.far
}

func (c *Camera) SetFar(distance float64) {
	c.far = distance
}

func (c *Camera) PerspectiveMatrix() math.Mat4 {
	return c.perspectiveMatrix
}

func (c *Camera) ComputePerspectiveMatrix() math.Mat4 {
	c.perspectiveMatrix = math.NewMat4Perspective(c.fov, c.near, c.far)
	return c.perspectiveMatrix
}

// ViewMatrix maps world space into camera space. It is the inverse of the
// cached model matrix, which is returned unchanged when singular.
func (c *Camera) ViewMatrix() math.Mat4 {
	return c.ModelMatrix().Inverse()
}
