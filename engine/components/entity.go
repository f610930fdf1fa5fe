package components

import (
	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
)

// Kind tags what a scene object can do.
type Kind uint8

const (
	// KindEntity is a plain drawable entity.
	KindEntity Kind = iota
	// KindCamera is an entity that is also a projection source.
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindCamera:
		return "camera"
	default:
		return "entity"
	}
}

/**
 * @brief Represents the placement of an object in the world.
 */
type Pose struct {
	/** @brief The position in the world. */
	Position math.Vec3
	/** @brief Euler angles in radians (roll, pitch, yaw). */
	Rotation math.Vec3
	/** @brief The per-axis scale. */
	Scale math.Vec3
	/** @brief Per-axis flips. */
	Reflection math.BVec3
	/** @brief Reserved, has no effect on the model matrix yet. */
	Shear math.Vec3
}

// IdentityPose returns a pose at the origin with no rotation and unit scale.
func IdentityPose() Pose {
	return Pose{
		Position: math.NewVec3Zero(),
		Rotation: math.NewVec3Zero(),
		Scale:    math.NewVec3One(),
		Shear:    math.NewVec3Zero(),
	}
}

// Matrix composes the pose into a model matrix.
func (p Pose) Matrix() math.Mat4 {
	return math.ComposeModelMatrix(p.Position, p.Rotation, p.Scale, p.Reflection, p.Shear)
}

// EntityConfig holds the creation parameters of an entity. Nil fields take the identity pose.
type EntityConfig struct {
	// ID is generated when empty.
	ID string
	// Model is the handle of the geometry in the model store. Optional.
	Model      string
	Position   *math.Vec3
	Rotation   *math.Vec3
	Scale      *math.Vec3
	Reflection *math.BVec3
	Shear      *math.Vec3
}

func (cfg EntityConfig) pose() Pose {
	p := IdentityPose()
	if cfg.Position != nil {
		p.Position = *cfg.Position
	}
	if cfg.Rotation != nil {
		p.Rotation = *cfg.Rotation
	}
	if cfg.Scale != nil {
		p.Scale = *cfg.Scale
	}
	if cfg.Reflection != nil {
		p.Reflection = *cfg.Reflection
	}
	if cfg.Shear != nil {
		p.Shear = *cfg.Shear
	}
	return p
}

// Object is anything a scene can hold.
type Object interface {
	ID() string
	Kind() Kind
	Model() string
	Pose() Pose
	ModelMatrix() math.Mat4
	ComputeModelMatrix() math.Mat4
}

/**
 * @brief A named pose linked to externally stored geometry.
 * NOTE: setters do not rebuild the model matrix. Call ComputeModelMatrix()
 * after changing the pose when a fresh matrix is needed.
 */
type Entity struct {
	id    string
	model string
	pose  Pose
	/** @brief Set when the pose changed after the last ComputeModelMatrix(). */
	isDirty     bool
	modelMatrix math.Mat4
}

// NewEntity creates an entity and computes its initial model matrix.
func NewEntity(cfg EntityConfig) *Entity {
	id := cfg.ID
	if id == "" {
		id = core.NewID()
	}
	e := &Entity{
		id:    id,
		model: cfg.Model,
		pose:  cfg.pose(),
	}
	e.ComputeModelMatrix()
	return e
}

func (e *Entity) ID() string {
	return e.id
}

func (e *Entity) Kind() Kind {
	return KindEntity
}

func (e *Entity) Model() string {
	return e.model
}

// SetModel links the entity to another model handle. An empty handle unlinks it.
func (e *Entity) SetModel(handle string) {
	e.model = handle
}

func (e *Entity) Pose() Pose {
	return e.pose
}

func (e *Entity) Position() math.Vec3 {
	return e.pose.Position
}

func (e *Entity) SetPosition(p math.Vec3Patch) {
	e.pose.Position = e.pose.Position.Merge(p)
	e.isDirty = true
}

func (e *Entity) Rotation() math.Vec3 {
	return e.pose.Rotation
}

func (e *Entity) SetRotation(p math.Vec3Patch) {
	e.pose.Rotation = e.pose.Rotation.Merge(p)
	e.isDirty = true
}

func (e *Entity) Scale() math.Vec3 {
	return e.pose.Scale
}

func (e *Entity) SetScale(p math.Vec3Patch) {
	e.pose.Scale = e.pose.Scale.Merge(p)
	e.isDirty = true
}

func (e *Entity) Reflection() math.BVec3 {
	return e.pose.Reflection
}

func (e *Entity) SetReflection(p math.BVec3Patch) {
	e.pose.Reflection = e.pose.Reflection.Merge(p)
	e.isDirty = true
}

func (e *Entity) Shear() math.Vec3 {
	return e.pose.Shear
}

func (e *Entity) SetShear(p math.Vec3Patch) {
	e.pose.Shear = e.pose.Shear.Merge(p)
	e.isDirty = true
}

// IsDirty reports whether the pose changed since the model matrix was last computed.
func (e *Entity) IsDirty() bool {
	return e.isDirty
}

// ModelMatrix returns the cached matrix from the last ComputeModelMatrix call.
func (e *Entity) ModelMatrix() math.Mat4 {
	return e.modelMatrix
}

func (e *Entity) ComputeModelMatrix() math.Mat4 {
	e.modelMatrix = e.pose.Matrix()
	e.isDirty = false
	return e.modelMatrix
}
