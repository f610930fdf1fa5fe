package math

import m "math"

/**
 * @brief Creates and returns a translation matrix from the given coordinates.
 */
func NewMat4Translation(x, y, z float64) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0][3] = x
	out_matrix.Data[1][3] = y
	out_matrix.Data[2][3] = z
	return out_matrix
}

/**
 * @brief Returns a scale matrix. The w row is left untouched.
 */
func NewMat4Scale(x, y, z float64) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0][0] = x
	out_matrix.Data[1][1] = y
	out_matrix.Data[2][2] = z
	return out_matrix
}

/**
 * @brief Creates a rotation matrix around the x axis.
 *
 * @param alpha The angle in radians.
 */
func NewMat4Roll(alpha float64) Mat4 {
	out_matrix := NewMat4Identity()
	c, s := m.Cos(alpha), m.Sin(alpha)
	out_matrix.Data[1][1] = c
	out_matrix.Data[1][2] = -s
	out_matrix.Data[2][1] = s
	out_matrix.Data[2][2] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix around the y axis.
 *
 * @param beta The angle in radians.
 */
func NewMat4Pitch(beta float64) Mat4 {
	out_matrix := NewMat4Identity()
	c, s := m.Cos(beta), m.Sin(beta)
	out_matrix.Data[0][0] = c
	out_matrix.Data[0][2] = s
	out_matrix.Data[2][0] = -s
	out_matrix.Data[2][2] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix around the z axis.
 *
 * @param upsilon The angle in radians.
 */
func NewMat4Yaw(upsilon float64) Mat4 {
	out_matrix := NewMat4Identity()
	c, s := m.Cos(upsilon), m.Sin(upsilon)
	out_matrix.Data[0][0] = c
	out_matrix.Data[0][1] = -s
	out_matrix.Data[1][0] = s
	out_matrix.Data[1][1] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix as roll(alpha) * pitch(beta) * yaw(upsilon).
 */
func NewMat4Rotation(alpha, beta, upsilon float64) Mat4 {
	return NewMat4Roll(alpha).Mul(NewMat4Pitch(beta)).Mul(NewMat4Yaw(upsilon))
}

/**
 * @brief Creates a diagonal matrix with -1 on every flagged axis and +1 elsewhere.
 */
func NewMat4Reflection(x, y, z bool) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0][0] = sign(x)
	out_matrix.Data[1][1] = sign(y)
	out_matrix.Data[2][2] = sign(z)
	return out_matrix
}

// NewMat4Shearing is reserved: it always returns the identity until shear
// factors are wired through the pose.
func NewMat4Shearing(shXY, shYX, shXZ, shZX, shYZ float64) Mat4 {
	return NewMat4Identity()
}

/**
 * @brief Composes a model matrix in the fixed order scale, rotate, reflect, translate:
 * translate * (reflect * (rotate * scale)). Shear is currently a no-op.
 */
func ComposeModelMatrix(position, rotation, scale Vec3, reflection BVec3, shear Vec3) Mat4 {
	out_matrix := NewMat4Scale(scale.X, scale.Y, scale.Z)
	out_matrix = NewMat4Rotation(rotation.X, rotation.Y, rotation.Z).Mul(out_matrix)
	out_matrix = NewMat4Reflection(reflection.X, reflection.Y, reflection.Z).Mul(out_matrix)
	out_matrix = NewMat4Shearing(shear.X, shear.Y, shear.Z, 0, 0).Mul(out_matrix)
	out_matrix = NewMat4Translation(position.X, position.Y, position.Z).Mul(out_matrix)
	return out_matrix
}

/**
 * @brief Creates and returns a right-handed perspective matrix. Clip-space output still
 * needs the divide by w.
 *
 * @param fov The field of view in degrees.
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 */
func NewMat4Perspective(fov, near_clip, far_clip float64) Mat4 {
	s := 1.0 / m.Tan(DegToRad(fov)*0.5)
	out_matrix := Mat4{}
	out_matrix.Data[0][0] = s
	out_matrix.Data[1][1] = s
	out_matrix.Data[2][2] = -far_clip / (far_clip - near_clip)
	out_matrix.Data[2][3] = -far_clip * near_clip / (far_clip - near_clip)
	out_matrix.Data[3][2] = -1
	return out_matrix
}

// ------------------------------------------
// 2D homogeneous (3x3) counterparts
// ------------------------------------------

func NewMat3Translation(x, y float64) Mat3 {
	out_matrix := NewMat3Identity()
	out_matrix.Data[0][2] = x
	out_matrix.Data[1][2] = y
	return out_matrix
}

func NewMat3Scale(x, y float64) Mat3 {
	out_matrix := NewMat3Identity()
	out_matrix.Data[0][0] = x
	out_matrix.Data[1][1] = y
	return out_matrix
}

func NewMat3Roll(alpha float64) Mat3 {
	return NewMat4Roll(alpha).ToMat3()
}

func NewMat3Pitch(beta float64) Mat3 {
	return NewMat4Pitch(beta).ToMat3()
}

func NewMat3Yaw(upsilon float64) Mat3 {
	return NewMat4Yaw(upsilon).ToMat3()
}

func NewMat3Rotation(alpha, beta, upsilon float64) Mat3 {
	return NewMat3Roll(alpha).Mul(NewMat3Pitch(beta)).Mul(NewMat3Yaw(upsilon))
}

func NewMat3Reflection(x, y bool) Mat3 {
	out_matrix := NewMat3Identity()
	out_matrix.Data[0][0] = sign(x)
	out_matrix.Data[1][1] = sign(y)
	return out_matrix
}

// NewMat3Shearing is reserved, see NewMat4Shearing.
func NewMat3Shearing(shXY, shYX float64) Mat3 {
	return NewMat3Identity()
}

func sign(flip bool) float64 {
	if flip {
		return -1
	}
	return 1
}
