package math

import (
	"errors"
	m "math"
)

// ErrSingularMatrix is returned by TryInverse when the determinant is exactly zero.
var ErrSingularMatrix = errors.New("matrix is singular")

// ------------------------------------------
// Vector 2
// ------------------------------------------

/**
 * @brief Creates and returns a new 2-element vector using the supplied values.
 */
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 */
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 1.0f.
 */
func NewVec3One() Vec3 {
	return Vec3{X: 1, Y: 1, Z: 1}
}

/**
 * @brief Returns a new Vec4 using vector as the x, y and z components and w for w.
 */
func (v Vec3) ToVec4(w float64) Vec4 {
	return Vec4{X: v.X, Y: v.Y, Z: v.Z, W: w}
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) MulScalar(scalar float64) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

/**
 * @brief Compares all elements of vector_0 and vector_1 and ensures the difference
 * is less than tolerance.
 */
func (v Vec3) Compare(other Vec3, tolerance float64) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance
}

/**
 * @brief Returns a copy of v where only the components present in the patch are replaced.
 */
func (v Vec3) Merge(p Vec3Patch) Vec3 {
	if p.X != nil {
		v.X = *p.X
	}
	if p.Y != nil {
		v.Y = *p.Y
	}
	if p.Z != nil {
		v.Z = *p.Z
	}
	return v
}

/**
 * @brief Returns a patch that replaces every component with the ones of v.
 */
func (v Vec3) Patch() Vec3Patch {
	return Vec3Patch{X: Ptr(v.X), Y: Ptr(v.Y), Z: Ptr(v.Z)}
}

func (b BVec3) Merge(p BVec3Patch) BVec3 {
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Z != nil {
		b.Z = *p.Z
	}
	return b
}

func (b BVec3) Patch() BVec3Patch {
	return BVec3Patch{X: Ptr(b.X), Y: Ptr(b.Y), Z: Ptr(b.Z)}
}

// ------------------------------------------
// Vector 4
// ------------------------------------------

/**
 * @brief Creates and returns a new 4-element vector using the supplied values.
 */
func NewVec4(x, y, z, w float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: w}
}

/**
 * @brief Creates a point (w = 1) from the given coordinates.
 */
func NewPoint(x, y, z float64) Vec4 {
	return Vec4{X: x, Y: y, Z: z, W: 1}
}

/**
 * @brief Returns a new Vec3 containing the x, y and z components of the
 * supplied Vec4, essentially dropping the w component.
 */
func (v Vec4) ToVec3() Vec3 {
	return Vec3{X: v.X, Y: v.Y, Z: v.Z}
}

func (v Vec4) elements() [4]float64 {
	return [4]float64{v.X, v.Y, v.Z, v.W}
}

/**
 * @brief Reports whether every component is a finite number.
 */
func (v Vec4) IsFinite() bool {
	for _, e := range v.elements() {
		if m.IsNaN(e) || m.IsInf(e, 0) {
			return false
		}
	}
	return true
}

func (v Vec4) Compare(other Vec4, tolerance float64) bool {
	return kabs(v.X-other.X) <= tolerance &&
		kabs(v.Y-other.Y) <= tolerance &&
		kabs(v.Z-other.Z) <= tolerance &&
		kabs(v.W-other.W) <= tolerance
}

// ------------------------------------------
// Matrix 4x4
// ------------------------------------------

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	for i := 0; i < 4; i++ {
		out_matrix.Data[i][i] = 1
	}
	return out_matrix
}

/**
 * @brief Returns the result of multiplying matrix_0 and matrix_1 (row by column).
 *
 * @param other The second matrix to be multiplied.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out_matrix.Data[i][j] = mt.Data[i][0]*other.Data[0][j] +
				mt.Data[i][1]*other.Data[1][j] +
				mt.Data[i][2]*other.Data[2][j] +
				mt.Data[i][3]*other.Data[3][j]
		}
	}
	return out_matrix
}

/**
 * @brief Transforms a homogeneous vector: result[i] = sum_j v[j] * m[i][j].
 */
func (mt Mat4) MulVec4(v Vec4) Vec4 {
	e := v.elements()
	var r [4]float64
	for i := 0; i < 4; i++ {
		r[i] = e[0]*mt.Data[i][0] + e[1]*mt.Data[i][1] + e[2]*mt.Data[i][2] + e[3]*mt.Data[i][3]
	}
	return Vec4{X: r[0], Y: r[1], Z: r[2], W: r[3]}
}

/**
 * @brief Returns a transposed copy of the provided matrix (rows->colums)
 */
func (mt Mat4) Transposed() Mat4 {
	out_matrix := Mat4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out_matrix.Data[i][j] = mt.Data[j][i]
		}
	}
	return out_matrix
}

/**
 * @brief Compares every element against other within tolerance.
 */
func (mt Mat4) Compare(other Mat4, tolerance float64) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if kabs(mt.Data[i][j]-other.Data[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}

// minor returns the determinant of the 3x3 matrix left after removing row and col.
func (mt Mat4) minor(row, col int) float64 {
	sub := Mat3{}
	si := 0
	for i := 0; i < 4; i++ {
		if i == row {
			continue
		}
		sj := 0
		for j := 0; j < 4; j++ {
			if j == col {
				continue
			}
			sub.Data[si][sj] = mt.Data[i][j]
			sj++
		}
		si++
	}
	return sub.Determinant()
}

func (mt Mat4) cofactor(row, col int) float64 {
	c := mt.minor(row, col)
	if (row+col)%2 == 1 {
		return -c
	}
	return c
}

/**
 * @brief Computes the determinant using cofactor expansion along the first row.
 */
func (mt Mat4) Determinant() float64 {
	det := 0.0
	for j := 0; j < 4; j++ {
		det += mt.Data[0][j] * mt.cofactor(0, j)
	}
	return det
}

/**
 * @brief Returns the adjugate (transposed cofactor matrix).
 */
func (mt Mat4) Adjugate() Mat4 {
	out_matrix := Mat4{}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out_matrix.Data[j][i] = mt.cofactor(i, j)
		}
	}
	return out_matrix
}

/**
 * @brief Creates and returns an inverse of the provided matrix.
 *
 * @return The inverted matrix, or ErrSingularMatrix when the determinant is zero.
 */
func (mt Mat4) TryInverse() (Mat4, error) {
	det := mt.Determinant()
	if det == 0 {
		return mt, ErrSingularMatrix
	}
	d := 1.0 / det
	out_matrix := mt.Adjugate()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out_matrix.Data[i][j] *= d
		}
	}
	return out_matrix, nil
}

/**
 * @brief Creates and returns an inverse of the provided matrix.
 * A singular matrix is returned unchanged.
 *
 * @return A inverted copy of the provided matrix.
 */
func (mt Mat4) Inverse() Mat4 {
	out_matrix, err := mt.TryInverse()
	if err != nil {
		return mt
	}
	return out_matrix
}

/**
 * @brief Returns the upper-left 3x3 block.
 */
func (mt Mat4) ToMat3() Mat3 {
	out_matrix := Mat3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out_matrix.Data[i][j] = mt.Data[i][j]
		}
	}
	return out_matrix
}

// ------------------------------------------
// Matrix 3x3
// ------------------------------------------

func NewMat3Identity() Mat3 {
	out_matrix := Mat3{}
	for i := 0; i < 3; i++ {
		out_matrix.Data[i][i] = 1
	}
	return out_matrix
}

func (mt Mat3) Mul(other Mat3) Mat3 {
	out_matrix := Mat3{}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out_matrix.Data[i][j] = mt.Data[i][0]*other.Data[0][j] +
				mt.Data[i][1]*other.Data[1][j] +
				mt.Data[i][2]*other.Data[2][j]
		}
	}
	return out_matrix
}

func (mt Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: v.X*mt.Data[0][0] + v.Y*mt.Data[0][1] + v.Z*mt.Data[0][2],
		Y: v.X*mt.Data[1][0] + v.Y*mt.Data[1][1] + v.Z*mt.Data[1][2],
		Z: v.X*mt.Data[2][0] + v.Y*mt.Data[2][1] + v.Z*mt.Data[2][2],
	}
}

func (mt Mat3) Determinant() float64 {
	d := mt.Data
	return d[0][0]*(d[1][1]*d[2][2]-d[1][2]*d[2][1]) -
		d[0][1]*(d[1][0]*d[2][2]-d[1][2]*d[2][0]) +
		d[0][2]*(d[1][0]*d[2][1]-d[1][1]*d[2][0])
}

/**
 * @brief Adjugate over determinant. A singular matrix is returned unchanged.
 */
func (mt Mat3) Inverse() Mat3 {
	det := mt.Determinant()
	if det == 0 {
		return mt
	}
	d := mt.Data
	adj := Mat3{Data: [3][3]float64{
		{d[1][1]*d[2][2] - d[1][2]*d[2][1], d[0][2]*d[2][1] - d[0][1]*d[2][2], d[0][1]*d[1][2] - d[0][2]*d[1][1]},
		{d[1][2]*d[2][0] - d[1][0]*d[2][2], d[0][0]*d[2][2] - d[0][2]*d[2][0], d[0][2]*d[1][0] - d[0][0]*d[1][2]},
		{d[1][0]*d[2][1] - d[1][1]*d[2][0], d[0][1]*d[2][0] - d[0][0]*d[2][1], d[0][0]*d[1][1] - d[0][1]*d[1][0]},
	}}
	inv := 1.0 / det
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			adj.Data[i][j] *= inv
		}
	}
	return adj
}

func (mt Mat3) Compare(other Mat3, tolerance float64) bool {
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if kabs(mt.Data[i][j]-other.Data[i][j]) > tolerance {
				return false
			}
		}
	}
	return true
}

/**
 * @brief Embeds the matrix in the upper-left block of a 4x4 identity.
 */
func (mt Mat3) ToMat4() Mat4 {
	out_matrix := NewMat4Identity()
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out_matrix.Data[i][j] = mt.Data[i][j]
		}
	}
	return out_matrix
}
