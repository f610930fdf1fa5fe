package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float64
}

// Vec3 represents a 3D vector. Used for coordinates, Euler angles and scale factors.
type Vec3 struct {
	X, Y, Z float64
}

// Vec4 represents a homogeneous coordinate. W is 1 for points.
type Vec4 struct {
	X, Y, Z, W float64
}

/**
 * @brief A set of three per-axis flags, used for reflections.
 */
type BVec3 struct {
	X, Y, Z bool
}

/**
 * @brief A partial update of a Vec3. Nil components keep their previous value.
 */
type Vec3Patch struct {
	X, Y, Z *float64
}

/**
 * @brief A partial update of a BVec3. Nil components keep their previous value.
 */
type BVec3Patch struct {
	X, Y, Z *bool
}

/** @brief a 3x3 row-major matrix, used for 2D homogeneous transforms. */
type Mat3 struct {
	/** @brief The matrix elements, Data[row][column] */
	Data [3][3]float64
}

/** @brief a 4x4 row-major matrix, typically used to represent object transformations. */
type Mat4 struct {
	/** @brief The matrix elements, Data[row][column] */
	Data [4][4]float64
}
