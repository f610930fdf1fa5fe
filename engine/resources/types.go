package resources

import "github.com/spaghettifunk/wireframe/engine/math"

type ResourceType int

/** @brief Pre-defined resource types. */
const (
	/** @brief Resource type could not be determined. */
	ResourceTypeNone ResourceType = iota
	/** @brief Wavefront OBJ model. */
	ResourceTypeModel
	/** @brief Material library referenced by a model. Recorded, never loaded. */
	ResourceTypeMaterial
)

/**
 * @brief A texture coordinate as found in a model file.
 */
type TexCoord struct {
	U, V, W float64
}

/**
 * @brief One corner of a triangle. Indices are 0-based into the model arrays.
 */
type FaceVertex struct {
	/** @brief Index into ObjModel.Vertices. */
	VertexIndex int
	/** @brief Index into ObjModel.TextureCoords, nil when absent. */
	TextureCoordsIndex *int
	/** @brief Index into ObjModel.VertexNormals, nil when absent. */
	VertexNormalIndex *int
}

/**
 * @brief A triangle. Polygons are fan-triangulated by the loader.
 */
type Face struct {
	Material       string
	Group          string
	SmoothingGroup int
	Vertices       [3]FaceVertex
}

/**
 * @brief A named object inside a model file.
 */
type ObjModel struct {
	Name string
	/** @brief Homogeneous positions, W is 1 unless the file says otherwise. */
	Vertices      []math.Vec4
	TextureCoords []TexCoord
	VertexNormals []math.Vec3
	Faces         []Face
}

/**
 * @brief An immutable loaded model file. Entities reference it by handle only.
 */
type ObjFile struct {
	Models            []ObjModel
	MaterialLibraries []string
}

// TriangleCount returns the number of faces across every model.
func (o *ObjFile) TriangleCount() int {
	if o == nil {
		return 0
	}
	n := 0
	for _, m := range o.Models {
		n += len(m.Faces)
	}
	return n
}

// IsEmpty reports whether the file has nothing to draw.
func (o *ObjFile) IsEmpty() bool {
	return o.TriangleCount() == 0
}
