package assets

import (
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/resources"
)

const CUBE_MODEL_NAME = "cube"

// unit cube sides as quads (vertex indices) with their normal index
var cubeSides = [6]struct {
	quad   [4]int
	normal int
}{
	{[4]int{0, 1, 2, 3}, 0}, // z = 0
	{[4]int{4, 5, 6, 7}, 1}, // z = 1
	{[4]int{0, 1, 5, 4}, 2}, // y = 0
	{[4]int{3, 2, 6, 7}, 3}, // y = 1
	{[4]int{0, 3, 7, 4}, 4}, // x = 0
	{[4]int{1, 2, 6, 5}, 5}, // x = 1
}

/**
 * @brief Builds the unit cube spanning (0,0,0)-(1,1,1): 8 vertices, 12 triangles.
 * Always available without touching the filesystem.
 */
func CubeModel() *resources.ObjFile {
	cube := resources.ObjModel{
		Name: CUBE_MODEL_NAME,
		Vertices: []math.Vec4{
			math.NewPoint(0, 0, 0),
			math.NewPoint(1, 0, 0),
			math.NewPoint(1, 1, 0),
			math.NewPoint(0, 1, 0),
			math.NewPoint(0, 0, 1),
			math.NewPoint(1, 0, 1),
			math.NewPoint(1, 1, 1),
			math.NewPoint(0, 1, 1),
		},
		TextureCoords: []resources.TexCoord{
			{U: 0, V: 0}, {U: 1, V: 0}, {U: 1, V: 1}, {U: 0, V: 1},
		},
		VertexNormals: []math.Vec3{
			math.NewVec3(0, 0, -1),
			math.NewVec3(0, 0, 1),
			math.NewVec3(0, -1, 0),
			math.NewVec3(0, 1, 0),
			math.NewVec3(-1, 0, 0),
			math.NewVec3(1, 0, 0),
		},
	}

	corner := func(quad [4]int, i, normal int) resources.FaceVertex {
		tex, n := i, normal
		return resources.FaceVertex{VertexIndex: quad[i], TextureCoordsIndex: &tex, VertexNormalIndex: &n}
	}
	for _, side := range cubeSides {
		for _, tri := range [2][3]int{{0, 1, 2}, {0, 2, 3}} {
			face := resources.Face{}
			for k, i := range tri {
				face.Vertices[k] = corner(side.quad, i, side.normal)
			}
			cube.Faces = append(cube.Faces, face)
		}
	}
	return &resources.ObjFile{Models: []resources.ObjModel{cube}}
}
