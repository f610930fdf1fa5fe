package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spaghettifunk/wireframe/engine/core"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/resources"
)

var ErrMalformedOBJ = errors.New("malformed obj")

// ModelLoader reads Wavefront OBJ files.
type ModelLoader struct{}

func (ml *ModelLoader) Load(r io.Reader, name string) (*resources.ObjFile, error) {
	return ParseOBJ(r, name)
}

type objParser struct {
	name string
	line int

	vertices []math.Vec4
	texture  []resources.TexCoord
	normals  []math.Vec3

	models         []resources.ObjModel
	current        *resources.ObjModel
	material       string
	group          string
	smoothingGroup int
	libraries      []string
}

// ParseOBJ reads an OBJ stream. Polygons are fan-triangulated from their first
// vertex, faces with fewer than 3 vertices are dropped and every index is
// converted to 0-based. Vertex data is shared by all objects of the file.
func ParseOBJ(r io.Reader, name string) (*resources.ObjFile, error) {
	p := &objParser{name: name}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		p.line++
		line := strings.TrimSpace(scanner.Text())

		// Skip comments and empty lines
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.parseLine(line); err != nil {
			return nil, fmt.Errorf("obj %s:%d: %w", name, p.line, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj %s: %w", name, err)
	}
	return p.finish(), nil
}

func (p *objParser) parseLine(line string) error {
	fields := strings.Fields(line)
	args := fields[1:]

	switch fields[0] {
	case "v":
		v, err := parseFloats(args, 3, 4)
		if err != nil {
			return err
		}
		w := 1.0
		if len(v) == 4 {
			w = v[3]
		}
		p.vertices = append(p.vertices, math.NewVec4(v[0], v[1], v[2], w))
	case "vt":
		v, err := parseFloats(args, 1, 3)
		if err != nil {
			return err
		}
		tc := resources.TexCoord{U: v[0]}
		if len(v) > 1 {
			tc.V = v[1]
		}
		if len(v) > 2 {
			tc.W = v[2]
		}
		p.texture = append(p.texture, tc)
	case "vn":
		v, err := parseFloats(args, 3, 3)
		if err != nil {
			return err
		}
		p.normals = append(p.normals, math.NewVec3(v[0], v[1], v[2]))
	case "f":
		return p.parseFace(args)
	case "o":
		p.startModel(strings.Join(args, " "))
	case "g":
		p.group = strings.Join(args, " ")
	case "usemtl":
		p.material = strings.Join(args, " ")
	case "mtllib":
		p.libraries = append(p.libraries, args...)
	case "s":
		p.smoothingGroup = 0
		if len(args) > 0 && args[0] != "off" {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: smoothing group %q", ErrMalformedOBJ, args[0])
			}
			p.smoothingGroup = n
		}
	default:
		core.LogDebug("obj %s:%d: ignoring '%s'", p.name, p.line, fields[0])
	}
	return nil
}

func (p *objParser) startModel(name string) {
	if name == "" {
		name = p.name
	}
	p.models = append(p.models, resources.ObjModel{Name: name})
	p.current = &p.models[len(p.models)-1]
}

func (p *objParser) parseFace(args []string) error {
	if len(args) < 3 {
		core.LogDebug("obj %s:%d: dropping face with %d vertices", p.name, p.line, len(args))
		return nil
	}
	corners := make([]resources.FaceVertex, 0, len(args))
	for _, a := range args {
		fv, err := p.parseFaceVertex(a)
		if err != nil {
			return err
		}
		corners = append(corners, fv)
	}
	if p.current == nil {
		p.startModel(p.name)
	}
	for i := 1; i < len(corners)-1; i++ {
		p.current.Faces = append(p.current.Faces, resources.Face{
			Material:       p.material,
			Group:          p.group,
			SmoothingGroup: p.smoothingGroup,
			Vertices:       [3]resources.FaceVertex{corners[0], corners[i], corners[i+1]},
		})
	}
	return nil
}

// parseFaceVertex handles "v", "v/vt", "v//vn" and "v/vt/vn".
func (p *objParser) parseFaceVertex(s string) (resources.FaceVertex, error) {
	parts := strings.Split(s, "/")
	if len(parts) > 3 {
		return resources.FaceVertex{}, fmt.Errorf("%w: face vertex %q", ErrMalformedOBJ, s)
	}
	v, err := resolveIndex(parts[0], len(p.vertices))
	if err != nil {
		return resources.FaceVertex{}, err
	}
	fv := resources.FaceVertex{VertexIndex: v}
	if len(parts) > 1 && parts[1] != "" {
		vt, err := resolveIndex(parts[1], len(p.texture))
		if err != nil {
			return resources.FaceVertex{}, err
		}
		fv.TextureCoordsIndex = &vt
	}
	if len(parts) > 2 && parts[2] != "" {
		vn, err := resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return resources.FaceVertex{}, err
		}
		fv.VertexNormalIndex = &vn
	}
	return fv, nil
}

// resolveIndex turns a 1-based (or negative, relative) OBJ index into a 0-based one.
func resolveIndex(s string, count int) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: index %q", ErrMalformedOBJ, s)
	}
	switch {
	case i > 0:
		i--
	case i < 0:
		i += count
	default:
		return 0, fmt.Errorf("%w: index 0", ErrMalformedOBJ)
	}
	if i < 0 || i >= count {
		return 0, fmt.Errorf("%w: index %s out of range (%d elements)", ErrMalformedOBJ, s, count)
	}
	return i, nil
}

func parseFloats(args []string, lo, hi int) ([]float64, error) {
	if len(args) < lo || len(args) > hi {
		return nil, fmt.Errorf("%w: expected %d to %d values, got %d", ErrMalformedOBJ, lo, hi, len(args))
	}
	out := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid number %q", ErrMalformedOBJ, a)
		}
		out[i] = f
	}
	return out, nil
}

func (p *objParser) finish() *resources.ObjFile {
	out := &resources.ObjFile{MaterialLibraries: p.libraries}
	for _, m := range p.models {
		m.Vertices = p.vertices
		m.TextureCoords = p.texture
		m.VertexNormals = p.normals
		out.Models = append(out.Models, m)
	}
	return out
}
