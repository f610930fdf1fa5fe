package assets

import (
	"io"

	"github.com/spaghettifunk/wireframe/engine/resources"
)

// Loader parses one kind of model file.
type Loader interface {
	Load(r io.Reader, name string) (*resources.ObjFile, error)
}
