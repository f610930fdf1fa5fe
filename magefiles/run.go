//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders the example scene in configs/ into ./frames.
func (Run) Render() error {
	mg.Deps(Build.Binary)
	fmt.Println("Rendering example scene...")
	if _, err := executeCmd(fmt.Sprintf("./bin/%s", binaryName), withArgs("-config", "configs/scene.toml", "-out", "frames"), withStream()); err != nil {
		return err
	}
	return nil
}
