//go:build mage

package main

import (
	"path/filepath"

	"github.com/magefile/mage/mg"
)

const binaryName = "wireframe"

type Build mg.Namespace

// Tidies the module, vets it and builds the binary into ./bin.
func (Build) Binary() error {
	if err := goTidy(); err != nil {
		return err
	}
	if _, err := executeCmd("go", withArgs("build", "-o", filepath.Join("bin", binaryName), "."), withStream()); err != nil {
		return err
	}
	return nil
}
