//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Builds the raster3d binary into bin/.
func (Build) Binary() error {
	_, err := executeCmd("go", withArgs("build", "-o", "bin/raster3d", "./cmd/raster3d"), withStream())
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}
