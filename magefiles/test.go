//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Test mg.Namespace

// Runs the unit tests with the race detector.
func (Test) Unit() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Runs the rasterizer, shader and scene benchmarks.
func (Test) Bench() error {
	_, err := executeCmd("go", withArgs("test", "-run", "^$", "-bench", ".", "-benchmem", "./pkg/..."), withStream())
	return err
}
