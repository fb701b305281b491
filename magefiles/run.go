//go:build mage

package main

import (
	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Renders a single frame to screenshot.png.
func (Run) Screenshot() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/raster3d", withArgs("-o", "screenshot.png"), withStream())
	return err
}

// Renders a short sequence into frames/.
func (Run) Sequence() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/raster3d", withArgs("-frames", "60", "-fps", "30", "-size", "640x360"), withStream())
	return err
}

// Opens the interactive terminal viewer.
func (Run) View() error {
	mg.Deps(Build.Binary)
	_, err := executeCmd("bin/raster3d", withArgs("-view"), withStream())
	return err
}
