package scene

import (
	"errors"
	"fmt"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/models"
)

var (
	// ErrNotFound is returned when no object matches a lookup.
	ErrNotFound = errors.New("object not found")
	// ErrDuplicate is returned when adding an object under a taken name.
	ErrDuplicate = errors.New("duplicate object name")
)

// ID identifies an object within its Scene.
type ID int

// Object is a mesh placed in the world.
type Object struct {
	Name  string
	Mesh  *models.Mesh
	Model math3d.Mat4
}

// NewObject wraps mesh with an identity model matrix.
func NewObject(name string, mesh *models.Mesh) *Object {
	return &Object{Name: name, Mesh: mesh, Model: math3d.Identity()}
}

// Bounds returns the world space bounds of the object.
func (o *Object) Bounds() AABB {
	return AABB{Min: o.Mesh.BoundsMin, Max: o.Mesh.BoundsMax}.Transform(o.Model)
}

// Scene is an ordered set of uniquely named objects.
type Scene struct {
	objects []*Object
	byName  map[string]ID
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{byName: make(map[string]ID)}
}

// Add registers obj under its name.
func (s *Scene) Add(obj *Object) (ID, error) {
	if obj == nil || obj.Mesh == nil {
		return 0, fmt.Errorf("add object: nil mesh")
	}
	if _, ok := s.byName[obj.Name]; ok {
		return 0, fmt.Errorf("%w: %q", ErrDuplicate, obj.Name)
	}
	id := ID(len(s.objects))
	s.objects = append(s.objects, obj)
	s.byName[obj.Name] = id
	return id, nil
}

// Get returns the object with the given id.
func (s *Scene) Get(id ID) (*Object, error) {
	if id < 0 || int(id) >= len(s.objects) {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return s.objects[id], nil
}

// Lookup returns the object registered under name.
func (s *Scene) Lookup(name string) (*Object, error) {
	id, ok := s.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return s.objects[id], nil
}

// Objects returns all objects in insertion order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Visible returns the objects whose world bounds intersect f, in insertion
// order.
func (s *Scene) Visible(f Frustum) []*Object {
	out := make([]*Object, 0, len(s.objects))
	for _, o := range s.objects {
		if f.IntersectAABB(o.Bounds()) {
			out = append(out, o)
		}
	}
	return out
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}
