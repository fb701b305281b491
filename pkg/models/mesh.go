// Package models provides indexed triangle meshes and glTF loading.
package models

import (
	"fmt"
	"math"

	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// Mesh is an indexed triangle list ready for the rasterizer.
type Mesh struct {
	Name     string
	Vertices []render.Vertex
	Indices  []int

	// Bounding box (calculated on load)
	BoundsMin math3d.Vec3
	BoundsMax math3d.Vec3
}

// NewMesh creates an empty mesh.
func NewMesh(name string) *Mesh {
	return &Mesh{Name: name}
}

// CalculateBounds computes the axis-aligned bounding box.
func (m *Mesh) CalculateBounds() {
	if len(m.Vertices) == 0 {
		return
	}

	m.BoundsMin = m.Vertices[0].Position
	m.BoundsMax = m.Vertices[0].Position

	for _, v := range m.Vertices[1:] {
		m.BoundsMin = m.BoundsMin.Min(v.Position)
		m.BoundsMax = m.BoundsMax.Max(v.Position)
	}
}

// Center returns the center of the bounding box.
func (m *Mesh) Center() math3d.Vec3 {
	return m.BoundsMin.Add(m.BoundsMax).Scale(0.5)
}

// Size returns the dimensions of the bounding box.
func (m *Mesh) Size() math3d.Vec3 {
	return m.BoundsMax.Sub(m.BoundsMin)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks that the index list forms whole triangles within range.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: %w", m.Name, render.ErrIndexCount)
	}
	for _, i := range m.Indices {
		if i < 0 || i >= len(m.Vertices) {
			return fmt.Errorf("mesh %q: index %d: %w", m.Name, i, render.ErrIndexRange)
		}
	}
	return nil
}

// CalculateSmoothNormals sets each vertex normal to the normalized sum of
// the (area weighted) normals of the triangles sharing it.
func (m *Mesh) CalculateSmoothNormals() {
	for i := range m.Vertices {
		m.Vertices[i].Normal = math3d.Vec3{}
	}

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		p0 := m.Vertices[a].Position
		n := m.Vertices[b].Position.Sub(p0).Cross(m.Vertices[c].Position.Sub(p0))
		for _, j := range [3]int{a, b, c} {
			m.Vertices[j].Normal = m.Vertices[j].Normal.Add(n)
		}
	}

	for i := range m.Vertices {
		m.Vertices[i].Normal = m.Vertices[i].Normal.Normalize()
	}
}

// CalculateTangents derives per-vertex tangents from positions and UVs,
// accumulating the tangent of every triangle and orthogonalizing it against
// the vertex normal. Triangles with degenerate UVs contribute nothing; a
// vertex left without a tangent gets any unit vector perpendicular to its
// normal.
func (m *Mesh) CalculateTangents() {
	acc := make([]math3d.Vec3, len(m.Vertices))

	for i := 0; i+2 < len(m.Indices); i += 3 {
		a, b, c := m.Indices[i], m.Indices[i+1], m.Indices[i+2]
		v0, v1, v2 := &m.Vertices[a], &m.Vertices[b], &m.Vertices[c]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		d1 := v1.UV.Sub(v0.UV)
		d2 := v2.UV.Sub(v0.UV)

		det := d1.Cross(d2)
		if det == 0 {
			continue
		}
		t := e1.Scale(d2.Y).Sub(e2.Scale(d1.Y)).Scale(1 / det)
		for _, j := range [3]int{a, b, c} {
			acc[j] = acc[j].Add(t)
		}
	}

	for i := range m.Vertices {
		n := m.Vertices[i].Normal
		t := acc[i].Sub(n.Scale(n.Dot(acc[i])))
		if t.Len() < 1e-9 {
			t = perpendicular(n)
		}
		m.Vertices[i].Tangent = t.Normalize()
	}
}

func perpendicular(n math3d.Vec3) math3d.Vec3 {
	axis := math3d.V3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		axis = math3d.V3(0, 1, 0)
	}
	return axis.Sub(n.Scale(n.Dot(axis)))
}


// Transform applies mat to all positions, normals and tangents.
func (m *Mesh) Transform(mat math3d.Mat4) {
	nm := mat.NormalMatrix()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = mat.MulVec3(v.Position)
		v.Normal = nm.MulVec3Dir(v.Normal).Normalize()
		v.Tangent = mat.MulVec3Dir(v.Tangent).Normalize()
	}
	m.CalculateBounds()
}

// Clone creates a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	clone := &Mesh{
		Name:      m.Name,
		Vertices:  make([]render.Vertex, len(m.Vertices)),
		Indices:   make([]int, len(m.Indices)),
		BoundsMin: m.BoundsMin,
		BoundsMax: m.BoundsMax,
	}
	copy(clone.Vertices, m.Vertices)
	copy(clone.Indices, m.Indices)
	return clone
}

// Fill sets every vertex color to c.
func (m *Mesh) Fill(c render.Color) {
	for i := range m.Vertices {
		m.Vertices[i].Color = c
	}
}
