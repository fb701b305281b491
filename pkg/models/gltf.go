package models

import (
	"fmt"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/taigrr/raster3d/pkg/math3d"
	"github.com/taigrr/raster3d/pkg/render"
)

// GLTFLoader loads glTF/GLB files into a single Mesh.
type GLTFLoader struct {
	// Generate smooth normals for primitives without a NORMAL attribute.
	CalculateNormals bool
	// Generate tangents from UVs for primitives without a TANGENT attribute.
	CalculateTangents bool
	// Vertex color for primitives without a material base color.
	DefaultColor render.Color
}

// NewGLTFLoader creates a loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals:  true,
		CalculateTangents: true,
		DefaultColor:      render.White,
	}
}

// LoadGLB loads a .glb or .gltf file with the default options.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load reads every triangle primitive of every mesh in the document into
// one Mesh. glTF front faces wind counter-clockwise, which the rasterizer
// keeps with render.CullClockwise, so indices are copied as is.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}
	mesh, err := l.Decode(doc)
	if err != nil {
		return nil, err
	}
	mesh.Name = filepath.Base(path)
	return mesh, nil
}

// Decode converts an already parsed document.
func (l *GLTFLoader) Decode(doc *gltf.Document) (*Mesh, error) {
	mesh := NewMesh("gltf")
	for _, m := range doc.Meshes {
		for i, prim := range m.Primitives {
			if err := l.processPrimitive(doc, prim, mesh); err != nil {
				return nil, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
			}
		}
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("gltf: no triangles")
	}
	mesh.CalculateBounds()
	return mesh, nil
}

func (l *GLTFLoader) processPrimitive(doc *gltf.Document, prim *gltf.Primitive, mesh *Mesh) error {
	if prim.Mode != gltf.PrimitiveTriangles {
		return nil
	}
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil
	}

	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return fmt.Errorf("read positions: %w", err)
	}

	var normals [][3]float32
	if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
		if normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read normals: %w", err)
		}
	}

	var tangents [][4]float32
	if idx, ok := prim.Attributes[gltf.TANGENT]; ok {
		if tangents, err = modeler.ReadTangent(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read tangents: %w", err)
		}
	}

	var uvs [][2]float32
	if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
		if uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil); err != nil {
			return fmt.Errorf("read uvs: %w", err)
		}
	}

	var indices []int
	if prim.Indices != nil {
		raw, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return fmt.Errorf("read indices: %w", err)
		}
		indices = make([]int, len(raw))
		for i, x := range raw {
			indices[i] = int(x)
		}
	} else {
		indices = make([]int, len(positions)-len(positions)%3)
		for i := range indices {
			indices[i] = i
		}
	}

	part := &Mesh{
		Vertices: make([]render.Vertex, len(positions)),
		Indices:  indices,
	}
	color := l.baseColor(doc, prim)
	for i, p := range positions {
		v := &part.Vertices[i]
		v.Position = vec3(p)
		v.Color = color
		if i < len(normals) {
			v.Normal = vec3(normals[i])
		}
		if i < len(tangents) {
			t := tangents[i]
			v.Tangent = math3d.V3(float64(t[0]), float64(t[1]), float64(t[2]))
		}
		if i < len(uvs) {
			v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
		}
	}
	if err := part.Validate(); err != nil {
		return err
	}

	if normals == nil && l.CalculateNormals {
		part.CalculateSmoothNormals()
	}
	if tangents == nil && l.CalculateTangents {
		part.CalculateTangents()
	}

	base := len(mesh.Vertices)
	mesh.Vertices = append(mesh.Vertices, part.Vertices...)
	for _, i := range part.Indices {
		mesh.Indices = append(mesh.Indices, base+i)
	}
	return nil
}

func (l *GLTFLoader) baseColor(doc *gltf.Document, prim *gltf.Primitive) render.Color {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return l.DefaultColor
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := pbr.BaseColorFactor
	return render.Color{R: f[0], G: f[1], B: f[2], A: f[3]}
}

func vec3(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), float64(v[2]))
}
