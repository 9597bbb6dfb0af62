package main

import (
	"os"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/Faultbox/gltfview/internal/engine/scene"
)

// demoDocument builds two meshes: a unit quad made of two primitives and
// a single triangle. Every primitive gets its own four buffer views.
func demoDocument() *gltf.Document {
	doc := gltf.NewDocument()

	quad := &gltf.Mesh{Name: "quad"}
	quad.Primitives = append(quad.Primitives,
		demoPrimitive(doc,
			[][3]float32{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}},
			[][2]float32{{0, 1}, {1, 1}, {1, 0}}),
		demoPrimitive(doc,
			[][3]float32{{-1, -1, 0}, {1, 1, 0}, {-1, 1, 0}},
			[][2]float32{{0, 1}, {1, 0}, {0, 0}}),
	)

	tri := &gltf.Mesh{Name: "triangle"}
	tri.Primitives = append(tri.Primitives,
		demoPrimitive(doc,
			[][3]float32{{-1, -1, 0}, {1, -1, 0}, {0, 1, 0}},
			[][2]float32{{0, 1}, {1, 1}, {0.5, 0}}),
	)

	doc.Meshes = []*gltf.Mesh{quad, tri}
	doc.Nodes = []*gltf.Node{
		{Name: "quad", Mesh: gltf.Index(0)},
		{Name: "triangle", Mesh: gltf.Index(1)},
	}
	doc.Scenes[0].Nodes = []uint32{0, 1}
	return doc
}

func demoPrimitive(doc *gltf.Document, positions [][3]float32, uvs [][2]float32) *gltf.Primitive {
	normals := make([][3]float32, len(positions))
	for i := range normals {
		normals[i] = [3]float32{0, 0, 1}
	}
	indices := make([]uint16, len(positions))
	for i := range indices {
		indices[i] = uint16(i)
	}

	pos := modeler.WritePosition(doc, positions)
	nrm := modeler.WriteNormal(doc, normals)
	uv := modeler.WriteTextureCoord(doc, uvs)
	idx := modeler.WriteIndices(doc, indices)
	return &gltf.Primitive{
		Indices: gltf.Index(idx),
		Attributes: map[string]uint32{
			scene.AttrPosition: pos,
			scene.AttrNormal:   nrm,
			scene.AttrTexcoord: uv,
		},
	}
}

func writeDemo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := gltf.NewEncoder(f)
	enc.AsBinary = true
	if err := enc.Encode(demoDocument()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
