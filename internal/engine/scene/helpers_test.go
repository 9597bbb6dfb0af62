package scene

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gltfview/internal/engine/gpu"
)

var (
	triPositions = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	triNormals   = [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	triTexcoords = [][2]float32{{0, 0}, {1, 0}, {0, 1}}
	triIndices   = []uint16{0, 1, 2}
)

// writeTriangle adds four buffer views (position, normal, texcoord, index)
// to doc and returns a primitive using them.
func writeTriangle(doc *gltf.Document) *gltf.Primitive {
	pos := modeler.WritePosition(doc, triPositions)
	nrm := modeler.WriteNormal(doc, triNormals)
	uv := modeler.WriteTextureCoord(doc, triTexcoords)
	idx := modeler.WriteIndices(doc, triIndices)
	return &gltf.Primitive{
		Indices: &idx,
		Attributes: map[string]uint32{
			AttrPosition: pos,
			AttrNormal:   nrm,
			AttrTexcoord: uv,
		},
	}
}

// buildDoc returns a document with one mesh per argument, each holding that
// many primitives. Every primitive has its own four buffer views.
func buildDoc(primsPerMesh ...int) *gltf.Document {
	doc := gltf.NewDocument()
	for i, n := range primsPerMesh {
		mesh := &gltf.Mesh{Name: "mesh" + string(rune('A'+i))}
		for j := 0; j < n; j++ {
			mesh.Primitives = append(mesh.Primitives, writeTriangle(doc))
		}
		doc.Meshes = append(doc.Meshes, mesh)
	}
	return doc
}

func newTestLoader(t *testing.T, c Capacity) (*Loader, *gpu.Recorder) {
	t.Helper()
	dev := gpu.NewRecorder()
	sh, err := dev.CreateShader("vs", "fs")
	require.NoError(t, err)
	return NewLoader(dev, NewResources(c), sh, 4), dev
}

// writeGLB encodes doc as a binary glTF file in dir.
func writeGLB(t *testing.T, dir, name string, doc *gltf.Document) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := gltf.NewEncoder(f)
	enc.AsBinary = true
	require.NoError(t, enc.Encode(doc))
	return path
}

// triangleBin is the external buffer used by triangleJSON: positions at 0,
// normals at 36, texcoords at 72, uint16 indices at 96.
func triangleBin() []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, triPositions)
	binary.Write(&buf, binary.LittleEndian, triNormals)
	binary.Write(&buf, binary.LittleEndian, triTexcoords)
	binary.Write(&buf, binary.LittleEndian, triIndices)
	return buf.Bytes()
}

const triangleJSON = `{
  "asset": {"version": "2.0"},
  "buffers": [{"uri": "triangle.bin", "byteLength": 102}],
  "bufferViews": [
    {"buffer": 0, "byteOffset": 0, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 36, "byteLength": 36, "target": 34962},
    {"buffer": 0, "byteOffset": 72, "byteLength": 24, "target": 34962},
    {"buffer": 0, "byteOffset": 96, "byteLength": 6, "target": 34963}
  ],
  "accessors": [
    {"bufferView": 0, "componentType": 5126, "count": 3, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 0]},
    {"bufferView": 1, "componentType": 5126, "count": 3, "type": "VEC3"},
    {"bufferView": 2, "componentType": 5126, "count": 3, "type": "VEC2"},
    {"bufferView": 3, "componentType": 5123, "count": 3, "type": "SCALAR"}
  ],
  "meshes": [
    {"name": "triangle", "primitives": [
      {"attributes": {"POSITION": 0, "NORMAL": 1, "TEXCOORD_0": 2}, "indices": 3}
    ]}
  ]
}`

// writeTriangleGLTF writes triangle.gltf and, if withBin, triangle.bin into dir.
func writeTriangleGLTF(t *testing.T, dir string, withBin bool) string {
	t.Helper()
	path := filepath.Join(dir, "triangle.gltf")
	require.NoError(t, os.WriteFile(path, []byte(triangleJSON), 0644))
	if withBin {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "triangle.bin"), triangleBin(), 0644))
	}
	return path
}
