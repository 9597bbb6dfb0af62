package scene

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	pkgerrors "github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"go.uber.org/zap"
)

// Asset describes the table entries one LoadAsset call appended.
type Asset struct {
	Path         string
	BufferBase   BufferHandle
	BufferCount  int
	MeshStart    MeshIndex
	MeshCount    int
	SubmeshCount int
}

// Meshes returns the mesh indices appended for this asset.
func (a Asset) Meshes() []MeshIndex {
	out := make([]MeshIndex, a.MeshCount)
	for i := range out {
		out[i] = a.MeshStart + MeshIndex(i)
	}
	return out
}

// LoadAsset reads a .gltf or .glb file, resolves its buffers relative to the
// file and ingests it. Loading the same path twice appends two independent
// sets of entries.
//
// The asset is checked completely, including table capacity, before the
// first GPU object is created; on error the tables are unchanged unless the
// device itself failed.
func (l *Loader) LoadAsset(path string) (Asset, error) {
	data, err := readAssetFile(path)
	if err != nil {
		return Asset{}, err
	}
	doc, err := DecodeAsset(data, filepath.Dir(path))
	if err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "decoding %s", path)
	}

	if err := checkBuffers(doc); err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "loading %s", path)
	}
	base := BufferHandle(l.Resources.BufferCount())
	pending, err := resolveMeshes(doc, base)
	if err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "loading %s", path)
	}
	need := pending.need()
	need.Buffers = len(doc.BufferViews)
	if err := l.Resources.checkRoom(need); err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "loading %s", path)
	}

	if _, err := l.IngestBuffers(doc); err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "loading %s", path)
	}
	first, err := l.commitMeshes(pending)
	if err != nil {
		return Asset{}, pkgerrors.Wrapf(err, "loading %s", path)
	}

	asset := Asset{
		Path:         path,
		BufferBase:   base,
		BufferCount:  len(doc.BufferViews),
		MeshStart:    first,
		MeshCount:    len(pending),
		SubmeshCount: need.Submeshes,
	}
	l.log.Info("asset loaded",
		zap.String("path", path),
		zap.Int("buffer_base", int(asset.BufferBase)),
		zap.Int("buffers", asset.BufferCount),
		zap.Int("meshes", asset.MeshCount),
		zap.Int("submeshes", asset.SubmeshCount),
	)
	return asset, nil
}

func readAssetFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrIO, err)
	}
	return data, nil
}

// DecodeAsset parses glTF JSON or GLB bytes. External buffer URIs are read
// relative to dir; data URIs and the GLB binary chunk are resolved in place.
func DecodeAsset(data []byte, dir string) (*gltf.Document, error) {
	resolver := &bufferResolver{files: os.DirFS(dir)}
	doc := new(gltf.Document)

	if err := gltf.NewDecoderFS(bytes.NewReader(data), resolver).Decode(doc); err != nil {
		if resolver.err != nil {
			return nil, resolver.err
		}
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	for i, b := range doc.Buffers {
		if b == nil {
			return nil, fmt.Errorf("%w: buffer %d is null", ErrParse, i)
		}
		if len(b.Data) < int(b.ByteLength) {
			return nil, fmt.Errorf("%w: buffer %d has %d of %d bytes", ErrBufferResolution, i, len(b.Data), b.ByteLength)
		}
	}
	return doc, nil
}

// bufferResolver opens external buffers and remembers the first failure so
// it can be told apart from a syntax error in the document.
type bufferResolver struct {
	files fs.FS
	err   error
}

func (r *bufferResolver) Open(uri string) (fs.File, error) {
	f, err := r.files.Open(uri)
	if err != nil {
		if r.err == nil {
			r.err = fmt.Errorf("%w: %s: %v", ErrBufferResolution, uri, err)
		}
		return nil, err
	}
	return f, nil
}
