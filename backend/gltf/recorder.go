// Package gltf provides a debugdraw sink that records frames into a glTF document.
//
// Each non-empty frame becomes one mesh and one node named "frame-N". The
// resulting file can be opened in any glTF viewer to inspect what was drawn.
package gltf

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	qgltf "github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/go-theft-auto/debugdraw"
)

// Recorder is a debugdraw.Renderer that copies frames into a glTF document.
// It is safe for concurrent use.
type Recorder struct {
	mu       sync.Mutex
	doc      *qgltf.Document
	frame    int
	recorded int
	limit    int
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithFrameLimit stops recording after n frames have been stored.
func WithFrameLimit(n int) RecorderOption {
	return func(r *Recorder) { r.limit = n }
}

// NewRecorder creates a recorder with an empty document.
func NewRecorder(opts ...RecorderOption) *Recorder {
	r := &Recorder{doc: qgltf.NewDocument()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render stores the frame mesh. Empty frames are counted but not stored.
func (r *Recorder) Render(mesh *debugdraw.Mesh) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	frame := r.frame
	r.frame++
	if mesh == nil || mesh.Empty() {
		return nil
	}
	if r.limit > 0 && r.recorded >= r.limit {
		return nil
	}
	if err := mesh.Validate(); err != nil {
		return fmt.Errorf("gltf: frame %d: %w", frame, err)
	}

	positions := make([][3]float32, len(mesh.Vertices))
	colors := make([][4]float32, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		positions[i] = [3]float32{v.Position.X, v.Position.Y, 0}
		colors[i] = [4]float32{v.Color.R, v.Color.G, v.Color.B, v.Color.A}
	}
	indices := make([]uint32, len(mesh.Indices))
	copy(indices, mesh.Indices)

	name := "frame-" + strconv.Itoa(frame)
	primitive := &qgltf.Primitive{
		Mode:    qgltf.PrimitiveTriangles,
		Indices: qgltf.Index(modeler.WriteIndices(r.doc, indices)),
		Attributes: map[string]uint32{
			qgltf.POSITION: modeler.WritePosition(r.doc, positions),
			qgltf.COLOR_0:  modeler.WriteColor(r.doc, colors),
		},
	}
	r.doc.Meshes = append(r.doc.Meshes, &qgltf.Mesh{Name: name, Primitives: []*qgltf.Primitive{primitive}})
	r.doc.Nodes = append(r.doc.Nodes, &qgltf.Node{Name: name, Mesh: qgltf.Index(uint32(len(r.doc.Meshes) - 1))})
	r.doc.Scenes[0].Nodes = append(r.doc.Scenes[0].Nodes, uint32(len(r.doc.Nodes)-1))
	r.recorded++
	return nil
}

// Frames returns the number of frames stored in the document.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recorded
}

// Document returns the recorded document. The caller must not render
// through the recorder while using it.
func (r *Recorder) Document() *qgltf.Document {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.doc
}

// Save writes the document to path as binary glTF (.glb).
func (r *Recorder) Save(path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := qgltf.SaveBinary(r.doc, path); err != nil {
		return fmt.Errorf("gltf: save %s: %w", path, err)
	}
	return nil
}

// Encode writes the document to w as binary glTF.
func (r *Recorder) Encode(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	enc := qgltf.NewEncoder(w)
	enc.AsBinary = true
	if err := enc.Encode(r.doc); err != nil {
		return fmt.Errorf("gltf: encode: %w", err)
	}
	return nil
}
