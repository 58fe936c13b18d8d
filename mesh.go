package debugdraw

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrInvalidMesh reports a mesh whose index buffer does not describe triangles
// inside its own vertex buffer.
var ErrInvalidMesh = errors.New("debugdraw: invalid mesh")

// Mesh is an indexed triangle list plus the depth key used to order it within a frame.
// Depth only affects paint order; it is never used as a depth-test value.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32 // Triples, each < len(Vertices)
	Depth    float32
}

// Empty reports whether the mesh draws nothing.
func (m *Mesh) Empty() bool {
	return len(m.Indices) == 0
}

// TriangleCount returns the number of triangles described by the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Validate checks the mesh invariants.
func (m *Mesh) Validate() error {
	if len(m.Indices)%3 != 0 {
		return errors.Wrapf(ErrInvalidMesh, "%d indices is not a multiple of 3", len(m.Indices))
	}
	n := uint32(len(m.Vertices))
	for i, idx := range m.Indices {
		if idx >= n {
			return errors.Wrapf(ErrInvalidMesh, "index %d at position %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}

// Reset clears the mesh, keeping allocated capacity.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Depth = 0
}

// Append concatenates other onto m, rebasing other's indices past m's vertices.
func (m *Mesh) Append(other *Mesh) {
	base := uint32(len(m.Vertices))
	m.Vertices = append(m.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// Merge concatenates meshes in the given order into a new mesh.
// Indices of every mesh are offset by the number of vertices that precede it,
// so the result stays valid against the single concatenated vertex buffer.
// The result takes the depth of the first mesh.
func Merge(meshes ...Mesh) Mesh {
	var out Mesh
	mergeInto(&out, meshes)
	return out
}

func mergeInto(out *Mesh, meshes []Mesh) {
	var nv, ni int
	for i := range meshes {
		nv += len(meshes[i].Vertices)
		ni += len(meshes[i].Indices)
	}
	out.Vertices = grow(out.Vertices, nv)
	out.Indices = grow(out.Indices, ni)
	for i := range meshes {
		out.Append(&meshes[i])
	}
	if len(meshes) > 0 {
		out.Depth = meshes[0].Depth
	}
}

func grow[T any](s []T, n int) []T {
	if cap(s)-len(s) >= n {
		return s
	}
	g := make([]T, len(s), len(s)+n)
	copy(g, s)
	return g
}

// meshPool reuses merged frame meshes.
// The merged mesh is rebuilt every frame, so its buffers are recycled once
// the renderer has consumed them.
var meshPool = sync.Pool{
	New: func() any {
		return &Mesh{
			Vertices: make([]Vertex, 0, 1024),
			Indices:  make([]uint32, 0, 2048),
		}
	},
}

// acquireMesh gets an empty mesh from the pool.
func acquireMesh() *Mesh {
	m := meshPool.Get().(*Mesh)
	m.Reset()
	return m
}

// releaseMesh returns a mesh to the pool.
func releaseMesh(m *Mesh) {
	if m != nil {
		meshPool.Put(m)
	}
}
