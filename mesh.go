package isomesh

import (
	"github.com/unixpickle/model3d/model3d"
)

// MeshBuffers is an extracted triangle surface: float32 vertex positions
// and integer triangle indices into the vertex slice.
//
// Buffers are freshly allocated per extraction, never alias the input
// scalar field, and every face index is below len(Vertices).
type MeshBuffers struct {
	Vertices [][3]float32
	Faces    [][3]int
}

// Mesh converts the buffers into a model3d mesh for downstream
// post-processing or export.
func (m *MeshBuffers) Mesh() *model3d.Mesh {
	mesh := model3d.NewMesh()
	for _, f := range m.Faces {
		mesh.Add(&model3d.Triangle{
			vertexCoord(m.Vertices[f[0]]),
			vertexCoord(m.Vertices[f[1]]),
			vertexCoord(m.Vertices[f[2]]),
		})
	}
	return mesh
}

// center translates the vertices so that the mesh bounding box is centered
// at the origin.
func (m *MeshBuffers) center() {
	if len(m.Vertices) == 0 {
		return
	}
	min, max := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		for a := 0; a < 3; a++ {
			if v[a] < min[a] {
				min[a] = v[a]
			}
			if v[a] > max[a] {
				max[a] = v[a]
			}
		}
	}
	var mid [3]float32
	for a := 0; a < 3; a++ {
		mid[a] = 0.5 * (min[a] + max[a])
	}
	for i := range m.Vertices {
		for a := 0; a < 3; a++ {
			m.Vertices[i][a] -= mid[a]
		}
	}
}

// reverseWinding flips the orientation of every face, (a,b,c) -> (c,b,a).
func (m *MeshBuffers) reverseWinding() {
	for i, f := range m.Faces {
		m.Faces[i] = [3]int{f[2], f[1], f[0]}
	}
}

// meshBuffersFromModel3D welds a model3d triangle mesh into indexed
// buffers, deduplicating vertices shared between triangles.
func meshBuffersFromModel3D(mesh *model3d.Mesh) *MeshBuffers {
	buf := &MeshBuffers{}
	index := map[model3d.Coord3D]int{}
	mesh.Iterate(func(t *model3d.Triangle) {
		var face [3]int
		for i, c := range t {
			idx, ok := index[c]
			if !ok {
				idx = len(buf.Vertices)
				index[c] = idx
				buf.Vertices = append(buf.Vertices, [3]float32{
					float32(c.X), float32(c.Y), float32(c.Z),
				})
			}
			face[i] = idx
		}
		buf.Faces = append(buf.Faces, face)
	})
	return buf
}

func vertexCoord(v [3]float32) model3d.Coord3D {
	return model3d.Coord3D{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
