package isomesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/model3d/model3d"
)

func TestMeshBuffersFromModel3D(t *testing.T) {
	a := model3d.Coord3D{X: 0, Y: 0, Z: 0}
	b := model3d.Coord3D{X: 1, Y: 0, Z: 0}
	c := model3d.Coord3D{X: 0, Y: 1, Z: 0}
	d := model3d.Coord3D{X: 1, Y: 1, Z: 0}

	mesh := model3d.NewMesh()
	mesh.Add(&model3d.Triangle{a, b, c})
	mesh.Add(&model3d.Triangle{b, d, c})

	buf := meshBuffersFromModel3D(mesh)
	assert.Len(t, buf.Faces, 2)
	// The shared edge is welded, leaving four unique vertices.
	assert.Len(t, buf.Vertices, 4)
	for _, f := range buf.Faces {
		for _, idx := range f {
			assert.Less(t, idx, len(buf.Vertices))
		}
	}
}

func TestMeshBuffersMesh(t *testing.T) {
	buf := &MeshBuffers{
		Vertices: [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	mesh := buf.Mesh()
	count := 0
	mesh.Iterate(func(tri *model3d.Triangle) {
		count++
	})
	assert.Equal(t, 1, count)
}

func TestCenter(t *testing.T) {
	buf := &MeshBuffers{
		Vertices: [][3]float32{{1, 2, 3}, {3, 4, 7}},
	}
	buf.center()
	assert.Equal(t, [3]float32{-1, -1, -2}, buf.Vertices[0])
	assert.Equal(t, [3]float32{1, 1, 2}, buf.Vertices[1])
}

func TestCenterEmpty(t *testing.T) {
	buf := &MeshBuffers{}
	buf.center()
	assert.Empty(t, buf.Vertices)
}

func TestReverseWinding(t *testing.T) {
	buf := &MeshBuffers{
		Faces: [][3]int{{0, 1, 2}, {3, 4, 5}},
	}
	buf.reverseWinding()
	assert.Equal(t, [][3]int{{2, 1, 0}, {5, 4, 3}}, buf.Faces)
}

func TestVertexIndependentOwnership(t *testing.T) {
	raw := [][3]float32{{1, 1, 1}}
	buf := &MeshBuffers{Vertices: raw, Faces: [][3]int{{0, 0, 0}}}
	mesh := buf.Mesh()
	require.NotNil(t, mesh)

	// Converting never aliases the float32 buffers back.
	raw[0][0] = 9
	count := 0
	mesh.Iterate(func(tri *model3d.Triangle) {
		count++
		assert.Equal(t, 1.0, tri[0].X)
	})
	assert.Equal(t, 1, count)
}
