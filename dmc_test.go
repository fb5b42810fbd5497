package isomesh

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend is a scriptable DMCBackend for exercising the probe and
// post-processing logic without a real implementation.
type fakeBackend struct {
	initErr      error
	initCalls    int
	extractCalls int
	lastSDF      *ScalarField
	mesh         func() *MeshBuffers
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Init() error {
	f.initCalls++
	return f.initErr
}

func (f *fakeBackend) Extract(sdf *ScalarField) (*MeshBuffers, error) {
	f.extractCalls++
	f.lastSDF = sdf
	return f.mesh(), nil
}

// tetMesh builds a small tetrahedron offset away from the origin, fresh
// buffers on every call.
func tetMesh() *MeshBuffers {
	return &MeshBuffers{
		Vertices: [][3]float32{
			{0.2, 0.2, 0.2},
			{0.8, 0.2, 0.2},
			{0.2, 0.8, 0.2},
			{0.2, 0.2, 0.8},
		},
		Faces: [][3]int{{0, 2, 1}, {0, 1, 3}, {0, 3, 2}, {1, 2, 3}},
	}
}

func swapBackend(t *testing.T, b DMCBackend) {
	t.Helper()
	prev := RegisteredDMCBackend()
	RegisterDMCBackend(b)
	t.Cleanup(func() { RegisterDMCBackend(prev) })
}

func TestDMCWindingReversed(t *testing.T) {
	fake := &fakeBackend{mesh: tetMesh}
	swapBackend(t, fake)

	mesh, err := NewDualMarchingCubesExtractor().Extract(sphereField(9, 3), Options{
		OctreeResolution: 8,
	})
	require.NoError(t, err)
	require.Equal(t, 1, fake.extractCalls)

	raw := tetMesh()
	require.Len(t, mesh.Faces, len(raw.Faces))
	for i, f := range raw.Faces {
		assert.Equal(t, [3]int{f[2], f[1], f[0]}, mesh.Faces[i])
	}
}

func TestDMCCentering(t *testing.T) {
	fake := &fakeBackend{mesh: tetMesh}
	swapBackend(t, fake)

	mesh, err := NewDualMarchingCubesExtractor().Extract(sphereField(9, 3), Options{
		OctreeResolution: 8,
	})
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Vertices)

	min, max := mesh.Vertices[0], mesh.Vertices[0]
	for _, v := range mesh.Vertices[1:] {
		for a := 0; a < 3; a++ {
			if v[a] < min[a] {
				min[a] = v[a]
			}
			if v[a] > max[a] {
				max[a] = v[a]
			}
		}
	}
	for a := 0; a < 3; a++ {
		assert.InDelta(t, 0, float64(min[a]+max[a]), 1e-6)
	}
}

func TestDMCPassesSignedDistances(t *testing.T) {
	fake := &fakeBackend{mesh: tetMesh}
	swapBackend(t, fake)

	field := sphereField(9, 3)
	_, err := NewDualMarchingCubesExtractor().Extract(field, Options{
		OctreeResolution: 8,
	})
	require.NoError(t, err)
	require.NotNil(t, fake.lastSDF)

	for _, p := range [][3]int{{0, 0, 0}, {4, 4, 4}, {1, 2, 3}} {
		want := -field.At(p[0], p[1], p[2]) / 8
		assert.Equal(t, want, fake.lastSDF.At(p[0], p[1], p[2]))
	}
}

func TestDMCFallbackWhenUnregistered(t *testing.T) {
	swapBackend(t, nil)

	ext := NewDualMarchingCubesExtractor()
	field := sphereField(33, 8)
	mesh, err := ext.Extract(field, validSphereOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Faces)

	// The probe is memoized: a backend appearing later is never adopted
	// by this instance.
	fake := &fakeBackend{mesh: tetMesh}
	RegisterDMCBackend(fake)
	mesh, err = ext.Extract(field, validSphereOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Faces)
	assert.Equal(t, 0, fake.initCalls)
	assert.Equal(t, 0, fake.extractCalls)
}

func TestDMCFallbackOnRecoverableInitError(t *testing.T) {
	fake := &fakeBackend{
		initErr: &BackendInitError{Cause: errors.New("no compute device")},
		mesh:    tetMesh,
	}
	swapBackend(t, fake)

	ext := NewDualMarchingCubesExtractor()
	field := sphereField(33, 8)
	mesh, err := ext.Extract(field, validSphereOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, mesh.Faces)
	assert.Equal(t, 1, fake.initCalls)
	assert.Equal(t, 0, fake.extractCalls)

	// Memoized: the second call skips the probe entirely.
	_, err = ext.Extract(field, validSphereOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, fake.initCalls)
}

func TestDMCFatalInitError(t *testing.T) {
	fake := &fakeBackend{
		initErr: errors.New("backend bug"),
		mesh:    tetMesh,
	}
	swapBackend(t, fake)

	_, err := NewDualMarchingCubesExtractor().Extract(sphereField(33, 8), validSphereOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backend bug")
	assert.Equal(t, 0, fake.extractCalls)
}

func TestDMCFallbackRequiresBounds(t *testing.T) {
	swapBackend(t, nil)

	// On the fallback path, zero-valued Bounds are a configuration error.
	_, err := NewDualMarchingCubesExtractor().Extract(sphereField(9, 3), Options{
		OctreeResolution: 8,
	})
	assert.Error(t, err)
}

func TestDMCRequiresResolution(t *testing.T) {
	fake := &fakeBackend{mesh: tetMesh}
	swapBackend(t, fake)

	_, err := NewDualMarchingCubesExtractor().Extract(sphereField(9, 3), Options{})
	assert.Error(t, err)
	assert.Equal(t, 0, fake.extractCalls)
}
