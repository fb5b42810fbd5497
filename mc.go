package isomesh

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// MarchingCubesExtractor extracts an isosurface with classic marching
// cubes. Raw vertices are produced in grid-index space, [0, R-1] per axis,
// and then remapped into the caller's bounding box.
type MarchingCubesExtractor struct {
	// SearchIters is the number of bisection steps used to refine each
	// surface vertex toward the exact iso-crossing.
	SearchIters int
}

// NewMarchingCubesExtractor creates an extractor with the default vertex
// refinement depth.
func NewMarchingCubesExtractor() *MarchingCubesExtractor {
	return &MarchingCubesExtractor{SearchIters: 8}
}

// Extract runs marching cubes over the field at opts.IsoLevel and remaps
// the result into world space. It fails with ErrNoSurface when the
// iso-level lies outside the field's value range, which is how degenerate
// all-above or all-below fields present themselves.
func (m *MarchingCubesExtractor) Extract(field *ScalarField, opts Options) (*MeshBuffers, error) {
	stats, err := ResolveBounds(opts.Bounds, opts.OctreeResolution)
	if err != nil {
		return nil, err
	}
	if field.Size != stats.GridSize {
		return nil, errors.Errorf(
			"marching cubes: field has %d samples per axis, resolution %d needs %d",
			field.Size, opts.OctreeResolution, stats.GridSize)
	}

	lo, hi := field.MinMax()
	if opts.IsoLevel <= float64(lo) || opts.IsoLevel >= float64(hi) {
		return nil, errors.Wrapf(ErrNoSurface,
			"iso-level %v outside field range [%v, %v]", opts.IsoLevel, lo, hi)
	}

	solid := &fieldSolid{Field: field, IsoLevel: opts.IsoLevel}
	mesh := model3d.MarchingCubesSearch(solid, 1.0, m.SearchIters)
	mesh = mesh.MapCoords(stats.GridToWorld)

	buf := meshBuffersFromModel3D(mesh)
	if len(buf.Faces) == 0 {
		return nil, errors.Wrap(ErrNoSurface, "marching cubes produced no triangles")
	}
	return buf, nil
}

// fieldSolid adapts a scalar field to model3d's Solid interface in
// grid-index space, using trilinear interpolation for containment so that
// vertex refinement converges on the true iso-crossing.
type fieldSolid struct {
	Field    *ScalarField
	IsoLevel float64
}

func (f *fieldSolid) Min() model3d.Coord3D {
	return model3d.Coord3D{}
}

func (f *fieldSolid) Max() model3d.Coord3D {
	r := float64(f.Field.Size - 1)
	return model3d.Coord3D{X: r, Y: r, Z: r}
}

func (f *fieldSolid) Contains(c model3d.Coord3D) bool {
	return model3d.InBounds(f, c) && f.Field.Interp(c) > f.IsoLevel
}
