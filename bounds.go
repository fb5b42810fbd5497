package isomesh

import (
	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// Bounds is the world-space box a scalar field's grid maps onto.
type Bounds struct {
	Min model3d.Coord3D
	Max model3d.Coord3D
}

// SymmetricBounds builds the box [-b, b] along every axis.
func SymmetricBounds(b float64) Bounds {
	return Bounds{
		Min: model3d.Coord3D{X: -b, Y: -b, Z: -b},
		Max: model3d.Coord3D{X: b, Y: b, Z: b},
	}
}

// BoxBounds builds bounds from explicit min and max corners.
func BoxBounds(min, max model3d.Coord3D) Bounds {
	return Bounds{Min: min, Max: max}
}

// Validate checks that the box has positive extent along every axis.
func (b Bounds) Validate() error {
	if b.Max.X <= b.Min.X || b.Max.Y <= b.Min.Y || b.Max.Z <= b.Min.Z {
		return errors.Errorf("bounds: max %v must exceed min %v on every axis", b.Max, b.Min)
	}
	return nil
}

// GridStatistics describes how a grid of samples lays inside its bounding
// box. It is derived fresh per call from Bounds and a resolution; nothing
// is cached across calls.
type GridStatistics struct {
	// GridSize is the number of grid lines per axis (octree resolution + 1).
	GridSize int

	// BBoxMin is the low corner of the bounding box.
	BBoxMin model3d.Coord3D

	// BBoxSize is the extent of the bounding box per axis.
	BBoxSize model3d.Coord3D
}

// ResolveBounds normalizes a bounding box and octree resolution into grid
// statistics. Marching cubes operates on grid vertices rather than cells,
// so the grid has one more line than there are cells per axis.
func ResolveBounds(b Bounds, octreeResolution int) (GridStatistics, error) {
	if octreeResolution <= 0 {
		return GridStatistics{}, errors.Errorf(
			"resolve bounds: octree resolution must be positive, got %d", octreeResolution)
	}
	if err := b.Validate(); err != nil {
		return GridStatistics{}, errors.Wrap(err, "resolve bounds")
	}
	return GridStatistics{
		GridSize: octreeResolution + 1,
		BBoxMin:  b.Min,
		BBoxSize: b.Max.Sub(b.Min),
	}, nil
}

// GridToWorld maps a point from grid-index space into world space:
//
//	world = grid/gridSize*bboxSize + bboxMin
//
// The divisor is the number of grid lines, not cells, so the last grid
// index R-1 lands at bboxMin + bboxSize*(R-1)/R, slightly inside the far
// corner of the box. Downstream consumers depend on this exact mapping.
func (g GridStatistics) GridToWorld(c model3d.Coord3D) model3d.Coord3D {
	inv := 1.0 / float64(g.GridSize)
	return model3d.Coord3D{
		X: c.X*inv*g.BBoxSize.X + g.BBoxMin.X,
		Y: c.Y*inv*g.BBoxSize.Y + g.BBoxMin.Y,
		Z: c.Z*inv*g.BBoxSize.Z + g.BBoxMin.Z,
	}
}
