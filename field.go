package isomesh

import (
	"encoding/json"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/model3d/model3d"
)

// ScalarField is a dense R×R×R grid of scalar samples implicitly defining a
// surface where the values cross a threshold. Values are stored flat with x
// varying fastest.
//
// A field is read-only input owned by the caller for the duration of an
// extraction call; extractors never retain or mutate it.
type ScalarField struct {
	// Size is the number of samples per axis (R). A field sampled at
	// octree resolution N has Size = N+1, one more grid line than cells.
	Size int

	values []float32
}

// NewScalarField wraps a flat slice of Size³ samples. The slice is used
// directly, not copied.
func NewScalarField(size int, values []float32) (*ScalarField, error) {
	if size <= 0 {
		return nil, errors.Errorf("scalar field: size must be positive, got %d", size)
	}
	if want := size * size * size; len(values) != want {
		return nil, errors.Errorf("scalar field: got %d values, expected %d", len(values), want)
	}
	return &ScalarField{Size: size, values: values}, nil
}

// ReadFieldJSON reads a field as a JSON 3D array with z on the outer
// dimension, then y, then x. The array must be a perfect cube.
func ReadFieldJSON(r io.Reader) (*ScalarField, error) {
	var object [][][]float32
	dec := json.NewDecoder(r)
	if err := dec.Decode(&object); err != nil {
		return nil, errors.Wrap(err, "read field")
	}
	size := len(object)
	values := make([]float32, 0, size*size*size)
	for _, yPlane := range object {
		if len(yPlane) != size {
			return nil, errors.New("read field: invalid dimensions")
		}
		for _, xLine := range yPlane {
			if len(xLine) != size {
				return nil, errors.New("read field: invalid dimensions")
			}
			values = append(values, xLine...)
		}
	}
	if size == 0 {
		return nil, errors.New("read field: empty grid")
	}
	return &ScalarField{Size: size, values: values}, nil
}

// Resolution is the octree resolution the field was sampled at, i.e. the
// number of cells per axis.
func (s *ScalarField) Resolution() int {
	return s.Size - 1
}

// At gets the exact value at integer grid coordinates.
// If a coordinate is out of bounds, 0 is returned.
func (s *ScalarField) At(x, y, z int) float32 {
	if x < 0 || y < 0 || z < 0 || x >= s.Size || y >= s.Size || z >= s.Size {
		return 0
	}
	return s.values[x+s.Size*(y+z*s.Size)]
}

// Interp gets a trilinear interpolated value for the field at the given
// point in grid-index space.
func (s *ScalarField) Interp(c model3d.Coord3D) float64 {
	xs, xFracs := roundedCoords(c.X)
	ys, yFracs := roundedCoords(c.Y)
	zs, zFracs := roundedCoords(c.Z)
	var value float64
	for i, x := range xs {
		xFrac := xFracs[i]
		for j, y := range ys {
			yFrac := yFracs[j]
			for k, z := range zs {
				zFrac := zFracs[k]
				value += xFrac * yFrac * zFrac * float64(s.At(x, y, z))
			}
		}
	}
	return value
}

// MinMax scans the field and returns its extreme values.
func (s *ScalarField) MinMax() (min, max float32) {
	min, max = s.values[0], s.values[0]
	for _, v := range s.values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return
}

// SignedDistances converts the field from occupancy-logit convention into
// the signed-distance convention expected by dual marching cubes backends:
// each value becomes -v/octreeResolution, so the inside of the surface is
// negative. The result is a newly allocated contiguous field; the receiver
// is left untouched.
func (s *ScalarField) SignedDistances(octreeResolution int) *ScalarField {
	scale := -1.0 / float32(octreeResolution)
	out := make([]float32, len(s.values))
	for i, v := range s.values {
		out[i] = v * scale
	}
	return &ScalarField{Size: s.Size, values: out}
}

func roundedCoords(c float64) (vals [2]int, fracs [2]float64) {
	min := int(math.Floor(c))
	max := min + 1
	minFrac := float64(max) - c
	maxFrac := 1 - minFrac
	return [2]int{min, max}, [2]float64{minFrac, maxFrac}
}

// FieldBatch is a batch of N scalar fields stacked along the leading
// dimension, sharing one flat backing slice of N·R³ samples.
type FieldBatch struct {
	// Count is the number of fields in the batch (N).
	Count int

	// Size is the per-axis sample count of each field (R).
	Size int

	values []float32
}

// NewFieldBatch wraps a flat slice of count·size³ samples. The slice is
// used directly, not copied.
func NewFieldBatch(count, size int, values []float32) (*FieldBatch, error) {
	if count < 0 {
		return nil, errors.Errorf("field batch: count must be non-negative, got %d", count)
	}
	if size <= 0 {
		return nil, errors.Errorf("field batch: size must be positive, got %d", size)
	}
	if want := count * size * size * size; len(values) != want {
		return nil, errors.Errorf("field batch: got %d values, expected %d", len(values), want)
	}
	return &FieldBatch{Count: count, Size: size, values: values}, nil
}

// Len returns the number of fields in the batch.
func (b *FieldBatch) Len() int {
	return b.Count
}

// Field returns a view of the i-th field. The view shares storage with
// the batch; no values are copied.
func (b *FieldBatch) Field(i int) *ScalarField {
	stride := b.Size * b.Size * b.Size
	return &ScalarField{
		Size:   b.Size,
		values: b.values[i*stride : (i+1)*stride],
	}
}
