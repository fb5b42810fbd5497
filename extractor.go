package isomesh

import (
	"sort"

	"github.com/pkg/errors"
)

// ErrNoSurface reports that the iso-level never crosses the scalar field,
// so there is no surface to extract.
var ErrNoSurface = errors.New("isomesh: iso-level does not cross the scalar field")

// Options carries the extraction parameters shared by all algorithm
// variants. A variant silently ignores the fields it has no use for: the
// dual marching cubes primary path ignores IsoLevel and Bounds, but callers
// should still supply Bounds because the variant needs them if it falls
// back to classic marching cubes.
type Options struct {
	// IsoLevel is the threshold value defining the extracted surface.
	// Only meaningful to the classic marching cubes path.
	IsoLevel float64

	// Bounds is the world-space box the grid maps onto.
	Bounds Bounds

	// OctreeResolution is the number of grid cells per axis; the field
	// must have OctreeResolution+1 samples per axis.
	OctreeResolution int
}

// Extractor turns one scalar field into mesh buffers.
type Extractor interface {
	Extract(field *ScalarField, opts Options) (*MeshBuffers, error)
}

// extractors is the fixed algorithm registry. It is never mutated at
// runtime; variants are selected by name at configuration time.
var extractors = map[string]func() Extractor{
	"mc":  func() Extractor { return NewMarchingCubesExtractor() },
	"dmc": func() Extractor { return NewDualMarchingCubesExtractor() },
}

// NewExtractor constructs the algorithm variant registered under name.
func NewExtractor(name string) (Extractor, error) {
	ctor, ok := extractors[name]
	if !ok {
		return nil, errors.Errorf("isomesh: unknown extractor %q (have %v)", name, ExtractorNames())
	}
	return ctor(), nil
}

// ExtractorNames lists the registered algorithm names in sorted order.
func ExtractorNames() []string {
	names := make([]string, 0, len(extractors))
	for name := range extractors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
