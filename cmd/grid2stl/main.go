// Command grid2stl converts a JSON-encoded grid of scalar samples into a
// triangle mesh and saves it as an STL file.
//
// The JSON input is read from stdin and decoded as a 3D array with z on
// the outer dimension, then y, then x. The array should be NxNxN, i.e. a
// perfect cube.
package main

import (
	"flag"
	"os"

	"github.com/unixpickle/essentials"
	"github.com/voxelforge/isomesh"

	_ "github.com/voxelforge/isomesh/dualmc"
)

func main() {
	var algorithm string
	var isoLevel float64
	var bounds float64
	var outputPath string
	flag.StringVar(&algorithm, "algorithm", "mc", "extraction algorithm (mc or dmc)")
	flag.Float64Var(&isoLevel, "iso", 0, "iso-level defining the surface")
	flag.Float64Var(&bounds, "bounds", 1.0, "half extent of the symmetric bounding box")
	flag.StringVar(&outputPath, "output", "output.stl", "output STL file")
	flag.Parse()

	field, err := isomesh.ReadFieldJSON(os.Stdin)
	essentials.Must(err)

	extractor, err := isomesh.NewExtractor(algorithm)
	essentials.Must(err)

	mesh, err := extractor.Extract(field, isomesh.Options{
		IsoLevel:         isoLevel,
		Bounds:           isomesh.SymmetricBounds(bounds),
		OctreeResolution: field.Resolution(),
	})
	essentials.Must(err)

	essentials.Must(mesh.Mesh().SaveGroupedSTL(outputPath))
}
