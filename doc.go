// Package isomesh converts dense volumetric scalar fields into explicit
// triangle surface meshes.
//
// A scalar field is an R×R×R grid of occupancy logits or signed-distance
// samples, typically produced by an upstream generative model. The package
// extracts the isosurface of such a field, remaps it from grid-index space
// into a caller-supplied world-space bounding box, and returns plain vertex
// and face buffers ready for downstream post-processing or export.
//
// Two extraction algorithms are available through the registry:
//
//	ext, _ := isomesh.NewExtractor("mc") // classic marching cubes
//	ext, _ := isomesh.NewExtractor("dmc") // differentiable dual marching cubes
//
// The "dmc" variant delegates to a pluggable backend registered via
// RegisterDMCBackend. Backend packages register themselves from init, so
// callers opt in with a blank import:
//
//	import _ "github.com/voxelforge/isomesh/dualmc"
//
// If no backend is registered, or the registered backend fails to
// initialize in a recoverable way, the "dmc" variant permanently falls back
// to classic marching cubes for the lifetime of the extractor instance.
//
// Batches of fields are handled by Driver, which isolates per-item failures
// so that one degenerate field never aborts mesh recovery for the rest of
// the batch.
package isomesh
