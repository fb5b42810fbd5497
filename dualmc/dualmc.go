// Package dualmc provides a CPU dual marching cubes backend for the
// isomesh "dmc" extractor variant.
//
// Importing the package registers the backend:
//
//	import _ "github.com/voxelforge/isomesh/dualmc"
//
// The backend consumes a signed-distance field (negative inside) and emits
// one vertex per surface-crossing cell, placed at the mean of the cell's
// edge crossings, connected into two triangles per sign-change grid edge.
// Vertices are normalized into the canonical [0,1]³ box. The native face
// winding is inward; the isomesh core reverses it on the way out.
package dualmc

import (
	"github.com/pkg/errors"
	"github.com/voxelforge/isomesh"

	"github.com/unixpickle/model3d/model3d"
)

func init() {
	isomesh.RegisterDMCBackend(New())
}

// Backend implements isomesh.DMCBackend on the CPU.
type Backend struct{}

// New creates a backend. The zero value is also usable.
func New() *Backend {
	return &Backend{}
}

// Name implements isomesh.DMCBackend.
func (b *Backend) Name() string {
	return "dualmc-cpu"
}

// Init implements isomesh.DMCBackend. The CPU backend has no device or
// native resources to acquire.
func (b *Backend) Init() error {
	return nil
}

// cellEdges lists the 12 edges of a unit cell as pairs of corner offsets,
// grouped by axis.
var cellEdges = [12][2][3]int{
	{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}, {1, 1, 0}},
	{{0, 0, 1}, {1, 0, 1}}, {{0, 1, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {1, 1, 0}},
	{{0, 0, 1}, {0, 1, 1}}, {{1, 0, 1}, {1, 1, 1}},
	{{0, 0, 0}, {0, 0, 1}}, {{1, 0, 0}, {1, 0, 1}},
	{{0, 1, 0}, {0, 1, 1}}, {{1, 1, 0}, {1, 1, 1}},
}

// Extract implements isomesh.DMCBackend.
func (b *Backend) Extract(sdf *isomesh.ScalarField) (*isomesh.MeshBuffers, error) {
	r := sdf.Size
	if r < 2 {
		return nil, errors.Errorf("dualmc: field needs at least 2 samples per axis, got %d", r)
	}
	cells := r - 1

	// One vertex per cell whose edges cross the surface.
	vertexOfCell := make([]int, cells*cells*cells)
	for i := range vertexOfCell {
		vertexOfCell[i] = -1
	}
	buf := &isomesh.MeshBuffers{}
	scale := 1.0 / float64(cells)

	for z := 0; z < cells; z++ {
		for y := 0; y < cells; y++ {
			for x := 0; x < cells; x++ {
				var sum model3d.Coord3D
				count := 0
				for _, e := range cellEdges {
					x0, y0, z0 := x+e[0][0], y+e[0][1], z+e[0][2]
					x1, y1, z1 := x+e[1][0], y+e[1][1], z+e[1][2]
					v0 := float64(sdf.At(x0, y0, z0))
					v1 := float64(sdf.At(x1, y1, z1))
					if (v0 < 0) == (v1 < 0) {
						continue
					}
					t := v0 / (v0 - v1)
					sum = sum.Add(model3d.Coord3D{
						X: float64(x0) + t*float64(x1-x0),
						Y: float64(y0) + t*float64(y1-y0),
						Z: float64(z0) + t*float64(z1-z0),
					})
					count++
				}
				if count == 0 {
					continue
				}
				p := sum.Scale(scale / float64(count))
				vertexOfCell[x+cells*(y+cells*z)] = len(buf.Vertices)
				buf.Vertices = append(buf.Vertices, [3]float32{
					float32(p.X), float32(p.Y), float32(p.Z),
				})
			}
		}
	}

	// Connect the four cells around every sign-change grid edge.
	for d := 0; d < 3; d++ {
		b.connectAxis(sdf, d, cells, vertexOfCell, buf)
	}

	if len(buf.Faces) == 0 {
		return nil, errors.New("dualmc: no zero crossing in signed-distance field")
	}
	return buf, nil
}

// connectAxis emits a quad (as two triangles) for every interior grid edge
// along axis d whose endpoint signs differ. The quad's corners are the
// vertices of the four cells sharing the edge.
func (b *Backend) connectAxis(sdf *isomesh.ScalarField, d, cells int, vertexOfCell []int, buf *isomesh.MeshBuffers) {
	u := (d + 1) % 3
	v := (d + 2) % 3

	var p [3]int
	lo := [3]int{0, 0, 0}
	hi := [3]int{cells, cells, cells}
	// Every perpendicular coordinate needs a full ring of four cells.
	lo[u], hi[u] = 1, cells-1
	lo[v], hi[v] = 1, cells-1
	hi[d] = cells - 1

	for p[2] = lo[2]; p[2] <= hi[2]; p[2]++ {
		for p[1] = lo[1]; p[1] <= hi[1]; p[1]++ {
			for p[0] = lo[0]; p[0] <= hi[0]; p[0]++ {
				q := p
				q[d]++
				v0 := sdf.At(p[0], p[1], p[2])
				v1 := sdf.At(q[0], q[1], q[2])
				if (v0 < 0) == (v1 < 0) {
					continue
				}

				// Quad order yields a normal along +d when the near
				// endpoint is inside; flipped otherwise.
				order := [4][2]int{{1, 1}, {0, 1}, {0, 0}, {1, 0}}
				if v0 >= 0 {
					order = [4][2]int{{1, 0}, {0, 0}, {0, 1}, {1, 1}}
				}
				var quad [4]int
				for i, o := range order {
					c := p
					c[u] -= o[0]
					c[v] -= o[1]
					quad[i] = vertexOfCell[c[0]+cells*(c[1]+cells*c[2])]
				}

				// Native winding is inward; the consumer reverses it.
				buf.Faces = append(buf.Faces,
					[3]int{quad[0], quad[2], quad[1]},
					[3]int{quad[0], quad[3], quad[2]},
				)
			}
		}
	}
}
