package isomesh

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Result is the outcome of extracting one batch item: either populated
// mesh buffers or the error that failed the item.
type Result struct {
	Mesh *MeshBuffers
	Err  error
}

// Failed reports whether the item produced no mesh.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Driver runs one extractor over a batch of scalar fields, isolating
// per-item failures so the batch as a whole always completes.
type Driver struct {
	Extractor Extractor
}

// NewDriver creates a driver around the given algorithm variant.
func NewDriver(e Extractor) *Driver {
	return &Driver{Extractor: e}
}

// ExtractBatch extracts every field in the batch in input order and
// returns one Result per field. A failing item is logged with full detail
// and recorded as a failed Result; it never aborts the remaining items.
// Parameters not meaningful to the configured variant are ignored by it.
func (d *Driver) ExtractBatch(batch *FieldBatch, opts Options) []Result {
	results := make([]Result, batch.Len())
	for i := range results {
		mesh, err := d.extractOne(batch.Field(i), opts)
		if err != nil {
			log.WithError(err).WithField("item", i).Error("isomesh: surface extraction failed")
			results[i] = Result{Err: err}
			continue
		}
		results[i] = Result{Mesh: mesh}
	}
	return results
}

// extractOne shields the batch from panics inside a kernel or backend,
// converting them into per-item errors.
func (d *Driver) extractOne(field *ScalarField, opts Options) (mesh *MeshBuffers, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("extraction panic: %v", r)
		}
	}()
	return d.Extractor.Extract(field, opts)
}
