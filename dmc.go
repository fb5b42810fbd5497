package isomesh

import (
	"sync"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DMCBackend is an optional differentiable dual marching cubes provider.
//
// Implementations register themselves via RegisterDMCBackend, typically
// from a package init, so that callers opt in with a blank import:
//
//	import _ "github.com/voxelforge/isomesh/dualmc"
type DMCBackend interface {
	// Name identifies the backend in log messages.
	Name() string

	// Init acquires whatever device or native resources the backend
	// needs. It is called once, during the extractor's first use. A
	// *BackendInitError return means the environment cannot support the
	// backend and extraction should fall back to classic marching cubes;
	// any other error is treated as a genuine bug and propagated.
	Init() error

	// Extract consumes a signed-distance field (negative inside) and
	// returns a triangles-only mesh with vertices in the backend's
	// canonical normalized box.
	Extract(sdf *ScalarField) (*MeshBuffers, error)
}

// BackendInitError marks a recoverable backend initialization failure:
// a bad argument, a runtime or environment mismatch, a missing device.
// It triggers a permanent fallback to classic marching cubes instead of
// failing the extraction.
type BackendInitError struct {
	Cause error
}

func (e *BackendInitError) Error() string {
	return "dmc backend init: " + e.Cause.Error()
}

func (e *BackendInitError) Unwrap() error {
	return e.Cause
}

var (
	backendMu  sync.RWMutex
	dmcBackend DMCBackend
)

// RegisterDMCBackend registers a dual marching cubes backend for the "dmc"
// extractor variant. Only one backend can be registered; subsequent calls
// replace the previous one. Passing nil clears the registration.
//
// Registration does not initialize the backend; Init runs lazily on an
// extractor's first use.
func RegisterDMCBackend(b DMCBackend) {
	backendMu.Lock()
	dmcBackend = b
	backendMu.Unlock()
}

// RegisteredDMCBackend returns the currently registered backend, or nil.
func RegisteredDMCBackend() DMCBackend {
	backendMu.RLock()
	b := dmcBackend
	backendMu.RUnlock()
	return b
}

// probeState tracks whether a DualMarchingCubesExtractor has resolved its
// extraction path yet, and which one it chose.
type probeState int

const (
	probeUnprobed probeState = iota
	probeBackend
	probeFallback
)

// DualMarchingCubesExtractor extracts surfaces with a differentiable dual
// marching cubes backend, converting the field into signed-distance
// convention, re-centering the output and correcting its face winding.
//
// The backend is probed once, on first use, and the outcome is memoized
// for the lifetime of the instance: if no backend is registered or the
// registered backend fails to initialize recoverably, the extractor warns
// and permanently delegates to classic marching cubes. The probe is never
// repeated, even if a backend becomes available later. Because the
// fallback path needs Bounds, callers should supply them on every call
// regardless of which path they expect.
type DualMarchingCubesExtractor struct {
	mu       sync.Mutex
	state    probeState
	backend  DMCBackend
	fallback *MarchingCubesExtractor
}

// NewDualMarchingCubesExtractor creates an unprobed extractor. The first
// Extract call decides between the backend and the fallback.
func NewDualMarchingCubesExtractor() *DualMarchingCubesExtractor {
	return &DualMarchingCubesExtractor{}
}

// Extract produces a triangle mesh from the field. On the backend path the
// output lives in a canonical box centered at the origin and IsoLevel and
// Bounds are ignored; on the fallback path the call behaves exactly like
// classic marching cubes and requires valid Bounds.
func (d *DualMarchingCubesExtractor) Extract(field *ScalarField, opts Options) (*MeshBuffers, error) {
	backend, fallback, err := d.probe()
	if err != nil {
		return nil, err
	}
	if fallback != nil {
		return fallback.Extract(field, opts)
	}

	if opts.OctreeResolution <= 0 {
		return nil, errors.Errorf(
			"dmc: octree resolution must be positive, got %d", opts.OctreeResolution)
	}
	sdf := field.SignedDistances(opts.OctreeResolution)
	buf, err := backend.Extract(sdf)
	if err != nil {
		return nil, errors.Wrapf(err, "dmc backend %s", backend.Name())
	}

	// The backend's normalization leaves a residual offset, and its
	// winding convention is opposite to the one downstream consumers
	// expect.
	buf.center()
	buf.reverseWinding()
	return buf, nil
}

// probe resolves which path this instance uses. It runs at most once; the
// decision is permanent. An unclassified backend init error leaves the
// instance unprobed and is returned to the caller.
func (d *DualMarchingCubesExtractor) probe() (DMCBackend, *MarchingCubesExtractor, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch d.state {
	case probeBackend:
		return d.backend, nil, nil
	case probeFallback:
		return nil, d.fallback, nil
	}

	b := RegisteredDMCBackend()
	if b == nil {
		log.Warnf("isomesh: no dmc backend registered, falling back to classic marching cubes")
		d.state = probeFallback
		d.fallback = NewMarchingCubesExtractor()
		return nil, d.fallback, nil
	}
	if err := b.Init(); err != nil {
		var initErr *BackendInitError
		if !errors.As(err, &initErr) {
			return nil, nil, errors.Wrapf(err, "initialize dmc backend %s", b.Name())
		}
		log.Warnf("isomesh: dmc backend %s failed to initialize (%v), falling back to classic marching cubes",
			b.Name(), err)
		d.state = probeFallback
		d.fallback = NewMarchingCubesExtractor()
		return nil, d.fallback, nil
	}
	d.state = probeBackend
	d.backend = b
	return d.backend, nil, nil
}
