// Package model assembles the generation pipelines: it walks parameter
// sets through grids, samplers, the mesh builder and the floret placer,
// repairs and reports on the results, and hands finished meshes to the
// exporter. It is the module's equivalent of a tessellation pass:
// read-only over its inputs, one mesh out per job.
package model

import (
	"go.uber.org/zap"

	"github.com/stigsb/rumi-leaf/pkg/mesh"
)

// Result is a finished mesh plus the facts a caller needs before
// exporting it.
type Result struct {
	Mesh *mesh.Mesh
	// Watertight reports the state of the base mesh after any repair.
	// For assemblies with appended features it describes the base
	// surface; bump contact seams are plain superposition by design.
	Watertight bool
	// FilledFaces counts triangles added by hole repair (0 when the
	// build was already closed).
	FilledFaces int
}

// finalize closes residual open edges and records the watertight state.
// Builder output is closed by construction, so the repair pass is
// normally a no-op; it exists for degenerate inputs and future mesh
// sources.
func finalize(m *mesh.Mesh, log *zap.SugaredLogger) *Result {
	res := &Result{Mesh: m}
	if m.IsWatertight() {
		res.Watertight = true
		return res
	}
	res.FilledFaces = m.FillHoles()
	res.Watertight = m.IsWatertight()
	if res.Watertight {
		log.Infow("closed open edges", "addedFaces", res.FilledFaces)
	} else {
		log.Warnw("mesh still has open edges after repair; exporting best effort",
			"openEdges", len(m.OpenEdges()))
	}
	return res
}

// logOrNop returns log, or a no-op logger when log is nil so pipelines
// never have to guard their logging calls.
func logOrNop(log *zap.SugaredLogger) *zap.SugaredLogger {
	if log != nil {
		return log
	}
	return zap.NewNop().Sugar()
}

func logMesh(log *zap.SugaredLogger, name string, m *mesh.Mesh) {
	min, max := m.Bounds()
	log.Infow(name,
		"vertices", m.VertexCount(),
		"faces", m.FaceCount(),
		"boundsMin", min,
		"boundsMax", max,
	)
}
