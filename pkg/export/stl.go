// Package export serializes meshes to binary STL and reads them back
// for verification. Writing goes through the sdfx renderer so the
// on-disk layout (80-byte header, uint32 triangle count, 50-byte
// little-endian records) stays bit-compatible with common slicers.
package export

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/pkg/errors"

	"github.com/stigsb/rumi-leaf/pkg/mesh"
)

// ErrNoFaces is returned when asked to export a mesh without any
// triangles; writing such a file would produce a nonsensical model.
var ErrNoFaces = errors.New("export: mesh has no faces")

// SaveSTL writes the mesh to path as binary STL. Dangling vertices
// (referenced by no face) are dropped implicitly since STL stores
// per-triangle records only.
func SaveSTL(path string, m *mesh.Mesh) error {
	if m == nil || m.FaceCount() == 0 {
		return ErrNoFaces
	}
	tris := make([]*sdf.Triangle3, 0, m.FaceCount())
	for _, f := range m.Faces {
		t := sdf.Triangle3{
			toV3(m.Vertices[f[0]]),
			toV3(m.Vertices[f[1]]),
			toV3(m.Vertices[f[2]]),
		}
		tris = append(tris, &t)
	}
	if err := render.SaveSTL(path, tris); err != nil {
		return errors.Wrapf(err, "save stl %s", path)
	}
	return nil
}

func toV3(v mesh.Vec3) v3.Vec {
	return v3.Vec{X: v.X, Y: v.Y, Z: v.Z}
}

// Triangle is one STL record read back from disk.
type Triangle struct {
	Normal   mesh.Vec3
	Vertices [3]mesh.Vec3
}

// ReadSTL reads a binary STL file: header, declared triangle count and
// the triangle records. It verifies the record count against the file
// contents.
func ReadSTL(path string) ([]Triangle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "read stl")
	}
	defer f.Close()

	var header [80]byte
	if _, err := io.ReadFull(f, header[:]); err != nil {
		return nil, errors.Wrap(err, "read stl header")
	}
	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, errors.Wrap(err, "read stl triangle count")
	}

	tris := make([]Triangle, 0, count)
	for i := uint32(0); i < count; i++ {
		var rec struct {
			Normal   [3]float32
			Vertices [3][3]float32
			Attr     uint16
		}
		if err := binary.Read(f, binary.LittleEndian, &rec); err != nil {
			return nil, errors.Wrapf(err, "read stl record %d of %d", i, count)
		}
		t := Triangle{Normal: fromF32(rec.Normal)}
		for j, v := range rec.Vertices {
			t.Vertices[j] = fromF32(v)
		}
		tris = append(tris, t)
	}
	return tris, nil
}

func fromF32(v [3]float32) mesh.Vec3 {
	return mesh.Vec3{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}
