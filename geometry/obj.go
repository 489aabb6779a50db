package geometry

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"cell-modeller/math"
)

// LoadMesh reads a mesh file, choosing the format by extension: .obj for
// Wavefront, .gltf or .glb for glTF.
func LoadMesh(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	default:
		return nil, errors.Errorf("unsupported mesh format %q", ext)
	}
}

// LoadOBJ reads a Wavefront .obj file into a single triangle mesh. Groups are
// merged; texture coordinates and materials are ignored.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open OBJ file")
	}
	defer f.Close()
	return parseOBJ(f, filepath.Base(path))
}

func parseOBJ(r io.Reader, name string) (*Mesh, error) {
	var positions []math.Vec3
	var normals []math.Vec3
	var vertices []Vertex
	var indices []uint32
	vertexMap := make(map[string]uint32) // "v/vt/vn" -> vertex index

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Fields(line)

		switch parts[0] {
		case "v":
			if len(parts) >= 4 {
				positions = append(positions, parseVec3(parts[1:4]))
			}
		case "vn":
			if len(parts) >= 4 {
				normals = append(normals, parseVec3(parts[1:4]))
			}
		case "f":
			faceVerts := make([]uint32, 0, len(parts)-1)
			for _, spec := range parts[1:] {
				if idx, ok := vertexMap[spec]; ok {
					faceVerts = append(faceVerts, idx)
					continue
				}
				idx := uint32(len(vertices))
				vertices = append(vertices, parseFaceVertex(spec, positions, normals))
				vertexMap[spec] = idx
				faceVerts = append(faceVerts, idx)
			}
			// fan triangulation
			for i := 2; i < len(faceVerts); i++ {
				indices = append(indices, faceVerts[0], faceVerts[i-1], faceVerts[i])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read OBJ")
	}
	if len(indices) == 0 {
		return nil, errors.Wrapf(ErrNoGeometry, "obj %q", name)
	}
	return NewMesh(name, vertices, indices, DrawTriangles), nil
}

func parseVec3(fields []string) math.Vec3 {
	x, _ := strconv.ParseFloat(fields[0], 32)
	y, _ := strconv.ParseFloat(fields[1], 32)
	z, _ := strconv.ParseFloat(fields[2], 32)
	return math.Vec3{X: float32(x), Y: float32(y), Z: float32(z)}
}

// parseFaceVertex parses an OBJ face vertex spec like "v/vt/vn". Negative
// indices count back from the most recent element.
func parseFaceVertex(spec string, positions, normals []math.Vec3) Vertex {
	var v Vertex
	parts := strings.Split(spec, "/")

	if idx, ok := objIndex(parts[0], len(positions)); ok {
		v.Position = positions[idx]
	}
	if len(parts) >= 3 {
		if idx, ok := objIndex(parts[2], len(normals)); ok {
			v.Normal = normals[idx]
		}
	}
	return v
}

func objIndex(field string, n int) (int, bool) {
	if field == "" {
		return 0, false
	}
	idx, err := strconv.Atoi(field)
	if err != nil {
		return 0, false
	}
	if idx < 0 {
		idx = n + idx + 1
	}
	if idx <= 0 || idx > n {
		return 0, false
	}
	return idx - 1, true
}
