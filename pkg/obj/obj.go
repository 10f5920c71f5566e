// Package obj provides a parser for Wavefront OBJ geometry files.
// Only the geometry subset is handled: positions, normals, texture
// coordinates and faces. Groups, materials and other directives are
// skipped.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/Faultbox/meshview/pkg/math"
)

// OBJ parse errors.
var (
	ErrMalformedVertex = errors.New("malformed vertex record")
	ErrInvalidIndex    = errors.New("face index out of range")
	ErrDegenerateFace  = errors.New("face has fewer than 3 distinct vertices")
	ErrEmptyMesh       = errors.New("no vertex positions in file")
)

// ParseError reports a malformed record and its 1-based source line.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("obj: line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// FaceVert references one vertex of a face. Indices are 0-based into
// the MeshData arrays; TexCoord and Normal are -1 when absent.
type FaceVert struct {
	Position int
	TexCoord int
	Normal   int
}

// Face is an ordered list of vertex references. Length is always >= 3;
// faces with more than 3 vertices are polygons to be triangulated by
// the mesh builder.
type Face []FaceVert

// MeshData is the parsed contents of an OBJ file. All face indices are
// resolved and bounds-checked during parsing, so every FaceVert is a
// valid reference into the arrays.
type MeshData struct {
	Positions []math.Vec3
	Normals   []math.Vec3
	TexCoords []math.Vec2
	Faces     []Face
}

// Parse reads OBJ text from r. Relative (negative) indices are resolved
// against the list lengths at the point the face appears, per the
// format convention.
func Parse(r io.Reader) (*MeshData, error) {
	data := &MeshData{}

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: line, Err: ErrMalformedVertex}
			}
			data.Positions = append(data.Positions, v)

		case "vn":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: line, Err: ErrMalformedVertex}
			}
			data.Normals = append(data.Normals, v)

		case "vt":
			// A third (w) component is tolerated and ignored.
			if len(fields) < 3 || len(fields) > 4 {
				return nil, &ParseError{Line: line, Err: ErrMalformedVertex}
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, &ParseError{Line: line, Err: ErrMalformedVertex}
			}
			data.TexCoords = append(data.TexCoords, math.Vec2{X: u, Y: v})

		case "f":
			face, err := data.parseFace(fields[1:])
			if err != nil {
				return nil, &ParseError{Line: line, Err: err}
			}
			data.Faces = append(data.Faces, face)

		default:
			// g, o, s, usemtl, mtllib and anything else: skipped.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("obj: reading input: %w", err)
	}

	if len(data.Positions) == 0 {
		return nil, &ParseError{Line: line, Err: ErrEmptyMesh}
	}

	return data, nil
}

// ParseFile parses the OBJ file at path.
func ParseFile(path string) (*MeshData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("obj: opening %s: %w", path, err)
	}
	defer f.Close()

	return Parse(f)
}

// parseFace parses face vertex tokens of the form p, p/t, p//n or p/t/n.
// Indices are resolved against current list lengths immediately, since
// relative indices depend on how much of the file has been read.
func (d *MeshData) parseFace(tokens []string) (Face, error) {
	if len(tokens) < 3 {
		return nil, ErrDegenerateFace
	}

	face := make(Face, 0, len(tokens))
	for _, tok := range tokens {
		parts := strings.Split(tok, "/")
		if len(parts) > 3 {
			return nil, ErrInvalidIndex
		}

		fv := FaceVert{TexCoord: -1, Normal: -1}

		pos, err := resolveIndex(parts[0], len(d.Positions))
		if err != nil {
			return nil, err
		}
		fv.Position = pos

		if len(parts) > 1 && parts[1] != "" {
			tc, err := resolveIndex(parts[1], len(d.TexCoords))
			if err != nil {
				return nil, err
			}
			fv.TexCoord = tc
		}

		if len(parts) > 2 && parts[2] != "" {
			n, err := resolveIndex(parts[2], len(d.Normals))
			if err != nil {
				return nil, err
			}
			fv.Normal = n
		}

		face = append(face, fv)
	}

	if countDistinct(face) < 3 {
		return nil, ErrDegenerateFace
	}

	return face, nil
}

// resolveIndex converts a 1-based OBJ index (negative = relative to the
// end of the list) to a 0-based index, checking bounds against the
// current list length.
func resolveIndex(token string, listLen int) (int, error) {
	idx, err := strconv.Atoi(token)
	if err != nil || idx == 0 {
		return 0, ErrInvalidIndex
	}

	if idx < 0 {
		idx = listLen + idx
	} else {
		idx--
	}
	if idx < 0 || idx >= listLen {
		return 0, ErrInvalidIndex
	}
	return idx, nil
}

func countDistinct(face Face) int {
	seen := make(map[FaceVert]struct{}, len(face))
	for _, fv := range face {
		seen[fv] = struct{}{}
	}
	return len(seen)
}

func parseVec3(tokens []string) (math.Vec3, error) {
	if len(tokens) != 3 {
		return math.Vec3{}, ErrMalformedVertex
	}
	x, err1 := parseFloat(tokens[0])
	y, err2 := parseFloat(tokens[1])
	z, err3 := parseFloat(tokens[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return math.Vec3{}, ErrMalformedVertex
	}
	return math.Vec3{X: x, Y: y, Z: z}, nil
}

func parseFloat(s string) (float32, error) {
	f, err := strconv.ParseFloat(s, 32)
	return float32(f), err
}
