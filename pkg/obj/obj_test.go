package obj

import (
	"errors"
	"strings"
	"testing"
)

const triangleOBJ = `# simple triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`

func TestParseTriangle(t *testing.T) {
	data, err := Parse(strings.NewReader(triangleOBJ))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(data.Positions) != 3 {
		t.Errorf("position count = %d, want 3", len(data.Positions))
	}
	if len(data.Faces) != 1 {
		t.Fatalf("face count = %d, want 1", len(data.Faces))
	}
	face := data.Faces[0]
	if len(face) != 3 {
		t.Fatalf("face vertex count = %d, want 3", len(face))
	}
	for i, fv := range face {
		if fv.Position != i {
			t.Errorf("face vert %d position = %d, want %d", i, fv.Position, i)
		}
		if fv.TexCoord != -1 || fv.Normal != -1 {
			t.Errorf("face vert %d should have no texcoord/normal, got %+v", i, fv)
		}
	}
}

func TestParseVertexRecords(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"too few components", "v 1 2\nv 0 0 0\nv 1 0 0\nf 1 2 3\n", ErrMalformedVertex},
		{"too many components", "v 1 2 3 4\n", ErrMalformedVertex},
		{"non-numeric component", "v 1 x 3\n", ErrMalformedVertex},
		{"malformed normal", "v 0 0 0\nvn 1 2\n", ErrMalformedVertex},
		{"malformed texcoord", "v 0 0 0\nvt 1\n", ErrMalformedVertex},
		{"non-numeric texcoord", "v 0 0 0\nvt a b\n", ErrMalformedVertex},
		{"texcoord with w component", "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0.5 0.5 0\nf 1/1 2/1 3/1\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseFaceIndices(t *testing.T) {
	header := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvt 0 0\nvn 0 0 1\n"

	tests := []struct {
		name    string
		face    string
		wantErr error
	}{
		{"position only", "f 1 2 3", nil},
		{"position and texcoord", "f 1/1 2/1 3/1", nil},
		{"position and normal", "f 1//1 2//1 3//1", nil},
		{"full triple", "f 1/1/1 2/1/1 3/1/1", nil},
		{"zero index", "f 0 2 3", ErrInvalidIndex},
		{"index beyond bounds", "f 1 2 4", ErrInvalidIndex},
		{"negative beyond bounds", "f -4 2 3", ErrInvalidIndex},
		{"texcoord out of range", "f 1/2 2/1 3/1", ErrInvalidIndex},
		{"normal out of range", "f 1//2 2//1 3//1", ErrInvalidIndex},
		{"non-numeric index", "f a 2 3", ErrInvalidIndex},
		{"too few vertices", "f 1 2", ErrDegenerateFace},
		{"repeated vertices", "f 1 1 1", ErrDegenerateFace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(header + tt.face + "\n"))
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got error %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseNegativeIndices(t *testing.T) {
	// -1 refers to the most recently declared position, so f -3 -2 -1
	// is equivalent to f 1 2 3 at this point in the file.
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf -3 -2 -1\n"
	data, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	face := data.Faces[0]
	want := []int{0, 1, 2}
	for i, fv := range face {
		if fv.Position != want[i] {
			t.Errorf("face vert %d position = %d, want %d", i, fv.Position, want[i])
		}
	}
}

func TestParseRelativeIndicesUseRunningLength(t *testing.T) {
	// The second face's -1 resolves against 4 positions, not 3.
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 -1\nv 2 2 2\nf 1 2 -1\n"
	data, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if got := data.Faces[0][2].Position; got != 2 {
		t.Errorf("first face -1 resolved to %d, want 2", got)
	}
	if got := data.Faces[1][2].Position; got != 3 {
		t.Errorf("second face -1 resolved to %d, want 3", got)
	}
}

func TestParseEmptyMesh(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty input", ""},
		{"comments only", "# nothing here\n# still nothing\n"},
		{"no positions", "vn 0 0 1\nvt 0 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, ErrEmptyMesh) {
				t.Errorf("got error %v, want %v", err, ErrEmptyMesh)
			}
		})
	}
}

func TestParseSkipsUnknownDirectives(t *testing.T) {
	input := "mtllib scene.mtl\no cube\ng side\nusemtl red\ns off\n" + triangleOBJ
	data, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(data.Faces) != 1 {
		t.Errorf("face count = %d, want 1", len(data.Faces))
	}
}

func TestParseErrorLineNumber(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv bad vertex\n"
	_, err := Parse(strings.NewReader(input))

	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if perr.Line != 4 {
		t.Errorf("error line = %d, want 4", perr.Line)
	}
	if !errors.Is(perr, ErrMalformedVertex) {
		t.Errorf("error kind = %v, want %v", perr.Err, ErrMalformedVertex)
	}
}

func TestParseQuadFace(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"
	data, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(data.Faces[0]) != 4 {
		t.Errorf("quad face vertex count = %d, want 4", len(data.Faces[0]))
	}
}
