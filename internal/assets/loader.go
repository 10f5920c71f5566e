// Package assets loads model files from disk into scene nodes.
package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/scene"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/obj"
)

// Loader loads OBJ files and caches built meshes by path, so loading
// the same file twice yields the same *RenderableMesh.
type Loader struct {
	cache map[string]*mesh.RenderableMesh
}

// NewLoader creates an empty loader.
func NewLoader() *Loader {
	return &Loader{
		cache: make(map[string]*mesh.RenderableMesh),
	}
}

// LoadMesh parses and builds the OBJ file at path. Results are cached:
// repeated loads of the same path return the same mesh.
func (l *Loader) LoadMesh(path string) (*mesh.RenderableMesh, error) {
	key := filepath.Clean(path)
	if m, ok := l.cache[key]; ok {
		return m, nil
	}

	data, err := obj.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	m, err := mesh.Build(data)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", path, err)
	}

	l.cache[key] = m
	return m, nil
}

// LoadDirectory loads every *.obj file in dir (sorted by name) and adds
// one node per file to the scene. Files that fail to parse or build are
// skipped with a warning. Returns the number of nodes added.
func (l *Loader) LoadDirectory(dir string, sc *scene.Scene) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("reading assets dir %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)

	loaded := 0
	for _, path := range paths {
		m, err := l.LoadMesh(path)
		if err != nil {
			logger.Warn("skipping asset", zap.String("path", path), zap.Error(err))
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		node := scene.NewNode(name, m)
		node.Blocking = true
		if err := sc.Add(node); err != nil {
			return loaded, err
		}

		logger.Info("asset loaded",
			zap.String("name", name),
			zap.Int("triangles", m.TriangleCount()),
			zap.Int("degenerate", m.DegenerateTriangles),
		)
		loaded++
	}

	return loaded, nil
}
