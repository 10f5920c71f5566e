// Package renderer draws triangle meshes through OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/meshview/internal/engine/mesh"
	"github.com/Faultbox/meshview/internal/engine/shader"
	"github.com/Faultbox/meshview/internal/logger"
	"github.com/Faultbox/meshview/pkg/math"
)

const vertexShaderSrc = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProj;

out vec3 vNormal;

void main() {
	gl_Position = uProj * uView * uModel * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
}
`

const fragmentShaderSrc = `
#version 410 core

in vec3 vNormal;

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	vec3 lightDir = normalize(vec3(0.4, 1.0, 0.6));
	float diffuse = max(dot(normalize(vNormal), lightDir), 0.0);
	vec3 shaded = uColor * (0.3 + 0.7 * diffuse);
	FragColor = vec4(shaded, 1.0);
}
`

// floats per vertex: position(3) + normal(3) + uv(2)
const vertexStride = 8

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// buffers holds the GPU objects for one uploaded mesh.
type buffers struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

// Renderer draws meshes. It uploads each mesh to the GPU on first use
// and reuses the buffers on later draws, so nodes sharing a mesh share
// one upload.
type Renderer struct {
	config Config

	program  uint32
	uniModel int32
	uniView  int32
	uniProj  int32
	uniColor int32

	uploaded map[*mesh.RenderableMesh]buffers
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config:   cfg,
		uploaded: make(map[*mesh.RenderableMesh]buffers),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	program, err := shader.CompileProgram(vertexShaderSrc, fragmentShaderSrc)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	r.uniModel = shader.MustGetUniform(program, "uModel")
	r.uniView = shader.MustGetUniform(program, "uView")
	r.uniProj = shader.MustGetUniform(program, "uProj")
	r.uniColor = shader.MustGetUniform(program, "uColor")

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	for _, b := range r.uploaded {
		gl.DeleteVertexArrays(1, &b.vao)
		gl.DeleteBuffers(1, &b.vbo)
		gl.DeleteBuffers(1, &b.ebo)
	}
	r.uploaded = nil
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Draw renders one mesh with the given transforms and base color.
func (r *Renderer) Draw(model, view, proj math.Mat4, color [3]float32, m *mesh.RenderableMesh) {
	if m == nil || len(m.Indices) == 0 {
		return
	}

	b, ok := r.uploaded[m]
	if !ok {
		b = r.upload(m)
		r.uploaded[m] = b
	}

	gl.UniformMatrix4fv(r.uniModel, 1, false, model.Ptr())
	gl.UniformMatrix4fv(r.uniView, 1, false, view.Ptr())
	gl.UniformMatrix4fv(r.uniProj, 1, false, proj.Ptr())
	gl.Uniform3f(r.uniColor, color[0], color[1], color[2])

	gl.BindVertexArray(b.vao)
	gl.DrawElements(gl.TRIANGLES, b.indexCount, gl.UNSIGNED_INT, nil)
}

// ReadPixels reads the current framebuffer as RGBA bytes, bottom-up.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// upload creates the VAO/VBO/EBO for a mesh and fills them.
func (r *Renderer) upload(m *mesh.RenderableMesh) buffers {
	data := make([]float32, 0, len(m.Vertices)*vertexStride)
	for _, v := range m.Vertices {
		data = append(data,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
			v.UV.X, v.UV.Y,
		)
	}

	var b buffers
	b.indexCount = int32(len(m.Indices))

	gl.GenVertexArrays(1, &b.vao)
	gl.BindVertexArray(b.vao)

	gl.GenBuffers(1, &b.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, unsafe.Pointer(&data[0]), gl.STATIC_DRAW)

	gl.GenBuffers(1, &b.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	// Position attribute (location = 0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride*4, nil)
	gl.EnableVertexAttribArray(0)

	// Normal attribute (location = 1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, vertexStride*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)

	// UV attribute (location = 2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, vertexStride*4, unsafe.Pointer(uintptr(6*4)))
	gl.EnableVertexAttribArray(2)

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", b.vao),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", b.indexCount),
	)
	return b
}
