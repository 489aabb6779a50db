package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"cell-modeller/core"
	"cell-modeller/geometry"
	"cell-modeller/math"
	"cell-modeller/scene"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	Primitive  uint32
}

// Renderer draws a scene graph with a single lit shader. Meshes are uploaded
// on first use and shared by every node of the same kind.
type Renderer struct {
	program uint32

	mvpLoc       int32
	modelViewLoc int32
	colorLoc     int32
	emissionLoc  int32
	unlitLoc     int32

	Background core.Color
	GridColor  core.Color

	gpuMeshes map[*geometry.Mesh]*GPUMesh
}

// vertex shader: MVP transform, eye space normal for a headlight
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;

uniform mat4 mvp;
uniform mat4 modelView;

out vec3 fragNormal;

void main() {
    gl_Position = mvp * vec4(inPosition, 1.0);
    fragNormal  = mat3(modelView) * inNormal;
}
` + "\x00"

// fragment shader: diffuse headlight plus selection emission
const fragSrc = `
#version 410 core
in vec3 fragNormal;

uniform vec4 color;
uniform vec3 emission;
uniform bool unlit;

out vec4 outColor;

void main() {
    if (unlit) {
        outColor = color;
        return;
    }
    float diff = max(dot(normalize(fragNormal), vec3(0.0, 0.0, 1.0)), 0.0);
    vec3  lit  = color.rgb * (0.2 + 0.8 * diff) + emission;
    outColor = vec4(lit, color.a);
}
` + "\x00"

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "failed to initialize OpenGL")
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, errors.Wrap(err, "shader compile")
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)

	r := &Renderer{
		program:      prog,
		mvpLoc:       gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelViewLoc: gl.GetUniformLocation(prog, gl.Str("modelView\x00")),
		colorLoc:     gl.GetUniformLocation(prog, gl.Str("color\x00")),
		emissionLoc:  gl.GetUniformLocation(prog, gl.Str("emission\x00")),
		unlitLoc:     gl.GetUniformLocation(prog, gl.Str("unlit\x00")),
		Background:   core.Color{R: 0, G: 0, B: 0.4, A: 0},
		GridColor:    core.Color{R: 0.5, G: 0.5, B: 0.5, A: 1},
		gpuMeshes:    make(map[*geometry.Mesh]*GPUMesh),
	}
	return r, nil
}

// SetViewport resizes the OpenGL viewport.
func (r *Renderer) SetViewport(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
}

// BeginFrame clears the framebuffer.
func (r *Renderer) BeginFrame() {
	bg := r.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// DrawScene draws every root node of s, then the grid if one is given.
// view maps world to eye space; proj maps eye space to clip space.
func (r *Renderer) DrawScene(s *scene.Scene, grid *geometry.Mesh, view, proj math.Mat4) {
	for _, node := range s.Nodes() {
		r.drawNode(node, math.Mat4Identity(), view, proj, false)
	}
	if grid != nil {
		gl.Uniform1i(r.unlitLoc, 1)
		r.setColor(r.GridColor, false)
		r.DrawMesh(grid, view, proj)
		gl.Uniform1i(r.unlitLoc, 0)
	}
}

// drawNode draws n under the accumulated parent transform. Each primitive
// keeps its own color; the selection glow covers a whole selected subtree.
func (r *Renderer) drawNode(n scene.Node, parent, view, proj math.Mat4, selected bool) {
	model := n.Transform().Mul(parent)
	selected = selected || n.Selected()
	switch v := n.(type) {
	case *scene.Primitive:
		r.setColor(v.Color(), selected)
		r.DrawMesh(v.Mesh(), model.Mul(view), proj)
	case *scene.Group:
		for _, child := range v.Children() {
			r.drawNode(child, model, view, proj, selected)
		}
	}
}

func (r *Renderer) setColor(c core.Color, selected bool) {
	gl.Uniform4f(r.colorLoc, c.R, c.G, c.B, c.A)
	if selected {
		gl.Uniform3f(r.emissionLoc, core.Emission.R, core.Emission.G, core.Emission.B)
	} else {
		gl.Uniform3f(r.emissionLoc, 0, 0, 0)
	}
}

// DrawMesh uploads mesh data on first use, then issues a draw call.
func (r *Renderer) DrawMesh(mesh *geometry.Mesh, modelView, proj math.Mat4) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	mvp := modelView.Mul(proj)
	// row-vector Mat4 memory is already OpenGL column-major
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelViewLoc, 1, false, (*float32)(unsafe.Pointer(&modelView[0][0])))

	gl.BindVertexArray(gpu.VAO)
	gl.DrawElements(gpu.Primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *geometry.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		gl.DeleteBuffers(1, &gpu.EBO)
		delete(r.gpuMeshes, mesh)
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	gl.DeleteProgram(r.program)
}

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *geometry.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	indices := mesh.TriangleIndices()
	if len(mesh.Vertices) == 0 || len(indices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(geometry.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(indices)),
		Primitive:  gl.TRIANGLES,
	}
	if mesh.DrawMode == geometry.DrawLines {
		gpu.Primitive = gl.LINES
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v geometry.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))

	// location 0: Position (vec3)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	// location 1: Normal (vec3)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.GenBuffers(1, &gpu.EBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
		len(indices)*4,
		gl.Ptr(indices),
		gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	return gpu
}

// ── shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "vertex")
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, errors.Wrap(err, "fragment")
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, errors.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, errors.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
