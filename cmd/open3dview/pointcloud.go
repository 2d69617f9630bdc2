package main

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/flyaudio/Open3D/visualization"
)

const pointVertexShader = `#version 410 core
uniform mat4 mvp;
in vec3 position;
in vec3 color;
out vec3 vColor;
void main() {
	gl_Position = mvp * vec4(position, 1.0);
	vColor = color;
}
` + "\x00"

const pointFragmentShader = `#version 410 core
in vec3 vColor;
out vec4 fragColor;
void main() {
	fragColor = vec4(vColor, 1.0);
}
` + "\x00"

// pointCloud renders a fixed set of colored points. GL objects are
// created lazily on the first Render call, which runs with the context
// current.
type pointCloud struct {
	points []float32 // interleaved xyz rgb
	count  int32

	program uint32
	vao     uint32
	vbo     uint32
	mvpLoc  int32
}

// newDemoPointCloud builds a deterministic spherical cloud colored by
// height.
func newDemoPointCloud(count int) *pointCloud {
	rng := rand.New(rand.NewSource(1))
	points := make([]float32, 0, count*6)
	for i := 0; i < count; i++ {
		u := rng.Float64()*2 - 1
		phi := rng.Float64() * 2 * math.Pi
		r := math.Cbrt(rng.Float64())
		s := math.Sqrt(1 - u*u)
		x := r * s * math.Cos(phi)
		y := r * u
		z := r * s * math.Sin(phi)
		points = append(points,
			float32(x), float32(y), float32(z),
			float32((y+1)/2), float32(0.4), float32((1-y)/2),
		)
	}
	return &pointCloud{points: points, count: int32(count)}
}

func (pc *pointCloud) init() error {
	program, err := linkProgram(pointVertexShader, pointFragmentShader)
	if err != nil {
		return err
	}
	pc.program = program
	pc.mvpLoc = gl.GetUniformLocation(program, gl.Str("mvp\x00"))

	gl.GenVertexArrays(1, &pc.vao)
	gl.BindVertexArray(pc.vao)
	gl.GenBuffers(1, &pc.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, pc.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(pc.points)*4, gl.Ptr(pc.points), gl.STATIC_DRAW)

	stride := int32(6 * 4)
	posAttr := uint32(gl.GetAttribLocation(program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(posAttr)
	gl.VertexAttribPointerWithOffset(posAttr, 3, gl.FLOAT, false, stride, 0)
	colorAttr := uint32(gl.GetAttribLocation(program, gl.Str("color\x00")))
	gl.EnableVertexAttribArray(colorAttr)
	gl.VertexAttribPointerWithOffset(colorAttr, 3, gl.FLOAT, false, stride, 3*4)

	gl.BindVertexArray(0)
	return nil
}

// Render implements visualization.Renderable.
func (pc *pointCloud) Render(opt *visualization.RenderOption, view *visualization.ViewControl) error {
	if pc.program == 0 {
		if err := pc.init(); err != nil {
			return err
		}
	}
	gl.UseProgram(pc.program)

	mvp64 := view.ProjectionMatrix().Mul4(view.ViewMatrix())
	var mvp mgl32.Mat4
	for i := range mvp64 {
		mvp[i] = float32(mvp64[i])
	}
	gl.UniformMatrix4fv(pc.mvpLoc, 1, false, &mvp[0])

	gl.PointSize(opt.PointSize)
	gl.BindVertexArray(pc.vao)
	gl.DrawArrays(gl.POINTS, 0, pc.count)
	gl.BindVertexArray(0)
	return nil
}

func linkProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vertex, err := compileShader(vertexSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragment, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertex)
		return 0, err
	}
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)
	gl.DeleteShader(vertex)
	gl.DeleteShader(fragment)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", log)
	}
	return program, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	cstr, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, cstr, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen)+1)
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile shader: %s", log)
	}
	return shader, nil
}
