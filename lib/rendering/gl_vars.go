package rendering

import (
	"github.com/fosdem/layertunnel/lib/theatre"
	"github.com/fosdem/layertunnel/lib/utils"
	"github.com/go-gl/gl/v4.1-core/gl"
)

const f32 = 4

// unit quad centred on the origin: position xy, uv
var quadVertices = []float32{
	-0.5, 0.5, 0, 1,
	-0.5, -0.5, 0, 0,
	0.5, -0.5, 1, 0,

	0.5, -0.5, 1, 0,
	0.5, 0.5, 1, 1,
	-0.5, 0.5, 0, 1,
}

// GLVars holds the GL objects used to draw a frame of quads
type GLVars struct {
	Program  uint32
	BGColour utils.Colour
	Texture  *Texture

	// GL IDs
	VAO               uint32
	VBO               uint32
	AspectUniform     int32
	OffsetUniform     int32
	ScaleUniform      int32
	ColourUniform     int32
	TexturedUniform   int32
	TexSamplerUniform int32
}

func NewGLVars(program uint32, texture *Texture, bgColour utils.Colour) *GLVars {
	g := &GLVars{}

	g.Program = program
	g.Texture = texture
	g.BGColour = bgColour

	return g
}

func (g *GLVars) Start() {
	g.allocate()
	gl.ClearColor(g.BGColour.R, g.BGColour.G, g.BGColour.B, g.BGColour.A)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.UseProgram(g.Program)
	gl.Uniform1i(g.TexSamplerUniform, 0)
}

func (g *GLVars) StartFrame(width int, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.UseProgram(g.Program)
	gl.BindVertexArray(g.VAO)
}

// DrawFrame submits one quad per draw call in order
func (g *GLVars) DrawFrame(frame *theatre.Frame) {
	gl.ActiveTexture(gl.TEXTURE0)
	g.Texture.Bind()
	textured := true
	gl.Uniform1i(g.TexturedUniform, 1)
	gl.Uniform1f(g.AspectUniform, frame.Aspect)

	for i := range frame.Calls {
		call := &frame.Calls[i]
		if call.Textured != textured {
			textured = call.Textured
			if textured {
				gl.Uniform1i(g.TexturedUniform, 1)
				gl.Uniform1f(g.AspectUniform, frame.Aspect)
			} else {
				// flat quads cover the screen regardless of its shape
				gl.Uniform1i(g.TexturedUniform, 0)
				gl.Uniform1f(g.AspectUniform, 1)
			}
		}
		gl.Uniform2f(g.OffsetUniform, call.Offset.X(), call.Offset.Y())
		gl.Uniform1f(g.ScaleUniform, call.Scale)
		colour := call.Colour.Vec4()
		gl.Uniform4fv(g.ColourUniform, 1, &colour[0])
		gl.DrawArrays(gl.TRIANGLES, 0, 6)
	}
}

func (g *GLVars) allocate() {
	// Configure the vertex data
	gl.GenVertexArrays(1, &g.VAO)
	gl.BindVertexArray(g.VAO)

	gl.GenBuffers(1, &g.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*f32, gl.Ptr(quadVertices), gl.STATIC_DRAW)

	stride := int32(4 * f32)

	vertAttrib := uint32(gl.GetAttribLocation(g.Program, gl.Str("position\x00")))
	gl.EnableVertexAttribArray(vertAttrib)
	gl.VertexAttribPointerWithOffset(vertAttrib, 2, gl.FLOAT, false, stride, 0)

	texCoordAttrib := uint32(gl.GetAttribLocation(g.Program, gl.Str("uv\x00")))
	gl.EnableVertexAttribArray(texCoordAttrib)
	gl.VertexAttribPointerWithOffset(texCoordAttrib, 2, gl.FLOAT, false, stride, 2*f32)

	g.AspectUniform = gl.GetUniformLocation(g.Program, gl.Str("aspect\x00"))
	g.OffsetUniform = gl.GetUniformLocation(g.Program, gl.Str("offset\x00"))
	g.ScaleUniform = gl.GetUniformLocation(g.Program, gl.Str("scale\x00"))
	g.ColourUniform = gl.GetUniformLocation(g.Program, gl.Str("layerColor\x00"))
	g.TexturedUniform = gl.GetUniformLocation(g.Program, gl.Str("textured\x00"))
	g.TexSamplerUniform = gl.GetUniformLocation(g.Program, gl.Str("tex\x00"))
}

func (g *GLVars) Delete() {
	gl.DeleteBuffers(1, &g.VBO)
	gl.DeleteVertexArrays(1, &g.VAO)
	gl.DeleteProgram(g.Program)
	g.Texture.Delete()
}
