package shaders

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// BuildGLProgram renders, compiles and links the quad program. When dumpDir
// is not empty the rendered sources are written there for inspection.
func BuildGLProgram(shaderData *ShaderData, dumpDir string) (uint32, error) {
	shaderer, err := NewShaderer()
	if err != nil {
		return 0, fmt.Errorf("could not get shaders: %w", err)
	}

	vertexShader, err := shaderer.GetShaderSource("quad.vert", shaderData)
	if err != nil {
		return 0, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentShader, err := shaderer.GetShaderSource("quad.frag", shaderData)
	if err != nil {
		return 0, fmt.Errorf("could not get fragment shader: %w", err)
	}

	if dumpDir != "" {
		writeFileDebug(dumpDir+"/shader.vert", vertexShader)
		writeFileDebug(dumpDir+"/shader.frag", fragmentShader)
	}

	program, err := newProgram(vertexShader, fragmentShader)
	if err != nil {
		return 0, fmt.Errorf("could not init shader: %w", err)
	}

	return program, nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logmsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))

		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", logmsg)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))

		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile %v: %v", source, clog)
	}

	return shader, nil
}

func writeFileDebug(filename string, content string) {
	err := os.WriteFile(filename, []byte(content), 0o644)
	if err != nil {
		slog.Warn(fmt.Sprintf("Could not write debug file %s: %s", filename, err), slog.String("module", "shaders"))
	}
}
