// Package shader splits combined shader files and builds OpenGL programs from them.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glquad/internal/logger"
)

// Program is a linked OpenGL shader program.
type Program struct {
	id uint32
}

// CompileProgram compiles both stages of src and links them into a program.
// A stage that fails to compile is never attached.
func CompileProgram(src Source) (*Program, error) {
	vertShader, err := compileShader(src.Vertex, gl.VERTEX_SHADER, StageVertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vertShader)

	fragShader, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER, StageFragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fragShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(program)
		gl.DeleteProgram(program)
		logger.Error("failed to link shader program", zap.String("log", log))
		return nil, &LinkError{Log: log}
	}

	gl.DetachShader(program, vertShader)
	gl.DetachShader(program, fragShader)

	logger.Debug("shader program linked", zap.Uint32("program", program))
	return &Program{id: program}, nil
}

// compileShader compiles a single stage, deleting the shader object on failure.
func compileShader(source string, shaderType uint32, stage Stage) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)

		log = trimLog(log)
		logger.Error("failed to compile shader",
			zap.Stringer("stage", stage),
			zap.String("log", log),
		)
		return 0, &CompileError{Stage: stage, Log: log}
	}

	return shader, nil
}

func programLog(program uint32) string {
	var logLen int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
	log := strings.Repeat("\x00", int(logLen+1))
	gl.GetProgramInfoLog(program, logLen, nil, gl.Str(log))
	return trimLog(log)
}

// trimLog drops the NUL padding and trailing newlines drivers leave in info logs.
func trimLog(log string) string {
	return strings.TrimRight(log, "\x00\r\n ")
}

// ID returns the GL program name.
func (p *Program) ID() uint32 {
	return p.id
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.id)
}

// Validate checks whether the program can execute in the current GL state.
// Core profiles require a bound vertex array for this to pass.
func (p *Program) Validate() error {
	gl.ValidateProgram(p.id)

	var status int32
	gl.GetProgramiv(p.id, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return &ValidateError{Log: programLog(p.id)}
	}
	return nil
}

// Uniform returns the location of the named uniform.
func (p *Program) Uniform(name string) (int32, error) {
	loc := gl.GetUniformLocation(p.id, gl.Str(name+"\x00"))
	if loc < 0 {
		return -1, fmt.Errorf("%w: %q in program %d", ErrUniformNotFound, name, p.id)
	}
	return loc, nil
}

// Delete releases the program. It is safe to call more than once.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}
