// Package debug provides development-time validation and capture helpers.
package debug

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/glquad/internal/logger"
)

// maxDrain bounds error-queue draining; a lost context can report errors indefinitely.
const maxDrain = 32

var errorNames = map[uint32]string{
	0x0500: "INVALID_ENUM",
	0x0501: "INVALID_VALUE",
	0x0502: "INVALID_OPERATION",
	0x0503: "STACK_OVERFLOW",
	0x0504: "STACK_UNDERFLOW",
	0x0505: "OUT_OF_MEMORY",
	0x0506: "INVALID_FRAMEBUFFER_OPERATION",
	0x0507: "CONTEXT_LOST",
}

// ErrorName returns the symbolic name of a glGetError code.
func ErrorName(code uint32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return "UNKNOWN"
}

// GLError lists the error codes raised by one checked call.
type GLError struct {
	Call  string
	File  string
	Line  int
	Codes []uint32
}

func (e *GLError) Error() string {
	codes := make([]string, len(e.Codes))
	for i, c := range e.Codes {
		codes[i] = fmt.Sprintf("0x%04X %s", c, ErrorName(c))
	}
	return fmt.Sprintf("(%s): %s %s:%d", strings.Join(codes, ", "), e.Call, e.File, e.Line)
}

// Checker wraps GL calls with glGetError checks.
// A disabled checker runs calls directly and never queries the error queue.
type Checker struct {
	enabled  bool
	getError func() uint32
}

// NewChecker returns a checker reading the current context's error queue.
// Builds tagged gldebug always check.
func NewChecker(enabled bool) *Checker {
	return &Checker{
		enabled:  enabled || BuildEnabled,
		getError: gl.GetError,
	}
}

// Enabled reports whether calls are being checked.
func (c *Checker) Enabled() bool {
	return c.enabled
}

// Call runs fn and reports any GL errors it raised, attributed to the caller's position.
// Errors already queued before fn are discarded.
func (c *Checker) Call(name string, fn func()) error {
	if !c.enabled {
		fn()
		return nil
	}

	c.drain()
	fn()

	codes := c.drain()
	if len(codes) == 0 {
		return nil
	}

	_, file, line, _ := runtime.Caller(1)
	err := &GLError{Call: name, File: filepath.Base(file), Line: line, Codes: codes}
	logger.Error("OpenGL error",
		zap.String("call", name),
		zap.String("at", fmt.Sprintf("%s:%d", err.File, err.Line)),
		zap.Error(err),
	)
	return err
}

func (c *Checker) drain() []uint32 {
	var codes []uint32
	for i := 0; i < maxDrain; i++ {
		code := c.getError()
		if code == 0 {
			break
		}
		codes = append(codes, code)
	}
	return codes
}
