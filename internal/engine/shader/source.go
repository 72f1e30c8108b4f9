package shader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// markerToken introduces a stage marker line.
const markerToken = "#shader"

// Stage identifies a shader pipeline stage.
type Stage int

// Stages a marker line can select. StageNone is the state before the first marker.
const (
	StageNone Stage = iota
	StageVertex
	StageFragment
)

// String returns the stage name as used in marker lines.
func (s Stage) String() string {
	switch s {
	case StageVertex:
		return "vertex"
	case StageFragment:
		return "fragment"
	default:
		return "none"
	}
}

// Source holds the per-stage GLSL sources split out of a combined shader file.
type Source struct {
	Vertex   string
	Fragment string
}

// ParseFile reads a combined shader file and splits it into stages.
func ParseFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Source{}, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return Source{}, fmt.Errorf("open shader %s: %w", path, err)
	}
	defer f.Close()

	src, err := Parse(f)
	if err != nil {
		return Source{}, fmt.Errorf("parse shader %s: %w", path, err)
	}
	return src, nil
}

// Parse splits r into vertex and fragment sources.
//
// Every content line is copied verbatim with a trailing newline into the
// buffer of the most recent "#shader <stage>" marker. Re-entering a stage
// keeps appending to the same buffer. Content before the first marker and
// markers naming an unknown stage are errors.
func Parse(r io.Reader) (Source, error) {
	// Strip a UTF-8 BOM or transcode BOM-marked UTF-16; other bytes pass through untouched.
	decoded := transform.NewReader(r, unicode.BOMOverride(transform.Nop))

	var bufs [3]strings.Builder
	stage := StageNone
	lineNo := 0

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.Contains(line, markerToken) {
			next, err := parseMarker(line)
			if err != nil {
				return Source{}, &ParseError{Line: lineNo, Text: line, Err: err}
			}
			stage = next
			continue
		}

		if stage == StageNone {
			return Source{}, &ParseError{Line: lineNo, Text: line, Err: ErrMalformedSource}
		}
		bufs[stage].WriteString(line)
		bufs[stage].WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return Source{}, fmt.Errorf("read shader source: %w", err)
	}

	return Source{
		Vertex:   bufs[StageVertex].String(),
		Fragment: bufs[StageFragment].String(),
	}, nil
}

// parseMarker returns the stage named by the first word after "#shader".
func parseMarker(line string) (Stage, error) {
	_, rest, _ := strings.Cut(line, markerToken)
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return StageNone, ErrUnknownStage
	}
	switch fields[0] {
	case "vertex":
		return StageVertex, nil
	case "fragment":
		return StageFragment, nil
	default:
		return StageNone, fmt.Errorf("%w: %q", ErrUnknownStage, fields[0])
	}
}
