package debug

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"
)

// FrameCapture writes framebuffer contents to timestamped PNG files.
type FrameCapture struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewFrameCapture returns a capture writing <prefix>_<timestamp>.png files into dir.
func NewFrameCapture(dir, prefix string) *FrameCapture {
	return &FrameCapture{dir: dir, prefix: prefix, now: time.Now}
}

// CaptureFromPixels saves RGBA pixels read back from OpenGL.
// Rows arrive bottom-up and are flipped so the PNG is upright.
func (fc *FrameCapture) CaptureFromPixels(pixels []byte, width, height int) (string, error) {
	if len(pixels) != width*height*4 {
		return "", fmt.Errorf("pixel data size mismatch: expected %d, got %d", width*height*4, len(pixels))
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	rowSize := width * 4
	for y := 0; y < height; y++ {
		src := (height - 1 - y) * rowSize
		dst := y * img.Stride
		copy(img.Pix[dst:dst+rowSize], pixels[src:src+rowSize])
	}

	if err := os.MkdirAll(fc.dir, 0755); err != nil {
		return "", fmt.Errorf("creating capture dir: %w", err)
	}

	name := filepath.Join(fc.dir, fmt.Sprintf("%s_%s.png", fc.prefix, fc.now().Format("2006-01-02_15-04-05")))
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return "", fmt.Errorf("encoding PNG: %w", err)
	}
	return name, nil
}
