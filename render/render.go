// Package render rasterizes PDF pages to PNG for the vision and OCR
// passes. Rendering shells out to pdftoppm (poppler-utils); oversized
// rasters are downscaled with Catmull-Rom resampling to keep vision
// payloads within request limits.
package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

// Config controls rasterization.
type Config struct {
	// DPI is the pdftoppm render resolution. Default 150.
	DPI int

	// MaxEdge caps the longer side of the output image in pixels; larger
	// renders are downscaled. Negative disables the cap. Default 2048.
	MaxEdge int

	// Binary overrides the pdftoppm executable path.
	Binary string
}

// DefaultConfig returns the default render configuration.
func DefaultConfig() Config {
	return Config{DPI: 150, MaxEdge: 2048, Binary: "pdftoppm"}
}

// Renderer rasterizes pages from PDF files.
type Renderer struct {
	cfg Config
}

// New creates a Renderer. Zero config fields take their defaults.
func New(cfg Config) *Renderer {
	def := DefaultConfig()
	if cfg.DPI <= 0 {
		cfg.DPI = def.DPI
	}
	if cfg.MaxEdge == 0 {
		cfg.MaxEdge = def.MaxEdge
	}
	if cfg.MaxEdge < 0 {
		cfg.MaxEdge = 0
	}
	if cfg.Binary == "" {
		cfg.Binary = def.Binary
	}
	return &Renderer{cfg: cfg}
}

// RenderPage renders one page (1-based) of the PDF at path to PNG bytes.
func (r *Renderer) RenderPage(ctx context.Context, path string, page int) ([]byte, error) {
	if page < 1 {
		return nil, fmt.Errorf("page %d out of range", page)
	}

	tmpDir, err := os.MkdirTemp("", "takeoff-render-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	prefix := filepath.Join(tmpDir, "page")
	pageArg := fmt.Sprintf("%d", page)
	cmd := exec.CommandContext(ctx, r.cfg.Binary,
		"-png",
		"-f", pageArg,
		"-l", pageArg,
		"-r", fmt.Sprintf("%d", r.cfg.DPI),
		"-singlefile",
		path,
		prefix,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm page %d: %w: %s", page, err, bytes.TrimSpace(out))
	}

	data, err := os.ReadFile(prefix + ".png")
	if err != nil {
		return nil, fmt.Errorf("reading rendered page: %w", err)
	}
	return r.clamp(data)
}

// DPI returns the configured render resolution.
func (r *Renderer) DPI() int { return r.cfg.DPI }

// clamp downscales the PNG if its longer edge exceeds MaxEdge.
func (r *Renderer) clamp(data []byte) ([]byte, error) {
	if r.cfg.MaxEdge == 0 {
		return data, nil
	}
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding render: %w", err)
	}
	b := src.Bounds()
	long := b.Dx()
	if b.Dy() > long {
		long = b.Dy()
	}
	if long <= r.cfg.MaxEdge {
		return data, nil
	}

	scale := float64(r.cfg.MaxEdge) / float64(long)
	dst := image.NewRGBA(image.Rect(0, 0,
		int(float64(b.Dx())*scale), int(float64(b.Dy())*scale)))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding downscaled render: %w", err)
	}
	return buf.Bytes(), nil
}

// FilePager binds a Renderer to one document so it satisfies the
// scanner's page-imager contract.
type FilePager struct {
	r    *Renderer
	path string
}

// ForFile returns a pager that renders pages of the given PDF.
func (r *Renderer) ForFile(path string) *FilePager {
	return &FilePager{r: r, path: path}
}

// Image renders one page as PNG bytes.
func (p *FilePager) Image(ctx context.Context, page int) ([]byte, error) {
	return p.r.RenderPage(ctx, p.path, page)
}
