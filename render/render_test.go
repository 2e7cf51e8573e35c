package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b := img.Bounds()
	return b.Dx(), b.Dy()
}

func TestClampPassthrough(t *testing.T) {
	r := New(Config{MaxEdge: 100})
	in := encodePNG(t, 80, 60)
	out, err := r.clamp(in)
	if err != nil {
		t.Fatalf("clamp: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Error("image within cap should pass through unchanged")
	}
}

func TestClampDownscales(t *testing.T) {
	r := New(Config{MaxEdge: 100})
	out, err := r.clamp(encodePNG(t, 400, 200))
	if err != nil {
		t.Fatalf("clamp: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 100 || h != 50 {
		t.Errorf("downscaled to %dx%d, want 100x50", w, h)
	}
}

func TestClampDisabled(t *testing.T) {
	r := New(Config{MaxEdge: -1})
	in := encodePNG(t, 400, 200)
	out, err := r.clamp(in)
	if err != nil {
		t.Fatalf("clamp: %v", err)
	}
	if !bytes.Equal(in, out) {
		t.Error("negative MaxEdge should disable downscaling")
	}
}

func TestDefaults(t *testing.T) {
	r := New(Config{})
	if r.cfg.DPI != 150 || r.cfg.MaxEdge != 2048 || r.cfg.Binary != "pdftoppm" {
		t.Errorf("unexpected defaults: %+v", r.cfg)
	}
}
