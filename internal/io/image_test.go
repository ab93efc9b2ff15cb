package ioutils

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

// pngBytes encodes a solid-color PNG of the given dimensions.
func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	return buf.Bytes()
}

func decodeSize(t *testing.T, data []byte) (int, int) {
	t.Helper()
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding result: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("format = %q, want %q", format, "jpeg")
	}
	return cfg.Width, cfg.Height
}

func TestResizeImage(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"larger poster scales down", 2000, 2000, 1000, 1500, 1000, 1000},
		{"smaller poster keeps size", 800, 1200, 1000, 1500, 800, 1200},
		{"width limits wide image", 2000, 1000, 1000, 1500, 1000, 500},
		{"height limits tall image", 750, 3000, 1000, 1500, 375, 1500},
	}

	svc := NewImageService()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := svc.ResizeImage(pngBytes(t, tt.srcW, tt.srcH), tt.maxW, tt.maxH)
			if err != nil {
				t.Fatalf("ResizeImage: %v", err)
			}
			w, h := decodeSize(t, out)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("size = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestResizeImageBadData(t *testing.T) {
	svc := NewImageService()
	if _, err := svc.ResizeImage([]byte("not an image"), 100, 100); err == nil {
		t.Error("expected error for undecodable data")
	}
}

func TestConvertToJPEG(t *testing.T) {
	svc := NewImageService()
	out, err := svc.ConvertToJPEG(pngBytes(t, 64, 96))
	if err != nil {
		t.Fatalf("ConvertToJPEG: %v", err)
	}
	w, h := decodeSize(t, out)
	if w != 64 || h != 96 {
		t.Errorf("size = %dx%d, want 64x96", w, h)
	}
}
