package imageproc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/UnendingLoop/ImageWatermarker/internal/model"
	"github.com/stretchr/testify/require"
)

// testImage returns PNG bytes of a w×h gradient
func testImage(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestEncodeDecode(t *testing.T) {
	src, err := Decode(testImage(t, 120, 80))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 120, 80), src.Bounds())

	tests := []struct {
		name      string
		ctype     string
		wantCType string
	}{
		{"JPEG", model.JPEG, model.JPEG},
		{"PNG", model.PNG, model.PNG},
		{"GIF", model.GIF, model.GIF},
		{"BMP", model.BMP, model.BMP},
		{"TIFF", model.TIFF, model.TIFF},
		{"WEBP falls back to PNG", model.WEBP, model.PNG},
		{"unknown falls back to PNG", "application/octet-stream", model.PNG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ctype, err := Encode(src, tt.ctype)
			require.NoError(t, err)
			require.Equal(t, tt.wantCType, ctype)
			require.NotEmpty(t, data)

			back, err := Decode(data)
			require.NoError(t, err)
			require.Equal(t, 120, back.Bounds().Dx())
			require.Equal(t, 80, back.Bounds().Dy())
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(nil)
	require.Error(t, err)

	_, err = Decode([]byte("definitely not an image"))
	require.Error(t, err)
}

func TestDecodeConfig(t *testing.T) {
	cfg, format, err := DecodeConfig(testImage(t, 30, 12))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, 30, cfg.Width)
	require.Equal(t, 12, cfg.Height)

	_, _, err = DecodeConfig([]byte(`<svg xmlns="http://www.w3.org/2000/svg"/>`))
	require.Error(t, err)

	_, _, err = DecodeConfig(nil)
	require.Error(t, err)
}

func TestThumbnailer(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		size    int
		wantErr bool
	}{
		{"OK thumbnail", testImage(t, 300, 200), 64, false},
		{"upscaled thumbnail", testImage(t, 20, 10), 48, false},
		{"zero size", testImage(t, 30, 30), 0, true},
		{"broken source", []byte("garbage"), 64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Thumbnailer(tt.data, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			img, err := png.Decode(bytes.NewReader(res))
			require.NoError(t, err)
			require.Equal(t, tt.size, img.Bounds().Dx())
			require.Equal(t, tt.size, img.Bounds().Dy())
		})
	}
}

func TestDisplaySize(t *testing.T) {
	tests := []struct {
		name           string
		w, h, cw, ch   int
		wantScale      float64
		wantDW, wantDH int
	}{
		{"fit by width", 1000, 500, 500, 500, 0.5, 500, 250},
		{"fit by height", 400, 800, 1000, 400, 0.5, 200, 400},
		{"upscale", 100, 50, 400, 400, 4, 400, 200},
		{"exact", 640, 480, 640, 480, 1, 640, 480},
		{"no container", 640, 480, 0, 0, 1, 640, 480},
		{"tiny result keeps one pixel", 1000, 1, 10, 10, 0.01, 10, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scale, dw, dh := DisplaySize(tt.w, tt.h, tt.cw, tt.ch)
			require.InDelta(t, tt.wantScale, scale, 1e-9)
			require.Equal(t, tt.wantDW, dw)
			require.Equal(t, tt.wantDH, dh)
		})
	}
}

func TestResizer(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 200, 100))

	same := Resizer(img, 200, 100)
	require.Same(t, img, same)

	small := Resizer(img, 50, 25)
	require.Equal(t, 50, small.Bounds().Dx())
	require.Equal(t, 25, small.Bounds().Dy())
}

func TestSaturate(t *testing.T) {
	tests := []struct {
		in   float64
		want uint8
	}{
		{-10, 0},
		{0, 0},
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{254.4, 254},
		{254.5, 254},
		{255, 255},
		{1000, 255},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, saturate(tt.in), "in=%v", tt.in)
	}
}
