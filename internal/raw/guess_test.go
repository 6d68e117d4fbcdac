package raw

import "testing"

func TestGuessMetadata(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		geometry  Geometry
		format    PixelFormat
		hasFormat bool
		frameRate float64
	}{
		{
			name:      "size and rate",
			path:      "/videos/foreman_352x288_30.yuv",
			geometry:  Geometry{352, 288},
			frameRate: 30,
		},
		{
			name:     "size only",
			path:     "bus_1920x1080.yuv",
			geometry: Geometry{1920, 1080},
		},
		{
			name:     "named size",
			path:     "akiyo_cif.yuv",
			geometry: Geometry{352, 288},
		},
		{
			name:      "format token",
			path:      "test_176x144_444.yuv",
			geometry:  Geometry{176, 144},
			format:    FormatYUV444p,
			hasFormat: true,
		},
		{
			name:      "format token then rate",
			path:      "seq_176x144_444_25.yuv",
			geometry:  Geometry{176, 144},
			format:    FormatYUV444p,
			hasFormat: true,
			frameRate: 25,
		},
		{
			name:      "rgb extension",
			path:      "capture_640x480.rgb",
			geometry:  Geometry{640, 480},
			format:    FormatRGB24,
			hasFormat: true,
		},
		{
			name:      "fractional rate",
			path:      "clip_1280x720_29.97.yuv",
			geometry:  Geometry{1280, 720},
			frameRate: 29.97,
		},
		{
			name: "nothing to guess",
			path: "mystery.yuv",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md := GuessMetadata(tt.path)
			if md.Geometry != tt.geometry {
				t.Errorf("geometry = %v, want %v", md.Geometry, tt.geometry)
			}
			if md.HasFormat != tt.hasFormat {
				t.Errorf("hasFormat = %v, want %v", md.HasFormat, tt.hasFormat)
			}
			if tt.hasFormat && md.Format != tt.format {
				t.Errorf("format = %v, want %v", md.Format, tt.format)
			}
			if md.FrameRate != tt.frameRate {
				t.Errorf("frameRate = %v, want %v", md.FrameRate, tt.frameRate)
			}
		})
	}
}
