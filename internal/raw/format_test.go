package raw

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    PixelFormat
		wantErr bool
	}{
		{"yuv420p", FormatYUV420p, false},
		{"420", FormatYUV420p, false},
		{"I420", FormatYUV420p, false},
		{"yuv422p", FormatYUV422p, false},
		{"444", FormatYUV444p, false},
		{"gray", FormatGray8, false},
		{"RGB24", FormatRGB24, false},
		{" rgb ", FormatRGB24, false},
		{"nv12", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBytesPerFrame(t *testing.T) {
	g := Geometry{Width: 352, Height: 288}
	tests := []struct {
		format PixelFormat
		want   int64
	}{
		{FormatYUV420p, 352 * 288 * 3 / 2},
		{FormatYUV422p, 352 * 288 * 2},
		{FormatYUV444p, 352 * 288 * 3},
		{FormatGray8, 352 * 288},
		{FormatRGB24, 352 * 288 * 3},
	}
	for _, tt := range tests {
		if got := tt.format.BytesPerFrame(g); got != tt.want {
			t.Errorf("%v.BytesPerFrame(%v) = %d, want %d", tt.format, g, got, tt.want)
		}
	}
}

func TestBytesPerFrame_OddDimensions(t *testing.T) {
	// Chroma planes round up for odd luma dimensions.
	g := Geometry{Width: 3, Height: 3}
	if got := FormatYUV420p.BytesPerFrame(g); got != 9+2*4 {
		t.Errorf("yuv420p 3x3 = %d, want %d", got, 9+2*4)
	}
}

func TestComponentNames(t *testing.T) {
	if got := FormatGray8.ComponentNames(); len(got) != 1 || got[0] != "Y" {
		t.Errorf("gray8 components = %v", got)
	}
	if got := FormatYUV420p.ComponentNames(); len(got) != 3 || got[2] != "V" {
		t.Errorf("yuv420p components = %v", got)
	}
}
