package errmsg

import (
	"errors"
	"testing"
)

func TestFormat(t *testing.T) {
	err := errors.New("permission denied")
	got := Format(OpOpenFile, err)
	want := "Failed to open video file: permission denied"
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormat_NilError(t *testing.T) {
	if got := Format(OpOpenFile, nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
}

func TestFormatWith(t *testing.T) {
	err := errors.New("no such file")
	got := FormatWith(OpOpenFile, "clip.yuv", err)
	want := "Failed to open video file 'clip.yuv': no such file"
	if got != want {
		t.Errorf("FormatWith = %q, want %q", got, want)
	}

	if got := FormatWith(OpOpenFile, "", err); got != Format(OpOpenFile, err) {
		t.Errorf("FormatWith empty context = %q", got)
	}
	if got := FormatWith(OpOpenFile, "clip.yuv", nil); got != "" {
		t.Errorf("FormatWith(nil) = %q, want empty", got)
	}
}
