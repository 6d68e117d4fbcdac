package raw

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FileSource reads frames from a raw video file. It implements the decoder
// side of the frame-producer contract: DecodeFrame either returns a complete
// frame or an error, never a partial one.
type FileSource struct {
	f         *os.File
	size      int64
	geometry  Geometry
	format    PixelFormat
	frameRate float64
	y4m       *y4mLayout

	// Scratch buffer reused across reads. DecodeFrame copies out of it into
	// freshly allocated planes, so returned frames never alias it.
	readBuf []byte
}

// OpenOptions override metadata that cannot be derived from the file itself.
// Zero values defer to Y4M headers, file-name conventions, then defaults.
type OpenOptions struct {
	Geometry  Geometry
	Format    *PixelFormat
	FrameRate float64
}

// Open opens a raw video file. Y4M files are self-describing; bare planar
// files need geometry from opts or from the file name.
func Open(path string, opts OpenOptions) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	s := &FileSource{f: f, size: fi.Size()}

	if strings.EqualFold(filepath.Ext(path), ".y4m") {
		layout, err := parseY4MHeader(f)
		if err != nil {
			f.Close()
			return nil, err
		}
		s.y4m = layout
		s.geometry = layout.geometry
		s.format = layout.format
		s.frameRate = layout.frameRate
	} else {
		md := GuessMetadata(path)
		s.geometry = md.Geometry
		s.format = FormatYUV420p
		if md.HasFormat {
			s.format = md.Format
		}
		s.frameRate = md.FrameRate
	}

	// Explicit options win over anything derived.
	if opts.Geometry.Valid() {
		s.geometry = opts.Geometry
	}
	if opts.Format != nil {
		s.format = *opts.Format
	}
	if opts.FrameRate > 0 {
		s.frameRate = opts.FrameRate
	}

	if !s.geometry.Valid() {
		f.Close()
		return nil, fmt.Errorf("cannot determine frame size for %s; use --size", filepath.Base(path))
	}
	return s, nil
}

// Close closes the underlying file.
func (s *FileSource) Close() error {
	return s.f.Close()
}

// Geometry returns the frame dimensions.
func (s *FileSource) Geometry() Geometry { return s.geometry }

// Format returns the pixel format.
func (s *FileSource) Format() PixelFormat { return s.format }

// FrameRate returns the sequence frame rate, or 0 when unknown.
func (s *FileSource) FrameRate() float64 { return s.frameRate }

// FrameCount returns the number of complete frames in the file.
func (s *FileSource) FrameCount() int {
	if s.y4m != nil {
		return s.y4m.frameCount(s.size)
	}
	per := s.format.BytesPerFrame(s.geometry)
	if per <= 0 {
		return 0
	}
	return int(s.size / per)
}

// DecodeFrame reads and decodes frame idx. Indices outside the file are an
// error.
func (s *FileSource) DecodeFrame(idx int) (*Frame, error) {
	if idx < 0 || idx >= s.FrameCount() {
		return nil, fmt.Errorf("frame %d out of range [0, %d)", idx, s.FrameCount())
	}

	per := s.format.BytesPerFrame(s.geometry)
	offset := int64(idx) * per
	if s.y4m != nil {
		offset = s.y4m.frameOffset(idx)
	}

	if int64(cap(s.readBuf)) < per {
		s.readBuf = make([]byte, per)
	}
	buf := s.readBuf[:per]
	if n, err := s.f.ReadAt(buf, offset); n < len(buf) {
		if err == nil || err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read frame %d: %w", idx, err)
	}

	return s.assemble(buf), nil
}

// assemble copies the read buffer into per-plane slices.
func (s *FileSource) assemble(buf []byte) *Frame {
	fr := &Frame{Geometry: s.geometry, Format: s.format}
	switch s.format.PlaneCount() {
	case 1:
		plane := make([]byte, len(buf))
		copy(plane, buf)
		fr.Planes = [][]byte{plane}
	default:
		lumaLen := s.geometry.Area()
		cw, ch := s.format.chromaSize(s.geometry)
		chromaLen := cw * ch

		yp := make([]byte, lumaLen)
		up := make([]byte, chromaLen)
		vp := make([]byte, chromaLen)
		copy(yp, buf[:lumaLen])
		copy(up, buf[lumaLen:lumaLen+chromaLen])
		copy(vp, buf[lumaLen+chromaLen:])
		fr.Planes = [][]byte{yp, up, vp}
	}
	return fr
}
