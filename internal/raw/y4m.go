package raw

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const y4mMagic = "YUV4MPEG2"

// y4mLayout describes how frames are laid out in a Y4M container: a stream
// header followed by frames, each prefixed with a FRAME marker line. Encoders
// emit a constant marker per stream, so frame offsets are computed from a
// fixed stride.
type y4mLayout struct {
	geometry    Geometry
	format      PixelFormat
	frameRate   float64
	dataStart   int64 // offset of the first FRAME marker
	markerLen   int64 // length of one FRAME marker line including newline
	frameStride int64 // markerLen + raw frame bytes
}

// parseY4MHeader reads the stream header and first frame marker from r.
func parseY4MHeader(r io.Reader) (*y4mLayout, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read y4m header: %w", err)
	}
	fields := strings.Fields(strings.TrimSuffix(header, "\n"))
	if len(fields) == 0 || fields[0] != y4mMagic {
		return nil, fmt.Errorf("not a y4m stream")
	}

	l := &y4mLayout{format: FormatYUV420p}
	for _, f := range fields[1:] {
		if len(f) < 2 {
			continue
		}
		val := f[1:]
		switch f[0] {
		case 'W':
			l.geometry.Width, _ = strconv.Atoi(val)
		case 'H':
			l.geometry.Height, _ = strconv.Atoi(val)
		case 'F':
			num, den, ok := strings.Cut(val, ":")
			n, errN := strconv.Atoi(num)
			d, errD := strconv.Atoi(den)
			if ok && errN == nil && errD == nil && d > 0 {
				l.frameRate = float64(n) / float64(d)
			}
		case 'C':
			switch {
			case strings.HasPrefix(val, "420"):
				l.format = FormatYUV420p
			case strings.HasPrefix(val, "422"):
				l.format = FormatYUV422p
			case strings.HasPrefix(val, "444"):
				l.format = FormatYUV444p
			case strings.HasPrefix(val, "mono"):
				l.format = FormatGray8
			default:
				return nil, fmt.Errorf("unsupported y4m colourspace %q", val)
			}
		}
	}
	if !l.geometry.Valid() {
		return nil, fmt.Errorf("y4m header missing geometry")
	}
	l.dataStart = int64(len(header))

	marker, err := br.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			// Header-only stream: zero frames.
			l.markerLen = int64(len("FRAME\n"))
			l.frameStride = l.markerLen + l.format.BytesPerFrame(l.geometry)
			return l, nil
		}
		return nil, fmt.Errorf("read y4m frame marker: %w", err)
	}
	if !strings.HasPrefix(marker, "FRAME") {
		return nil, fmt.Errorf("malformed y4m frame marker %q", strings.TrimSuffix(marker, "\n"))
	}
	l.markerLen = int64(len(marker))
	l.frameStride = l.markerLen + l.format.BytesPerFrame(l.geometry)
	return l, nil
}

// frameOffset returns the file offset of frame idx's raw data.
func (l *y4mLayout) frameOffset(idx int) int64 {
	return l.dataStart + int64(idx)*l.frameStride + l.markerLen
}

// frameCount returns how many complete frames fit in a file of the given size.
func (l *y4mLayout) frameCount(fileSize int64) int {
	if fileSize <= l.dataStart {
		return 0
	}
	return int((fileSize - l.dataStart) / l.frameStride)
}
