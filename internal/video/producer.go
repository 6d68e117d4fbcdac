package video

import (
	"github.com/llehouerou/reel/internal/raw"
)

// NoFrame is the sentinel frame index meaning "none / invalidated".
const NoFrame = -1

// Producer is the external component that turns raw encoded data into
// decoded images. It exposes a single shared request buffer: after a
// successful RequestFrame(i, ...), RequestedFrameIndex reports i and
// RequestedFrame holds the decoded image. On failure or deferral the
// requested index is left unchanged and the caller treats the request as not
// served.
//
// The producer is not safe for concurrent use; the handler serializes all
// access behind its gate.
type Producer interface {
	// RequestFrame decodes frame idx into the shared request buffer.
	// forCaching distinguishes background cache fills from renderer loads.
	RequestFrame(idx int, forCaching bool)
	// RequestedFrame returns the image currently in the request buffer, or
	// nil. The returned image is a snapshot and stays valid after further
	// requests.
	RequestedFrame() *Image
	// RequestedFrameIndex returns the index of the buffered image, or
	// NoFrame.
	RequestedFrameIndex() int
	// ResetRequested marks the request buffer invalid (index NoFrame).
	ResetRequested()

	Geometry() raw.Geometry
	Format() raw.PixelFormat
	FrameCount() int
	FrameRate() float64
}

// FrameDecoder is the minimal decode surface FileProducer builds on.
// *raw.FileSource implements it.
type FrameDecoder interface {
	DecodeFrame(idx int) (*raw.Frame, error)
	Geometry() raw.Geometry
	Format() raw.PixelFormat
	FrameCount() int
	FrameRate() float64
}

// FileProducer adapts a FrameDecoder to the Producer contract. Decode
// failures leave the request buffer untouched, which the handler observes as
// a deferred request and retries on the next draw.
type FileProducer struct {
	decoder FrameDecoder

	requestedFrame    *Image
	requestedFrameIdx int
}

var _ Producer = (*FileProducer)(nil)

// NewFileProducer wraps a decoder in the producer request protocol.
func NewFileProducer(decoder FrameDecoder) *FileProducer {
	return &FileProducer{decoder: decoder, requestedFrameIdx: NoFrame}
}

// RequestFrame decodes frame idx into the request buffer.
func (p *FileProducer) RequestFrame(idx int, _ bool) {
	fr, err := p.decoder.DecodeFrame(idx)
	if err != nil {
		return
	}
	p.requestedFrame = NewImage(fr)
	p.requestedFrameIdx = idx
}

// RequestedFrame returns the buffered image, or nil.
func (p *FileProducer) RequestedFrame() *Image { return p.requestedFrame }

// RequestedFrameIndex returns the index of the buffered image, or NoFrame.
func (p *FileProducer) RequestedFrameIndex() int { return p.requestedFrameIdx }

// ResetRequested invalidates the request buffer.
func (p *FileProducer) ResetRequested() {
	p.requestedFrame = nil
	p.requestedFrameIdx = NoFrame
}

// Geometry returns the frame dimensions.
func (p *FileProducer) Geometry() raw.Geometry { return p.decoder.Geometry() }

// Format returns the pixel format.
func (p *FileProducer) Format() raw.PixelFormat { return p.decoder.Format() }

// FrameCount returns the number of frames in the sequence.
func (p *FileProducer) FrameCount() int { return p.decoder.FrameCount() }

// FrameRate returns the sequence frame rate, or 0 when unknown.
func (p *FileProducer) FrameRate() float64 { return p.decoder.FrameRate() }
