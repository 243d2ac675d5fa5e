// Package audio adapts the engine's stereo mixer to an OS audio output
// device via ebiten/oto, and decodes OGG Vorbis source files into Sound
// buffers. Both are "external collaborator" concerns per spec.md §1: the
// core never touches a device or a file format directly, only the
// SampleSource contract below.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"runtime"
	"strings"
	"sync"
	"time"

	ebitaudio "github.com/hajimehoshi/ebiten/v2/audio"
)

// SampleSource produces interleaved stereo float32 frames on demand; this
// is the one contract the mixer exposes to the output backend.
type SampleSource interface {
	Process(dst []float32)
}

// SetupError enumerates the one-time, control-thread setup failures from
// spec.md §7: missing device, config failure, stream build/start failure.
type SetupError int

const (
	NoDefaultOutputDevice SetupError = iota
	DeviceConfigUnavailable
	StreamBuildFailed
	StreamPlayFailed
)

func (e SetupError) Error() string {
	switch e {
	case NoDefaultOutputDevice:
		return "no default audio output device"
	case DeviceConfigUnavailable:
		return "could not negotiate an audio device configuration"
	case StreamBuildFailed:
		return "failed to build audio output stream"
	case StreamPlayFailed:
		return "failed to start audio output stream"
	default:
		return "unknown audio setup error"
	}
}

// StreamReader adapts a SampleSource to io.Reader by converting its float32
// frames to the little-endian byte stream ebiten's player expects.
type StreamReader struct {
	mu     sync.Mutex
	source SampleSource
	buf    []float32
}

func NewStreamReader(source SampleSource) *StreamReader {
	return &StreamReader{source: source}
}

func (r *StreamReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	frames := len(p) / 8
	if frames == 0 {
		return 0, nil
	}
	need := frames * 2
	if cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	r.buf = r.buf[:need]
	r.source.Process(r.buf)
	for i := 0; i < need; i++ {
		u := math.Float32bits(r.buf[i])
		binary.LittleEndian.PutUint32(p[i*4:], u)
	}
	return frames * 8, nil
}

func (r *StreamReader) Close() error { return nil }

// Output drives a SampleSource into the default OS audio output device.
type Output struct {
	player *ebitaudio.Player
	reader io.ReadCloser
}

var (
	contextOnce  sync.Once
	sharedCtx    *ebitaudio.Context
	sharedCtxErr error
	sharedSR     int
)

func sharedContext(sampleRate int) (*ebitaudio.Context, error) {
	contextOnce.Do(func() {
		sharedSR = sampleRate
		sharedCtx = ebitaudio.NewContext(sampleRate)
	})
	if sharedCtxErr != nil {
		return nil, sharedCtxErr
	}
	if sharedSR != sampleRate {
		return nil, fmt.Errorf("%w: opened at %d Hz, requested %d Hz", DeviceConfigUnavailable, sharedSR, sampleRate)
	}
	return sharedCtx, nil
}

// NewOutput negotiates the shared device context at sampleRate and builds a
// player that streams source into it once Play is called. Errors are
// classified against SetupError so
// callers can match spec.md §7's AudioManager construction contract.
func NewOutput(sampleRate int, source SampleSource) (*Output, error) {
	ctx, err := sharedContext(sampleRate)
	if err != nil {
		return nil, classifySetupError(err)
	}
	reader := NewStreamReader(source)
	pl, err := ctx.NewPlayerF32(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", StreamBuildFailed, err)
	}
	return &Output{player: pl, reader: reader}, nil
}

// classifySetupError recognizes common "no device present" platform errors
// (headless CI, containers without ALSA/PipeWire) and reports them as
// NoDefaultOutputDevice rather than an opaque driver error.
func classifySetupError(err error) error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("%w: %v", StreamBuildFailed, err)
	}
	msg := strings.ToLower(err.Error())
	noDevice := strings.Contains(msg, "alsa error at snd_pcm_open") ||
		strings.Contains(msg, "unknown pcm default") ||
		strings.Contains(msg, "cannot find card")
	if noDevice {
		return fmt.Errorf("%w: %v", NoDefaultOutputDevice, err)
	}
	return fmt.Errorf("%w: %v", StreamBuildFailed, err)
}

func (o *Output) Play() error {
	o.player.Play()
	if !o.player.IsPlaying() {
		return StreamPlayFailed
	}
	return nil
}
func (o *Output) Pause() { o.player.Pause() }
func (o *Output) IsPlaying() bool {
	return o.player.IsPlaying()
}

// Position returns the current playback position (what the listener
// actually hears, lagging behind what the mixer has produced).
func (o *Output) Position() time.Duration {
	return o.player.Position()
}

func (o *Output) Stop() error {
	o.player.Pause()
	o.player.Close()
	return o.reader.Close()
}
