package oto

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/vsariola/rack"
)

type (
	OtoContext struct {
		context *oto.Context
	}

	// OtoOutput pulls audio from a rack.AudioSource whenever oto needs more
	// bytes.
	OtoOutput struct {
		player *oto.Player
		reader *sourceReader
	}

	sourceReader struct {
		mu      sync.Mutex
		source  rack.AudioSource
		buffer  rack.AudioBuffer
		pending []byte
		closed  bool
	}
)

const (
	otoBufferSize = 8192
	frameBytes    = 8 // two float32 channels
)

// NewContext creates the oto context. It blocks until the audio device is
// ready.
func NewContext() (*OtoContext, error) {
	context, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   rack.SampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   time.Duration(otoBufferSize) * time.Second / rack.SampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready
	return &OtoContext{context: context}, nil
}

// Play starts pulling audio from the source. The source is called on oto's
// goroutine.
func (c *OtoContext) Play(source rack.AudioSource) rack.AudioCloser {
	reader := &sourceReader{source: source, buffer: make(rack.AudioBuffer, otoBufferSize/frameBytes)}
	player := c.context.NewPlayer(reader)
	player.Play()
	return &OtoOutput{player: player, reader: reader}
}

func (c *OtoContext) Close() error {
	if err := c.context.Suspend(); err != nil {
		return fmt.Errorf("cannot suspend oto context: %w", err)
	}
	return nil
}

// Close stops the playback. After Close, the source is not called anymore.
func (o *OtoOutput) Close() error {
	o.player.Pause()
	o.reader.close()
	if err := o.player.Err(); err != nil {
		return fmt.Errorf("oto player failed: %w", err)
	}
	return nil
}

func (r *sourceReader) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return 0, io.EOF
	}
	if len(r.pending) == 0 {
		frames := min(max((len(p)+frameBytes-1)/frameBytes, 1), len(r.buffer))
		buf := r.buffer[:frames]
		r.source(buf)
		r.pending = FloatBufferToBytes(buf, r.pending[:0])
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *sourceReader) close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
