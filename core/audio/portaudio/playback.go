package portaudio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/koscakluka/docqa-core/core/audio"
)

// playback pushes one speech blob through a blocking output stream in its own
// goroutine. Pausing parks the pump between chunks; the cursor keeps the
// position, so resuming continues from where it paused.
type playback struct {
	stream     *portaudio.Stream
	out        []int16
	chunkBytes int

	speech    []byte
	callbacks audio.PlaybackCallbacks

	mu      sync.Mutex
	cond    *sync.Cond
	cursor  int
	playing bool
	pumping bool
	closed  bool
}

func newPlayback(bufferSize int, encodingInfo audio.EncodingInfo, speech []byte, callbacks audio.PlaybackCallbacks) (*playback, error) {
	if !encodingInfo.IsRaw() {
		return nil, fmt.Errorf("unsupported encoding %q: stream playback needs raw samples", encodingInfo.Format.Name())
	}

	out := make([]int16, bufferSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, float64(encodingInfo.SampleRate), bufferSize, out)
	if err != nil {
		return nil, fmt.Errorf("failed to open portaudio stream: %w", err)
	}

	p := &playback{
		stream:     stream,
		out:        out,
		chunkBytes: bufferSize * encodingInfo.Format.ByteSize(),
		speech:     speech,
		callbacks:  callbacks,
	}
	p.cond = sync.NewCond(&p.mu)

	return p, nil
}

func (p *playback) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}
	if p.pumping {
		p.playing = true
		p.cond.Broadcast()
		return nil
	}

	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("failed to start portaudio stream: %w", err)
	}

	p.playing = true
	p.pumping = true
	go p.pump()
	return nil
}

func (p *playback) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}

	p.playing = false
	return nil
}

func (p *playback) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}
	if p.cursor >= len(p.speech) {
		return fmt.Errorf("playback already completed")
	}

	p.playing = true
	p.cond.Broadcast()
	return nil
}

func (p *playback) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	pumping := p.pumping
	p.cond.Broadcast()
	p.mu.Unlock()

	// a running pump owns the stream and tears it down on exit
	if !pumping {
		return p.stream.Close()
	}
	return nil
}

// pump writes chunks to the blocking stream until the blob is drained, the
// handle is closed, or pause parks it between chunks.
func (p *playback) pump() {
	defer func() {
		_ = p.stream.Stop()
		_ = p.stream.Close()
	}()

	if p.callbacks.OnStarted != nil {
		p.callbacks.OnStarted()
	}

	for {
		p.mu.Lock()
		for !p.playing && !p.closed {
			p.cond.Wait()
		}
		if p.closed {
			p.mu.Unlock()
			return
		}
		if p.cursor >= len(p.speech) {
			p.mu.Unlock()
			break
		}

		chunk := make([]byte, p.chunkBytes)
		copied := copy(chunk, p.speech[p.cursor:])
		p.cursor += copied
		p.mu.Unlock()

		_ = binary.Read(bytes.NewReader(chunk), binary.LittleEndian, p.out)
		if err := p.stream.Write(); err != nil {
			// an underflow between chunks is recoverable, keep pumping
			continue
		}
	}

	p.mu.Lock()
	closed := p.closed
	p.mu.Unlock()
	if !closed && p.callbacks.OnEnded != nil {
		p.callbacks.OnEnded()
	}
}
