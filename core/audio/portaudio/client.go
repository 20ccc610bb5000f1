// Package portaudio provides a speech playback sink on top of the portaudio
// bindings. It is the fallback for platforms where the miniaudio sink has no
// working backend.
package portaudio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
	"github.com/koscakluka/docqa-core/core/audio"
)

const defaultBufferSize = 1024

type Client struct {
	bufferSize int
}

func NewClient(bufferSize int) (*Client, error) {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize portaudio: %w", err)
	}

	return &Client{bufferSize: bufferSize}, nil
}

func (c *Client) Close() {
	_ = portaudio.Terminate()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: audio.DefaultSampleRate,
		Format:     audio.EncodingLinear16,
	}
}

// Open loads one speech blob into a dedicated output stream. The stream is
// opened but nothing is written until Play.
func (c *Client) Open(speech []byte, callbacks audio.PlaybackCallbacks) (audio.Playback, error) {
	return newPlayback(c.bufferSize, c.EncodingInfo(), speech, callbacks)
}
