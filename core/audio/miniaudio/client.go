// Package miniaudio provides a speech playback sink on top of malgo
// (miniaudio bindings). Each opened resource gets its own playback device, so
// pausing one resource never disturbs another and releasing a resource fully
// releases its device.
package miniaudio

import (
	"fmt"

	"github.com/gen2brain/malgo"
	"github.com/koscakluka/docqa-core/core/audio"
)

const sampleRate = 48000

type Client struct {
	// audioContext is only saved to be able to uninitialize it, it is an
	// ownership thing
	audioContext *malgo.AllocatedContext
}

func NewClient() (*Client, error) {
	audioCtx, err := malgo.InitContext(
		nil,
		malgo.ContextConfig{},
		func(message string) {},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize audio context: %w", err)
	}

	return &Client{audioContext: audioCtx}, nil
}

func (c *Client) Close() {
	_ = c.audioContext.Uninit()
	c.audioContext.Free()
}

func (c *Client) EncodingInfo() audio.EncodingInfo {
	return audio.EncodingInfo{
		SampleRate: sampleRate,
		Format:     audio.EncodingLinear16,
	}
}

// Open loads one speech blob into a dedicated playback device. The device is
// initialized but not started; playback begins on Play.
func (c *Client) Open(speech []byte, callbacks audio.PlaybackCallbacks) (audio.Playback, error) {
	return newPlayback(c.audioContext, c.EncodingInfo(), speech, callbacks)
}
