package miniaudio

import (
	"fmt"
	"sync"

	"github.com/gen2brain/malgo"
	"github.com/koscakluka/docqa-core/core/audio"
)

// playback owns one device playing one speech blob. The device pulls audio
// through the data callback; the cursor tracks how far into the blob playback
// has gotten, so stopping and restarting the device continues from where it
// paused instead of replaying.
type playback struct {
	mu sync.Mutex

	device *malgo.Device
	speech []byte
	cursor int

	started bool
	drained bool
	closed  bool

	callbacks audio.PlaybackCallbacks
}

func newPlayback(audioContext *malgo.AllocatedContext, encodingInfo audio.EncodingInfo, speech []byte, callbacks audio.PlaybackCallbacks) (*playback, error) {
	if !encodingInfo.IsRaw() {
		return nil, fmt.Errorf("unsupported encoding %q: device playback needs raw samples", encodingInfo.Format.Name())
	}

	p := &playback{speech: speech, callbacks: callbacks}

	channels := 1
	format := malgo.FormatS16
	bytesPerFrame := malgo.SampleSizeInBytes(format) * channels

	config := malgo.DefaultDeviceConfig(malgo.Playback)
	config.SampleRate = uint32(encodingInfo.SampleRate)
	config.Playback.Format = format
	config.Playback.Channels = uint32(channels)
	config.Alsa.NoMMap = 1
	config.PeriodSizeInFrames = uint32(encodingInfo.SampleRate) / 10 // ~100ms of audio
	config.Periods = 4

	device, err := malgo.InitDevice(
		audioContext.Context,
		config,
		malgo.DeviceCallbacks{Data: p.processAudio(bytesPerFrame)},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize playback device: %w", err)
	}
	p.device = device

	return p, nil
}

func (p *playback) Play() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}

	if err := p.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	return nil
}

func (p *playback) Pause() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}

	if err := p.device.Stop(); err != nil {
		return fmt.Errorf("failed to stop playback device: %w", err)
	}
	return nil
}

func (p *playback) Resume() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return fmt.Errorf("playback closed")
	}
	if p.drained {
		return fmt.Errorf("playback already completed")
	}

	if err := p.device.Start(); err != nil {
		return fmt.Errorf("failed to start playback device: %w", err)
	}
	return nil
}

func (p *playback) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	device := p.device
	p.device = nil
	p.mu.Unlock()

	// Uninit stops the device and waits for the data callback to drain, so
	// it must run outside the lock the callback takes.
	device.Uninit()
	return nil
}

func (p *playback) processAudio(bytesPerFrame int) malgo.DataProc {
	return func(pOutput, _ []byte, frameCount uint32) {
		p.mu.Lock()

		if p.closed || p.drained {
			p.mu.Unlock()
			return
		}

		if !p.started {
			p.started = true
			if p.callbacks.OnStarted != nil {
				go p.callbacks.OnStarted()
			}
		}

		need := int(frameCount) * bytesPerFrame
		remaining := p.speech[p.cursor:]

		if len(remaining) <= need {
			copy(pOutput, remaining)
			p.cursor = len(p.speech)
			p.drained = true
			p.mu.Unlock()
			// the callback must not touch the device; the controller
			// releases it through Close
			if p.callbacks.OnEnded != nil {
				go p.callbacks.OnEnded()
			}
			return
		}

		copy(pOutput, remaining[:need])
		p.cursor += need
		p.mu.Unlock()
	}
}
