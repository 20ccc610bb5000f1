package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/koscakluka/docqa-core/core/audio"
	"github.com/koscakluka/docqa-core/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// maxSpeechTextLength mirrors the service's own ceiling so oversized text
// never hits the wire.
const maxSpeechTextLength = 5000

// ErrSpeechTextTooLong is returned when text exceeds the service's ceiling.
var ErrSpeechTextTooLong = errors.New("text too long for speech synthesis (maximum 5000 characters)")

// ErrUnsupportedSpeechEncoding is returned when the caller requests a byte
// layout the service cannot produce.
var ErrUnsupportedSpeechEncoding = errors.New("speech service only produces mp3 audio")

// Synthesize converts text into a single MP3 blob. The service offers no
// encoding control, so a request for any other layout fails before it hits
// the wire; a raw-PCM sink must not be fed this provider's output.
func (c *Client) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) ([]byte, error) {
	options := texttospeech.DefaultSynthesizeOptions()
	for _, opt := range opts {
		opt(&options)
	}

	if len(text) > maxSpeechTextLength {
		return nil, ErrSpeechTextTooLong
	}
	if requested := options.EncodingInfo; !requested.IsZero() && requested.Format != audio.EncodingMP3 {
		return nil, fmt.Errorf("cannot synthesize %s audio: %w", requested.Format.Name(), ErrUnsupportedSpeechEncoding)
	}

	ctx, span := tracer.Start(ctx, "synthesize speech")
	defer span.End()
	span.SetAttributes(
		attribute.Int("speech.text_length", len(text)),
		attribute.String("speech.language", options.Language),
		attribute.Bool("speech.slow", options.SlowSpeech),
	)

	body, err := encodeSpeechRequest(text, options)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/tts"), body)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordedErr := fmt.Errorf("error sending request: %w", err)
		span.RecordError(recordedErr)
		span.SetStatus(codes.Error, recordedErr.Error())
		return nil, recordedErr
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := newRequestError(resp)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	speech, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading speech payload: %w", err)
	}
	if len(speech) == 0 {
		return nil, fmt.Errorf("speech payload was empty")
	}
	return speech, nil
}

func encodeSpeechRequest(text string, options texttospeech.SynthesizeOptions) (io.Reader, error) {
	body, err := json.Marshal(struct {
		Text string `json:"text"`
		Lang string `json:"lang"`
		Slow bool   `json:"slow"`
	}{Text: text, Lang: options.Language, Slow: options.SlowSpeech})
	if err != nil {
		return nil, fmt.Errorf("error marshalling JSON: %w", err)
	}
	return bytes.NewReader(body), nil
}
