package deepgram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/koscakluka/docqa-core/core/audio"
	"github.com/koscakluka/docqa-core/core/texttospeech"
)

type websocketMessage struct {
	Type string `json:"type"`
}

var (
	speakMsg = func(text string) struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} {
		return struct {
			Type string `json:"type"`
			Text string `json:"text"`
		}{Type: "Speak", Text: text}
	}
	flushMsg = websocketMessage{Type: "Flush"}
	closeMsg = websocketMessage{Type: "Close"}
)

// Synthesize speaks the whole text in one request: it sends the text followed
// by a flush, collects binary frames until the flush confirmation, then
// closes the connection and returns the accumulated audio.
//
// Language and slow-speech options are ignored; the voice fixes the language
// and pace on this provider.
func (s *SpeechSynthesizer) Synthesize(ctx context.Context, text string, opts ...texttospeech.SynthesizeOption) ([]byte, error) {
	options := texttospeech.DefaultSynthesizeOptions()
	for _, opt := range opts {
		opt(&options)
	}

	conn, err := s.connectWebsocket(ctx, options)
	if err != nil {
		return nil, fmt.Errorf("failed to open websocket: %w", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(speakMsg(text)); err != nil {
		return nil, fmt.Errorf("failed to send websocket speak message: %w", err)
	}
	if err := conn.WriteJSON(flushMsg); err != nil {
		return nil, fmt.Errorf("failed to send websocket flush message: %w", err)
	}

	var speech bytes.Buffer
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			return nil, fmt.Errorf("websocket read failed: %w", err)
		}

		switch msgType {
		case websocket.BinaryMessage:
			speech.Write(msg)
		case websocket.TextMessage:
			var parsedMsg websocketMessage
			if err := json.Unmarshal(msg, &parsedMsg); err != nil {
				continue
			}

			if parsedMsg.Type == "Flushed" {
				_ = conn.WriteJSON(closeMsg)
				if speech.Len() == 0 {
					return nil, fmt.Errorf("no speech audio received")
				}
				return speech.Bytes(), nil
			}
		}
	}
}

func (s *SpeechSynthesizer) connectWebsocket(ctx context.Context, options texttospeech.SynthesizeOptions) (*websocket.Conn, error) {
	encodingInfo := options.EncodingInfo
	if encodingInfo.IsZero() {
		encodingInfo = audio.GetDefaultEncodingInfo()
	}

	urlValues := url.Values{}
	urlValues.Set("encoding", encodingInfo.Format.Name())
	urlValues.Set("sample_rate", strconv.Itoa(encodingInfo.SampleRate))
	urlValues.Set("model", string(s.voice))
	urlValues.Set("container", "none")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx,
		(&url.URL{
			Scheme: "wss",
			Host:   "api.deepgram.com", Path: "/v1/speak",
			RawQuery: urlValues.Encode(),
		}).String(),
		http.Header{"Authorization": {"token " + s.apiKey}})
	if err != nil {
		return nil, fmt.Errorf("failed to open socket connection to deepgram: %w", err)
	}

	return conn, nil
}
