// Command docqa is a terminal client for the document/website
// question-answering service: pick a source, ingest it, ask questions, and
// optionally have the answers read aloud.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	orchestration "github.com/koscakluka/docqa-core/core"
	"github.com/koscakluka/docqa-core/core/audio/miniaudio"
	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
	"github.com/koscakluka/docqa-core/core/texttospeech/deepgram"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8000", "base url of the question-answering service")
	tone := flag.String("tone", "neutral", "response tone (neutral, simple, professional, casual)")
	topK := flag.Int("top-k", 5, "number of context snippets to retrieve per question")
	language := flag.String("lang", "en", "speech language code for read-aloud")
	slowSpeech := flag.Bool("slow", false, "slow down read-aloud speech")
	deepgramVoice := flag.String("deepgram-voice", "", "Deepgram voice for read-aloud speech (required for read-aloud; needs DEEPGRAM_API_KEY)")
	flag.Parse()

	if err := run(*baseURL, *tone, *topK, *language, *slowSpeech, *deepgramVoice); err != nil {
		fmt.Fprintln(os.Stderr, "docqa:", err)
		os.Exit(1)
	}
}

func run(baseURL, tone string, topK int, language string, slowSpeech bool, deepgramVoice string) error {
	client := backend.NewClient(baseURL)

	orchestratorOpts := []orchestration.OrchestratorOption{
		orchestration.WithBackendClient(client),
		orchestration.WithTone(tone),
		orchestration.WithTopK(topK),
		orchestration.WithSpeechLanguage(language),
	}
	if slowSpeech {
		orchestratorOpts = append(orchestratorOpts, orchestration.WithSlowSpeech())
	}
	// the sound device only plays raw PCM and the service only produces mp3,
	// so read-aloud is wired up only with a PCM-capable synthesizer
	var audioErr error
	if deepgramVoice != "" {
		synthesizer, err := deepgram.NewSpeechSynthesizer(deepgram.WithVoice(deepgram.Voice(deepgramVoice)))
		if err != nil {
			return fmt.Errorf("failed to configure deepgram synthesizer: %w", err)
		}
		orchestratorOpts = append(orchestratorOpts, orchestration.WithSpeechSynthesizer(synthesizer))

		var audioClient *miniaudio.Client
		audioClient, audioErr = miniaudio.NewClient()
		if audioErr == nil {
			defer audioClient.Close()
			orchestratorOpts = append(orchestratorOpts, orchestration.WithAudioOutput(audioClient))
		}
	}

	orchestrator := orchestration.NewOrchestrator(orchestratorOpts...)
	defer orchestrator.Close()

	program := tea.NewProgram(newApp(orchestrator), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	orchestrator.Orchestrate(ctx,
		orchestration.WithModelCatalogUpdatedCallback(func(llmModels, embeddingModels []string) {
			program.Send(catalogMsg{llmModels: llmModels, embeddingModels: embeddingModels})
		}),
		orchestration.WithDegradedModeCallback(func(reason string) {
			program.Send(degradedMsg{reason: reason})
		}),
		orchestration.WithSessionChangedCallback(func(sessionID string) {
			program.Send(sessionMsg{sessionID: sessionID})
		}),
		orchestration.WithIngestingCallback(func(isIngesting bool) {
			program.Send(ingestingMsg(isIngesting))
		}),
		orchestration.WithQueryingCallback(func(isQuerying bool) {
			program.Send(queryingMsg(isQuerying))
		}),
		orchestration.WithAnswerCallback(func(answer string) {
			program.Send(answerMsg{answer: answer, snippets: orchestrator.ContextSnippets()})
		}),
		orchestration.WithPlaybackStateCallback(func(state orchestration.PlaybackState) {
			program.Send(playbackMsg(state))
		}),
		orchestration.WithNotificationCallback(func(notification orchestration.Notification) {
			program.Send(notificationMsg(notification))
		}),
	)

	if audioErr != nil {
		program.Send(notificationMsg(orchestration.Notification{
			Title:    "Audio unavailable",
			Message:  audioErr.Error(),
			Severity: events.SeverityWarning,
		}))
	} else if deepgramVoice == "" {
		program.Send(notificationMsg(orchestration.Notification{
			Title:    "Read aloud disabled",
			Message:  "the question-answering service produces mp3 audio, which the sound device cannot play; pass -deepgram-voice to enable read-aloud",
			Severity: events.SeverityWarning,
		}))
	}

	_, err := program.Run()
	return err
}
