package orchestration

import "github.com/koscakluka/docqa-core/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func newCallbackEventEmitter(opts OrchestrateOptions) eventEmitter {
	return func(event events.Event) {
		if opts.onEvent != nil {
			opts.onEvent(event)
		}

		switch typedEvent := event.(type) {
		case events.ModelCatalogUpdated:
			if opts.onModelCatalogUpdated != nil {
				opts.onModelCatalogUpdated(typedEvent.LLMModels, typedEvent.EmbeddingModels)
			}
		case events.ModelCatalogDegraded:
			if opts.onDegradedMode != nil {
				opts.onDegradedMode(typedEvent.Reason)
			}
		case events.SessionEstablished:
			if opts.onSessionChanged != nil {
				opts.onSessionChanged(typedEvent.SessionID)
			}
		case events.SessionInvalidated:
			if opts.onSessionChanged != nil {
				opts.onSessionChanged("")
			}
		case events.SessionDeleted:
			if opts.onSessionChanged != nil {
				opts.onSessionChanged("")
			}
		case events.IngestionStarted:
			if opts.onIngesting != nil {
				opts.onIngesting(true)
			}
		case events.IngestionCompleted:
			if opts.onIngesting != nil {
				opts.onIngesting(false)
			}
		case events.IngestionFailed:
			if opts.onIngesting != nil {
				opts.onIngesting(false)
			}
		case events.QueryStarted:
			if opts.onQuerying != nil {
				opts.onQuerying(true)
			}
			// the previous answer is already cleared at attempt start
			if opts.onAnswer != nil {
				opts.onAnswer("")
			}
		case events.QueryAnswered:
			if opts.onQuerying != nil {
				opts.onQuerying(false)
			}
			if opts.onAnswer != nil {
				opts.onAnswer(typedEvent.Answer)
			}
		case events.QueryFailed:
			if opts.onQuerying != nil {
				opts.onQuerying(false)
			}
		case events.AnswerCleared:
			if opts.onAnswer != nil {
				opts.onAnswer("")
			}
		case events.SpeechGenerating:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackGenerating)
			}
		case events.SpeechPlaybackStarted:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackPlaying)
			}
		case events.SpeechPlaybackPaused:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackPaused)
			}
		case events.SpeechPlaybackResumed:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackPlaying)
			}
		case events.SpeechPlaybackEnded:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackIdle)
			}
		case events.SpeechPlaybackFailed:
			if opts.onPlaybackState != nil {
				opts.onPlaybackState(PlaybackIdle)
			}
		case events.NotificationRaised:
			if opts.onNotification != nil {
				opts.onNotification(Notification{
					Title:    typedEvent.Title,
					Message:  typedEvent.Message,
					Severity: typedEvent.Severity,
				})
			}
		}
	}
}
