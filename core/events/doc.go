// Package events defines the typed orchestration event contract.
//
// Event kinds are grouped by receiver-facing namespaces:
//
//   - model_catalog.*
//   - session.*
//   - ingestion.*
//   - query.*
//   - speech_playback.*
//   - notification.*
//
// Semantics used across the package:
//
//   - Started: an operation left validation and is now in flight.
//   - Completed: terminal success for the in-flight operation.
//   - Failed: terminal failure for the in-flight operation; the engine
//     state is already reset when the event is emitted.
//   - Ended: lifecycle boundary indicating a resource finished and was
//     released.
//
// model_catalog events
//
//   - ModelCatalogUpdated (model_catalog.updated): the available model lists
//     were refreshed from the remote service.
//   - ModelCatalogDegraded (model_catalog.degraded): the refresh failed and
//     the built-in defaults remain in effect.
//
// session events
//
//   - SessionEstablished (session.established): ingestion produced a session
//     id bound to the current configuration and source.
//   - SessionInvalidated (session.invalidated): a configuration or source
//     mutation voided the session id; includes the mutation cause.
//   - SessionDeleted (session.deleted): the session was explicitly deleted.
//
// ingestion events
//
//   - IngestionStarted (ingestion.started): an upload or process-url request
//     is in flight.
//   - IngestionCompleted (ingestion.completed): the source was processed and
//     a session established.
//   - IngestionFailed (ingestion.failed): the request failed; no session
//     state was changed.
//
// query events
//
//   - QueryStarted (query.started): a question is in flight; the previous
//     answer is already cleared.
//   - QueryAnswered (query.answered): terminal answer for the question,
//     with any context snippets the service returned.
//   - QueryFailed (query.failed): the request failed; the answer stays
//     empty.
//   - AnswerCleared (query.answer_cleared): the answer was discarded by a
//     mutation outside the query flow, e.g. a source type change.
//
// speech_playback events
//
//   - SpeechGenerating (speech_playback.generating): a synthesis request is
//     in flight for the current answer.
//   - SpeechPlaybackStarted (speech_playback.started): the sink began
//     pulling audio for the generated resource.
//   - SpeechPlaybackPaused (speech_playback.paused): playback suspended,
//     resource retained.
//   - SpeechPlaybackResumed (speech_playback.resumed): playback continued
//     from the retained resource without regenerating speech.
//   - SpeechPlaybackEnded (speech_playback.ended): playback finished or was
//     force-released; the resource is freed.
//   - SpeechPlaybackFailed (speech_playback.failed): synthesis or playback
//     start failed; the controller is back at idle.
//
// notification events
//
//   - NotificationRaised (notification.raised): a user-facing title+message
//     produced by an operation boundary; the only error surface of the
//     engine.
package events
