package orchestration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/koscakluka/docqa-core/core/backend"
	"github.com/koscakluka/docqa-core/core/events"
	"go.opentelemetry.io/otel/codes"
)

// supportedDocumentExtensions mirrors the service's own gate so files it
// would reject never hit the wire.
var supportedDocumentExtensions = []string{".pdf", ".docx", ".txt"}

func hasSupportedDocumentExtension(path string) bool {
	return slices.Contains(supportedDocumentExtensions, strings.ToLower(filepath.Ext(path)))
}

// Ingest turns the currently selected source into a queryable session.
//
// The selected source is validated before any network call; a missing or
// obviously invalid source surfaces a validation notification and nothing
// else happens. At most one ingestion is in flight at a time: concurrent
// calls are ignored deterministically. The in-flight guard is released on
// every exit path, so the engine can never stay stuck "processing".
func (o *Orchestrator) Ingest(ctx context.Context) {
	token, acquired := o.ingestGuard.acquire()
	if !acquired {
		return
	}
	defer o.ingestGuard.release(token)

	ctx, span := tracer.Start(ctx, "ingest source")
	defer span.End()

	if o.backend == nil {
		o.notifyError("Processing failed", &ValidationError{Reason: "no backend configured"})
		return
	}

	o.mu.Lock()
	config := o.config
	documentPath := o.documentPath
	sourceURL := o.sourceURL
	o.mu.Unlock()

	var receipt *backend.IngestReceipt
	switch config.SourceType {
	case SourceTypeDocument:
		if documentPath == "" {
			o.notifyError("Upload failed", &ValidationError{Reason: "no document selected"})
			return
		}
		if !hasSupportedDocumentExtension(documentPath) {
			o.notifyError("Upload failed", &ValidationError{Reason: "unsupported file type: only PDF, DOCX, and TXT files are supported"})
			return
		}

		file, err := os.Open(documentPath)
		if err != nil {
			o.notifyError("Upload failed", fmt.Errorf("failed to open document: %w", err))
			return
		}
		defer file.Close()

		o.emitEvent(events.NewIngestionStarted(string(config.SourceType), documentPath))
		receipt, err = o.backend.UploadDocument(ctx,
			backend.Document{Name: filepath.Base(documentPath), Content: file},
			config.LLMModel, config.EmbeddingModel,
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.emitEvent(events.NewIngestionFailed(err.Error()))
			o.notifyError("Processing failed", err)
			return
		}

	case SourceTypeURL:
		trimmed := strings.TrimSpace(sourceURL)
		if trimmed == "" {
			o.notifyError("Processing failed", &ValidationError{Reason: "no URL provided"})
			return
		}
		if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
			o.notifyError("Processing failed", &ValidationError{Reason: "invalid URL: must start with http:// or https://"})
			return
		}

		o.emitEvent(events.NewIngestionStarted(string(config.SourceType), trimmed))
		var err error
		receipt, err = o.backend.ProcessURL(ctx, trimmed, config.LLMModel, config.EmbeddingModel)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			o.emitEvent(events.NewIngestionFailed(err.Error()))
			o.notifyError("Processing failed", err)
			return
		}

	default:
		o.notifyError("Processing failed", &ValidationError{Reason: fmt.Sprintf("unknown source type %q", config.SourceType)})
		return
	}

	o.mu.Lock()
	o.sessionID = receipt.SessionID
	o.mu.Unlock()

	o.emitEvent(events.NewSessionEstablished(receipt.SessionID))
	o.emitEvent(events.NewIngestionCompleted(receipt.SessionID))
}
