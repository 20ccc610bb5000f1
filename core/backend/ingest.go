package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Document is a raw source file submitted for ingestion. Name must carry the
// original filename; the service gates on its extension.
type Document struct {
	Name    string
	Content io.Reader
}

// IngestReceipt is the service's acknowledgement of a processed source.
type IngestReceipt struct {
	SessionID string `json:"session_id"`
	Filename  string `json:"filename,omitempty"`
	Message   string `json:"message,omitempty"`
}

// UploadDocument submits a document as multipart form data along with the
// model selection and returns the issued session id.
func (c *Client) UploadDocument(ctx context.Context, document Document, llmModel, embeddingModel string) (*IngestReceipt, error) {
	ctx, span := tracer.Start(ctx, "upload document")
	defer span.End()
	span.SetAttributes(
		attribute.String("document.name", document.Name),
		attribute.String("llm.model", llmModel),
		attribute.String("embedding.model", embeddingModel),
	)

	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)

	part, err := form.CreateFormFile("file", document.Name)
	if err != nil {
		return nil, fmt.Errorf("error creating multipart file field: %w", err)
	}
	if _, err := io.Copy(part, document.Content); err != nil {
		return nil, fmt.Errorf("error reading document content: %w", err)
	}
	if err := form.WriteField("llm_model", llmModel); err != nil {
		return nil, fmt.Errorf("error writing llm_model field: %w", err)
	}
	if err := form.WriteField("embedding_model", embeddingModel); err != nil {
		return nil, fmt.Errorf("error writing embedding_model field: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("error finalizing multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/upload"), body)
	if err != nil {
		return nil, fmt.Errorf("error creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

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

	var receipt IngestReceipt
	if err := json.NewDecoder(resp.Body).Decode(&receipt); err != nil {
		return nil, fmt.Errorf("error decoding response body: %w", err)
	}
	return &receipt, nil
}

// ProcessURL submits a website URL along with the model selection and
// returns the issued session id.
func (c *Client) ProcessURL(ctx context.Context, sourceURL, llmModel, embeddingModel string) (*IngestReceipt, error) {
	ctx, span := tracer.Start(ctx, "process url")
	defer span.End()
	span.SetAttributes(
		attribute.String("source.url", sourceURL),
		attribute.String("llm.model", llmModel),
		attribute.String("embedding.model", embeddingModel),
	)

	var receipt IngestReceipt
	if err := c.postJSON(ctx, "/process-url", struct {
		URL            string `json:"url"`
		LLMModel       string `json:"llm_model"`
		EmbeddingModel string `json:"embedding_model"`
	}{URL: sourceURL, LLMModel: llmModel, EmbeddingModel: embeddingModel}, &receipt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &receipt, nil
}
