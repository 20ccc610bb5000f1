package backend

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// QueryRequest is one question against an established session.
type QueryRequest struct {
	Question       string `json:"question"`
	LLMModel       string `json:"llm_model"`
	EmbeddingModel string `json:"embedding_model"`
	Tone           string `json:"tone"`
	TopK           int    `json:"top_k"`
}

// QueryResult carries the generated answer and the retrieved context
// snippets it was grounded on.
type QueryResult struct {
	Answer          string   `json:"answer"`
	ContextSnippets []string `json:"context_snippets"`
}

// Query asks a question against the session's ingested source.
func (c *Client) Query(ctx context.Context, sessionID string, request QueryRequest) (*QueryResult, error) {
	ctx, span := tracer.Start(ctx, "query session")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sessionID),
		attribute.String("llm.model", request.LLMModel),
		attribute.Int("query.top_k", request.TopK),
	)

	var result QueryResult
	if err := c.postJSON(ctx, "/query/"+sessionID, request, &result); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &result, nil
}
