package backend

import "context"

// ModelCatalog lists the LLM and embedding models the remote service
// currently accepts.
type ModelCatalog struct {
	LLMModels       []string `json:"llm_models"`
	EmbeddingModels []string `json:"embedding_models"`
}

// Models fetches the available model lists.
func (c *Client) Models(ctx context.Context) (*ModelCatalog, error) {
	ctx, span := tracer.Start(ctx, "fetch model catalog")
	defer span.End()

	var catalog ModelCatalog
	if err := c.getJSON(ctx, "/models", &catalog); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &catalog, nil
}

// Health probes the service's health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.getJSON(ctx, "/health", nil)
}
