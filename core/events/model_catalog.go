package events

const (
	// KindModelCatalogUpdated identifies a successful model list refresh.
	KindModelCatalogUpdated Kind = "model_catalog.updated"
	// KindModelCatalogDegraded identifies a failed refresh with defaults retained.
	KindModelCatalogDegraded Kind = "model_catalog.degraded"
)

// ModelCatalogUpdated carries the refreshed model lists.
type ModelCatalogUpdated struct {
	Base
	LLMModels       []string
	EmbeddingModels []string
}

// NewModelCatalogUpdated creates a model catalog updated event.
func NewModelCatalogUpdated(llmModels, embeddingModels []string) ModelCatalogUpdated {
	return ModelCatalogUpdated{Base: NewBase(KindModelCatalogUpdated), LLMModels: llmModels, EmbeddingModels: embeddingModels}
}

// ModelCatalogDegraded marks a failed refresh; built-in defaults stay active.
type ModelCatalogDegraded struct {
	Base
	Reason string
}

// NewModelCatalogDegraded creates a model catalog degraded event.
func NewModelCatalogDegraded(reason string) ModelCatalogDegraded {
	return ModelCatalogDegraded{Base: NewBase(KindModelCatalogDegraded), Reason: reason}
}
