package events

const (
	// KindQueryStarted identifies an in-flight question.
	KindQueryStarted Kind = "query.started"
	// KindQueryAnswered identifies a terminal answer for the question.
	KindQueryAnswered Kind = "query.answered"
	// KindQueryFailed identifies a failed query attempt.
	KindQueryFailed Kind = "query.failed"
	// KindAnswerCleared identifies the answer discarded outside a query,
	// e.g. by a source type change.
	KindAnswerCleared Kind = "query.answer_cleared"
)

// QueryStarted marks the start of a query request. The previous answer is
// already cleared when this is emitted.
type QueryStarted struct {
	Base
	Question string
}

// NewQueryStarted creates a query started event.
func NewQueryStarted(question string) QueryStarted {
	return QueryStarted{Base: NewBase(KindQueryStarted), Question: question}
}

// QueryAnswered carries the terminal answer and any context snippets the
// service returned alongside it.
type QueryAnswered struct {
	Base
	Answer          string
	ContextSnippets []string
}

// NewQueryAnswered creates a query answered event.
func NewQueryAnswered(answer string, contextSnippets []string) QueryAnswered {
	return QueryAnswered{Base: NewBase(KindQueryAnswered), Answer: answer, ContextSnippets: contextSnippets}
}

// QueryFailed marks a failed query attempt; the answer stays empty.
type QueryFailed struct {
	Base
	Message string
}

// NewQueryFailed creates a query failed event.
func NewQueryFailed(message string) QueryFailed {
	return QueryFailed{Base: NewBase(KindQueryFailed), Message: message}
}

// AnswerCleared marks the answer discarded by a mutation outside the query
// flow, so displays never show an answer that belongs to a discarded source.
type AnswerCleared struct {
	Base
}

// NewAnswerCleared creates an answer cleared event.
func NewAnswerCleared() AnswerCleared {
	return AnswerCleared{Base: NewBase(KindAnswerCleared)}
}
