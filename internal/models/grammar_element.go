package models

// GrammarElement represents a grammatical category such as noun or verb
type GrammarElement struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GrammarElementRequest represents a grammar element create request
type GrammarElementRequest struct {
	Name string `json:"name"`
}

// GrammarElementPatch is a partial update of a grammar element
type GrammarElementPatch struct {
	Name *string `json:"name"`
}
