package models

// Word represents a vocabulary entry linked to topics via associations
type Word struct {
	ID               int    `json:"id"`
	LearntWord       string `json:"learntWord"`
	Definition       string `json:"definition"`
	Example          string `json:"example"`
	GrammarElementID int    `json:"grammarElementId"`
}

// WordRequest represents a word create request under a topic
type WordRequest struct {
	LearntWord       string `json:"learntWord"`
	Definition       string `json:"definition"`
	Example          string `json:"example"`
	GrammarElementID int    `json:"grammarElementId"`
}

// WordPatch is a partial update of a word
type WordPatch struct {
	LearntWord       *string `json:"learntWord"`
	Definition       *string `json:"definition"`
	Example          *string `json:"example"`
	GrammarElementID *int    `json:"grammarElementId"`
}
