package models

// Language represents a language users can learn
type Language struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// LanguageRequest represents a language create request
type LanguageRequest struct {
	Name string `json:"name"`
}

// LanguagePatch is a partial update of a language
type LanguagePatch struct {
	Name *string `json:"name"`
}
