package models

// Topic groups words under a language, owned by exactly one user
type Topic struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	LanguageID int    `json:"languageId"`
	UserID     int    `json:"userId"`
}

// TopicRequest represents a topic create request; the owner is the caller
type TopicRequest struct {
	Name       string `json:"name"`
	LanguageID int    `json:"languageId"`
}

// TopicPatch is a partial update of a topic
type TopicPatch struct {
	Name       *string `json:"name"`
	LanguageID *int    `json:"languageId"`
}
