package model

import "time"

// LearnedPattern is a classification remembered from an underwriter's
// correction or a repeated observation.
type LearnedPattern struct {
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
	NormalizedDescription string    `json:"normalized_description"`
	OriginalDescription   string    `json:"original_description"`
	Category              Category  `json:"category"`
	Source                Source    `json:"source"`
	ID                    int64     `json:"id"`
	Confidence            int       `json:"confidence"` // 0-100.
	Occurrences           int       `json:"occurrences"`
	ManualOverride        bool      `json:"manual_override"`
}
