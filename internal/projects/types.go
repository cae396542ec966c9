package projects

import (
	"time"

	"github.com/ziadkadry99/sitecraft/internal/site"
)

// Project is a saved document and the prompt it was generated from.
type Project struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Prompt    string         `json:"prompt,omitempty"`
	Document  *site.Document `json:"document"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Summary is a project without its document, for listings.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Sections  int       `json:"sections"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GenerationKind labels a recorded generation call.
type GenerationKind string

const (
	KindGenerate GenerationKind = "generate"
	KindModify   GenerationKind = "modify"
	KindSuggest  GenerationKind = "suggest"
)

// Generation is one recorded call to the generation service.
type Generation struct {
	ID           string         `json:"id"`
	ProjectID    string         `json:"projectId"`
	Kind         GenerationKind `json:"kind"`
	SectionID    string         `json:"sectionId,omitempty"`
	Instruction  string         `json:"instruction,omitempty"`
	Model        string         `json:"model"`
	InputTokens  int            `json:"inputTokens"`
	OutputTokens int            `json:"outputTokens"`
	CostUSD      float64        `json:"costUsd"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// UsageTotals sums token usage and cost across a project's generations.
type UsageTotals struct {
	Calls        int     `json:"calls"`
	InputTokens  int     `json:"inputTokens"`
	OutputTokens int     `json:"outputTokens"`
	CostUSD      float64 `json:"costUsd"`
}
