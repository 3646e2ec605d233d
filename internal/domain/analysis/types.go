package analysis

import (
	"context"
	"time"
)

// SkinType enumerates the skin types the vision model may return.
type SkinType string

const (
	SkinTypeDry         SkinType = "dry"
	SkinTypeOily        SkinType = "oily"
	SkinTypeCombination SkinType = "combination"
	SkinTypeNormal      SkinType = "normal"
	SkinTypeSensitive   SkinType = "sensitive"
)

// Severity is the three-level ordinal describing condition intensity.
// Unknown values are preserved as-is; consumers render them with a neutral
// fallback rather than failing.
type Severity string

const (
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// RecommendationCategory groups care recommendations.
type RecommendationCategory string

const (
	CategorySkincare     RecommendationCategory = "skincare"
	CategoryLifestyle    RecommendationCategory = "lifestyle"
	CategoryProducts     RecommendationCategory = "products"
	CategoryProfessional RecommendationCategory = "professional"
)

// Condition is a detected skin condition.
type Condition struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
}

// ProblemZone locates a point of interest on the source image. X and Y are
// percentages in [0,100] measured from the top-left corner.
type ProblemZone struct {
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Problem  string   `json:"problem"`
	Severity Severity `json:"severity"`
}

// Recommendation is a single care suggestion.
type Recommendation struct {
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Category    RecommendationCategory `json:"category"`
}

// Result is the analysis document produced by the vision gateway. It is
// untrusted external input: every consumer receives it only after Sanitize.
type Result struct {
	SkinType               SkinType         `json:"skinType"`
	SkinTypeDescription    string           `json:"skinTypeDescription"`
	Conditions             []Condition      `json:"conditions"`
	ProblemZones           []ProblemZone    `json:"problemZones"`
	PossibleCauses         []string         `json:"possibleCauses"`
	Recommendations        []Recommendation `json:"recommendations"`
	ShouldSeeDermatologist bool             `json:"shouldSeeDermatologist"`
	DermatologistReason    string           `json:"dermatologistReason,omitempty"`
	OverallHealth          int              `json:"overallHealth"`
	Summary                string           `json:"summary"`
}

// Cache stores parsed analysis results keyed by image digest.
type Cache interface {
	Get(ctx context.Context, key string) (Result, bool, error)
	Save(ctx context.Context, key string, result Result, ttl time.Duration) error
}

// Config wires runtime settings for the analysis domain.
type Config struct {
	Model       string
	Temperature float32
	Prompt      string
	CacheTTL    time.Duration
}
