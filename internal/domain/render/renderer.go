package render

import (
	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
)

// SeverityBadge carries the display label and style token for a severity
// value. Unrecognized severities keep their raw value with neutral styling.
type SeverityBadge struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Style string `json:"style"`
}

// Marker is an indexed overlay point positioned over the source image.
// X and Y are percentages from the top-left corner.
type Marker struct {
	Index    int           `json:"index"`
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Problem  string        `json:"problem"`
	Severity SeverityBadge `json:"severity"`
}

// LegendEntry mirrors a marker in the ordered legend, keyed by the same
// 1-based index.
type LegendEntry struct {
	Index    int           `json:"index"`
	Problem  string        `json:"problem"`
	Severity SeverityBadge `json:"severity"`
}

// ConditionView is a detected condition prepared for display.
type ConditionView struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Severity    SeverityBadge `json:"severity"`
}

// RecommendationView is a care recommendation prepared for display.
type RecommendationView struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	CategoryLabel string `json:"categoryLabel"`
}

// HealthView bands the overall score for display.
type HealthView struct {
	Score int    `json:"score"`
	Band  string `json:"band"`
}

// DermatologistView is rendered only when the consultation flag is set; the
// reason is omitted when the producer did not supply one.
type DermatologistView struct {
	Reason string `json:"reason,omitempty"`
}

// ReportView is the full projection of an analysis result. It is a pure
// function of its input; the result document is never mutated.
type ReportView struct {
	SkinType            string              `json:"skinType"`
	SkinTypeLabel       string              `json:"skinTypeLabel"`
	SkinTypeDescription string              `json:"skinTypeDescription"`
	Summary             string              `json:"summary"`
	Health              HealthView          `json:"health"`
	Conditions          []ConditionView     `json:"conditions"`
	Markers             []Marker            `json:"markers"`
	Legend              []LegendEntry       `json:"legend"`
	PossibleCauses      []string            `json:"possibleCauses"`
	Recommendations     []RecommendationView `json:"recommendations"`
	Dermatologist       *DermatologistView  `json:"dermatologist,omitempty"`
}

// BuildReportView projects an analysis result into its display form.
// Markers keep array order and are indexed 1..N; they are never re-sorted.
func BuildReportView(res analysis.Result) ReportView {
	view := ReportView{
		SkinType:            string(res.SkinType),
		SkinTypeLabel:       SkinTypeLabel(res.SkinType),
		SkinTypeDescription: res.SkinTypeDescription,
		Summary:             res.Summary,
		Health: HealthView{
			Score: res.OverallHealth,
			Band:  HealthBand(res.OverallHealth),
		},
		PossibleCauses: res.PossibleCauses,
	}

	view.Conditions = make([]ConditionView, 0, len(res.Conditions))
	for _, c := range res.Conditions {
		view.Conditions = append(view.Conditions, ConditionView{
			Name:        c.Name,
			Description: c.Description,
			Severity:    SeverityBadgeFor(c.Severity),
		})
	}

	view.Markers = make([]Marker, 0, len(res.ProblemZones))
	view.Legend = make([]LegendEntry, 0, len(res.ProblemZones))
	for i, zone := range res.ProblemZones {
		badge := SeverityBadgeFor(zone.Severity)
		view.Markers = append(view.Markers, Marker{
			Index:    i + 1,
			X:        zone.X,
			Y:        zone.Y,
			Problem:  zone.Problem,
			Severity: badge,
		})
		view.Legend = append(view.Legend, LegendEntry{
			Index:    i + 1,
			Problem:  zone.Problem,
			Severity: badge,
		})
	}

	view.Recommendations = make([]RecommendationView, 0, len(res.Recommendations))
	for _, rec := range res.Recommendations {
		view.Recommendations = append(view.Recommendations, RecommendationView{
			Title:         rec.Title,
			Description:   rec.Description,
			Category:      string(rec.Category),
			CategoryLabel: CategoryLabel(rec.Category),
		})
	}

	if res.ShouldSeeDermatologist {
		view.Dermatologist = &DermatologistView{Reason: res.DermatologistReason}
	}

	return view
}

// SkinTypeLabel maps a skin type to its Russian display label. Unknown
// values render as-is.
func SkinTypeLabel(t analysis.SkinType) string {
	switch t {
	case analysis.SkinTypeDry:
		return "Сухая"
	case analysis.SkinTypeOily:
		return "Жирная"
	case analysis.SkinTypeCombination:
		return "Комбинированная"
	case analysis.SkinTypeNormal:
		return "Нормальная"
	case analysis.SkinTypeSensitive:
		return "Чувствительная"
	default:
		return string(t)
	}
}

// SeverityBadgeFor is the fixed three-way severity lookup with a neutral
// fallback arm. It never fails on an unexpected value.
func SeverityBadgeFor(s analysis.Severity) SeverityBadge {
	switch s {
	case analysis.SeverityMild:
		return SeverityBadge{Value: string(s), Label: "Лёгкая", Style: "success"}
	case analysis.SeverityModerate:
		return SeverityBadge{Value: string(s), Label: "Средняя", Style: "warning"}
	case analysis.SeveritySevere:
		return SeverityBadge{Value: string(s), Label: "Тяжёлая", Style: "danger"}
	default:
		return SeverityBadge{Value: string(s), Label: string(s), Style: "neutral"}
	}
}

// CategoryLabel maps a recommendation category to its display label.
func CategoryLabel(c analysis.RecommendationCategory) string {
	switch c {
	case analysis.CategorySkincare:
		return "Уход за кожей"
	case analysis.CategoryLifestyle:
		return "Образ жизни"
	case analysis.CategoryProducts:
		return "Косметика"
	case analysis.CategoryProfessional:
		return "Профессиональная помощь"
	default:
		return string(c)
	}
}

// HealthBand buckets the overall score: good ≥70, caution 40..69, concern
// below 40.
func HealthBand(score int) string {
	switch {
	case score >= 70:
		return "good"
	case score >= 40:
		return "caution"
	default:
		return "concern"
	}
}
