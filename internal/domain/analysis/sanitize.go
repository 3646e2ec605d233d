package analysis

import "strings"

// Sanitize normalizes an analysis document received from the gateway. The
// document is untrusted: coordinates and scores are clamped, blank entries
// dropped and the dermatologist reason is cleared when the flag is false.
// Unknown severity and category values pass through untouched; rendering
// falls back to neutral styling for them.
func Sanitize(r Result) Result {
	r.SkinType = SkinType(strings.ToLower(strings.TrimSpace(string(r.SkinType))))
	if r.SkinType == "" {
		r.SkinType = SkinTypeCombination
	}
	r.SkinTypeDescription = strings.TrimSpace(r.SkinTypeDescription)
	r.Summary = strings.TrimSpace(r.Summary)
	r.OverallHealth = clampInt(r.OverallHealth, 0, 100)

	conditions := make([]Condition, 0, len(r.Conditions))
	for _, c := range r.Conditions {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			continue
		}
		c.Description = strings.TrimSpace(c.Description)
		conditions = append(conditions, c)
	}
	r.Conditions = conditions

	zones := make([]ProblemZone, 0, len(r.ProblemZones))
	for _, z := range r.ProblemZones {
		z.Problem = strings.TrimSpace(z.Problem)
		if z.Problem == "" {
			continue
		}
		z.X = clampFloat(z.X, 0, 100)
		z.Y = clampFloat(z.Y, 0, 100)
		zones = append(zones, z)
	}
	r.ProblemZones = zones

	causes := make([]string, 0, len(r.PossibleCauses))
	for _, cause := range r.PossibleCauses {
		if clean := strings.TrimSpace(cause); clean != "" {
			causes = append(causes, clean)
		}
	}
	r.PossibleCauses = causes

	recs := make([]Recommendation, 0, len(r.Recommendations))
	for _, rec := range r.Recommendations {
		rec.Title = strings.TrimSpace(rec.Title)
		if rec.Title == "" {
			continue
		}
		rec.Description = strings.TrimSpace(rec.Description)
		recs = append(recs, rec)
	}
	r.Recommendations = recs

	r.DermatologistReason = strings.TrimSpace(r.DermatologistReason)
	if !r.ShouldSeeDermatologist {
		r.DermatologistReason = ""
	}

	return r
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
