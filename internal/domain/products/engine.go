package products

import (
	"sort"
	"strings"

	"github.com/skinlab/skinanalyzer/internal/domain/analysis"
)

// Fixed category names; the order they may appear in is fixed too:
// cleansing → acne → brightening → moisturizing → sun protection.
const (
	CategoryCleansing     = "Очищение"
	CategoryAcne          = "Лечение акне"
	CategoryBrightening   = "Осветление и выравнивание тона"
	CategoryMoisturizing  = "Увлажнение"
	CategorySunProtection = "Защита от солнца (SPF)"
)

var acneIndicators = []string{"акне", "acne", "воспалени"}
var pigmentationIndicators = []string{"пигментац", "пятн", "постакне"}

// Recommend maps a skin type and condition list to an ordered, categorized,
// price-ascending product selection. Pure function over the static catalog.
func Recommend(skinType analysis.SkinType, conditions []analysis.Condition) []Category {
	out := make([]Category, 0, 5)

	out = append(out, category(CategoryCleansing, bySkinType(skinType, cleansingOily, cleansingDry, cleansingNormal)))

	if matchesAny(conditions, acneIndicators) {
		out = append(out, category(CategoryAcne, acneTreatment))
	}
	if matchesAny(conditions, pigmentationIndicators) {
		out = append(out, category(CategoryBrightening, brightening))
	}

	out = append(out, category(CategoryMoisturizing, bySkinType(skinType, moisturizingOily, moisturizingDry, moisturizingNormal)))
	out = append(out, category(CategorySunProtection, sunProtection))

	return out
}

// bySkinType is the three-way branch: oily/combination, dry/sensitive, and
// everything else (normal or any unrecognized value) falls to the last set.
func bySkinType(skinType analysis.SkinType, oily, dry, fallback []Product) []Product {
	switch skinType {
	case analysis.SkinTypeOily, analysis.SkinTypeCombination:
		return oily
	case analysis.SkinTypeDry, analysis.SkinTypeSensitive:
		return dry
	default:
		return fallback
	}
}

func matchesAny(conditions []analysis.Condition, indicators []string) bool {
	for _, c := range conditions {
		name := strings.ToLower(c.Name)
		for _, indicator := range indicators {
			if strings.Contains(name, indicator) {
				return true
			}
		}
	}
	return false
}

// category copies and price-sorts a catalog set. Ascending order is part of
// the contract: callers rely on cheapest-first display.
func category(name string, items []Product) Category {
	sorted := make([]Product, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Price < sorted[j].Price
	})
	return Category{Name: name, Products: sorted}
}
