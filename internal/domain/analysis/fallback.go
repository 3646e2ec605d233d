package analysis

// FallbackResult is the fixed safe document substituted when a 2xx gateway
// response carries no parseable analysis. The flow then proceeds to the
// results screen instead of failing; transport and quota errors never reach
// this path.
func FallbackResult() Result {
	return Result{
		SkinType:            SkinTypeCombination,
		SkinTypeDescription: "Анализ выполнен, но требуется дополнительная проверка",
		Conditions: []Condition{
			{
				Name:        "Требуется уточнение",
				Description: "Рекомендуем загрузить более чёткое фото для точного анализа",
				Severity:    SeverityMild,
			},
		},
		ProblemZones:   []ProblemZone{},
		PossibleCauses: []string{"Недостаточное качество изображения"},
		Recommendations: []Recommendation{
			{
				Title:       "Повторите загрузку",
				Description: "Сделайте фото при хорошем освещении, без макияжа, держа камеру на расстоянии вытянутой руки",
				Category:    CategorySkincare,
			},
		},
		ShouldSeeDermatologist: false,
		OverallHealth:          70,
		Summary:                "Для точного анализа рекомендуем загрузить более качественное фото",
	}
}
