package engine

// ClassifyTrip returns the distance band for a trip.
func ClassifyTrip(distanceKm float64) TripType {
	switch {
	case distanceKm <= veryShortMaxKm:
		return TripVeryShort
	case distanceKm <= shortCityMaxKm:
		return TripShortCity
	case distanceKm <= mediumMaxKm:
		return TripMedium
	default:
		return TripLongDistance
	}
}

// ClassifyScore returns the qualitative band for a green score.
func ClassifyScore(score int) ScoreInfo {
	switch {
	case score >= excellentMinScore:
		return ScoreInfo{Band: BandExcellent, Label: "Excellent", Emoji: "🌿"}
	case score >= goodMinScore:
		return ScoreInfo{Band: BandGood, Label: "Good", Emoji: "🍃"}
	case score >= okMinScore:
		return ScoreInfo{Band: BandOK, Label: "OK", Emoji: "🌤️"}
	default:
		return ScoreInfo{Band: BandCouldBeGreener, Label: "Could be greener", Emoji: "🔥"}
	}
}
