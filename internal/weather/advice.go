package weather

const (
	AdviceHot     = "Wear light and breathable clothing, sunglasses, and sunscreen."
	AdviceWarm    = "Bring along a light jacket and don't forget your sunglasses."
	AdviceCool    = "Wear layers and bring a jacket."
	AdviceRain    = "Get dressed for a rainy day! Don't forget your umbrella and waterproof jacket."
	AdviceDefault = "Dress comfortably for the day."
)

// ClothingAdvice picks a clothing/activity recommendation for the current conditions.
// Sunny conditions are decided by temperature alone; rain only matters when it is not sunny.
func ClothingAdvice(s CurrentWeatherSnapshot) string {
	switch {
	case s.IsSunny && s.TemperatureCelsius > 25:
		return AdviceHot
	case s.IsSunny && s.TemperatureCelsius > 18:
		return AdviceWarm
	case s.IsSunny:
		return AdviceCool
	case s.RainLastHourMm > 0:
		return AdviceRain
	default:
		return AdviceDefault
	}
}
