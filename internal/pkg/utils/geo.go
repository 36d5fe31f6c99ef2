package utils

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// ValidateRadius проверяет валидность радиуса поиска в метрах (ограничение API)
func ValidateRadius(radiusMeters float64) bool {
	return radiusMeters > 0 && radiusMeters <= 2000
}
