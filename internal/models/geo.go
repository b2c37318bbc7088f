package models

import (
	"fmt"
	"math"
)

const kmPerDegreeLat = 111.32

// BoundingBox - прямоугольная область в градусах
type BoundingBox struct {
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
}

// BoundingBoxAround строит наивный прямоугольник со стороной 2*radiusKm вокруг точки.
// Пространственный индекс не используется.
func BoundingBoxAround(lat, lng, radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLat
	cos := math.Cos(lat * math.Pi / 180)
	dLng := dLat
	if cos > 1e-6 {
		dLng = radiusKm / (kmPerDegreeLat * cos)
	}
	return BoundingBox{
		MinLat: lat - dLat,
		MaxLat: lat + dLat,
		MinLng: lng - dLng,
		MaxLng: lng + dLng,
	}
}

// Contains проверяет попадание точки в прямоугольник (границы включительно)
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// ValidateCoordinates отклоняет NaN и бесконечности
func ValidateCoordinates(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return fmt.Errorf("coordinates must be finite numbers: %w", ErrValidation)
	}
	return nil
}
