package service

import "math"

// roundTo2Decimals rounds a float64 to 2 decimal places.
func roundTo2Decimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// RegularPolygonPerimeter returns n*s at full precision.
func RegularPolygonPerimeter(numSides int, sideLength float64) float64 {
	return float64(numSides) * sideLength
}

// RegularPolygonArea returns (n*s^2) / (4*tan(pi/n)) at full precision.
// numSides must be at least 3 so that tan(pi/n) stays well away from its
// pole at pi/2.
func RegularPolygonArea(numSides int, sideLength float64) float64 {
	n := float64(numSides)
	angle := math.Pi / n
	return (1.0 / 4.0) * n * sideLength * sideLength / math.Tan(angle)
}
