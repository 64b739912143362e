package domain

import "time"

// CalculationRecord is a successful calculation kept in the history.
type CalculationRecord struct {
	ID         string        `json:"id"`
	NumSides   int           `json:"numSides"`
	SideLength float64       `json:"sideLength"`
	Result     PolygonResult `json:"result"`
	CreatedAt  time.Time     `json:"createdAt"`
}
