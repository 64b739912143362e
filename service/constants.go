package service

const (
	MinSides = 3
	// MaxSides is the largest integer a float64 holds exactly (2^53).
	MaxSides = 1 << 53

	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 100

	cacheKeyPrefix = "polygon"
)
