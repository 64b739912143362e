package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"polygon-calculator/domain"
	"polygon-calculator/repository"
)

type PolygonService struct {
	repo  repository.CalculationRepository
	cache repository.CacheRepository
	now   func() time.Time
}

// NewPolygonService creates a new PolygonService with the given repository
// and cache.
func NewPolygonService(repo repository.CalculationRepository,
	cache repository.CacheRepository,
) *PolygonService {
	return &PolygonService{repo: repo, cache: cache, now: time.Now}
}

// Calculate validates the spec and returns the area and perimeter of the
// regular polygon it describes, rounded to 2 decimals.
func (s *PolygonService) Calculate(
	ctx context.Context,
	spec domain.PolygonSpec,
) (domain.PolygonResult, error) {

	numSides, sideLength, err := validate(spec)
	if err != nil {
		return domain.PolygonResult{}, err
	}

	key := cacheKey(numSides, sideLength, spec.Unit)
	result, ok := s.cached(ctx, key)
	if !ok {
		result, err = compute(numSides, sideLength, spec.Unit)
		if err != nil {
			return domain.PolygonResult{}, err
		}
		s.store(ctx, key, result)
	}

	record := domain.CalculationRecord{
		ID:         uuid.NewString(),
		NumSides:   numSides,
		SideLength: sideLength,
		Result:     result,
		CreatedAt:  s.now().UTC(),
	}
	// Saving the history is not critical.
	if err := s.repo.Save(ctx, record); err != nil {
		slog.Warn("failed to save polygon calculation", "error", err)
	}

	return result, nil
}

// Recent returns the newest calculations. A limit of 0 selects
// DefaultHistoryLimit; limits above MaxHistoryLimit are clamped.
func (s *PolygonService) Recent(
	ctx context.Context,
	limit int,
) ([]domain.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	records, err := s.repo.Recent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("load recent calculations: %w", err)
	}
	return records, nil
}

func validate(spec domain.PolygonSpec) (int, float64, error) {
	n := spec.NumSides
	if !n.Valid || math.IsNaN(n.Value) || math.IsInf(n.Value, 0) ||
		n.Value != math.Trunc(n.Value) || math.Abs(n.Value) > MaxSides {
		return 0, 0, ErrMissingOrInvalidSides
	}
	if n.Value < MinSides {
		return 0, 0, ErrTooFewSides
	}

	s := spec.SideLength
	if !s.Valid || math.IsNaN(s.Value) || math.IsInf(s.Value, 0) || s.Value <= 0 {
		return 0, 0, ErrInvalidSideLength
	}

	if strings.TrimSpace(spec.Unit) == "" {
		return 0, 0, ErrMissingUnit
	}

	return int(n.Value), s.Value, nil
}

func compute(numSides int, sideLength float64, unit string) (domain.PolygonResult, error) {
	// Rounding scales by 100, so a finite value near MaxFloat64 can still
	// overflow here; check after rounding.
	perimeter := roundTo2Decimals(RegularPolygonPerimeter(numSides, sideLength))
	area := roundTo2Decimals(RegularPolygonArea(numSides, sideLength))

	if !isFinite(area) || !isFinite(perimeter) {
		slog.Error("polygon calculation produced a non finite value",
			"numSides", numSides, "sideLength", sideLength)
		return domain.PolygonResult{}, ErrComputationFailed
	}

	return domain.PolygonResult{
		Area:      area,
		Perimeter: perimeter,
		Unit:      unit,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func cacheKey(numSides int, sideLength float64, unit string) string {
	return fmt.Sprintf("%s:%d:%s:%s", cacheKeyPrefix, numSides,
		strconv.FormatFloat(sideLength, 'g', -1, 64), unit)
}

func (s *PolygonService) cached(ctx context.Context, key string) (domain.PolygonResult, bool) {
	raw, ok := s.cache.Get(ctx, key)
	if !ok {
		return domain.PolygonResult{}, false
	}

	var result domain.PolygonResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		slog.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return domain.PolygonResult{}, false
	}
	return result, true
}

func (s *PolygonService) store(ctx context.Context, key string, result domain.PolygonResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		slog.Warn("failed to encode result for cache", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, key, string(raw)); err != nil {
		slog.Warn("failed to cache polygon result", "key", key, "error", err)
	}
}
