package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"polygon-calculator/domain"
	"polygon-calculator/repository"
)

type MockCalculationRepository struct {
	Saved      []domain.CalculationRecord
	ForceError bool
}

func (m *MockCalculationRepository) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	if m.ForceError {
		return errors.New("save error")
	}
	m.Saved = append(m.Saved, record)
	return nil
}

func (m *MockCalculationRepository) Recent(
	_ context.Context,
	limit int,
) ([]domain.CalculationRecord, error) {
	if m.ForceError {
		return nil, errors.New("load error")
	}
	if limit > len(m.Saved) {
		limit = len(m.Saved)
	}
	return m.Saved[:limit], nil
}

type FailingCache struct {
	SetCalls int
}

func (f *FailingCache) Get(context.Context, string) (string, bool) { return "", false }

func (f *FailingCache) Set(context.Context, string, string) error {
	f.SetCalls++
	return errors.New("cache down")
}

func newTestService() (*PolygonService, *MockCalculationRepository, *repository.MemoryCache) {
	repo := &MockCalculationRepository{}
	cache := repository.NewMemoryCache(0)
	return NewPolygonService(repo, cache), repo, cache
}

func TestCalculate_KnownPolygons(t *testing.T) {
	tests := []struct {
		name          string
		sides         float64
		length        float64
		wantArea      float64
		wantPerimeter float64
	}{
		{"equilateral triangle", 3, 2, 1.73, 6},
		{"square", 4, 5, 25, 20},
		{"hexagon", 6, 1, 2.6, 6},
		{"octagon", 8, 1, 4.83, 8},
		{"decagon", 10, 2.5, 48.09, 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newTestService()

			result, err := service.Calculate(context.Background(),
				domain.NewPolygonSpec(tt.sides, tt.length, "cm"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Area != tt.wantArea {
				t.Errorf("expected area %.2f, got %.2f", tt.wantArea, result.Area)
			}
			if result.Perimeter != tt.wantPerimeter {
				t.Errorf("expected perimeter %.2f, got %.2f", tt.wantPerimeter, result.Perimeter)
			}
			if result.Unit != "cm" {
				t.Errorf("expected unit cm, got %q", result.Unit)
			}
		})
	}
}

func TestCalculate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		spec domain.PolygonSpec
		want *ValidationError
	}{
		{"missing sides", domain.PolygonSpec{SideLength: domain.NumberOf(1), Unit: "m"}, ErrMissingOrInvalidSides},
		{"fractional sides", domain.NewPolygonSpec(3.5, 1, "m"), ErrMissingOrInvalidSides},
		{"nan sides", domain.NewPolygonSpec(math.NaN(), 1, "m"), ErrMissingOrInvalidSides},
		{"huge sides", domain.NewPolygonSpec(1e20, 1, "m"), ErrMissingOrInvalidSides},
		{"two sides", domain.NewPolygonSpec(2, 1, "m"), ErrTooFewSides},
		{"zero sides", domain.NewPolygonSpec(0, 1, "m"), ErrTooFewSides},
		{"negative sides", domain.NewPolygonSpec(-5, 1, "m"), ErrTooFewSides},
		{"missing length", domain.PolygonSpec{NumSides: domain.NumberOf(4), Unit: "m"}, ErrInvalidSideLength},
		{"zero length", domain.NewPolygonSpec(4, 0, "m"), ErrInvalidSideLength},
		{"negative length", domain.NewPolygonSpec(4, -1, "m"), ErrInvalidSideLength},
		{"missing unit", domain.NewPolygonSpec(4, 1, ""), ErrMissingUnit},
		{"blank unit", domain.NewPolygonSpec(4, 1, "  "), ErrMissingUnit},
		{"sides checked before length", domain.NewPolygonSpec(2, -1, ""), ErrTooFewSides},
		{"length checked before unit", domain.NewPolygonSpec(5, 0, ""), ErrInvalidSideLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, cache := newTestService()

			_, err := service.Calculate(context.Background(), tt.spec)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}

			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Reason != tt.want.Reason {
				t.Errorf("expected reason %s, got %v", tt.want.Reason, err)
			}

			if len(repo.Saved) != 0 {
				t.Errorf("repository Save should NOT be called")
			}
			if cache.Len() != 0 {
				t.Errorf("cache should NOT be written")
			}
		})
	}
}

func TestCalculate_Overflow(t *testing.T) {
	tests := []struct {
		name   string
		sides  float64
		length float64
	}{
		{"area overflows", 5, 1e200},
		{"rounding overflows", 4, 1.5e153},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, cache := newTestService()

			result, err := service.Calculate(context.Background(),
				domain.NewPolygonSpec(tt.sides, tt.length, "m"))
			if !errors.Is(err, ErrComputationFailed) {
				t.Fatalf("expected computation failure, got %+v, %v", result, err)
			}

			var verr *ValidationError
			if errors.As(err, &verr) {
				t.Errorf("overflow must not be reported as a validation error")
			}
			if len(repo.Saved) != 0 {
				t.Errorf("repository Save should NOT be called")
			}
			if cache.Len() != 0 {
				t.Errorf("cache should NOT be written")
			}
		})
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	service, repo, cache := newTestService()
	spec := domain.NewPolygonSpec(7, 3.3, "in")

	first, err := service.Calculate(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := service.Calculate(context.Background(), spec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
	if cache.Len() != 1 {
		t.Errorf("expected one cache entry, got %d", cache.Len())
	}
	if len(repo.Saved) != 2 {
		t.Fatalf("expected both calculations in history, got %d", len(repo.Saved))
	}
	if repo.Saved[0].ID == repo.Saved[1].ID {
		t.Errorf("expected distinct record ids")
	}
}

func TestCalculate_UnitPassedThrough(t *testing.T) {
	service, _, _ := newTestService()

	for _, unit := range []string{"cm", "m", "in", "furlong", " mm "} {
		result, err := service.Calculate(context.Background(), domain.NewPolygonSpec(3, 1, unit))
		if err != nil {
			t.Fatalf("unexpected error for unit %q: %v", unit, err)
		}
		if result.Unit != unit {
			t.Errorf("expected unit %q, got %q", unit, result.Unit)
		}
	}
}

func TestCalculate_UsesCachedResult(t *testing.T) {
	service, _, cache := newTestService()
	ctx := context.Background()

	key := cacheKey(4, 5, "cm")
	_ = cache.Set(ctx, key, `{"area":1,"perimeter":2,"unit":"cm"}`)

	result, err := service.Calculate(ctx, domain.NewPolygonSpec(4, 5, "cm"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Area != 1 || result.Perimeter != 2 {
		t.Errorf("expected cached result, got %+v", result)
	}
}

func TestCalculate_IgnoresCorruptCacheEntry(t *testing.T) {
	service, _, cache := newTestService()
	ctx := context.Background()

	_ = cache.Set(ctx, cacheKey(4, 5, "cm"), "not json")

	result, err := service.Calculate(ctx, domain.NewPolygonSpec(4, 5, "cm"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Area != 25 {
		t.Errorf("expected recomputed area 25, got %.2f", result.Area)
	}
}

func TestCalculate_NonCriticalFailures(t *testing.T) {
	repo := &MockCalculationRepository{ForceError: true}
	cache := &FailingCache{}
	service := NewPolygonService(repo, cache)

	result, err := service.Calculate(context.Background(), domain.NewPolygonSpec(6, 1, "m"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Perimeter != 6 {
		t.Errorf("expected perimeter 6, got %.2f", result.Perimeter)
	}
	if cache.SetCalls != 1 {
		t.Errorf("expected one cache write attempt, got %d", cache.SetCalls)
	}
}

func TestRecent(t *testing.T) {
	service, _, _ := newTestService()
	ctx := context.Background()

	for sides := 3; sides < 6; sides++ {
		if _, err := service.Calculate(ctx, domain.NewPolygonSpec(float64(sides), 1, "cm")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	records, err := service.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}

	records, _ = service.Recent(ctx, 1)
	if len(records) != 1 {
		t.Errorf("expected 1 record, got %d", len(records))
	}
}

func TestRecent_RepositoryError(t *testing.T) {
	service := NewPolygonService(&MockCalculationRepository{ForceError: true}, repository.NewMemoryCache(0))

	if _, err := service.Recent(context.Background(), 5); err == nil {
		t.Errorf("expected error from repository")
	}
}

func TestRegularPolygonFormulas(t *testing.T) {
	for n := 3; n <= 50; n++ {
		for _, s := range []float64{0.1, 1, 2.5, 1000} {
			perimeter := RegularPolygonPerimeter(n, s)
			if perimeter != float64(n)*s {
				t.Errorf("n=%d s=%v: expected perimeter %v, got %v", n, s, float64(n)*s, perimeter)
			}

			want := float64(n) * s * s / (4 * math.Tan(math.Pi/float64(n)))
			got := RegularPolygonArea(n, s)
			if math.Abs(got-want) > 1e-9*want {
				t.Errorf("n=%d s=%v: expected area %v, got %v", n, s, want, got)
			}
		}
	}
}

func TestRoundTo2Decimals(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.7320508, 1.73},
		{2.598076, 2.6},
		{25.000000000000004, 25},
		{48.0888, 48.09},
	}
	for _, tt := range tests {
		if got := roundTo2Decimals(tt.in); got != tt.want {
			t.Errorf("roundTo2Decimals(%v): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
