package repository

import (
	"context"

	"polygon-calculator/domain"
)

type CalculationRepository interface {
	Save(ctx context.Context, record domain.CalculationRecord) error
	Recent(ctx context.Context, limit int) ([]domain.CalculationRecord, error)
}
