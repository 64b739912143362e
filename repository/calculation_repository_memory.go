package repository

import (
	"context"
	"sync"

	"polygon-calculator/domain"
)

// CalculationRepositoryMemory keeps the last `capacity` calculations in a
// ring buffer.
type CalculationRepositoryMemory struct {
	mu       sync.RWMutex
	data     []domain.CalculationRecord
	next     int
	full     bool
	capacity int
}

// NewCalculationRepositoryMemory creates a new in-memory calculation
// repository. A capacity below 1 is treated as 1.
func NewCalculationRepositoryMemory(capacity int) *CalculationRepositoryMemory {
	if capacity < 1 {
		capacity = 1
	}
	return &CalculationRepositoryMemory{
		data:     make([]domain.CalculationRecord, capacity),
		capacity: capacity,
	}
}

// Save stores the record, overwriting the oldest one once full.
func (r *CalculationRepositoryMemory) Save(
	_ context.Context,
	record domain.CalculationRecord,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[r.next] = record
	r.next = (r.next + 1) % r.capacity
	if r.next == 0 {
		r.full = true
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (r *CalculationRepositoryMemory) Recent(
	_ context.Context,
	limit int,
) ([]domain.CalculationRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	size := r.next
	if r.full {
		size = r.capacity
	}
	if limit <= 0 || limit > size {
		limit = size
	}

	out := make([]domain.CalculationRecord, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (r.next - i + r.capacity) % r.capacity
		out = append(out, r.data[idx])
	}
	return out, nil
}
