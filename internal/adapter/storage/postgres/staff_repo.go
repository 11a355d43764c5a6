package postgres

import (
	"context"
	"errors"
	"fmt"

	"fulfillment-ledger/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// StaffRepo implements ports.StaffDirectory over delivery_staff_profiles.
type StaffRepo struct {
	pool Pool
}

// NewStaffRepo creates a new StaffRepo.
func NewStaffRepo(pool Pool) *StaffRepo {
	return &StaffRepo{pool: pool}
}

// CompensationMode returns the staff member's pay mode. Missing profiles are fixed.
func (r *StaffRepo) CompensationMode(ctx context.Context, staffID uuid.UUID) (domain.CompensationMode, error) {
	query := `SELECT compensation_mode FROM delivery_staff_profiles WHERE staff_id = $1`

	var mode domain.CompensationMode
	err := r.pool.QueryRow(ctx, query, staffID).Scan(&mode)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.CompensationFixed, nil
		}
		return "", fmt.Errorf("get compensation mode: %w", err)
	}
	return mode.Normalize(), nil
}
