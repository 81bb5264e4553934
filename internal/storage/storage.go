package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"menuplan-admin/internal/facility"
	"menuplan-admin/internal/plan"
)

// PlanStore provides flat-file JSON storage for weekly plans, one file per
// (year, week).
type PlanStore struct {
	basePath string
}

// NewPlanStore creates a new PlanStore and ensures the base directory exists.
func NewPlanStore(basePath string) (*PlanStore, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	return &PlanStore{basePath: basePath}, nil
}

// planPath returns the full path for a given year and calendar week.
func (s *PlanStore) planPath(year, week int) string {
	return filepath.Join(s.basePath, fmt.Sprintf("plan_%d-W%02d.json", year, week))
}

// Load reads the persisted plan for (year, week). A missing file is not an
// error: it returns (nil, nil) and the caller normalizes to an empty plan.
// The returned plan is raw; run it through plan.Normalize before use.
func (s *PlanStore) Load(year, week int) (*plan.Plan, error) {
	data, err := os.ReadFile(s.planPath(year, week))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var p plan.Plan
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan: %w", err)
	}
	return &p, nil
}

// SavePlan writes the plan to its week file.
func (s *PlanStore) SavePlan(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return fmt.Errorf("cannot save nil plan")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(s.planPath(p.Year, p.Week), data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

// Exists checks if a plan file exists for (year, week).
func (s *PlanStore) Exists(year, week int) bool {
	_, err := os.Stat(s.planPath(year, week))
	return !os.IsNotExist(err)
}

// LoadFacilities reads the facility master data file and applies the
// boundary normalization. A missing file yields an empty list.
func LoadFacilities(path string) ([]facility.Facility, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read facilities file: %w", err)
	}

	var facilities []facility.Facility
	if err := json.Unmarshal(data, &facilities); err != nil {
		return nil, fmt.Errorf("failed to unmarshal facilities: %w", err)
	}
	return facility.Normalize(facilities), nil
}

// LoadCategories reads the ordered category master list. A missing file
// yields nil, letting the caller fall back to the default set.
func LoadCategories(path string) ([]plan.Category, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read categories file: %w", err)
	}

	var categories []plan.Category
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}
	return categories, nil
}
