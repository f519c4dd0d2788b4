package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/store"
)

// DepartmentService manages organizational departments.
type DepartmentService struct {
	mu          *sync.Mutex
	departments *store.Collection[store.Department]
	policy      Policy
	log         zerolog.Logger
}

// Create validates the payload and stores a new department under a fresh
// identifier. Department names are not unique-checked.
func (s *DepartmentService) Create(name string) (*store.Department, error) {
	if strings.TrimSpace(name) == "" {
		return nil, Invalidf("department name is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dep := store.Department{ID: uuid.NewString(), Name: name}
	if err := s.departments.Insert(dep.ID, dep); err != nil {
		return nil, fmt.Errorf("failed to store department: %w", err)
	}
	s.log.Info().Str("department_id", dep.ID).Msg("department created")
	return &dep, nil
}

// ByID looks up one department.
func (s *DepartmentService) ByID(id string) (*store.Department, error) {
	dep, ok, err := s.departments.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("department %s not found", id)
	}
	return &dep, nil
}

// All returns every department in insertion order.
func (s *DepartmentService) All() ([]store.Department, error) {
	deps, err := s.departments.Values()
	if err != nil {
		return nil, err
	}
	if len(deps) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no departments found")
	}
	return deps, nil
}

// SearchByName returns all departments whose name contains the query,
// case-insensitively.
func (s *DepartmentService) SearchByName(name string) ([]store.Department, error) {
	deps, err := s.departments.Values()
	if err != nil {
		return nil, err
	}
	matched := filterValues(deps, func(d store.Department) bool {
		return matchesName(d.Name, name)
	})
	if len(matched) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no departments match %q", name)
	}
	return matched, nil
}

// Delete removes a department once existence is confirmed. Doctors and
// consultations referencing it are left untouched; dangling references
// are accepted.
func (s *DepartmentService) Delete(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.departments.Get(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", NotFoundf("department %s not found", id)
	}
	if err := s.departments.Remove(id); err != nil {
		return "", fmt.Errorf("failed to delete department: %w", err)
	}
	s.log.Info().Str("department_id", id).Msg("department deleted")
	return fmt.Sprintf("department %s deleted", id), nil
}
