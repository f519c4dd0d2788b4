package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/identity"
	"curalink.io/coordination-service/internal/store"
)

// DoctorService manages practitioner profiles.
type DoctorService struct {
	mu      *sync.Mutex
	doctors *store.Collection[store.Doctor]
	policy  Policy
	log     zerolog.Logger
}

type CreateDoctorRequest struct {
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	Image        string `json:"image"`
}

// UpdateDoctorRequest is a shallow-merge payload: only non-nil fields are
// applied. ID and owner are immutable and deliberately absent.
type UpdateDoctorRequest struct {
	Name         *string `json:"name,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	Image        *string `json:"image,omitempty"`
	Available    *bool   `json:"available,omitempty"`
}

// Create validates the payload, rejects a (name, department) pair already
// taken by another doctor, stamps the caller as owner, and stores the
// profile. The uniqueness scan is O(n) in the doctor count and runs under
// the registry mutex so it cannot race the insert.
func (s *DoctorService) Create(ctx context.Context, req CreateDoctorRequest) (*store.Doctor, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Invalidf("doctor name is required")
	}
	if strings.TrimSpace(req.DepartmentID) == "" {
		return nil, Invalidf("department_id is required")
	}
	if strings.TrimSpace(req.Image) == "" {
		return nil, Invalidf("image is required")
	}
	caller := identity.FromContext(ctx)
	if caller.IsAnonymous() {
		return nil, Invalidf("caller identity is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.doctors.Values()
	if err != nil {
		return nil, err
	}
	for _, d := range existing {
		if d.Name == req.Name && d.DepartmentID == req.DepartmentID {
			return nil, Invalidf("doctor %q already exists in department %s", req.Name, req.DepartmentID)
		}
	}

	doc := store.Doctor{
		ID:           uuid.NewString(),
		Owner:        caller.String(),
		Name:         req.Name,
		DepartmentID: req.DepartmentID,
		Image:        req.Image,
	}
	if err := s.doctors.Insert(doc.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to store doctor: %w", err)
	}
	s.log.Info().Str("doctor_id", doc.ID).Str("department_id", doc.DepartmentID).Msg("doctor created")
	return &doc, nil
}

// ByID looks up one doctor.
func (s *DoctorService) ByID(id string) (*store.Doctor, error) {
	doc, ok, err := s.doctors.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("doctor %s not found", id)
	}
	return &doc, nil
}

// ByOwner returns the first doctor profile owned by the calling identity.
// Additional profiles under the same owner are not surfaced.
func (s *DoctorService) ByOwner(ctx context.Context) (*store.Doctor, error) {
	caller := identity.FromContext(ctx)
	docs, err := s.doctors.Values()
	if err != nil {
		return nil, err
	}
	doc, ok := firstMatch(docs, func(d store.Doctor) bool {
		return identity.Principal(d.Owner).Equal(caller)
	})
	if !ok {
		return nil, NotFoundf("no doctor profile for caller")
	}
	return &doc, nil
}

// All returns every doctor in insertion order.
func (s *DoctorService) All() ([]store.Doctor, error) {
	docs, err := s.doctors.Values()
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no doctors found")
	}
	return docs, nil
}

// SearchByName returns all doctors whose name contains the query,
// case-insensitively.
func (s *DoctorService) SearchByName(name string) ([]store.Doctor, error) {
	docs, err := s.doctors.Values()
	if err != nil {
		return nil, err
	}
	matched := filterValues(docs, func(d store.Doctor) bool {
		return matchesName(d.Name, name)
	})
	if len(matched) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no doctors match %q", name)
	}
	return matched, nil
}

// Update applies a shallow merge of the payload onto the stored profile
// and re-inserts it under the same id. Uniqueness is not re-checked on
// update, matching creation-only enforcement.
func (s *DoctorService) Update(id string, req UpdateDoctorRequest) (*store.Doctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok, err := s.doctors.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("doctor %s not found", id)
	}

	if req.Name != nil {
		doc.Name = *req.Name
	}
	if req.DepartmentID != nil {
		doc.DepartmentID = *req.DepartmentID
	}
	if req.Image != nil {
		doc.Image = *req.Image
	}
	if req.Available != nil {
		doc.Available = *req.Available
	}

	if err := s.doctors.Insert(doc.ID, doc); err != nil {
		return nil, fmt.Errorf("failed to update doctor: %w", err)
	}
	s.log.Info().Str("doctor_id", doc.ID).Msg("doctor updated")
	return &doc, nil
}

// UpdateAvailability is the single-field variant of Update.
func (s *DoctorService) UpdateAvailability(id string, available bool) (*store.Doctor, error) {
	return s.Update(id, UpdateDoctorRequest{Available: &available})
}

// Delete removes a doctor once existence is confirmed. Chats referencing
// the doctor are left untouched.
func (s *DoctorService) Delete(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.doctors.Get(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", NotFoundf("doctor %s not found", id)
	}
	if err := s.doctors.Remove(id); err != nil {
		return "", fmt.Errorf("failed to delete doctor: %w", err)
	}
	s.log.Info().Str("doctor_id", id).Msg("doctor deleted")
	return fmt.Sprintf("doctor %s deleted", id), nil
}
