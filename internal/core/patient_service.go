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

// PatientService manages patient profiles.
type PatientService struct {
	mu       *sync.Mutex
	patients *store.Collection[store.Patient]
	policy   Policy
	log      zerolog.Logger
}

type CreatePatientRequest struct {
	Name string `json:"name"`
	Age  *int   `json:"age"`
}

// UpdatePatientRequest is a shallow-merge payload: only non-nil fields are
// applied. ID and owner are immutable and deliberately absent.
type UpdatePatientRequest struct {
	Name *string `json:"name,omitempty"`
	Age  *int    `json:"age,omitempty"`
}

// Create validates the payload, stamps the caller as owner, and stores
// the profile under a fresh identifier.
func (s *PatientService) Create(ctx context.Context, req CreatePatientRequest) (*store.Patient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, Invalidf("patient name is required")
	}
	if req.Age == nil {
		return nil, Invalidf("age is required")
	}
	if *req.Age < 0 {
		return nil, Invalidf("age must be non-negative")
	}
	caller := identity.FromContext(ctx)
	if caller.IsAnonymous() {
		return nil, Invalidf("caller identity is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p := store.Patient{
		ID:    uuid.NewString(),
		Owner: caller.String(),
		Name:  req.Name,
		Age:   *req.Age,
	}
	if err := s.patients.Insert(p.ID, p); err != nil {
		return nil, fmt.Errorf("failed to store patient: %w", err)
	}
	s.log.Info().Str("patient_id", p.ID).Msg("patient created")
	return &p, nil
}

// ByID looks up one patient.
func (s *PatientService) ByID(id string) (*store.Patient, error) {
	p, ok, err := s.patients.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("patient %s not found", id)
	}
	return &p, nil
}

// ByOwner returns the first patient profile owned by the calling identity.
func (s *PatientService) ByOwner(ctx context.Context) (*store.Patient, error) {
	caller := identity.FromContext(ctx)
	patients, err := s.patients.Values()
	if err != nil {
		return nil, err
	}
	p, ok := firstMatch(patients, func(p store.Patient) bool {
		return identity.Principal(p.Owner).Equal(caller)
	})
	if !ok {
		return nil, NotFoundf("no patient profile for caller")
	}
	return &p, nil
}

// All returns every patient in insertion order.
func (s *PatientService) All() ([]store.Patient, error) {
	patients, err := s.patients.Values()
	if err != nil {
		return nil, err
	}
	if len(patients) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no patients found")
	}
	return patients, nil
}

// Update applies a shallow merge of the payload onto the stored profile
// and re-inserts it under the same id.
func (s *PatientService) Update(id string, req UpdatePatientRequest) (*store.Patient, error) {
	if req.Age != nil && *req.Age < 0 {
		return nil, Invalidf("age must be non-negative")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok, err := s.patients.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("patient %s not found", id)
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Age != nil {
		p.Age = *req.Age
	}

	if err := s.patients.Insert(p.ID, p); err != nil {
		return nil, fmt.Errorf("failed to update patient: %w", err)
	}
	s.log.Info().Str("patient_id", p.ID).Msg("patient updated")
	return &p, nil
}

// Delete removes a patient once existence is confirmed. Consultations and
// chats referencing the patient are left untouched.
func (s *PatientService) Delete(id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok, err := s.patients.Get(id)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", NotFoundf("patient %s not found", id)
	}
	if err := s.patients.Remove(id); err != nil {
		return "", fmt.Errorf("failed to delete patient: %w", err)
	}
	s.log.Info().Str("patient_id", id).Msg("patient deleted")
	return fmt.Sprintf("patient %s deleted", id), nil
}
