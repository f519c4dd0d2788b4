package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/store"
)

// ConsultationService manages consultation requests. Consultations are
// append-only: there is no update or delete.
type ConsultationService struct {
	mu            *sync.Mutex
	consultations *store.Collection[store.Consultation]
	policy        Policy
	log           zerolog.Logger
}

type CreateConsultationRequest struct {
	PatientID    string `json:"patient_id"`
	Problem      string `json:"problem"`
	DepartmentID string `json:"department_id"`
}

// Create validates the payload and stores a new consultation. The patient
// and department ids are soft references; their existence is not checked.
func (s *ConsultationService) Create(req CreateConsultationRequest) (*store.Consultation, error) {
	if strings.TrimSpace(req.PatientID) == "" {
		return nil, Invalidf("patient_id is required")
	}
	if strings.TrimSpace(req.Problem) == "" {
		return nil, Invalidf("problem is required")
	}
	if strings.TrimSpace(req.DepartmentID) == "" {
		return nil, Invalidf("department_id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := store.Consultation{
		ID:           uuid.NewString(),
		PatientID:    req.PatientID,
		Problem:      req.Problem,
		DepartmentID: req.DepartmentID,
	}
	if err := s.consultations.Insert(c.ID, c); err != nil {
		return nil, fmt.Errorf("failed to store consultation: %w", err)
	}
	s.log.Info().Str("consultation_id", c.ID).Str("patient_id", c.PatientID).Msg("consultation created")
	return &c, nil
}

// ByID looks up one consultation.
func (s *ConsultationService) ByID(id string) (*store.Consultation, error) {
	c, ok, err := s.consultations.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("consultation %s not found", id)
	}
	return &c, nil
}

// All returns every consultation in insertion order.
func (s *ConsultationService) All() ([]store.Consultation, error) {
	consultations, err := s.consultations.Values()
	if err != nil {
		return nil, err
	}
	if len(consultations) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no consultations found")
	}
	return consultations, nil
}

// HistoryByPatient returns every consultation filed for the given patient
// id, in insertion order.
func (s *ConsultationService) HistoryByPatient(patientID string) ([]store.Consultation, error) {
	consultations, err := s.consultations.Values()
	if err != nil {
		return nil, err
	}
	history := filterValues(consultations, func(c store.Consultation) bool {
		return c.PatientID == patientID
	})
	if len(history) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no consultations for patient %s", patientID)
	}
	return history, nil
}
