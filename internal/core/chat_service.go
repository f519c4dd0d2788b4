package core

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/store"
)

// ChatService manages inter-party chat messages. Chats are append-only:
// there is no update or delete.
type ChatService struct {
	mu     *sync.Mutex
	chats  *store.Collection[store.Chat]
	policy Policy
	log    zerolog.Logger
}

type CreateChatRequest struct {
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Create validates the payload and stores a new chat message. The patient
// and doctor ids are soft references; their existence is not checked, and
// the timestamp is stored as opaque text.
func (s *ChatService) Create(req CreateChatRequest) (*store.Chat, error) {
	if strings.TrimSpace(req.PatientID) == "" {
		return nil, Invalidf("patient_id is required")
	}
	if strings.TrimSpace(req.DoctorID) == "" {
		return nil, Invalidf("doctor_id is required")
	}
	if strings.TrimSpace(req.Message) == "" {
		return nil, Invalidf("message is required")
	}
	if strings.TrimSpace(req.Timestamp) == "" {
		return nil, Invalidf("timestamp is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := store.Chat{
		ID:        uuid.NewString(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Message:   req.Message,
		Timestamp: req.Timestamp,
	}
	if err := s.chats.Insert(c.ID, c); err != nil {
		return nil, fmt.Errorf("failed to store chat message: %w", err)
	}
	s.log.Info().Str("chat_id", c.ID).Msg("chat message created")
	return &c, nil
}

// ByID looks up one chat message.
func (s *ChatService) ByID(id string) (*store.Chat, error) {
	c, ok, err := s.chats.Get(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, NotFoundf("chat %s not found", id)
	}
	return &c, nil
}

// All returns every chat message in insertion order.
func (s *ChatService) All() ([]store.Chat, error) {
	chats, err := s.chats.Values()
	if err != nil {
		return nil, err
	}
	if len(chats) == 0 && s.policy.EmptyResultIsError {
		return nil, NotFoundf("no chats found")
	}
	return chats, nil
}
