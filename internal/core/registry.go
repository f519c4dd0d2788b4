package core

import (
	"sync"

	"github.com/rs/zerolog"

	"curalink.io/coordination-service/internal/store"
)

// Policy names the deliberate behavioral choices carried over from the
// source system.
type Policy struct {
	// EmptyResultIsError makes get-all, search, and history queries
	// return NotFound instead of an empty collection. This diverges from
	// the conventional empty-slice behavior on purpose.
	EmptyResultIsError bool
}

// DefaultPolicy matches the source system's behavior.
func DefaultPolicy() Policy {
	return Policy{EmptyResultIsError: true}
}

// Registry owns the five entity collections and the services built on
// them. It is constructed once at process start and injected wherever
// records are read or mutated; there is no package-level store state.
//
// The registry mutex serializes mutating calls so each one runs as a
// single validate-then-mutate step: in particular the doctor uniqueness
// scan and the subsequent insert never interleave with another write.
type Registry struct {
	mu sync.Mutex

	Departments   *DepartmentService
	Doctors       *DoctorService
	Patients      *PatientService
	Consultations *ConsultationService
	Chats         *ChatService
}

func NewRegistry(db *store.DB, policy Policy, log zerolog.Logger) *Registry {
	r := &Registry{}

	r.Departments = &DepartmentService{
		mu:          &r.mu,
		departments: store.NewCollection[store.Department](db, store.NamespaceDepartments),
		policy:      policy,
		log:         log.With().Str("service", "departments").Logger(),
	}
	r.Doctors = &DoctorService{
		mu:      &r.mu,
		doctors: store.NewCollection[store.Doctor](db, store.NamespaceDoctors),
		policy:  policy,
		log:     log.With().Str("service", "doctors").Logger(),
	}
	r.Patients = &PatientService{
		mu:       &r.mu,
		patients: store.NewCollection[store.Patient](db, store.NamespacePatients),
		policy:   policy,
		log:      log.With().Str("service", "patients").Logger(),
	}
	r.Consultations = &ConsultationService{
		mu:            &r.mu,
		consultations: store.NewCollection[store.Consultation](db, store.NamespaceConsultations),
		policy:        policy,
		log:           log.With().Str("service", "consultations").Logger(),
	}
	r.Chats = &ChatService{
		mu:     &r.mu,
		chats:  store.NewCollection[store.Chat](db, store.NamespaceChats),
		policy: policy,
		log:    log.With().Str("service", "chats").Logger(),
	}

	return r
}
