package store

// Department is an organizational unit doctors belong to. Names are not
// unique-checked.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Doctor is a practitioner profile. Owner is the creating caller's
// identity, set once at creation. DepartmentID is a soft reference.
type Doctor struct {
	ID           string `json:"id"`
	Owner        string `json:"owner"`
	Name         string `json:"name"`
	DepartmentID string `json:"department_id"`
	Image        string `json:"image"`
	Available    bool   `json:"available"`
}

// Patient is a patient profile owned by the caller who created it.
type Patient struct {
	ID    string `json:"id"`
	Owner string `json:"owner"`
	Name  string `json:"name"`
	Age   int    `json:"age"`
}

// Consultation is an append-only request from a patient to a department.
// The referenced ids are soft references with no existence check.
type Consultation struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	Problem      string `json:"problem"`
	DepartmentID string `json:"department_id"`
}

// Chat is an append-only message between a patient and a doctor. Timestamp
// is caller-supplied opaque text, not parsed by the service.
type Chat struct {
	ID        string `json:"id"`
	PatientID string `json:"patient_id"`
	DoctorID  string `json:"doctor_id"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}
