package patientsearch

import "context"

// Repository is the read-side contract for patient search.
type Repository interface {
	// Search returns summaries for patients matching the criteria, ordered
	// by patient_id ascending for deterministic pagination.
	Search(ctx context.Context, cr Criteria, limit, offset int) ([]PatientSummary, error)

	// Count returns the number of patients matching the criteria.
	Count(ctx context.Context, cr Criteria) (int, error)

	// PersonAttributes returns a patient's attributes keyed by attribute
	// type name, most recent value per type.
	PersonAttributes(ctx context.Context, patientID int) (map[string]string, error)
}
