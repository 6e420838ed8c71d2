package incidence

import (
	"context"
	"time"
)

// Repository counts distinct patients against the clinical store.
type Repository interface {
	// CountPatientsByObservation counts distinct persons having at least one
	// observation whose coded value is in conceptIDs within [from, to].
	// gender is an optional equality filter; empty means all.
	CountPatientsByObservation(ctx context.Context, conceptIDs []int, gender string, from, to time.Time) (int, error)

	// CountPatientsByOrder counts distinct patients with at least one
	// non-voided medication order on a concept in conceptIDs within [from, to].
	CountPatientsByOrder(ctx context.Context, conceptIDs []int, from, to time.Time) (int, error)
}
