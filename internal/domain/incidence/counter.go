package incidence

import (
	"context"
	"time"
)

// Counter answers "how many patients had X" questions by resolving a
// category key through the registry and counting distinct patients in the
// clinical store. Zero is a normal answer, not an error.
type Counter struct {
	registry *Registry
	repo     Repository
}

// NewCounter creates a Counter.
func NewCounter(registry *Registry, repo Repository) *Counter {
	return &Counter{registry: registry, repo: repo}
}

// Count counts distinct patients with an observation matching the diagnosis
// category within the date window. The window expands to whole days:
// [from 00:00:00, to 23:59:59]. gender is optional.
func (c *Counter) Count(ctx context.Context, key, gender string, from, to time.Time) (int, error) {
	cat, err := c.registry.Resolve(key)
	if err != nil {
		return 0, err
	}
	start, end := expandWindow(from, to)
	return c.repo.CountPatientsByObservation(ctx, cat.ConceptIDs, gender, start, end)
}

// CountDrug counts distinct patients with a medication order matching the
// drug category within the date window. Drug counts never filter on gender.
func (c *Counter) CountDrug(ctx context.Context, key string, from, to time.Time) (int, error) {
	cat, err := c.registry.ResolveDrug(key)
	if err != nil {
		return 0, err
	}
	start, end := expandWindow(from, to)
	return c.repo.CountPatientsByOrder(ctx, cat.ConceptIDs, start, end)
}

func expandWindow(from, to time.Time) (time.Time, time.Time) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())
	return start, end
}
