package incidence

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockRepo struct {
	obsCount   int
	orderCount int
	err        error

	obsCalls     int
	orderCalls   int
	lastConcepts []int
	lastGender   string
	lastFrom     time.Time
	lastTo       time.Time
}

func (m *mockRepo) CountPatientsByObservation(_ context.Context, conceptIDs []int, gender string, from, to time.Time) (int, error) {
	m.obsCalls++
	m.lastConcepts = conceptIDs
	m.lastGender = gender
	m.lastFrom = from
	m.lastTo = to
	return m.obsCount, m.err
}

func (m *mockRepo) CountPatientsByOrder(_ context.Context, conceptIDs []int, from, to time.Time) (int, error) {
	m.orderCalls++
	m.lastConcepts = conceptIDs
	m.lastFrom = from
	m.lastTo = to
	return m.orderCount, m.err
}

func TestCounter_Count_ResolvesConcepts(t *testing.T) {
	repo := &mockRepo{obsCount: 7}
	counter := NewCounter(NewRegistry(), repo)

	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	count, err := counter.Count(context.Background(), "MALARIA", "M", from, to)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 7 {
		t.Errorf("expected 7, got %d", count)
	}
	if len(repo.lastConcepts) != 3 {
		t.Errorf("expected malaria's 3 concept ids, got %v", repo.lastConcepts)
	}
	if repo.lastGender != "M" {
		t.Errorf("expected gender M passed through, got %q", repo.lastGender)
	}
}

func TestCounter_Count_ExpandsDateWindowToWholeDays(t *testing.T) {
	repo := &mockRepo{}
	counter := NewCounter(NewRegistry(), repo)

	from := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	to := time.Date(2024, 3, 9, 8, 15, 0, 0, time.UTC)
	if _, err := counter.Count(context.Background(), "DENGUE", "", from, to); err != nil {
		t.Fatalf("Count() error: %v", err)
	}

	wantFrom := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 3, 9, 23, 59, 59, 0, time.UTC)
	if !repo.lastFrom.Equal(wantFrom) {
		t.Errorf("expected window start %v, got %v", wantFrom, repo.lastFrom)
	}
	if !repo.lastTo.Equal(wantTo) {
		t.Errorf("expected window end %v, got %v", wantTo, repo.lastTo)
	}
}

func TestCounter_Count_ZeroIsAValidResult(t *testing.T) {
	repo := &mockRepo{obsCount: 0}
	counter := NewCounter(NewRegistry(), repo)

	count, err := counter.Count(context.Background(), "CHOLERA", "", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("expected no error for zero matches, got %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}
}

func TestCounter_Count_UnknownKeyIsConfigurationError(t *testing.T) {
	repo := &mockRepo{}
	counter := NewCounter(NewRegistry(), repo)

	_, err := counter.Count(context.Background(), "NOT_A_DISEASE", "", time.Now(), time.Now())
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
	if cfgErr.Key != "NOT_A_DISEASE" {
		t.Errorf("expected offending key in error, got %q", cfgErr.Key)
	}
	if repo.obsCalls != 0 {
		t.Error("expected no repository call for unknown key")
	}
}

func TestCounter_CountDrug_NeverPassesGender(t *testing.T) {
	repo := &mockRepo{orderCount: 3}
	counter := NewCounter(NewRegistry(), repo)

	count, err := counter.CountDrug(context.Background(), "ANTIMALARIAL", time.Now(), time.Now())
	if err != nil {
		t.Fatalf("CountDrug() error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3, got %d", count)
	}
	if repo.orderCalls != 1 || repo.obsCalls != 0 {
		t.Error("expected drug count to use the order query only")
	}
}

func TestCounter_CountDrug_UnknownKey(t *testing.T) {
	counter := NewCounter(NewRegistry(), &mockRepo{})

	_, err := counter.CountDrug(context.Background(), "MALARIA", time.Now(), time.Now())
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError for diagnosis key in drug table, got %v", err)
	}
	if cfgErr.Kind != "drug" {
		t.Errorf("expected kind drug, got %q", cfgErr.Kind)
	}
}
