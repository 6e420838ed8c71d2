package patientsearch

import (
	"context"
	"errors"
	"testing"
)

type mockRepo struct {
	results []PatientSummary
	total   int
	attrs   map[string]string

	searchCalls int
	lastLimit   int
	lastOffset  int
	err         error
}

func (m *mockRepo) Search(_ context.Context, _ Criteria, limit, offset int) ([]PatientSummary, error) {
	m.searchCalls++
	m.lastLimit = limit
	m.lastOffset = offset
	return m.results, m.err
}

func (m *mockRepo) Count(_ context.Context, _ Criteria) (int, error) {
	return m.total, m.err
}

func (m *mockRepo) PersonAttributes(_ context.Context, _ int) (map[string]string, error) {
	return m.attrs, m.err
}

func TestService_Search_RejectsEmptyCriteria(t *testing.T) {
	repo := &mockRepo{total: 1000}
	svc := NewService(repo)

	_, _, err := svc.Search(context.Background(), Criteria{}, 20, 0)
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.searchCalls != 0 {
		t.Error("expected no repository call for empty criteria")
	}
}

func TestService_Search_ZeroMatchesIsNotAnError(t *testing.T) {
	repo := &mockRepo{total: 0}
	svc := NewService(repo)

	results, total, err := svc.Search(context.Background(), Criteria{Gender: "F"}, 20, 0)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected total 0, got %d", total)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("expected empty slice, got %v", results)
	}
	if repo.searchCalls != 0 {
		t.Error("expected data query skipped when count is zero")
	}
}

func TestService_Search_PassesPaging(t *testing.T) {
	repo := &mockRepo{
		total:   42,
		results: []PatientSummary{{PatientID: 7, Identifier: "HMIS-7"}},
	}
	svc := NewService(repo)

	results, total, err := svc.Search(context.Background(), Criteria{Gender: "M"}, 10, 20)
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if total != 42 {
		t.Errorf("expected total 42, got %d", total)
	}
	if len(results) != 1 || results[0].PatientID != 7 {
		t.Errorf("unexpected results: %v", results)
	}
	if repo.lastLimit != 10 || repo.lastOffset != 20 {
		t.Errorf("expected limit 10 offset 20, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
}

func TestService_Search_PropagatesRepoError(t *testing.T) {
	repo := &mockRepo{err: errors.New("connection reset")}
	svc := NewService(repo)

	_, _, err := svc.Search(context.Background(), Criteria{Gender: "M"}, 20, 0)
	if err == nil {
		t.Fatal("expected error from repository")
	}
}

func TestService_Attributes(t *testing.T) {
	repo := &mockRepo{attrs: map[string]string{"Father/Husband Name": "Hari"}}
	svc := NewService(repo)

	attrs, err := svc.Attributes(context.Background(), 7)
	if err != nil {
		t.Fatalf("Attributes() error: %v", err)
	}
	if attrs["Father/Husband Name"] != "Hari" {
		t.Errorf("unexpected attributes: %v", attrs)
	}
}
