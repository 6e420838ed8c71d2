package morbidity

import (
	"context"
	"sort"
	"strconv"
)

// Service runs the clinical morbidity report.
type Service struct {
	repo Repository
}

// NewService creates a morbidity service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// wardMode maps a ward name to the report's two switches. The default is
// the fixed-site OPD; WardIPD swaps the ward encounter type; WardOutreach
// keeps the OPD encounter but requires the outreach marker instead of
// excluding it. These are the only observed operating modes.
func wardMode(ward string) (encounterType int, outreach bool) {
	encounterType = EncounterOutpatient
	switch ward {
	case WardIPD:
		encounterType = EncounterInpatient
	case WardOutreach:
		outreach = true
	}
	return encounterType, outreach
}

// Aggregate runs the report for diagnosis value concepts in the given
// month/year and ward mode. Rows come back in age-band order; empty bands
// are not synthesized.
func (s *Service) Aggregate(ctx context.Context, valueConceptIDs []int, month, year int, ward string) ([]Row, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Field: "month", Value: strconv.Itoa(month)}
	}
	if year < 1900 {
		return nil, &ValidationError{Field: "year", Value: strconv.Itoa(year)}
	}
	if len(valueConceptIDs) == 0 {
		return nil, &ValidationError{Field: "concepts", Value: "at least one diagnosis concept is required"}
	}

	encounterType, outreach := wardMode(ward)
	rows, err := s.repo.Aggregate(ctx, valueConceptIDs, month, year, encounterType, outreach)
	if err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		return bandOrder[rows[i].AgeGroup] < bandOrder[rows[j].AgeGroup]
	})
	return rows, nil
}
