package taxonomy

import (
	"context"
	"io"
)

// Service fronts taxonomy lookup and import for the HTTP and CLI surfaces.
type Service struct {
	store    Store
	importer *Importer
}

// NewService creates a taxonomy service.
func NewService(store Store, importer *Importer) *Service {
	return &Service{store: store, importer: importer}
}

// Lookup finds a concept by its identifying triple along with its synonyms
// and source mappings. Returns (nil, nil, nil, nil) when no concept matches.
func (s *Service) Lookup(ctx context.Context, dataType DataType, class ConceptClass, name string) (*Concept, []Synonym, []SourceMapping, error) {
	if !dataType.Valid() {
		return nil, nil, nil, &ValidationError{Field: "datatype", Value: string(dataType)}
	}
	if !class.Valid() {
		return nil, nil, nil, &ValidationError{Field: "class", Value: string(class)}
	}

	concept, err := s.store.FindConcept(ctx, dataType, class, name)
	if err != nil || concept == nil {
		return nil, nil, nil, err
	}

	synonyms, err := s.store.Synonyms(ctx, concept.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	mappings, err := s.store.Mappings(ctx, concept.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	return concept, synonyms, mappings, nil
}

// ImportStreams parses the three taxonomy input streams and runs the
// importer over the correlated records. Returns the processed record count.
func (s *Service) ImportStreams(ctx context.Context, diagnoses, mappings, synonyms io.Reader) (int, error) {
	records, err := ParseStreams(diagnoses, mappings, synonyms)
	if err != nil {
		return 0, err
	}
	return s.importer.Import(ctx, records)
}
