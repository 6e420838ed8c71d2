package taxonomy

import "context"

// Store is the persistence contract for taxonomy entries. All operations
// honor a caller-scoped transaction when one is carried on the context.
type Store interface {
	// FindConcept looks a concept up by its unique (datatype, class, name)
	// triple. Returns (nil, nil) when no concept matches.
	FindConcept(ctx context.Context, dataType DataType, class ConceptClass, name string) (*Concept, error)

	// CreateConcept inserts a new concept. Returns a ValidationError when
	// dataType or class is not a recognized enumerant.
	CreateConcept(ctx context.Context, dataType DataType, class ConceptClass, name, shortName, description string) (*Concept, error)

	// GetOrCreateConcept is an atomic find-or-create on the unique triple.
	// Concurrent callers racing on the same triple converge on one row.
	GetOrCreateConcept(ctx context.Context, dataType DataType, class ConceptClass, name, shortName, description string) (*Concept, error)

	// AddSynonym records an alternate name. Re-adding the same text on the
	// same concept is a no-op.
	AddSynonym(ctx context.Context, conceptID int, text string) error

	// AddMapping upserts an external code reference: replaces the code when
	// (conceptID, source) already exists.
	AddMapping(ctx context.Context, conceptID int, source, code string) error

	// Synonyms returns all synonyms recorded for a concept.
	Synonyms(ctx context.Context, conceptID int) ([]Synonym, error)

	// Mappings returns all source mappings recorded for a concept.
	Mappings(ctx context.Context, conceptID int) ([]SourceMapping, error)

	// RunBatch runs fn inside a single transaction. The importer uses one
	// call per checkpoint batch so partial progress survives a failure.
	RunBatch(ctx context.Context, fn func(ctx context.Context) error) error
}
