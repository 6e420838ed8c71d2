package taxonomy

import (
	"context"

	"github.com/rs/zerolog"
)

// DefaultBatchSize is the checkpoint interval: every N records the working
// transaction commits, so a failure later in the run keeps prior batches.
const DefaultBatchSize = 20

// Importer loads correlated diagnosis records into the taxonomy store.
// Every store operation it issues is idempotent, so re-running the importer
// over the same input after a crash converges on the same end state.
type Importer struct {
	store     Store
	batchSize int
	logger    zerolog.Logger
}

// NewImporter creates an Importer. batchSize <= 0 falls back to
// DefaultBatchSize.
func NewImporter(store Store, batchSize int, logger zerolog.Logger) *Importer {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Importer{store: store, batchSize: batchSize, logger: logger}
}

// Import writes records to the store in checkpoint batches and returns the
// count of records processed. Matched re-imports count too; the count is not
// "newly created". Records with an unrecognized datatype or class reject the
// whole import with a ValidationError before any write. A write failure
// aborts with an ImportError naming the record; batches committed before it
// stay durable.
func (im *Importer) Import(ctx context.Context, records []DiagnosisRecord) (int, error) {
	for _, rec := range records {
		if !rec.DataType.Valid() {
			return 0, &ValidationError{Field: "datatype", Value: string(rec.DataType)}
		}
		if !rec.Class.Valid() {
			return 0, &ValidationError{Field: "class", Value: string(rec.Class)}
		}
	}

	processed := 0
	for start := 0; start < len(records); start += im.batchSize {
		end := start + im.batchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]

		err := im.store.RunBatch(ctx, func(ctx context.Context) error {
			for _, rec := range batch {
				if err := im.importRecord(ctx, rec); err != nil {
					return &ImportError{Record: rec.Name, Err: err}
				}
			}
			return nil
		})
		if err != nil {
			return processed, err
		}

		processed += len(batch)
		im.logger.Info().
			Int("processed", processed).
			Int("total", len(records)).
			Msg("taxonomy import checkpoint")
	}

	return processed, nil
}

func (im *Importer) importRecord(ctx context.Context, rec DiagnosisRecord) error {
	concept, err := im.store.GetOrCreateConcept(ctx, rec.DataType, rec.Class, rec.Name, "", rec.Description)
	if err != nil {
		return err
	}
	for _, syn := range rec.Synonyms {
		if err := im.store.AddSynonym(ctx, concept.ID, syn); err != nil {
			return err
		}
	}
	for _, m := range rec.Mappings {
		if err := im.store.AddMapping(ctx, concept.ID, m.Source, m.Code); err != nil {
			return err
		}
	}
	return nil
}
