package taxonomy

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/hospitalcore/internal/platform/db"
)

type queryable interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed taxonomy store.
func NewRepoPG(pool *pgxpool.Pool) Store { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const conceptCols = `concept_id, uuid, datatype, class, name, COALESCE(short_name,''), COALESCE(description,''), created_at`

func scanConcept(row pgx.Row) (*Concept, error) {
	var c Concept
	err := row.Scan(&c.ID, &c.UUID, &c.DataType, &c.Class, &c.Name, &c.ShortName, &c.Description, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repoPG) FindConcept(ctx context.Context, dataType DataType, class ConceptClass, name string) (*Concept, error) {
	c, err := scanConcept(r.conn(ctx).QueryRow(ctx,
		`SELECT `+conceptCols+` FROM concept WHERE datatype = $1 AND class = $2 AND name = $3`,
		dataType, class, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find concept: %w", err)
	}
	return c, nil
}

func (r *repoPG) CreateConcept(ctx context.Context, dataType DataType, class ConceptClass, name, shortName, description string) (*Concept, error) {
	if !dataType.Valid() {
		return nil, &ValidationError{Field: "datatype", Value: string(dataType)}
	}
	if !class.Valid() {
		return nil, &ValidationError{Field: "class", Value: string(class)}
	}
	c, err := scanConcept(r.conn(ctx).QueryRow(ctx,
		`INSERT INTO concept (uuid, datatype, class, name, short_name, description)
		 VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''))
		 RETURNING `+conceptCols,
		uuid.NewString(), dataType, class, name, shortName, description))
	if err != nil {
		return nil, fmt.Errorf("create concept: %w", err)
	}
	return c, nil
}

// GetOrCreateConcept relies on the unique index over (datatype, class, name):
// the insert is attempted with ON CONFLICT DO NOTHING, and a losing racer
// re-selects the winner's row.
func (r *repoPG) GetOrCreateConcept(ctx context.Context, dataType DataType, class ConceptClass, name, shortName, description string) (*Concept, error) {
	if !dataType.Valid() {
		return nil, &ValidationError{Field: "datatype", Value: string(dataType)}
	}
	if !class.Valid() {
		return nil, &ValidationError{Field: "class", Value: string(class)}
	}

	c, err := scanConcept(r.conn(ctx).QueryRow(ctx,
		`INSERT INTO concept (uuid, datatype, class, name, short_name, description)
		 VALUES ($1, $2, $3, $4, NULLIF($5,''), NULLIF($6,''))
		 ON CONFLICT (datatype, class, name) DO NOTHING
		 RETURNING `+conceptCols,
		uuid.NewString(), dataType, class, name, shortName, description))
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get or create concept: %w", err)
	}

	// Conflict: another writer owns the triple. Fetch its row.
	existing, err := r.FindConcept(ctx, dataType, class, name)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("get or create concept %q: conflict but no row visible", name)
	}
	return existing, nil
}

func (r *repoPG) AddSynonym(ctx context.Context, conceptID int, text string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO concept_synonym (concept_id, name)
		 VALUES ($1, $2)
		 ON CONFLICT (concept_id, name) DO NOTHING`,
		conceptID, text)
	if err != nil {
		return fmt.Errorf("add synonym: %w", err)
	}
	return nil
}

func (r *repoPG) AddMapping(ctx context.Context, conceptID int, source, code string) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO concept_reference_map (concept_id, source, code)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (concept_id, source) DO UPDATE SET code = EXCLUDED.code`,
		conceptID, source, code)
	if err != nil {
		return fmt.Errorf("add mapping: %w", err)
	}
	return nil
}

func (r *repoPG) Synonyms(ctx context.Context, conceptID int) ([]Synonym, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT concept_id, name FROM concept_synonym WHERE concept_id = $1 ORDER BY name`,
		conceptID)
	if err != nil {
		return nil, fmt.Errorf("list synonyms: %w", err)
	}
	defer rows.Close()
	var result []Synonym
	for rows.Next() {
		var s Synonym
		if err := rows.Scan(&s.ConceptID, &s.Name); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

func (r *repoPG) Mappings(ctx context.Context, conceptID int) ([]SourceMapping, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT concept_id, source, code FROM concept_reference_map WHERE concept_id = $1 ORDER BY source`,
		conceptID)
	if err != nil {
		return nil, fmt.Errorf("list mappings: %w", err)
	}
	defer rows.Close()
	var result []SourceMapping
	for rows.Next() {
		var m SourceMapping
		if err := rows.Scan(&m.ConceptID, &m.Source, &m.Code); err != nil {
			return nil, err
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

func (r *repoPG) RunBatch(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, r.pool, fn)
}
