package patientsearch

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/hospitalcore/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed patient search repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) Search(ctx context.Context, cr Criteria, limit, offset int) ([]PatientSummary, error) {
	b := buildQuery(cr)
	rows, err := r.conn(ctx).Query(ctx, b.PagedSQL(), b.PagedArgs(limit, offset)...)
	if err != nil {
		return nil, fmt.Errorf("patient search: %w", err)
	}
	defer rows.Close()

	var results []PatientSummary
	for rows.Next() {
		var s PatientSummary
		var dead, voided string
		if err := rows.Scan(&s.PatientID, &s.Identifier,
			&s.GivenName, &s.MiddleName, &s.FamilyName,
			&s.Gender, &s.BirthDate,
			&s.Address, &s.CityVillage,
			&dead, &voided); err != nil {
			return nil, err
		}
		s.Dead = decodeTriState(dead)
		s.Voided = decodeTriState(voided)
		results = append(results, s)
	}
	return results, rows.Err()
}

func (r *repoPG) Count(ctx context.Context, cr Criteria) (int, error) {
	b := buildQuery(cr)
	var count int
	// COUNT over the distinct patient set, matching the data query's dedup.
	sql := fmt.Sprintf("SELECT COUNT(*) FROM (%s) matched", b.SQL())
	if err := r.conn(ctx).QueryRow(ctx, sql, b.Args()...).Scan(&count); err != nil {
		return 0, fmt.Errorf("patient search count: %w", err)
	}
	return count, nil
}

func (r *repoPG) PersonAttributes(ctx context.Context, patientID int) (map[string]string, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT pat.name, pa.value
		 FROM person_attribute pa
		 INNER JOIN person_attribute_type pat
		   ON pa.person_attribute_type_id = pat.person_attribute_type_id
		 WHERE pa.person_id = $1
		 ORDER BY pa.person_attribute_id ASC`,
		patientID)
	if err != nil {
		return nil, fmt.Errorf("person attributes: %w", err)
	}
	defer rows.Close()

	attrs := make(map[string]string)
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		// Later rows win, so the newest value per type survives.
		attrs[name] = value
	}
	return attrs, rows.Err()
}
