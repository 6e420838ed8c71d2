package incidence

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/hospitalcore/internal/platform/db"
)

type queryable interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed incidence repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *repoPG) CountPatientsByObservation(ctx context.Context, conceptIDs []int, gender string, from, to time.Time) (int, error) {
	sql := `SELECT COUNT(DISTINCT o.person_id)
	 FROM obs o
	 INNER JOIN person ps ON o.person_id = ps.person_id
	 WHERE o.value_coded = ANY($1)
	   AND o.obs_datetime BETWEEN $2 AND $3
	   AND o.voided = 0`
	args := []interface{}{conceptIDs, from, to}
	if gender != "" {
		sql += ` AND ps.gender = $4`
		args = append(args, gender)
	}

	var count int
	if err := r.conn(ctx).QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count patients by observation: %w", err)
	}
	return count, nil
}

func (r *repoPG) CountPatientsByOrder(ctx context.Context, conceptIDs []int, from, to time.Time) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(DISTINCT ord.patient_id)
		 FROM orders ord
		 WHERE ord.concept_id = ANY($1)
		   AND ord.start_date BETWEEN $2 AND $3
		   AND ord.voided = 0`,
		conceptIDs, from, to).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count patients by order: %w", err)
	}
	return count, nil
}
