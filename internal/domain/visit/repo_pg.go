package visit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/hospitalcore/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed visit repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const encounterCols = `e.encounter_id, e.patient_id, e.encounter_type, e.encounter_datetime, e.location_id`

func (r *repoPG) LastVisitEncounter(ctx context.Context, patientID int, types []int) (*Encounter, error) {
	sql := `SELECT ` + encounterCols + `
	 FROM encounter e
	 WHERE e.patient_id = $1
	   AND e.voided = 0`
	args := []interface{}{patientID}
	if len(types) > 0 {
		sql += ` AND e.encounter_type = ANY($2)`
		args = append(args, types)
	}
	sql += ` ORDER BY e.encounter_datetime DESC LIMIT 1`

	var enc Encounter
	err := r.conn(ctx).QueryRow(ctx, sql, args...).
		Scan(&enc.ID, &enc.PatientID, &enc.Type, &enc.Datetime, &enc.LocationID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last visit encounter: %w", err)
	}
	return &enc, nil
}

func (r *repoPG) LastVisitTime(ctx context.Context, patientID int) (*time.Time, error) {
	// Newest by insertion order, not encounter_datetime: backdated
	// encounters must not shadow the latest registration.
	var ts time.Time
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT e.encounter_datetime
		 FROM encounter e
		 WHERE e.patient_id = $1
		   AND e.voided = 0
		 ORDER BY e.encounter_id DESC
		 LIMIT 1`, patientID).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last visit time: %w", err)
	}
	return &ts, nil
}

func (r *repoPG) EncountersOn(ctx context.Context, day time.Time, types []int) ([]Encounter, error) {
	from := day.Format("2006-01-02") + " 00:00:00"
	to := day.Format("2006-01-02") + " 23:59:59"

	sql := `SELECT ` + encounterCols + `
	 FROM encounter e
	 WHERE e.encounter_datetime BETWEEN $1 AND $2
	   AND e.voided = 0`
	args := []interface{}{from, to}
	if len(types) > 0 {
		sql += ` AND e.encounter_type = ANY($3)`
		args = append(args, types)
	}
	sql += ` ORDER BY e.encounter_id ASC`

	rows, err := r.conn(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("encounters on day: %w", err)
	}
	defer rows.Close()

	var out []Encounter
	for rows.Next() {
		var enc Encounter
		if err := rows.Scan(&enc.ID, &enc.PatientID, &enc.Type, &enc.Datetime, &enc.LocationID); err != nil {
			return nil, fmt.Errorf("scan encounter: %w", err)
		}
		out = append(out, enc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("encounters on day: %w", err)
	}
	return out, nil
}

func (r *repoPG) ListObsGroup(ctx context.Context, personID, conceptID, offset, limit int) ([]Obs, error) {
	// Newest first by insertion order, same reasoning as LastVisitTime: a
	// backdated obs_datetime must not shadow newer entries.
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT o.obs_id, o.person_id, o.concept_id, o.encounter_id, o.obs_datetime,
		        o.value_coded, o.value_numeric, COALESCE(o.value_text, ''), o.value_datetime
		 FROM obs o
		 WHERE o.person_id = $1
		   AND o.concept_id = $2
		   AND o.obs_group_id IS NULL
		   AND o.voided = 0
		 ORDER BY o.obs_id DESC
		 LIMIT $3 OFFSET $4`,
		personID, conceptID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list obs group: %w", err)
	}
	defer rows.Close()

	var out []Obs
	for rows.Next() {
		var o Obs
		if err := rows.Scan(&o.ID, &o.PersonID, &o.ConceptID, &o.EncounterID, &o.ObsDatetime,
			&o.ValueCoded, &o.ValueNumeric, &o.ValueText, &o.ValueDate); err != nil {
			return nil, fmt.Errorf("scan obs: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list obs group: %w", err)
	}
	return out, nil
}
