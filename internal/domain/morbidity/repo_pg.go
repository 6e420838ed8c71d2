package morbidity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hmis/hospitalcore/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates the PostgreSQL-backed morbidity repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

// aggregateSQL is assembled with one non-parameter substitution: the ward
// operator, which is a fixed "=" or "<>" chosen by the outreach flag, never
// caller text. Everything else is bound.
//
// The inner query resolves each registration encounter (types 5/6) whose
// patient also had a wardEncounterType encounter carrying a matching
// diagnosis observation in the report month; the middle query buckets each
// encounter into its age band; the outer query cross-tabulates by gender
// and visit type.
const aggregateSQL = `
SELECT age_group,
       SUM(CASE WHEN gender = 'M' AND encounter_type = 5 THEN 1 ELSE 0 END) AS "NewMale",
       SUM(CASE WHEN gender = 'F' AND encounter_type = 5 THEN 1 ELSE 0 END) AS "NewFemale",
       SUM(CASE WHEN gender = 'M' AND encounter_type = 6 THEN 1 ELSE 0 END) AS "ReMale",
       SUM(CASE WHEN gender = 'F' AND encounter_type = 6 THEN 1 ELSE 0 END) AS "ReFemale"
FROM (
  SELECT temp.encounter_id,
         CASE WHEN temp.age_in_months <= 0 THEN '0-29 Days (Neonates)'
              WHEN temp.age_in_months >= 1 AND temp.age_in_months <= 11 THEN 'Infants'
              WHEN temp.age_in_years >= 1 AND temp.age_in_years < 5 THEN 'Under 5'
              WHEN temp.age_in_years >= 5 AND temp.age_in_years < 11 THEN '5 - 11 Years'
              WHEN temp.age_in_years >= 11 AND temp.age_in_years < 18 THEN '11 - 18 Years'
              WHEN temp.age_in_years >= 18 AND temp.age_in_years < 58 THEN '18 - 58 Years'
              ELSE '58 And Above'
         END AS age_group,
         temp.gender, temp.encounter_type
  FROM (
    SELECT DISTINCT e.encounter_id, e.encounter_type, ps.gender,
           EXTRACT(YEAR FROM age(e.encounter_datetime, ps.birthdate))::int AS age_in_years,
           (EXTRACT(YEAR FROM age(e.encounter_datetime, ps.birthdate)) * 12
            + EXTRACT(MONTH FROM age(e.encounter_datetime, ps.birthdate)))::int AS age_in_months
    FROM encounter e
    INNER JOIN patient p ON p.patient_id = e.patient_id
    INNER JOIN person ps ON ps.person_id = p.patient_id
    INNER JOIN encounter e2 ON e2.patient_id = e.patient_id AND e2.encounter_type = $4
    INNER JOIN obs ward_obs ON ward_obs.encounter_id = e.encounter_id
        AND ward_obs.concept_id = $5
        AND ward_obs.value_coded %s $6
    INNER JOIN obs diag_obs ON diag_obs.encounter_id = e2.encounter_id
        AND diag_obs.concept_id = ANY($7)
        AND diag_obs.value_coded = ANY($1)
    WHERE e.encounter_type IN (5, 6)
      AND EXTRACT(MONTH FROM ward_obs.obs_datetime) = $2
      AND EXTRACT(YEAR FROM ward_obs.obs_datetime) = $3
      AND EXTRACT(MONTH FROM diag_obs.obs_datetime) = $2
      AND EXTRACT(YEAR FROM diag_obs.obs_datetime) = $3
  ) temp
) temp2
GROUP BY age_group`

func (r *repoPG) Aggregate(ctx context.Context, valueConceptIDs []int, month, year, wardEncounterType int, outreach bool) ([]Row, error) {
	op := "<>"
	if outreach {
		op = "="
	}

	rows, err := r.conn(ctx).Query(ctx, fmt.Sprintf(aggregateSQL, op),
		valueConceptIDs, month, year, wardEncounterType,
		ConceptWardLocation, ConceptOutreachMarker, diagnosisConcepts)
	if err != nil {
		return nil, fmt.Errorf("morbidity aggregate: %w", err)
	}
	defer rows.Close()

	var result []Row
	for rows.Next() {
		var row Row
		if err := rows.Scan(&row.AgeGroup, &row.NewMale, &row.NewFemale, &row.ReMale, &row.ReFemale); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
