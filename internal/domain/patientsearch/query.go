package patientsearch

import (
	"fmt"

	"github.com/hmis/hospitalcore/internal/platform/query"
)

const summaryCols = `DISTINCT p.patient_id, COALESCE(pi.identifier,''),
	COALESCE(pn.given_name,''), COALESCE(pn.middle_name,''), COALESCE(pn.family_name,''),
	COALESCE(ps.gender,''), ps.birthdate,
	COALESCE(pad.address1,''), COALESCE(pad.city_village,''),
	COALESCE(ps.dead::text,''), COALESCE(ps.voided::text,'')`

// buildQuery composes the search statement from the active criteria. Absent
// criteria contribute no clause at all. Every user-supplied fragment is a
// bound parameter; the only text assembled into the statement is fixed SQL.
func buildQuery(cr Criteria) *query.Builder {
	b := query.New("patient p", summaryCols)
	b.Join("INNER JOIN person ps ON p.patient_id = ps.person_id")
	b.Join("INNER JOIN patient_identifier pi ON p.patient_id = pi.patient_id")
	b.Join("INNER JOIN person_name pn ON p.patient_id = pn.person_id")
	b.Join("LEFT JOIN person_address pad ON p.patient_id = pad.person_id")

	// The attribute join only exists while the relative-name filter is
	// active, so patients lacking the attribute are not excluded otherwise.
	if cr.RelativeName != "" {
		b.Join("INNER JOIN person_attribute pa ON p.patient_id = pa.person_id")
		b.Join("INNER JOIN person_attribute_type pat ON pa.person_attribute_type_id = pat.person_attribute_type_id")
	}

	if cr.NameOrIdentifier != "" {
		i := b.Idx()
		b.Add(fmt.Sprintf(
			"(pi.identifier ILIKE $%d OR pn.given_name ILIKE $%d OR pn.middle_name ILIKE $%d OR pn.family_name ILIKE $%d)",
			i, i+1, i+2, i+3),
			"%"+cr.NameOrIdentifier+"%",
			cr.NameOrIdentifier+"%",
			cr.NameOrIdentifier+"%",
			cr.NameOrIdentifier+"%")
	}

	if cr.Gender != "" {
		b.Add(fmt.Sprintf("ps.gender = $%d", b.Idx()), cr.Gender)
	}

	if cr.RelativeName != "" {
		b.Add(fmt.Sprintf("pat.name = 'Father/Husband Name' AND pa.value ILIKE $%d", b.Idx()),
			cr.RelativeName)
	}

	if cr.BirthDate != nil {
		d := *cr.BirthDate
		start := d.AddDate(0, 0, -cr.DayRange)
		end := d.AddDate(0, 0, cr.DayRange)
		startAt := fmt.Sprintf("%s 00:00:00", start.Format("2006-01-02"))
		endAt := fmt.Sprintf("%s 23:59:59", end.Format("2006-01-02"))
		b.Add(fmt.Sprintf("ps.birthdate BETWEEN $%d AND $%d", b.Idx(), b.Idx()+1), startAt, endAt)
	}

	// Age is floor calendar years at query time.
	if cr.Age > 0 {
		b.Add(fmt.Sprintf(
			"EXTRACT(YEAR FROM age(now(), ps.birthdate)) BETWEEN $%d AND $%d",
			b.Idx(), b.Idx()+1),
			cr.Age-cr.AgeRange, cr.Age+cr.AgeRange)
	}

	b.OrderBy("p.patient_id ASC")
	return b
}
