package patientsearch

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Criteria is the loosely structured patient-search input. No field is
// required; absent fields contribute no predicate.
type Criteria struct {
	NameOrIdentifier string
	Gender           string
	Age              int
	AgeRange         int
	BirthDate        *time.Time
	DayRange         int
	RelativeName     string
}

// Empty reports whether no criterion is active. An all-empty criteria would
// match the entire patient population.
func (c Criteria) Empty() bool {
	return c.NameOrIdentifier == "" && c.Gender == "" && c.Age == 0 &&
		c.BirthDate == nil && c.RelativeName == ""
}

// PatientSummary is the read-only projection returned by search. Dead and
// Voided are tri-state: nil means the source did not record the fact, which
// is a different statement than false.
type PatientSummary struct {
	PatientID   int        `json:"patient_id"`
	Identifier  string     `json:"identifier"`
	GivenName   string     `json:"given_name"`
	MiddleName  string     `json:"middle_name,omitempty"`
	FamilyName  string     `json:"family_name"`
	Gender      string     `json:"gender"`
	BirthDate   *time.Time `json:"birthdate,omitempty"`
	Address     string     `json:"address,omitempty"`
	CityVillage string     `json:"city_village,omitempty"`
	Dead        *bool      `json:"dead,omitempty"`
	Voided      *bool      `json:"voided,omitempty"`
}

// ValidationError reports a malformed criteria value. Values are rejected at
// the boundary, never silently coerced.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid search criteria %s: %q", e.Field, e.Value)
}

// ParseCriteria builds a Criteria from request query values. Numeric and
// date fields that are present but unparsable return a ValidationError.
func ParseCriteria(values url.Values) (Criteria, error) {
	cr := Criteria{
		NameOrIdentifier: values.Get("q"),
		Gender:           values.Get("gender"),
		RelativeName:     values.Get("relative_name"),
	}

	var err error
	if cr.Age, err = parseIntField(values, "age"); err != nil {
		return Criteria{}, err
	}
	if cr.AgeRange, err = parseIntField(values, "age_range"); err != nil {
		return Criteria{}, err
	}
	if cr.DayRange, err = parseIntField(values, "day_range"); err != nil {
		return Criteria{}, err
	}

	if raw := values.Get("birthdate"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Criteria{}, &ValidationError{Field: "birthdate", Value: raw}
		}
		cr.BirthDate = &t
	}

	return cr, nil
}

func parseIntField(values url.Values, field string) (int, error) {
	raw := values.Get(field)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, &ValidationError{Field: field, Value: raw}
	}
	return n, nil
}

// decodeTriState maps the source's flag encoding to a tri-state bool:
// "1" is true, "0" is false, anything else (null, blank, junk) is unknown.
func decodeTriState(raw string) *bool {
	switch raw {
	case "1":
		v := true
		return &v
	case "0":
		v := false
		return &v
	}
	return nil
}
