package patientsearch

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func TestParseCriteria_AllFields(t *testing.T) {
	values := url.Values{}
	values.Set("q", "smith")
	values.Set("gender", "F")
	values.Set("age", "30")
	values.Set("age_range", "5")
	values.Set("birthdate", "1994-03-20")
	values.Set("day_range", "7")
	values.Set("relative_name", "Hari")

	cr, err := ParseCriteria(values)
	if err != nil {
		t.Fatalf("ParseCriteria() error: %v", err)
	}

	if cr.NameOrIdentifier != "smith" || cr.Gender != "F" || cr.RelativeName != "Hari" {
		t.Errorf("unexpected string fields: %+v", cr)
	}
	if cr.Age != 30 || cr.AgeRange != 5 || cr.DayRange != 7 {
		t.Errorf("unexpected numeric fields: %+v", cr)
	}
	want := time.Date(1994, 3, 20, 0, 0, 0, 0, time.UTC)
	if cr.BirthDate == nil || !cr.BirthDate.Equal(want) {
		t.Errorf("unexpected birthdate: %v", cr.BirthDate)
	}
}

func TestParseCriteria_RejectsMalformedValues(t *testing.T) {
	tests := []struct {
		field string
		value string
	}{
		{"age", "thirty"},
		{"age", "-1"},
		{"age_range", "5.5"},
		{"day_range", "x"},
		{"birthdate", "20-03-1994"},
		{"birthdate", "not-a-date"},
	}
	for _, tt := range tests {
		t.Run(tt.field+"="+tt.value, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.field, tt.value)

			_, err := ParseCriteria(values)
			var valErr *ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, valErr.Field)
			}
		})
	}
}

func TestParseCriteria_EmptyIsValid(t *testing.T) {
	cr, err := ParseCriteria(url.Values{})
	if err != nil {
		t.Fatalf("ParseCriteria() error: %v", err)
	}
	if !cr.Empty() {
		t.Error("expected empty criteria")
	}
}

func TestCriteria_Empty(t *testing.T) {
	if (Criteria{Gender: "M"}).Empty() {
		t.Error("criteria with gender should not be empty")
	}
	d := time.Now()
	if (Criteria{BirthDate: &d}).Empty() {
		t.Error("criteria with birthdate should not be empty")
	}
	// DayRange and AgeRange alone activate nothing.
	if !(Criteria{DayRange: 5, AgeRange: 2}).Empty() {
		t.Error("range fields without their anchors should leave criteria empty")
	}
}

func TestDecodeTriState(t *testing.T) {
	if v := decodeTriState("1"); v == nil || !*v {
		t.Error("expected \"1\" to decode to true")
	}
	if v := decodeTriState("0"); v == nil || *v {
		t.Error("expected \"0\" to decode to false")
	}
	// Unknown stays unknown, never defaulted to false.
	for _, raw := range []string{"", "null", "2", "true"} {
		if decodeTriState(raw) != nil {
			t.Errorf("expected %q to decode to nil", raw)
		}
	}
}
