package morbidity

import "testing"

func TestAgeGroupFor(t *testing.T) {
	tests := []struct {
		name   string
		months int
		years  int
		want   string
	}{
		{"newborn", 0, 0, BandNeonate},
		{"one month", 1, 0, BandInfant},
		{"eleven months", 11, 0, BandInfant},
		{"one year", 12, 1, BandUnder5},
		{"four years", 54, 4, BandUnder5},
		{"five years", 60, 5, Band5To11},
		{"ten years", 130, 10, Band5To11},
		{"eleven years", 132, 11, Band11To18},
		{"seventeen years", 210, 17, Band11To18},
		{"eighteen years", 216, 18, Band18To58},
		{"fifty seven years", 690, 57, Band18To58},
		{"fifty eight years", 696, 58, Band58AndUp},
		{"ninety years", 1080, 90, Band58AndUp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AgeGroupFor(tt.months, tt.years); got != tt.want {
				t.Errorf("AgeGroupFor(%d, %d) = %q, want %q", tt.months, tt.years, got, tt.want)
			}
		})
	}
}

// Every non-negative age falls into exactly one band.
func TestAgeGroupFor_PartitionsAllAges(t *testing.T) {
	known := make(map[string]bool, len(AgeBands))
	for _, b := range AgeBands {
		known[b] = true
	}

	seen := make(map[string]bool)
	for months := 0; months <= 1440; months++ {
		years := months / 12
		band := AgeGroupFor(months, years)
		if !known[band] {
			t.Fatalf("months=%d years=%d: unknown band %q", months, years, band)
		}
		seen[band] = true
	}

	for _, b := range AgeBands {
		if !seen[b] {
			t.Errorf("band %q never produced over 120 years of ages", b)
		}
	}
}

func TestAgeBands_LiteralLabels(t *testing.T) {
	want := []string{
		"0-29 Days (Neonates)",
		"Infants",
		"Under 5",
		"5 - 11 Years",
		"11 - 18 Years",
		"18 - 58 Years",
		"58 And Above",
	}
	if len(AgeBands) != len(want) {
		t.Fatalf("expected %d bands, got %d", len(want), len(AgeBands))
	}
	for i, label := range want {
		if AgeBands[i] != label {
			t.Errorf("band %d: expected %q, got %q", i, label, AgeBands[i])
		}
	}
}
