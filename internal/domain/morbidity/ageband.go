package morbidity

// The seven fixed age bands of the morbidity report. Downstream report
// consumers depend on these literal labels; do not edit them.
const (
	BandNeonate = "0-29 Days (Neonates)"
	BandInfant  = "Infants"
	BandUnder5  = "Under 5"
	Band5To11   = "5 - 11 Years"
	Band11To18  = "11 - 18 Years"
	Band18To58  = "18 - 58 Years"
	Band58AndUp = "58 And Above"
)

// AgeBands lists the bands in report order.
var AgeBands = []string{
	BandNeonate, BandInfant, BandUnder5, Band5To11, Band11To18, Band18To58, Band58AndUp,
}

var bandOrder = func() map[string]int {
	m := make(map[string]int, len(AgeBands))
	for i, b := range AgeBands {
		m[b] = i
	}
	return m
}()

// AgeGroupFor buckets an age at encounter time, given as whole months and
// whole years, into its band. The bands partition all non-negative ages:
// under one month is neonate, 1-11 months is infant, then year-based bands.
func AgeGroupFor(months, years int) string {
	switch {
	case months <= 0:
		return BandNeonate
	case months >= 1 && months <= 11:
		return BandInfant
	case years < 5:
		return BandUnder5
	case years < 11:
		return Band5To11
	case years < 18:
		return Band11To18
	case years < 58:
		return Band18To58
	default:
		return Band58AndUp
	}
}
