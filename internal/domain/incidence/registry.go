package incidence

import (
	"fmt"
	"sort"
)

// Category maps a stable report key to the clinical concept ids it matches.
// Diagnosis categories match observation values; drug categories match
// medication-order concepts. The tables are deployment-time configuration:
// adding a disease to the reports is a data change here, not a new method.
type Category struct {
	Key        string `json:"key"`
	Label      string `json:"label"`
	ConceptIDs []int  `json:"concept_ids"`
}

// ConfigurationError reports a category key absent from the registry. It is
// a registry misconfiguration, distinct from a query that matches nothing.
type ConfigurationError struct {
	Kind string
	Key  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("unknown %s category: %q", e.Kind, e.Key)
}

// Registry holds the static diagnosis and drug category tables.
type Registry struct {
	diagnoses map[string]Category
	drugs     map[string]Category
}

// NewRegistry builds the registry with the standard category tables.
func NewRegistry() *Registry {
	return &Registry{
		diagnoses: indexByKey(diagnosisCategories),
		drugs:     indexByKey(drugCategories),
	}
}

func indexByKey(cats []Category) map[string]Category {
	m := make(map[string]Category, len(cats))
	for _, c := range cats {
		m[c.Key] = c
	}
	return m
}

// Resolve returns the diagnosis category for key.
func (r *Registry) Resolve(key string) (Category, error) {
	cat, ok := r.diagnoses[key]
	if !ok {
		return Category{}, &ConfigurationError{Kind: "diagnosis", Key: key}
	}
	return cat, nil
}

// ResolveDrug returns the drug category for key.
func (r *Registry) ResolveDrug(key string) (Category, error) {
	cat, ok := r.drugs[key]
	if !ok {
		return Category{}, &ConfigurationError{Kind: "drug", Key: key}
	}
	return cat, nil
}

// Categories returns all diagnosis categories sorted by key.
func (r *Registry) Categories() []Category {
	return sortedValues(r.diagnoses)
}

// DrugCategories returns all drug categories sorted by key.
func (r *Registry) DrugCategories() []Category {
	return sortedValues(r.drugs)
}

func sortedValues(m map[string]Category) []Category {
	out := make([]Category, 0, len(m))
	for _, c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// diagnosisCategories matches observation value_coded concepts. One entry
// per reportable disease; multi-concept entries cover clinical and lab
// variants of the same condition.
var diagnosisCategories = []Category{
	{Key: "MALARIA", Label: "Malaria", ConceptIDs: []int{123, 124, 125}},
	{Key: "DENGUE", Label: "Dengue Fever", ConceptIDs: []int{142}},
	{Key: "TYPHOID", Label: "Typhoid Fever", ConceptIDs: []int{141}},
	{Key: "CHOLERA", Label: "Cholera", ConceptIDs: []int{175}},
	{Key: "MEASLES", Label: "Measles", ConceptIDs: []int{134}},
	{Key: "TB", Label: "Tuberculosis", ConceptIDs: []int{58, 3684}},
	{Key: "PNEUMONIA", Label: "Pneumonia", ConceptIDs: []int{43, 882}},
	{Key: "DIARRHEA", Label: "Diarrheal Disease", ConceptIDs: []int{16}},
	{Key: "DYSENTERY", Label: "Dysentery", ConceptIDs: []int{2450}},
	{Key: "HEPATITIS_A", Label: "Hepatitis A", ConceptIDs: []int{2755}},
	{Key: "HEPATITIS_B", Label: "Hepatitis B", ConceptIDs: []int{2243}},
	{Key: "MENINGITIS", Label: "Meningitis", ConceptIDs: []int{2584}},
	{Key: "TETANUS", Label: "Tetanus", ConceptIDs: []int{2597}},
	{Key: "RABIES", Label: "Rabies", ConceptIDs: []int{2858}},
	{Key: "LEPROSY", Label: "Leprosy", ConceptIDs: []int{2393}},
	{Key: "FILARIASIS", Label: "Lymphatic Filariasis", ConceptIDs: []int{2736}},
	{Key: "KALA_AZAR", Label: "Kala-azar", ConceptIDs: []int{2898}},
	{Key: "JAPANESE_ENCEPHALITIS", Label: "Japanese Encephalitis", ConceptIDs: []int{2761}},
	{Key: "SCABIES", Label: "Scabies", ConceptIDs: []int{2880}},
	{Key: "ASTHMA", Label: "Asthma", ConceptIDs: []int{5}},
	{Key: "DIABETES", Label: "Diabetes Mellitus", ConceptIDs: []int{119, 3720}},
	{Key: "HYPERTENSION", Label: "Hypertension", ConceptIDs: []int{903, 3716}},
	{Key: "EPILEPSY", Label: "Epilepsy", ConceptIDs: []int{155}},
	{Key: "MALNUTRITION", Label: "Malnutrition", ConceptIDs: []int{2629}},
	{Key: "ANEMIA", Label: "Anemia", ConceptIDs: []int{3}},
	{Key: "ARI", Label: "Acute Respiratory Infection", ConceptIDs: []int{2687}},
	{Key: "UTI", Label: "Urinary Tract Infection", ConceptIDs: []int{59}},
	{Key: "STI", Label: "Sexually Transmitted Infection", ConceptIDs: []int{174}},
	{Key: "CONJUNCTIVITIS", Label: "Conjunctivitis", ConceptIDs: []int{2335}},
	{Key: "OTITIS_MEDIA", Label: "Otitis Media", ConceptIDs: []int{2672}},
}

// drugCategories matches medication-order concepts. Drug incidence never
// filters on gender.
var drugCategories = []Category{
	{Key: "ANTIMALARIAL", Label: "Antimalarial Drugs", ConceptIDs: []int{4042, 4043}},
	{Key: "ANTIBIOTIC", Label: "Antibiotics", ConceptIDs: []int{4051, 4052, 4053}},
	{Key: "ANTITUBERCULAR", Label: "Antitubercular Drugs", ConceptIDs: []int{4078}},
	{Key: "ANTIHELMINTHIC", Label: "Antihelminthics", ConceptIDs: []int{4085}},
	{Key: "ORS", Label: "Oral Rehydration Salts", ConceptIDs: []int{4090}},
	{Key: "ANTACID", Label: "Antacids", ConceptIDs: []int{4095}},
	{Key: "ANALGESIC", Label: "Analgesics", ConceptIDs: []int{4101, 4102}},
	{Key: "ANTIHYPERTENSIVE", Label: "Antihypertensives", ConceptIDs: []int{4110}},
	{Key: "ANTIDIABETIC", Label: "Antidiabetics", ConceptIDs: []int{4118}},
	{Key: "VITAMIN_A", Label: "Vitamin A", ConceptIDs: []int{4125}},
}
