package taxonomy

import "time"

// DataType classifies the kind of value a concept can take.
type DataType string

const (
	DataTypeNumeric DataType = "Numeric"
	DataTypeCoded   DataType = "Coded"
	DataTypeText    DataType = "Text"
	DataTypeDate    DataType = "Date"
	DataTypeBoolean DataType = "Boolean"
	DataTypeNA      DataType = "N/A"
)

// Valid reports whether d is a recognized data type enumerant.
func (d DataType) Valid() bool {
	switch d {
	case DataTypeNumeric, DataTypeCoded, DataTypeText, DataTypeDate, DataTypeBoolean, DataTypeNA:
		return true
	}
	return false
}

// ConceptClass is the clinical classification of a concept.
type ConceptClass string

const (
	ClassDiagnosis ConceptClass = "Diagnosis"
	ClassFinding   ConceptClass = "Finding"
	ClassSymptom   ConceptClass = "Symptom"
	ClassProcedure ConceptClass = "Procedure"
	ClassDrug      ConceptClass = "Drug"
	ClassTest      ConceptClass = "Test"
	ClassMisc      ConceptClass = "Misc"
)

// Valid reports whether c is a recognized concept class enumerant.
func (c ConceptClass) Valid() bool {
	switch c {
	case ClassDiagnosis, ClassFinding, ClassSymptom, ClassProcedure, ClassDrug, ClassTest, ClassMisc:
		return true
	}
	return false
}

// Concept is a taxonomy entry. The (DataType, Class, Name) triple uniquely
// identifies a concept for import purposes; re-importing the same triple
// returns the existing entry.
type Concept struct {
	ID          int          `json:"id"`
	UUID        string       `json:"uuid"`
	DataType    DataType     `json:"datatype"`
	Class       ConceptClass `json:"class"`
	Name        string       `json:"name"`
	ShortName   string       `json:"short_name,omitempty"`
	Description string       `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Synonym is a locale-less alternate name for a concept.
type Synonym struct {
	ConceptID int    `json:"concept_id"`
	Name      string `json:"name"`
}

// SourceMapping links a concept to an external coding system's code.
// (ConceptID, Source) is unique; re-adding replaces the code.
type SourceMapping struct {
	ConceptID int    `json:"concept_id"`
	Source    string `json:"source"`
	Code      string `json:"code"`
}

// Mapping is an external code reference carried on a parsed import record,
// before the owning concept exists.
type Mapping struct {
	Source string
	Code   string
}

// DiagnosisRecord is one correlated import record: a diagnosis definition
// joined with the synonyms and source mappings that share its name.
type DiagnosisRecord struct {
	Name        string
	DataType    DataType
	Class       ConceptClass
	Description string
	Synonyms    []string
	Mappings    []Mapping
}
