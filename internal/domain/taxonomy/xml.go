package taxonomy

import (
	"encoding/xml"
	"fmt"
	"io"
)

// The taxonomy ships as three parallel XML files keyed by diagnosis name:
// diagnosis definitions, external source mappings, and synonym lists.
// ParseStreams decodes all three fully and correlates them before anything
// is written, so malformed input rejects the whole import.

type diagnosisFile struct {
	XMLName   xml.Name       `xml:"diagnoses"`
	Diagnoses []diagnosisXML `xml:"diagnosis"`
}

type diagnosisXML struct {
	Name        string `xml:"name"`
	DataType    string `xml:"dataType"`
	Class       string `xml:"conceptClass"`
	Description string `xml:"description"`
}

type mappingFile struct {
	XMLName  xml.Name     `xml:"mappings"`
	Mappings []mappingXML `xml:"mapping"`
}

type mappingXML struct {
	DiagnosisName string `xml:"diagnosisName"`
	Source        string `xml:"source"`
	Code          string `xml:"code"`
}

type synonymFile struct {
	XMLName  xml.Name     `xml:"synonyms"`
	Synonyms []synonymXML `xml:"synonym"`
}

type synonymXML struct {
	DiagnosisName string `xml:"diagnosisName"`
	Name          string `xml:"name"`
}

// ParseStreams decodes the three taxonomy input streams and returns one
// DiagnosisRecord per diagnosis, in file order, with the synonyms and
// mappings that share its name attached. Returns a ParseError on malformed
// XML, on a diagnosis without a name or with a name already defined, or on
// a mapping/synonym referencing a diagnosis the definitions file does not
// contain.
func ParseStreams(diagnoses, mappings, synonyms io.Reader) ([]DiagnosisRecord, error) {
	var df diagnosisFile
	if err := xml.NewDecoder(diagnoses).Decode(&df); err != nil {
		return nil, &ParseError{Stream: "diagnoses", Err: err}
	}
	var mf mappingFile
	if err := xml.NewDecoder(mappings).Decode(&mf); err != nil {
		return nil, &ParseError{Stream: "mappings", Err: err}
	}
	var sf synonymFile
	if err := xml.NewDecoder(synonyms).Decode(&sf); err != nil {
		return nil, &ParseError{Stream: "synonyms", Err: err}
	}

	records := make([]DiagnosisRecord, 0, len(df.Diagnoses))
	byName := make(map[string]*DiagnosisRecord, len(df.Diagnoses))
	for _, d := range df.Diagnoses {
		if d.Name == "" {
			return nil, &ParseError{Stream: "diagnoses", Err: fmt.Errorf("diagnosis without a name")}
		}
		// The name keys the other two streams; a second definition would
		// silently steal that diagnosis's mappings and synonyms.
		if _, dup := byName[d.Name]; dup {
			return nil, &ParseError{Stream: "diagnoses",
				Err: fmt.Errorf("diagnosis %q defined more than once", d.Name)}
		}
		records = append(records, DiagnosisRecord{
			Name:        d.Name,
			DataType:    DataType(d.DataType),
			Class:       ConceptClass(d.Class),
			Description: d.Description,
		})
		byName[d.Name] = &records[len(records)-1]
	}

	for _, m := range mf.Mappings {
		rec, ok := byName[m.DiagnosisName]
		if !ok {
			return nil, &ParseError{Stream: "mappings",
				Err: fmt.Errorf("mapping references unknown diagnosis %q", m.DiagnosisName)}
		}
		rec.Mappings = append(rec.Mappings, Mapping{Source: m.Source, Code: m.Code})
	}

	for _, s := range sf.Synonyms {
		rec, ok := byName[s.DiagnosisName]
		if !ok {
			return nil, &ParseError{Stream: "synonyms",
				Err: fmt.Errorf("synonym references unknown diagnosis %q", s.DiagnosisName)}
		}
		rec.Synonyms = append(rec.Synonyms, s.Name)
	}

	return records, nil
}
