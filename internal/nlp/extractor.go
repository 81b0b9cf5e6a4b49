package nlp

import "strings"

// Catalog is a named list of entity strings.
type Catalog struct {
	Name  string
	Terms []string
}

const (
	CatalogDiseases       = "diseases"
	CatalogSymptoms       = "symptoms"
	CatalogBodyParts      = "body_parts"
	CatalogMedicalActions = "medical_actions"
)

var defaultSymptoms = []string{
	"fatigue", "weakness", "pain", "fever", "headache", "dizziness",
	"nausea", "vomiting", "shortness of breath", "chest pain",
	"abdominal pain", "back pain", "joint pain", "muscle pain",
	"skin rash", "swelling", "bleeding", "bruising", "pale skin",
	"yellow skin", "weight loss", "weight gain", "appetite loss",
	"frequent urination", "excessive thirst", "vision problems",
	"hearing problems", "memory problems", "concentration problems",
}

var defaultBodyParts = []string{
	"heart", "lungs", "liver", "kidneys", "brain", "blood",
	"bones", "muscles", "skin", "eyes", "ears", "stomach",
	"intestines", "bladder", "pancreas", "thyroid",
}

var defaultMedicalActions = []string{
	"treatment", "diagnosis", "prevention", "cure", "therapy",
	"surgery", "medication", "exercise", "diet", "lifestyle",
}

// The first mapped symptom entity decides the topic when no disease is named.
var symptomTopics = map[string]string{
	"fatigue":             "anemia",
	"weakness":            "anemia",
	"excessive thirst":    "diabetes",
	"frequent urination":  "diabetes",
	"chest pain":          "heart disease",
	"shortness of breath": "heart disease",
	"pale skin":           "anemia",
	"bruising":            "thrombocytopenia",
	"bleeding":            "thrombocytopenia",
}

// Extractor finds catalog entities in text by substring containment.
type Extractor struct {
	catalogs []Catalog
	diseases map[string]struct{}
	symptoms []string
}

// NewExtractor builds an extractor over the given lower-cased disease names
// and the built-in symptom, body part and medical action catalogs.
func NewExtractor(diseases []string) *Extractor {
	ds := make([]string, len(diseases))
	set := make(map[string]struct{}, len(diseases))
	for i, d := range diseases {
		ds[i] = strings.ToLower(d)
		set[ds[i]] = struct{}{}
	}
	return &Extractor{
		catalogs: []Catalog{
			{Name: CatalogDiseases, Terms: ds},
			{Name: CatalogSymptoms, Terms: defaultSymptoms},
			{Name: CatalogBodyParts, Terms: defaultBodyParts},
			{Name: CatalogMedicalActions, Terms: defaultMedicalActions},
		},
		diseases: set,
		symptoms: defaultSymptoms,
	}
}

// Catalogs returns the catalogs in match order.
func (e *Extractor) Catalogs() []Catalog {
	return e.catalogs
}

// Extract returns every catalog term contained in normalized or raw, deduplicated
// in catalog order. raw is lower-cased before matching.
func (e *Extractor) Extract(normalized, raw string) []string {
	lowerRaw := strings.ToLower(raw)
	seen := make(map[string]struct{})
	var out []string
	for _, c := range e.catalogs {
		for _, term := range c.Terms {
			if _, dup := seen[term]; dup {
				continue
			}
			if strings.Contains(normalized, term) || strings.Contains(lowerRaw, term) {
				seen[term] = struct{}{}
				out = append(out, term)
			}
		}
	}
	return out
}

// Topic picks the medical topic for a set of extracted entities: the first
// disease, else the disease implied by the first symptom, else "".
func (e *Extractor) Topic(entities []string) string {
	for _, ent := range entities {
		if _, ok := e.diseases[ent]; ok {
			return ent
		}
	}
	for _, ent := range entities {
		if !e.isSymptom(ent) {
			continue
		}
		return symptomTopics[ent]
	}
	return ""
}

func (e *Extractor) isSymptom(term string) bool {
	for _, s := range e.symptoms {
		if s == term {
			return true
		}
	}
	return false
}
