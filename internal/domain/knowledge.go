package domain

// Category groups knowledge entries by the kind of answer they produce.
type Category string

const (
	CategorySymptoms      Category = "symptoms"
	CategoryCauses        Category = "causes"
	CategoryTreatment     Category = "treatment"
	CategoryPrevention    Category = "prevention"
	CategoryComplications Category = "complications"
	CategoryDiagnostic    Category = "diagnostic"
	CategoryLifestyle     Category = "lifestyle"
	CategoryDashboard     Category = "dashboard"
)

// DiseaseCategories lists the per-disease categories in build order.
var DiseaseCategories = []Category{
	CategorySymptoms,
	CategoryCauses,
	CategoryTreatment,
	CategoryPrevention,
	CategoryComplications,
}

// DiseaseInfo holds the structured medical facts for one disease.
type DiseaseInfo struct {
	Key             string   `json:"key"`
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Causes          []string `json:"causes"`
	Symptoms        []string `json:"symptoms"`
	Treatments      []string `json:"treatments"`
	Preventions     []string `json:"preventions"`
	RiskFactors     []string `json:"risk_factors"`
	Complications   []string `json:"complications"`
	DiagnosticTests []string `json:"diagnostic_tests"`
}

// InfoSection is one titled block of literal content in a general entry.
// Exactly one of Text or Items is expected to be set.
type InfoSection struct {
	Title string   `json:"title"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// KnowledgeEntry pairs a topic and category with keyword triggers.
// Disease-backed entries reference the disease table by key; general
// entries carry their content in Sections.
type KnowledgeEntry struct {
	Topic      string        `json:"topic"`
	Category   Category      `json:"category"`
	Keywords   []string      `json:"keywords"`
	Disease    string        `json:"disease,omitempty"`
	Sections   []InfoSection `json:"sections,omitempty"`
	Confidence float64       `json:"confidence"`
	Relations  []string      `json:"relations,omitempty"`
}

// TrainingExample is a curated question/answer pair.
type TrainingExample struct {
	Input      string  `json:"input"`
	Output     string  `json:"output"`
	Context    string  `json:"context"`
	Disease    string  `json:"disease,omitempty"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
}
