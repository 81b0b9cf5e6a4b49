package knowledge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/blood-disease-chatbot/internal/domain"
)

// ErrOrphanEntry is returned when an entry references a disease missing from the table.
var ErrOrphanEntry = errors.New("knowledge entry references unknown disease")

type diseaseEntryTemplate struct {
	category   domain.Category
	keywords   []string
	confidence float64
	relations  []domain.Category
}

var diseaseEntryTemplates = []diseaseEntryTemplate{
	{
		category:   domain.CategorySymptoms,
		keywords:   []string{"symptoms", "signs", "manifestations"},
		confidence: 0.95,
		relations:  []domain.Category{domain.CategoryCauses, domain.CategoryTreatment},
	},
	{
		category:   domain.CategoryCauses,
		keywords:   []string{"causes", "reasons", "why", "etiology"},
		confidence: 0.95,
		relations:  []domain.Category{domain.CategorySymptoms, domain.CategoryPrevention},
	},
	{
		category:   domain.CategoryTreatment,
		keywords:   []string{"treatment", "therapy", "cure", "medicine", "medication"},
		confidence: 0.95,
		relations:  []domain.Category{domain.CategorySymptoms, domain.CategoryPrevention},
	},
	{
		category:   domain.CategoryPrevention,
		keywords:   []string{"prevention", "prevent", "avoid", "reduce risk"},
		confidence: 0.95,
		relations:  []domain.Category{domain.CategoryCauses, domain.CategoryTreatment},
	},
	{
		category:   domain.CategoryComplications,
		keywords:   []string{"complications", "risks", "dangers", "consequences"},
		confidence: 0.90,
		relations:  []domain.Category{domain.CategorySymptoms, domain.CategoryTreatment},
	},
}

func topicFor(diseaseKey string, c domain.Category) string {
	return strings.ToLower(diseaseKey) + "_" + string(c)
}

func buildDiseaseEntries(diseases []domain.DiseaseInfo) []domain.KnowledgeEntry {
	entries := make([]domain.KnowledgeEntry, 0, len(diseases)*len(diseaseEntryTemplates))
	for _, d := range diseases {
		name := strings.ToLower(d.Key)
		for _, tmpl := range diseaseEntryTemplates {
			keywords := append([]string{name}, tmpl.keywords...)
			relations := make([]string, len(tmpl.relations))
			for i, r := range tmpl.relations {
				relations[i] = topicFor(d.Key, r)
			}
			entries = append(entries, domain.KnowledgeEntry{
				Topic:      topicFor(d.Key, tmpl.category),
				Category:   tmpl.category,
				Keywords:   keywords,
				Disease:    d.Key,
				Confidence: tmpl.confidence,
				Relations:  relations,
			})
		}
	}
	return entries
}

var generalEntries = []domain.KnowledgeEntry{
	{
		Topic:    "blood_tests",
		Category: domain.CategoryDiagnostic,
		Keywords: []string{"blood test", "laboratory", "blood work", "blood panel"},
		Sections: []domain.InfoSection{
			{Title: "Types", Items: []string{"Complete Blood Count (CBC)", "Basic Metabolic Panel", "Lipid Panel", "Liver Function Tests"}},
			{Title: "Importance", Text: "Blood tests help diagnose diseases, monitor health conditions, and guide treatment decisions."},
			{Title: "Frequency", Text: "Regular blood tests are recommended annually for healthy adults, more frequently for those with chronic conditions."},
		},
		Confidence: 0.85,
		Relations:  []string{"symptoms_general", "prevention_general"},
	},
	{
		Topic:    "general_health",
		Category: domain.CategoryLifestyle,
		Keywords: []string{"health", "healthy lifestyle", "wellness", "general advice"},
		Sections: []domain.InfoSection{
			{Title: "Principles", Items: []string{"Balanced diet", "Regular exercise", "Adequate sleep", "Stress management", "Regular check-ups"}},
			{Title: "Importance", Text: "Maintaining good health helps prevent disease and improves quality of life."},
			{Title: "Recommendations", Text: "Consult healthcare providers for personalized advice based on your individual health needs."},
		},
		Confidence: 0.80,
		Relations:  []string{"prevention_general"},
	},
}

func dashboardEntry(topic, title string, keywords, information []string, confidence float64, relations ...string) domain.KnowledgeEntry {
	return domain.KnowledgeEntry{
		Topic:    topic,
		Category: domain.CategoryDashboard,
		Keywords: keywords,
		Sections: []domain.InfoSection{
			{Title: "Topic", Text: title},
			{Title: "Information", Items: information},
		},
		Confidence: confidence,
		Relations:  relations,
	}
}

var dashboardEntries = []domain.KnowledgeEntry{
	dashboardEntry("dashboard_overview", "Dashboard Overview",
		[]string{"dashboard", "overview", "sections", "components", "layout", "what is on dashboard"},
		[]string{
			"The dashboard contains multiple sections: Hero, Live Dashboard, Real-time Metrics, Data Visualization, Project Overview, Features, Team, Methodology, Demo, Results, and Footer",
			"Each section provides specific information about the medical prediction system",
			"The layout is responsive and works on both desktop and mobile devices",
		}, 0.9, "live_dashboard", "real_time_metrics", "data_visualization"),
	dashboardEntry("live_dashboard", "Live Dashboard",
		[]string{"live", "dashboard", "real-time", "websocket", "predictions", "metrics", "live data"},
		[]string{
			"The Live Dashboard shows real-time metrics including total predictions, accuracy rate, and average confidence",
			"It uses WebSocket connections for live updates from the server",
			"Displays recent predictions timeline and historical data trends",
			"Shows connection status and health monitoring indicators",
		}, 0.95, "real_time_metrics", "websocket_connection"),
	dashboardEntry("real_time_metrics", "Real-time Metrics",
		[]string{"metrics", "real-time", "charts", "performance", "accuracy", "confidence", "statistics"},
		[]string{
			"Displays live performance metrics with animated counters",
			"Shows prediction trends using line charts and disease distribution using bar charts",
			"Tracks accuracy over time and displays confidence scores",
			"Updates automatically with new prediction data",
		}, 0.9, "live_dashboard", "data_visualization"),
	dashboardEntry("data_visualization", "Data Visualization",
		[]string{"visualization", "charts", "graphs", "pie chart", "bar chart", "disease distribution"},
		[]string{
			"Shows disease class distribution using pie charts: Diabetes (60.5%), Anemia (15.2%), Heart Disease (12.8%), Thalassemia (8.3%), Thrombocytopenia (3.2%)",
			"Displays feature importance using bar charts to show which medical parameters matter most",
			"Includes model performance metrics and accuracy statistics",
			"Uses interactive charts with hover effects and tooltips",
		}, 0.92, "disease_distribution", "model_performance"),
	dashboardEntry("chatbot_info", "AI Chatbot",
		[]string{"chatbot", "ai", "assistant", "questions", "chat", "help", "bot"},
		[]string{
			"The chatbot (that's me!) is located in the bottom-right corner of the dashboard",
			"I can answer questions about medical conditions, diseases, symptoms, treatments, and prevention",
			"I also have knowledge about the dashboard components and features",
			"I use intelligent natural language processing to understand your questions and provide relevant medical information",
		}, 0.95, "medical_knowledge", "dashboard_features"),
	dashboardEntry("demo_section", "Interactive Demo",
		[]string{"demo", "prediction", "test", "input", "medical parameters", "results", "try"},
		[]string{
			"The demo section allows you to input medical parameters and get live disease predictions",
			"You can enter values for glucose, hemoglobin, platelets, cholesterol, white blood cells, and hematocrit",
			"The system provides real-time predictions with confidence scores",
			"Sample data is available for testing the prediction system",
		}, 0.9, "prediction_system", "medical_parameters"),
	dashboardEntry("navigation_features", "Navigation & Features",
		[]string{"navigation", "menu", "features", "sections", "scroll", "mobile", "header"},
		[]string{
			"The top navigation menu includes links to Live Dashboard, Overview, Team, Results, and Demo sections",
			"The dashboard is fully responsive and works on mobile devices",
			"Features include real-time WebSocket connections, animated charts, and interactive elements",
			"The design uses modern gradients, smooth animations, and professional medical theme",
		}, 0.85, "dashboard_design", "user_interface"),
	dashboardEntry("team_section", "Team Information",
		[]string{"team", "members", "developers", "creators", "who made this"},
		[]string{
			"The team section showcases the developers and creators of this medical prediction system",
			"Includes team member profiles with photos, names, and roles",
			"Shows expertise areas like Medical AI, Data Science, Frontend and Backend development",
			"Provides contact information and social links for team members",
		}, 0.88, "project_info", "contact_info"),
	dashboardEntry("results_methodology", "Results & Methodology",
		[]string{"results", "methodology", "accuracy", "model", "training", "validation"},
		[]string{
			"The results section shows overall system accuracy and performance metrics",
			"Methodology explains the data processing pipeline and model training approach",
			"Uses ensemble machine learning models with cross-validation techniques",
			"Includes performance comparisons and validation results on test datasets",
		}, 0.9, "model_performance", "data_processing"),
}

// Validate checks that every disease-backed entry points at a known disease
// and that every general entry carries literal content.
func Validate(entries []domain.KnowledgeEntry, diseases []domain.DiseaseInfo) error {
	known := make(map[string]struct{}, len(diseases))
	for _, d := range diseases {
		known[d.Key] = struct{}{}
	}
	for _, e := range entries {
		if e.Disease != "" {
			if _, ok := known[e.Disease]; !ok {
				return fmt.Errorf("%w: %s -> %q", ErrOrphanEntry, e.Topic, e.Disease)
			}
			continue
		}
		if len(e.Sections) == 0 {
			return fmt.Errorf("knowledge entry %s has neither a disease nor content", e.Topic)
		}
	}
	return nil
}
