package knowledge

// TeamMember is one person credited on the project.
type TeamMember struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// NamedValue is an ordered label/value pair.
type NamedValue struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ProjectStats are the static model training figures.
type ProjectStats struct {
	TrainingSamples    int    `json:"training_samples"`
	TestSamples        int    `json:"test_samples"`
	TrainingAccuracy   string `json:"training_accuracy"`
	ValidationAccuracy string `json:"validation_accuracy"`
	MedicalFeatures    int    `json:"medical_features"`
	EngineeredFeatures int    `json:"engineered_features"`
	CrossValidation    string `json:"cross_validation"`
}

// Dashboard is the static project information the chatbot can quote.
type Dashboard struct {
	ModelAccuracy string       `json:"model_accuracy"`
	Team          []TeamMember `json:"team"`
	KeyFeatures   []string     `json:"key_features"`
	ProjectStats  ProjectStats `json:"project_stats"`
	Methodology   []string     `json:"methodology"`
	Architecture  []NamedValue `json:"architecture"`
	Parameters    []string     `json:"parameters"`
}

var dashboardInfo = Dashboard{
	ModelAccuracy: "98.559%",
	Team: []TeamMember{
		{Name: "Ariik Anthony", Role: "AI Research Lead"},
		{Name: "Jok Malual", Role: "Data Scientist"},
		{Name: "Jongkuch Goch", Role: "Software Engineer"},
	},
	KeyFeatures: []string{
		"Blood Disease Prediction: Advanced AI models for accurate blood disease diagnosis",
		"Real-time Analysis: Instant processing and results for medical professionals",
		"Data Visualization: Interactive charts and graphs for better understanding",
		"Machine Learning: Continuous learning and improvement of prediction accuracy",
		"Medical Database: Comprehensive disease information and symptoms database",
		"User Dashboard: Intuitive interface for healthcare professionals",
	},
	ProjectStats: ProjectStats{
		TrainingSamples:    4988,
		TestSamples:        1247,
		TrainingAccuracy:   "99.2%",
		ValidationAccuracy: "98.559%",
		MedicalFeatures:    47,
		EngineeredFeatures: 23,
		CrossValidation:    "5-fold CV",
	},
	Methodology: []string{
		"Data collection and preprocessing from medical records",
		"Feature engineering and selection using domain expertise",
		"Model training using ensemble methods and cross-validation",
		"Validation and testing on independent datasets",
	},
	Architecture: []NamedValue{
		{Name: "Random Forest Classifier", Value: "98.2% accuracy with 100 trees"},
		{Name: "Gradient Boosting Classifier", Value: "97.8% accuracy with boosting"},
		{Name: "Neural Network", Value: "96.5% accuracy with deep learning"},
		{Name: "Support Vector Machine", Value: "95.3% accuracy with RBF kernel"},
	},
	Parameters: []string{"glucose", "hemoglobin", "platelets", "cholesterol", "white blood cells", "hematocrit"},
}
