package domain

import "time"

// BloodParameters are the lab values a prediction was made from.
type BloodParameters struct {
	Glucose         float64 `json:"glucose"`
	Hemoglobin      float64 `json:"hemoglobin"`
	Platelets       float64 `json:"platelets"`
	Cholesterol     float64 `json:"cholesterol"`
	WhiteBloodCells float64 `json:"white_blood_cells"`
	Hematocrit      float64 `json:"hematocrit"`
}

// Prediction is a stored disease prediction.
type Prediction struct {
	ID         string          `json:"id"`
	Parameters BloodParameters `json:"parameters"`
	Disease    string          `json:"disease"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DiseaseCount is the number of predictions for one disease label.
type DiseaseCount struct {
	Disease string `json:"disease"`
	Count   int    `json:"count"`
}
