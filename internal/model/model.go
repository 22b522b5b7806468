package model

// PatientData is the record posted to the prediction service.
type PatientData struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Smoking       string  `json:"smoking"`
	AlcoholIntake string  `json:"alcohol_intake"`
	ExerciseHours float64 `json:"exercise_hours"`
	Diabetes      string  `json:"diabetes"`
	FamilyHistory string  `json:"family_history"`
	Obesity       string  `json:"obesity"`
	StressLevel   int     `json:"stress_level"`
}

type PredictionResponse struct {
	RiskPrediction     string      `json:"risk_prediction"`
	RiskProbability    float64     `json:"risk_probability"`
	ConfidenceInterval [2]float64  `json:"confidence_interval"`
	RiskFactors        RiskFactors `json:"risk_factors"`
	Recommendations    []string    `json:"recommendations"`
	Disclaimer         string      `json:"disclaimer"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	Timestamp    string `json:"timestamp"`
}

// Risk levels returned in PredictionResponse.RiskPrediction.
const (
	RiskHigh     = "Alto Riesgo"
	RiskModerate = "Riesgo Moderado"
	RiskLow      = "Bajo Riesgo"
)

// DefaultPatient holds the values the form starts with.
func DefaultPatient() PatientData {
	return PatientData{
		Age:           45,
		Gender:        "Male",
		Smoking:       "Never",
		AlcoholIntake: "None",
		ExerciseHours: 2,
		Diabetes:      "No",
		FamilyHistory: "No",
		Obesity:       "No",
		StressLevel:   5,
	}
}
