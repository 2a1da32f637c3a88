package intake

import (
	"time"

	"github.com/google/uuid"
)

// Stage identifies one phase of the intake conversation.
type Stage string

const (
	StageDemographics Stage = "demographics"
	StageSymptoms     Stage = "symptoms"
	StageHistory      Stage = "history"
	StageLifestyle    Stage = "lifestyle"
	StageAnalysis     Stage = "analysis"
	StageComplete     Stage = "complete" // terminal
)

// Valid reports whether s is one of the six known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageDemographics, StageSymptoms, StageHistory, StageLifestyle, StageAnalysis, StageComplete:
		return true
	}
	return false
}

type Message struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

type Demographics struct {
	Age      int    `json:"age,omitempty"`
	Gender   string `json:"gender,omitempty"`
	Location string `json:"location,omitempty"`
}

// Lifestyle holds the fixed set of lifestyle factors. Values are only ever
// one of the labels produced by the extractor (e.g. stress_level is
// low/moderate/high), never free text.
type Lifestyle struct {
	StressLevel       string `json:"stress_level,omitempty"`
	SleepQuality      string `json:"sleep_quality,omitempty"`
	ExerciseFrequency string `json:"exercise_frequency,omitempty"`
	DietType          string `json:"diet_type,omitempty"`
}

// Empty reports whether no lifestyle factor has been set yet.
func (l Lifestyle) Empty() bool {
	return l.StressLevel == "" && l.SleepQuality == "" && l.ExerciseFrequency == "" && l.DietType == ""
}

// PatientRecord is the structured patient data accumulated across turns.
// It is round-tripped between client and server on every call; the server
// holds no session state.
type PatientRecord struct {
	Demographics       Demographics `json:"demographics"`
	Symptoms           []string     `json:"symptoms"`
	MedicalHistory     []string     `json:"medicalHistory"`
	CurrentMedications []string     `json:"currentMedications"`
	Lifestyle          Lifestyle    `json:"lifestyle"`
	Concerns           []string     `json:"concerns"`
}

// NewPatientRecord returns an empty record with non-nil slices so the JSON
// encoding matches what the chat client sends on the first turn.
func NewPatientRecord() PatientRecord {
	return PatientRecord{
		Symptoms:           []string{},
		MedicalHistory:     []string{},
		CurrentMedications: []string{},
		Concerns:           []string{},
	}
}

type ChatRequest struct {
	Message        string        `json:"message"`
	PatientData    PatientRecord `json:"patientData"`
	MessageHistory []Message     `json:"messageHistory"`
	CurrentStage   Stage         `json:"currentStage"`
}

type ChatResponse struct {
	Message            string        `json:"message"`
	UpdatedPatientData PatientRecord `json:"updatedPatientData"`
	Progress           int           `json:"progress"`
	CurrentStage       Stage         `json:"currentStage"`
}

type ReportRequest struct {
	PatientData    PatientRecord `json:"patientData"`
	MessageHistory []Message     `json:"messageHistory"`
}
