package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateProgressEmptyRecord(t *testing.T) {
	progress, next := CalculateProgress(NewPatientRecord(), StageDemographics)
	assert.Equal(t, 0, progress)
	assert.Equal(t, StageDemographics, next, "demographics must not advance without extracted data")
}

func TestCalculateProgressDemographicsAdvance(t *testing.T) {
	rec := NewPatientRecord()
	rec.Demographics.Age = 29
	rec.Demographics.Gender = "female"

	progress, next := CalculateProgress(rec, StageDemographics)
	assert.Equal(t, 20, progress)
	assert.Equal(t, StageSymptoms, next)
}

func TestCalculateProgressAgeAloneInsufficient(t *testing.T) {
	rec := NewPatientRecord()
	rec.Demographics.Age = 29

	progress, next := CalculateProgress(rec, StageDemographics)
	assert.Equal(t, 0, progress)
	assert.Equal(t, StageDemographics, next)
}

func TestCalculateProgressSymptomsStallWithoutData(t *testing.T) {
	rec := NewPatientRecord()
	rec.Demographics.Age = 29
	rec.Demographics.Gender = "female"

	progress, next := CalculateProgress(rec, StageSymptoms)
	assert.Equal(t, 20, progress)
	assert.Equal(t, StageSymptoms, next, "symptoms must stall until a symptom is recorded")
}

func TestCalculateProgressHistoryAdvancesWhenEmpty(t *testing.T) {
	// History counts as satisfied merely by being the current stage, so it
	// advances on the next turn even with no extracted history.
	progress, next := CalculateProgress(NewPatientRecord(), StageHistory)
	assert.Equal(t, 20, progress)
	assert.Equal(t, StageLifestyle, next)
}

func TestCalculateProgressLifestyleAdvancesWhenEmpty(t *testing.T) {
	progress, next := CalculateProgress(NewPatientRecord(), StageLifestyle)
	assert.Equal(t, 25, progress, "lifestyle weight is awarded while in the stage")
	assert.Equal(t, StageAnalysis, next)
}

func TestCalculateProgressAnalysisToComplete(t *testing.T) {
	progress, next := CalculateProgress(NewPatientRecord(), StageAnalysis)
	assert.Equal(t, 10, progress)
	assert.Equal(t, StageComplete, next)
}

func TestCalculateProgressFullRecord(t *testing.T) {
	rec := fullRecord()
	progress, next := CalculateProgress(rec, StageAnalysis)
	assert.Equal(t, 100, progress)
	assert.Equal(t, StageComplete, next)
}

func TestCalculateProgressClamped(t *testing.T) {
	rec := fullRecord()
	for _, stage := range []Stage{StageDemographics, StageSymptoms, StageHistory, StageLifestyle, StageAnalysis, StageComplete} {
		progress, _ := CalculateProgress(rec, stage)
		assert.LessOrEqual(t, progress, 100, "stage %s", stage)
		assert.GreaterOrEqual(t, progress, 0, "stage %s", stage)
	}
}

func TestCalculateProgressCompleteIsTerminal(t *testing.T) {
	_, next := CalculateProgress(fullRecord(), StageComplete)
	assert.Equal(t, StageComplete, next)
}

func TestCalculateProgressNeverMovesBackward(t *testing.T) {
	order := map[Stage]int{
		StageDemographics: 0,
		StageSymptoms:     1,
		StageHistory:      2,
		StageLifestyle:    3,
		StageAnalysis:     4,
		StageComplete:     5,
	}
	records := []PatientRecord{NewPatientRecord(), fullRecord()}
	for _, rec := range records {
		for stage, rank := range order {
			_, next := CalculateProgress(rec, stage)
			assert.GreaterOrEqual(t, order[next], rank, "stage %s moved backward to %s", stage, next)
			assert.LessOrEqual(t, order[next]-rank, 1, "stage %s skipped ahead to %s", stage, next)
		}
	}
}

// TestProgressMonotonicAcrossConversation walks a full conversation and
// checks progress never decreases: record fields are only added to, so no
// criterion is ever un-satisfied.
func TestProgressMonotonicAcrossConversation(t *testing.T) {
	turns := []string{
		"Hi, I'm a 29 year old woman",
		"I've had fatigue and brain fog for months",
		"my dad has diabetes",
		"stress is very high and I sleep terribly",
		"that's everything",
	}

	rec := NewPatientRecord()
	stage := StageDemographics
	last := 0
	for i, utterance := range turns {
		rec, _ = ExtractFields(utterance, rec, stage)
		var progress int
		progress, stage = CalculateProgress(rec, stage)
		require.GreaterOrEqual(t, progress, last, "turn %d decreased progress", i)
		last = progress
	}
	assert.Equal(t, 100, last)
	assert.Equal(t, StageComplete, stage)
}

// End-to-end scenario from a first-turn introduction.
func TestFirstTurnScenario(t *testing.T) {
	rec, changed := ExtractFields("I'm a 29 year old woman", NewPatientRecord(), StageDemographics)
	require.True(t, changed)
	assert.Equal(t, 29, rec.Demographics.Age)
	assert.Equal(t, "female", rec.Demographics.Gender)

	progress, next := CalculateProgress(rec, StageDemographics)
	assert.Equal(t, 20, progress)
	assert.Equal(t, StageSymptoms, next)
}

// End-to-end scenario: an unrecognized lifestyle answer still advances the
// stage and banks the lifestyle weight.
func TestLifestyleNoKeywordScenario(t *testing.T) {
	rec := NewPatientRecord()
	updated, changed := ExtractFields("nothing in particular", rec, StageLifestyle)
	assert.False(t, changed)
	assert.True(t, updated.Lifestyle.Empty())

	progress, next := CalculateProgress(updated, StageLifestyle)
	assert.Equal(t, StageAnalysis, next)
	assert.Equal(t, 25, progress)
}

func fullRecord() PatientRecord {
	rec := NewPatientRecord()
	rec.Demographics.Age = 29
	rec.Demographics.Gender = "female"
	rec.Symptoms = []string{"fatigue", "brain fog"}
	rec.MedicalHistory = []string{"diabetes"}
	rec.Lifestyle.StressLevel = "high"
	rec.Lifestyle.SleepQuality = "poor"
	return rec
}
